// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log"
	"time"

	"github.com/AleutianAI/CivicDesk/cmd/civicdesk/config"
	"github.com/AleutianAI/CivicDesk/pkg/querycache"
	"github.com/AleutianAI/CivicDesk/pkg/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runBrowse(cmd *cobra.Command, args []string) {
	if !isInteractive() {
		log.Fatal("browse needs a terminal; use 'civicdesk complaints list' for scripted output")
	}

	client := newRegistryClient()

	var opts []querycache.StoreOption
	if secs := config.Global.Cache.TTLSeconds; secs > 0 {
		opts = append(opts, querycache.WithTTL(time.Duration(secs)*time.Second))
	}
	store := querycache.NewStore(opts...)
	defer store.Close()

	app := tui.NewApp(tui.Source{Store: store, Client: client})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Browser failed: %v", err)
	}
}
