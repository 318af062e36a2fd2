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
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/AleutianAI/CivicDesk/pkg/forms"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func runListAgencies(cmd *cobra.Command, args []string) {
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	agencies, err := client.ListAgencies(ctx)
	if err != nil {
		fatalRequest("list agencies", err)
	}

	if jsonOutput {
		printJSON(agencies)
		return
	}
	if len(agencies) == 0 {
		fmt.Println("No agencies found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, a := range agencies {
		fmt.Fprintf(w, "%d\t%s\n", a.ID, a.Name)
	}
	w.Flush()
}

func runShowAgency(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	agency, err := client.GetAgency(ctx, id)
	if err != nil {
		fatalRequest(fmt.Sprintf("show agency %d", id), err)
	}

	if jsonOutput {
		printJSON(agency)
		return
	}

	fmt.Printf("Agency #%d\n", agency.ID)
	fmt.Printf("  Name:       %s\n", agency.Name)
	fmt.Printf("  Complaints: %d\n", len(agency.Complaints))
	for _, c := range agency.Complaints {
		fmt.Printf("    #%-4d [%s] %s\n", c.ID, c.Status, c.Title)
	}
}

func runNewAgency(cmd *cobra.Command, args []string) {
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	form := forms.NewAgencyForm()
	form.Name = flagName

	if flagName == "" && isInteractive() {
		if err := form.Huh().Run(); err != nil {
			log.Fatalf("Form cancelled: %v", err)
		}
	}

	req, err := form.BuildCreate()
	if err != nil {
		log.Fatalf("Invalid agency: %v", err)
	}

	created, err := client.CreateAgency(ctx, req)
	if err != nil {
		fatalRequest("create agency", err)
	}
	fmt.Printf("Agency #%d created\n", created.ID)
}

func runEditAgency(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	agency, err := client.GetAgency(ctx, id)
	if err != nil {
		fatalRequest(fmt.Sprintf("load agency %d", id), err)
	}

	form := forms.NewAgencyEditForm()
	form.ResetFrom(agency)

	if flagName != "" {
		form.Name = flagName
	} else if isInteractive() {
		if err := form.Huh().Run(); err != nil {
			log.Fatalf("Form cancelled: %v", err)
		}
	}

	req, err := form.BuildUpdate()
	if err != nil {
		log.Fatalf("Invalid agency: %v", err)
	}

	updated, err := client.UpdateAgency(ctx, id, req)
	if err != nil {
		fatalRequest(fmt.Sprintf("update agency %d", id), err)
	}
	fmt.Printf("Agency #%d renamed to %s\n", updated.ID, updated.Name)
}

func runDeleteAgency(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	// Check the freshest record first: the registry refuses to delete an
	// agency with assigned complaints, surface that before prompting.
	agency, err := client.GetAgency(ctx, id)
	if err != nil {
		fatalRequest(fmt.Sprintf("load agency %d", id), err)
	}
	if n := len(agency.Complaints); n > 0 {
		log.Fatalf("Cannot delete %s: %d complaints are still assigned to it", agency.Name, n)
	}

	if !assumeYes {
		if !isInteractive() {
			log.Fatal("Refusing to delete without confirmation. Re-run with --yes.")
		}
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete agency %s?", agency.Name)).
			Description("This cannot be undone.").
			Value(&confirmed)
		if err := huh.NewForm(huh.NewGroup(prompt)).Run(); err != nil || !confirmed {
			fmt.Println("Cancelled")
			return
		}
	}

	if err := client.DeleteAgency(ctx, id); err != nil {
		fatalRequest(fmt.Sprintf("delete agency %d", id), err)
	}
	fmt.Printf("Agency #%d deleted\n", id)
}
