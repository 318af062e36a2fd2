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

	"github.com/AleutianAI/CivicDesk/cmd/civicdesk/config"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	registryURL string // CLI override for registry.base_url
	jsonOutput  bool
	assumeYes   bool

	// complaint form flags for scripted (non-interactive) use
	flagTitle       string
	flagDescription string
	flagCategory    string
	flagAgency      string
	flagStatus      string
	flagName        string

	rootCmd = &cobra.Command{
		Use:   "civicdesk",
		Short: "A cli to browse and manage community complaints",
		Long: `CivicDesk is a client for the community complaint registry. It lists,
				creates, edits, and deletes complaints and the agencies that handle
				them, either through subcommands or an interactive browser.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.Load(); err != nil {
				log.Fatalf("Error loading configuration: %v", err)
			}
		},
	}

	// --- Complaints ---
	complaintsCmd = &cobra.Command{
		Use:     "complaints",
		Short:   "Manage community complaints",
		Aliases: []string{"c"},
	}
	listComplaintsCmd = &cobra.Command{
		Use:   "list",
		Short: "List all complaints in the registry",
		Run:   runListComplaints, // Defined in cmd_complaints.go
	}
	showComplaintCmd = &cobra.Command{
		Use:   "show [id]",
		Short: "Show one complaint with its handling agency",
		Args:  cobra.ExactArgs(1),
		Run:   runShowComplaint, // Defined in cmd_complaints.go
	}
	newComplaintCmd = &cobra.Command{
		Use:   "new",
		Short: "Submit a new complaint (interactive form unless flags are given)",
		Run:   runNewComplaint, // Defined in cmd_complaints.go
	}
	editComplaintCmd = &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an existing complaint",
		Args:  cobra.ExactArgs(1),
		Run:   runEditComplaint, // Defined in cmd_complaints.go
	}
	deleteComplaintCmd = &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a complaint",
		Args:  cobra.ExactArgs(1),
		Run:   runDeleteComplaint, // Defined in cmd_complaints.go
	}

	// --- Agencies ---
	agenciesCmd = &cobra.Command{
		Use:     "agencies",
		Short:   "Manage the agencies that handle complaints",
		Aliases: []string{"a"},
	}
	listAgenciesCmd = &cobra.Command{
		Use:   "list",
		Short: "List all agencies",
		Run:   runListAgencies, // Defined in cmd_agencies.go
	}
	showAgencyCmd = &cobra.Command{
		Use:   "show [id]",
		Short: "Show one agency and its assigned complaints",
		Args:  cobra.ExactArgs(1),
		Run:   runShowAgency, // Defined in cmd_agencies.go
	}
	newAgencyCmd = &cobra.Command{
		Use:   "new",
		Short: "Register a new agency",
		Run:   runNewAgency, // Defined in cmd_agencies.go
	}
	editAgencyCmd = &cobra.Command{
		Use:   "edit [id]",
		Short: "Rename an existing agency",
		Args:  cobra.ExactArgs(1),
		Run:   runEditAgency, // Defined in cmd_agencies.go
	}
	deleteAgencyCmd = &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an agency (refused while complaints are assigned)",
		Args:  cobra.ExactArgs(1),
		Run:   runDeleteAgency, // Defined in cmd_agencies.go
	}

	// --- Browse ---
	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive complaint browser",
		Run:   runBrowse, // Defined in cmd_browse.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&registryURL, "registry", "",
		"Registry base URL (overrides config and CIVICDESK_REGISTRY_URL)")

	rootCmd.AddCommand(complaintsCmd)
	complaintsCmd.AddCommand(listComplaintsCmd)
	listComplaintsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON instead of a table")
	complaintsCmd.AddCommand(showComplaintCmd)
	showComplaintCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON instead of a table")
	complaintsCmd.AddCommand(newComplaintCmd)
	newComplaintCmd.Flags().StringVar(&flagTitle, "title", "", "Complaint title")
	newComplaintCmd.Flags().StringVar(&flagDescription, "description", "", "Complaint description")
	newComplaintCmd.Flags().StringVar(&flagCategory, "category", "", "Complaint category")
	newComplaintCmd.Flags().StringVar(&flagAgency, "agency", "", "Numeric id of the handling agency")
	complaintsCmd.AddCommand(editComplaintCmd)
	editComplaintCmd.Flags().StringVar(&flagTitle, "title", "", "New title")
	editComplaintCmd.Flags().StringVar(&flagDescription, "description", "", "New description")
	editComplaintCmd.Flags().StringVar(&flagCategory, "category", "", "New category")
	editComplaintCmd.Flags().StringVar(&flagAgency, "agency", "", "New handling agency id")
	editComplaintCmd.Flags().StringVar(&flagStatus, "status", "", "New status (Open, In_Progress, Resolved, Closed)")
	complaintsCmd.AddCommand(deleteComplaintCmd)
	deleteComplaintCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(agenciesCmd)
	agenciesCmd.AddCommand(listAgenciesCmd)
	listAgenciesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON instead of a table")
	agenciesCmd.AddCommand(showAgencyCmd)
	showAgencyCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON instead of a table")
	agenciesCmd.AddCommand(newAgencyCmd)
	newAgencyCmd.Flags().StringVar(&flagName, "name", "", "Agency name")
	agenciesCmd.AddCommand(editAgencyCmd)
	editAgencyCmd.Flags().StringVar(&flagName, "name", "", "New agency name")
	agenciesCmd.AddCommand(deleteAgencyCmd)
	deleteAgencyCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(browseCmd)
}
