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

func runListComplaints(cmd *cobra.Command, args []string) {
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	complaints, err := client.ListComplaints(ctx)
	if err != nil {
		fatalRequest("list complaints", err)
	}

	if jsonOutput {
		printJSON(complaints)
		return
	}
	if len(complaints) == 0 {
		fmt.Println("No complaints found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tAGENCY")
	for _, c := range complaints {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", c.ID, c.Title, c.Category, c.Status, c.AgencyID)
	}
	w.Flush()
}

func runShowComplaint(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	complaint, err := client.GetComplaint(ctx, id)
	if err != nil {
		fatalRequest(fmt.Sprintf("show complaint %d", id), err)
	}

	if jsonOutput {
		printJSON(complaint)
		return
	}

	// Resolve the agency name when the record does not embed it.
	agencyName := fmt.Sprintf("#%d", complaint.AgencyID)
	if complaint.Agency != nil {
		agencyName = complaint.Agency.Name
	} else if complaint.AgencyID > 0 {
		if agency, err := client.GetAgency(ctx, complaint.AgencyID); err == nil {
			agencyName = agency.Name
		}
	}

	fmt.Printf("Complaint #%d\n", complaint.ID)
	fmt.Printf("  Title:       %s\n", complaint.Title)
	fmt.Printf("  Status:      %s\n", complaint.Status)
	fmt.Printf("  Category:    %s\n", complaint.Category)
	fmt.Printf("  Agency:      %s\n", agencyName)
	fmt.Printf("  Submitted:   %s\n", complaint.CreatedAt)
	fmt.Printf("  Description: %s\n", complaint.Description)
}

func runNewComplaint(cmd *cobra.Command, args []string) {
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	form := forms.NewComplaintForm()
	form.Title = flagTitle
	form.Description = flagDescription
	form.Category = flagCategory
	form.AgencyID = flagAgency

	scripted := flagTitle != "" || flagDescription != "" || flagCategory != "" || flagAgency != ""
	if !scripted && isInteractive() {
		// The agency select needs the current agency list.
		agencies, err := client.ListAgencies(ctx)
		if err != nil {
			fatalRequest("load agencies", err)
		}
		if len(agencies) == 0 {
			log.Fatal("No agencies registered yet. Create one first: civicdesk agencies new")
		}
		if err := form.Huh(agencies).Run(); err != nil {
			log.Fatalf("Form cancelled: %v", err)
		}
	}

	req, err := form.BuildCreate()
	if err != nil {
		log.Fatalf("Invalid complaint: %v", err)
	}

	created, err := client.CreateComplaint(ctx, req)
	if err != nil {
		fatalRequest("create complaint", err)
	}
	fmt.Printf("Complaint #%d created\n", created.ID)
}

func runEditComplaint(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	complaint, err := client.GetComplaint(ctx, id)
	if err != nil {
		fatalRequest(fmt.Sprintf("load complaint %d", id), err)
	}

	form := forms.NewComplaintEditForm()
	form.ResetFrom(complaint)

	// Flag overrides apply on top of the loaded record.
	scripted := false
	overrides := []struct {
		value string
		field *string
	}{
		{flagTitle, &form.Title},
		{flagDescription, &form.Description},
		{flagCategory, &form.Category},
		{flagAgency, &form.AgencyID},
		{flagStatus, &form.Status},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.field = o.value
			scripted = true
		}
	}

	if !scripted && isInteractive() {
		agencies, err := client.ListAgencies(ctx)
		if err != nil {
			fatalRequest("load agencies", err)
		}
		if err := form.Huh(agencies).Run(); err != nil {
			log.Fatalf("Form cancelled: %v", err)
		}
	}

	req, err := form.BuildUpdate()
	if err != nil {
		log.Fatalf("Invalid complaint: %v", err)
	}

	updated, err := client.UpdateComplaint(ctx, id, req)
	if err != nil {
		fatalRequest(fmt.Sprintf("update complaint %d", id), err)
	}
	fmt.Printf("Complaint #%d updated (status: %s)\n", updated.ID, updated.Status)
}

func runDeleteComplaint(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	client := newRegistryClient()
	ctx, cancel := requestContext()
	defer cancel()

	if !assumeYes {
		if !isInteractive() {
			log.Fatal("Refusing to delete without confirmation. Re-run with --yes.")
		}
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete complaint #%d?", id)).
			Description("This cannot be undone.").
			Value(&confirmed)
		if err := huh.NewForm(huh.NewGroup(prompt)).Run(); err != nil || !confirmed {
			fmt.Println("Cancelled")
			return
		}
	}

	if err := client.DeleteComplaint(ctx, id); err != nil {
		fatalRequest(fmt.Sprintf("delete complaint %d", id), err)
	}
	fmt.Printf("Complaint #%d deleted\n", id)
}
