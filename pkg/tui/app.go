// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui implements the interactive complaint browser using bubbletea.
//
// # Description
//
// The browser presents the complaint and agency collections as tables with a
// detail view per record. Every read goes through the query cache, so
// switching between views re-renders retained data instantly while a refetch
// runs in the background, and deletes invalidate the affected kinds before
// the next read.
//
// # Thread Safety
//
// Models are designed for single-threaded use within the bubbletea event
// loop. Do not access model state from multiple goroutines.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/pkg/querycache"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// View
// =============================================================================

// view identifies the active screen.
type view int

const (
	viewComplaints view = iota
	viewComplaintDetail
	viewAgencies
	viewAgencyDetail
)

// =============================================================================
// Model
// =============================================================================

// App is the top-level bubbletea model for the browse session.
type App struct {
	source Source
	sub    *querycache.Subscription

	view     view
	detailID int

	complaintsTable table.Model
	agenciesTable   table.Model
	spin            spinner.Model

	width  int
	height int
	ready  bool

	confirming bool
	status     string
	lastErr    string
	quitting   bool
}

// NewApp creates the browse model. The subscription feeds background cache
// transitions back into the event loop.
func NewApp(source Source) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	complaintCols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Status", Width: 12},
		{Title: "Agency", Width: 6},
	}
	agencyCols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 40},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("39"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("212")).Bold(true)

	ct := table.New(table.WithColumns(complaintCols), table.WithFocused(true))
	ct.SetStyles(styles)
	at := table.New(table.WithColumns(agencyCols))
	at.SetStyles(styles)

	return App{
		source:          source,
		sub:             source.Store.Subscribe(),
		complaintsTable: ct,
		agenciesTable:   at,
		spin:            sp,
	}
}

// Init implements tea.Model.
func (m App) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.source.Complaints(),
		m.source.Agencies(),
		waitForEvent(m.sub),
	)
}

// Update implements tea.Model.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		tableHeight := m.height - 7
		if tableHeight < 3 {
			tableHeight = 3
		}
		m.complaintsTable.SetHeight(tableHeight)
		m.agenciesTable.SetHeight(tableHeight)
		m.ready = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case dataMsg:
		return m.handleData(msg)

	case cacheEventMsg:
		return m.handleCacheEvent(msg)

	case mutationDoneMsg:
		m.confirming = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.lastErr = ""
		// The record is gone, return to its list.
		switch m.view {
		case viewComplaintDetail:
			m.view = viewComplaints
			return m, m.source.Complaints()
		case viewAgencyDetail:
			m.view = viewAgencies
			return m, tea.Batch(m.source.Agencies(), m.source.Complaints())
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}

	switch m.view {
	case viewComplaints:
		var cmd tea.Cmd
		m.complaintsTable, cmd = m.complaintsTable.Update(msg)
		cmds = append(cmds, cmd)
	case viewAgencies:
		var cmd tea.Cmd
		m.agenciesTable, cmd = m.agenciesTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// Message Handling
// =============================================================================

func (m App) handleData(msg dataMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastErr = msg.err.Error()
		return m, nil
	}
	m.lastErr = ""

	switch {
	case msg.key == querycache.CollectionKey(querycache.KindComplaints):
		if complaints, ok := msg.result.Data.([]api.Complaint); ok {
			m.complaintsTable.SetRows(complaintRows(complaints))
		}

	case msg.key == querycache.CollectionKey(querycache.KindAgencies):
		if agencies, ok := msg.result.Data.([]api.Agency); ok {
			m.agenciesTable.SetRows(agencyRows(agencies))
		}

	case msg.key == querycache.RecordKey(querycache.KindComplaints, m.detailID):
		// Dependent read: resolve the agency once the complaint is known,
		// unless the record already embeds it.
		if c, ok := msg.result.Data.(*api.Complaint); ok && c.Agency == nil && c.AgencyID > 0 {
			return m, m.source.Agency(c.AgencyID)
		}
	}

	return m, nil
}

func (m App) handleCacheEvent(msg cacheEventMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForEvent(m.sub)}

	// An idle event means the key was invalidated underneath us; re-read
	// whatever the active view depends on.
	if msg.event.Result.State == querycache.StateIdle {
		switch m.view {
		case viewComplaints:
			if msg.event.Key.Kind == querycache.KindComplaints {
				cmds = append(cmds, m.source.Complaints())
			}
		case viewAgencies:
			if msg.event.Key.Kind == querycache.KindAgencies {
				cmds = append(cmds, m.source.Agencies())
			}
		case viewComplaintDetail:
			if msg.event.Key == querycache.RecordKey(querycache.KindComplaints, m.detailID) {
				cmds = append(cmds, m.source.Complaint(m.detailID))
			}
		case viewAgencyDetail:
			if msg.event.Key == querycache.RecordKey(querycache.KindAgencies, m.detailID) {
				cmds = append(cmds, m.source.Agency(m.detailID))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.status = ""
		m.lastErr = ""
		if m.view == viewComplaints || m.view == viewComplaintDetail {
			m.view = viewAgencies
			m.agenciesTable.Focus()
			m.complaintsTable.Blur()
			return m, m.source.Agencies()
		}
		m.view = viewComplaints
		m.complaintsTable.Focus()
		m.agenciesTable.Blur()
		return m, m.source.Complaints()

	case "enter":
		return m.openDetail()

	case "esc":
		m.status = ""
		switch m.view {
		case viewComplaintDetail:
			m.view = viewComplaints
		case viewAgencyDetail:
			m.view = viewAgencies
		}
		return m, nil

	case "r":
		return m.refreshCurrent()

	case "d":
		return m.requestDelete()
	}

	// Table navigation keys fall through to the focused table.
	switch m.view {
	case viewComplaints:
		var cmd tea.Cmd
		m.complaintsTable, cmd = m.complaintsTable.Update(msg)
		return m, cmd
	case viewAgencies:
		var cmd tea.Cmd
		m.agenciesTable, cmd = m.agenciesTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		if m.view == viewComplaintDetail {
			return m, m.source.DeleteComplaint(m.detailID)
		}
		return m, m.source.DeleteAgency(m.detailID)

	case "n", "N", "esc", "q":
		m.confirming = false
	}
	return m, nil
}

// =============================================================================
// Actions
// =============================================================================

func (m App) openDetail() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewComplaints:
		id, ok := selectedID(m.complaintsTable)
		if !ok {
			return m, nil
		}
		m.view = viewComplaintDetail
		m.detailID = id
		m.status = ""
		return m, m.source.Complaint(id)

	case viewAgencies:
		id, ok := selectedID(m.agenciesTable)
		if !ok {
			return m, nil
		}
		m.view = viewAgencyDetail
		m.detailID = id
		m.status = ""
		return m, m.source.Agency(id)
	}
	return m, nil
}

func (m App) refreshCurrent() (tea.Model, tea.Cmd) {
	m.status = "Refreshing..."
	switch m.view {
	case viewComplaints:
		m.source.Refresh(querycache.KindComplaints)
		return m, m.source.Complaints()
	case viewAgencies:
		m.source.Refresh(querycache.KindAgencies)
		return m, m.source.Agencies()
	case viewComplaintDetail:
		m.source.Refresh(querycache.KindComplaints)
		return m, m.source.Complaint(m.detailID)
	case viewAgencyDetail:
		m.source.Refresh(querycache.KindAgencies)
		return m, m.source.Agency(m.detailID)
	}
	return m, nil
}

// requestDelete opens the confirmation overlay. For agencies the freshest
// cached record is consulted first: an agency with assigned complaints
// cannot be deleted, so the overlay never opens for one.
func (m App) requestDelete() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewComplaintDetail:
		m.confirming = true

	case viewAgencyDetail:
		if a := m.peekAgency(m.detailID); a != nil && len(a.Complaints) > 0 {
			m.lastErr = fmt.Sprintf("Cannot delete: %d complaints are assigned to this agency", len(a.Complaints))
			return m, nil
		}
		m.confirming = true
	}
	return m, nil
}

// =============================================================================
// Cache Peeks
// =============================================================================

func (m App) peekComplaint(id int) *api.Complaint {
	res, ok := m.source.Store.Get(querycache.RecordKey(querycache.KindComplaints, id))
	if !ok || res.State != querycache.StateSuccess {
		return nil
	}
	c, _ := res.Data.(*api.Complaint)
	return c
}

func (m App) peekAgency(id int) *api.Agency {
	res, ok := m.source.Store.Get(querycache.RecordKey(querycache.KindAgencies, id))
	if !ok || res.State != querycache.StateSuccess {
		return nil
	}
	a, _ := res.Data.(*api.Agency)
	return a
}

// =============================================================================
// Rows
// =============================================================================

func complaintRows(complaints []api.Complaint) []table.Row {
	rows := make([]table.Row, 0, len(complaints))
	for _, c := range complaints {
		rows = append(rows, table.Row{
			strconv.Itoa(c.ID),
			c.Title,
			c.Category,
			c.Status,
			strconv.Itoa(c.AgencyID),
		})
	}
	return rows
}

func agencyRows(agencies []api.Agency) []table.Row {
	rows := make([]table.Row, 0, len(agencies))
	for _, a := range agencies {
		rows = append(rows, table.Row{strconv.Itoa(a.ID), a.Name})
	}
	return rows
}

// selectedID extracts the record identifier from the focused table row.
func selectedID(t table.Model) (int, bool) {
	row := t.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return id, true
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m App) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.confirming {
		b.WriteString(m.renderConfirm())
	} else {
		switch m.view {
		case viewComplaints:
			b.WriteString(m.renderComplaintsList())
		case viewComplaintDetail:
			b.WriteString(m.renderComplaintDetail())
		case viewAgencies:
			b.WriteString(m.renderAgenciesList())
		case viewAgencyDetail:
			b.WriteString(m.renderAgencyDetail())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m App) renderHeader() string {
	complaintsTab := tabInactiveStyle.Render("Complaints")
	agenciesTab := tabInactiveStyle.Render("Agencies")
	switch m.view {
	case viewComplaints, viewComplaintDetail:
		complaintsTab = tabActiveStyle.Render("Complaints")
	case viewAgencies, viewAgencyDetail:
		agenciesTab = tabActiveStyle.Render("Agencies")
	}
	return titleStyle.Render("CivicDesk") + "  " + complaintsTab + " | " + agenciesTab
}

func (m App) renderComplaintsList() string {
	res, ok := m.source.Store.Get(querycache.CollectionKey(querycache.KindComplaints))
	if body, done := m.renderReadState(res, ok, "complaints"); done {
		return body
	}
	complaints, _ := res.Data.([]api.Complaint)
	if len(complaints) == 0 {
		return emptyStyle.Render("No complaints found")
	}
	return m.complaintsTable.View()
}

func (m App) renderAgenciesList() string {
	res, ok := m.source.Store.Get(querycache.CollectionKey(querycache.KindAgencies))
	if body, done := m.renderReadState(res, ok, "agencies"); done {
		return body
	}
	agencies, _ := res.Data.([]api.Agency)
	if len(agencies) == 0 {
		return emptyStyle.Render("No agencies found")
	}
	return m.agenciesTable.View()
}

func (m App) renderComplaintDetail() string {
	res, ok := m.source.Store.Get(querycache.RecordKey(querycache.KindComplaints, m.detailID))
	if body, done := m.renderReadState(res, ok, fmt.Sprintf("complaint #%d", m.detailID)); done {
		return body
	}
	c, _ := res.Data.(*api.Complaint)
	if c == nil {
		return emptyStyle.Render("Complaint not found")
	}

	agencyName := "..."
	if c.Agency != nil {
		agencyName = c.Agency.Name
	} else if a := m.peekAgency(c.AgencyID); a != nil {
		agencyName = a.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Title"), c.Title)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Status"), statusBadge(c.Status))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Category"), c.Category)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Agency"), agencyName)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Submitted"), c.CreatedAt)
	fmt.Fprintf(&b, "%s\n%s\n", labelStyle.Render("Description"), c.Description)
	return b.String()
}

func (m App) renderAgencyDetail() string {
	res, ok := m.source.Store.Get(querycache.RecordKey(querycache.KindAgencies, m.detailID))
	if body, done := m.renderReadState(res, ok, fmt.Sprintf("agency #%d", m.detailID)); done {
		return body
	}
	a, _ := res.Data.(*api.Agency)
	if a == nil {
		return emptyStyle.Render("Agency not found")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Name"), a.Name)
	fmt.Fprintf(&b, "%s %d\n\n", labelStyle.Render("Complaints"), len(a.Complaints))
	if len(a.Complaints) == 0 {
		b.WriteString(emptyStyle.Render("No complaints assigned"))
		b.WriteString("\n")
	} else {
		for _, c := range a.Complaints {
			fmt.Fprintf(&b, "  #%-4d %s %s\n", c.ID, statusBadge(c.Status), c.Title)
		}
	}
	return b.String()
}

// renderReadState maps the shared idle/loading/error states to output.
// Returns done=false when the caller should render the success data itself.
func (m App) renderReadState(res querycache.Result, ok bool, what string) (string, bool) {
	if !ok || res.State == querycache.StateIdle {
		return fmt.Sprintf("%s Loading %s...", m.spin.View(), what), true
	}
	switch res.State {
	case querycache.StateLoading:
		return fmt.Sprintf("%s Loading %s...", m.spin.View(), what), true
	case querycache.StateError:
		msg := "An error occurred"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		return errorStyle.Render("Error: "+msg) + helpStyle.Render("  (r to retry)"), true
	}
	return "", false
}

func (m App) renderConfirm() string {
	what := fmt.Sprintf("complaint #%d", m.detailID)
	if m.view == viewAgencyDetail {
		what = fmt.Sprintf("agency #%d", m.detailID)
		if a := m.peekAgency(m.detailID); a != nil {
			what = fmt.Sprintf("agency #%d (%s)", m.detailID, a.Name)
		}
	} else if c := m.peekComplaint(m.detailID); c != nil {
		what = fmt.Sprintf("complaint #%d (%s)", m.detailID, c.Title)
	}
	return confirmStyle.Render(fmt.Sprintf(
		"Delete %s?\n\nThis cannot be undone.\n\n[y] delete   [n] cancel", what))
}

func (m App) renderFooter() string {
	var parts []string
	switch m.view {
	case viewComplaints, viewAgencies:
		parts = append(parts, "enter: open", "tab: switch", "r: refresh", "q: quit")
	default:
		parts = append(parts, "esc: back", "d: delete", "r: refresh", "q: quit")
	}
	footer := helpStyle.Render(strings.Join(parts, "  "))

	if m.lastErr != "" {
		footer += "\n" + errorStyle.Render(m.lastErr)
	} else if m.status != "" {
		footer += "\n" + statusLineStyle.Render(m.status)
	}
	return footer
}
