// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/kyc"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// KYC SCREEN
// =============================================================================

// kycScreen walks the user through identity verification. Each Enter
// starts a fresh flow; the flow itself enforces forward-only stepping.
type kycScreen struct {
	app  *App
	flow *kyc.Flow

	docType  components.Field
	country  components.Field
	imageRef components.Field
	focus    int
	busy     bool

	stepBar components.StepBar
}

func newKycScreen(app *App) *kycScreen {
	return &kycScreen{
		app:      app,
		docType:  components.NewField(app.Theme, "Document type", "passport"),
		country:  components.NewField(app.Theme, "Issuing country", "DE"),
		imageRef: components.NewField(app.Theme, "Front image path", "~/scan.jpg"),
		stepBar:  components.NewStepBar(app.Theme, []string{"Start", "Document", "Liveness", "Done"}),
	}
}

func (s *kycScreen) Enter() tea.Cmd {
	s.flow = kyc.NewFlow(s.app.Client, s.app.Session)
	s.busy = false
	s.focus = 0
	for _, f := range s.formFields() {
		f.SetError("")
		f.Blur()
	}
	return nil
}

func (s *kycScreen) formFields() []*components.Field {
	return []*components.Field{&s.docType, &s.country, &s.imageRef}
}

func (s *kycScreen) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(OpResultMsg); ok && res.From == ViewKyc {
		s.busy = false
		if res.Result.OK && s.flow.Step() == kyc.StepDocument {
			// Flow just opened; focus the first form field.
			return s.docType.Focus()
		}
		return nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if !isKey || s.busy || s.flow == nil {
		if s.busy || s.flow == nil || s.flow.Step() != kyc.StepDocument {
			return nil
		}
		return s.formFields()[s.focus].Update(msg)
	}

	switch s.flow.Step() {
	case kyc.StepStart:
		if key.String() == "enter" {
			return s.runStep("kyc-begin", s.flow.Begin)
		}
	case kyc.StepDocument:
		switch key.String() {
		case "tab", "down":
			return s.cycleFocus(1)
		case "shift+tab", "up":
			return s.cycleFocus(-1)
		case "enter":
			return s.submitDocument()
		default:
			return s.formFields()[s.focus].Update(msg)
		}
	case kyc.StepLiveness:
		if key.String() == "enter" {
			return s.runStep("kyc-complete", s.flow.FinishLiveness)
		}
	case kyc.StepComplete:
		if key.String() == "enter" || key.String() == "d" {
			return func() tea.Msg { return Navigate(ViewDashboard) }
		}
	}

	if key.String() == "esc" {
		return func() tea.Msg { return Navigate(ViewDashboard) }
	}
	return nil
}

func (s *kycScreen) cycleFocus(dir int) tea.Cmd {
	fields := s.formFields()
	fields[s.focus].Blur()
	s.focus = (s.focus + dir + len(fields)) % len(fields)
	return fields[s.focus].Focus()
}

// runStep executes a flow transition off the UI goroutine.
func (s *kycScreen) runStep(op string, step func(context.Context) session.Result) tea.Cmd {
	s.busy = true
	timeout := s.app.Cfg.API.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return OpResultMsg{From: ViewKyc, Op: op, Result: step(ctx)}
	}
}

func (s *kycScreen) submitDocument() tea.Cmd {
	doc := api.DocumentSubmission{
		Type:           strings.TrimSpace(s.docType.Value()),
		Country:        strings.TrimSpace(s.country.Value()),
		FrontImagePath: strings.TrimSpace(s.imageRef.Value()),
	}
	s.busy = true
	flow := s.flow
	timeout := s.app.Cfg.API.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return OpResultMsg{From: ViewKyc, Op: "kyc-document", Result: flow.SubmitDocument(ctx, doc)}
	}
}

func (s *kycScreen) View(width int) string {
	t := s.app.Theme
	step := kyc.StepStart
	if s.flow != nil {
		step = s.flow.Step()
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("Identity verification") + "\n")
	b.WriteString(s.stepBar.View(int(step)) + "\n\n")

	switch step {
	case kyc.StepStart:
		b.WriteString("Verification takes a few minutes: upload an identity\n")
		b.WriteString("document, then pass a quick liveness check.\n\n")
		b.WriteString(t.Hint.Render("enter to start · esc to go back"))

	case kyc.StepDocument:
		for _, f := range s.formFields() {
			b.WriteString(f.View() + "\n\n")
		}
		if s.busy {
			b.WriteString(t.Hint.Render("Uploading document…"))
		} else {
			b.WriteString(t.Hint.Render("enter to upload · tab to move"))
		}

	case kyc.StepLiveness:
		b.WriteString("Document received. Complete the liveness check on your\n")
		b.WriteString("phone, then confirm here.\n\n")
		if s.busy {
			b.WriteString(t.Hint.Render("Finalizing verification…"))
		} else {
			b.WriteString(t.Hint.Render("enter once the liveness check passed"))
		}

	case kyc.StepComplete:
		b.WriteString(t.Success.Render("✓ Your identity is verified.") + "\n\n")
		b.WriteString(t.Hint.Render("enter to continue"))
	}

	return t.Card.Render(b.String())
}

func (s *kycScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "continue"},
		{Key: "esc", Desc: "back"},
	}
}
