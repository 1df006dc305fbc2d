// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// GENERATE SCREEN
// =============================================================================

// generateScreen is the two-phase proof creation wizard: pick a type,
// then fill in the request form. Unavailable types cannot be picked.
type generateScreen struct {
	app *App

	picking  bool
	cursor   int
	chosen   proofs.Type
	typesOK  bool
	lastDone *string // name of the proof generated last, for the banner

	name      components.Field
	desc      components.Field
	maxUsage  components.Field
	validDays components.Field
	focus     int
	busy      bool

	stepBar components.StepBar
}

func newGenerateScreen(app *App) *generateScreen {
	return &generateScreen{
		app:       app,
		name:      components.NewField(app.Theme, "Name", "e.g. bar entry"),
		desc:      components.NewField(app.Theme, "Description (optional)", ""),
		maxUsage:  components.NewField(app.Theme, "Max uses (0 = unlimited)", "1"),
		validDays: components.NewField(app.Theme, "Valid for (days)", "365"),
		stepBar:   components.NewStepBar(app.Theme, []string{"Type", "Details", "Done"}),
	}
}

func (s *generateScreen) Enter() tea.Cmd {
	s.picking = true
	s.cursor = 0
	s.busy = false
	s.lastDone = nil
	s.focus = 0
	for _, f := range s.formFields() {
		f.SetError("")
		f.Blur()
	}

	app := s.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		res := app.Requester.LoadTypes(ctx)
		if !res.OK {
			return TypesLoadedMsg{Err: res.Err}
		}
		return TypesLoadedMsg{}
	}
}

func (s *generateScreen) formFields() []*components.Field {
	return []*components.Field{&s.name, &s.desc, &s.maxUsage, &s.validDays}
}

func (s *generateScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TypesLoadedMsg:
		s.typesOK = msg.Err == ""
		return nil

	case ProofGeneratedMsg:
		s.busy = false
		if msg.Err != "" {
			return nil
		}
		name := msg.Proof.Name
		s.lastDone = &name
		return nil

	case tea.KeyMsg:
		if s.busy {
			return nil
		}
		if s.lastDone != nil {
			return s.afterDoneKeys(msg)
		}
		if s.picking {
			return s.pickerKeys(msg)
		}
		return s.formKeys(msg)
	}

	if !s.picking && !s.busy && s.lastDone == nil {
		return s.formFields()[s.focus].Update(msg)
	}
	return nil
}

// pickerKeys handles the type selection phase.
func (s *generateScreen) pickerKeys(key tea.KeyMsg) tea.Cmd {
	all := proofs.All()
	switch key.String() {
	case "j", "down":
		if s.cursor < len(all)-1 {
			s.cursor++
		}
	case "k", "up":
		if s.cursor > 0 {
			s.cursor--
		}
	case "enter":
		typ := all[s.cursor]
		if !s.app.Requester.Available(typ) {
			return nil // disabled rows do not react
		}
		s.chosen = typ
		s.picking = false
		s.name.SetValue("")
		s.desc.SetValue("")
		s.maxUsage.SetValue("1")
		s.validDays.SetValue("365")
		s.focus = 0
		return s.name.Focus()
	case "esc":
		return func() tea.Msg { return Navigate(ViewDashboard) }
	}
	return nil
}

// formKeys handles the details form phase.
func (s *generateScreen) formKeys(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "tab", "down":
		return s.cycleFocus(1)
	case "shift+tab", "up":
		return s.cycleFocus(-1)
	case "enter":
		return s.submit()
	case "esc":
		s.picking = true // back to the picker, type stays highlighted
		return nil
	}
	return s.formFields()[s.focus].Update(key)
}

// afterDoneKeys handles the success banner phase.
func (s *generateScreen) afterDoneKeys(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter", "p":
		return func() tea.Msg { return Navigate(ViewProofs) }
	case "g":
		s.lastDone = nil
		s.picking = true
		return nil
	case "esc":
		return func() tea.Msg { return Navigate(ViewDashboard) }
	}
	return nil
}

func (s *generateScreen) cycleFocus(dir int) tea.Cmd {
	fields := s.formFields()
	fields[s.focus].Blur()
	s.focus = (s.focus + dir + len(fields)) % len(fields)
	return fields[s.focus].Focus()
}

// submit fires the generation request. Numeric fields go out raw; the
// requester owns the lenient coercion.
func (s *generateScreen) submit() tea.Cmd {
	s.name.SetError("")
	if strings.TrimSpace(s.name.Value()) == "" {
		s.name.SetError("Give the proof a name.")
		return nil
	}

	s.busy = true
	app := s.app
	in := proofs.Input{
		Type:        s.chosen,
		Name:        strings.TrimSpace(s.name.Value()),
		Description: strings.TrimSpace(s.desc.Value()),
		MaxUsage:    strings.TrimSpace(s.maxUsage.Value()),
		ValidDays:   strings.TrimSpace(s.validDays.Value()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		proof, res := app.Requester.Request(ctx, in)
		if !res.OK {
			return ProofGeneratedMsg{Err: res.Err}
		}
		return ProofGeneratedMsg{Proof: proof}
	}
}

func (s *generateScreen) View(width int) string {
	t := s.app.Theme

	var b strings.Builder
	b.WriteString(t.Title.Render("Generate a proof") + "\n")

	switch {
	case s.lastDone != nil:
		b.WriteString(s.stepBar.View(3) + "\n\n")
		b.WriteString(t.Success.Render("✓ Proof \""+*s.lastDone+"\" generated.") + "\n\n")
		b.WriteString(t.Hint.Render("enter to view proofs · g for another · esc for dashboard"))

	case s.picking:
		b.WriteString(s.stepBar.View(0) + "\n\n")
		for i, typ := range proofs.All() {
			available := s.app.Requester.Available(typ)
			line := typ.Glyph() + " " + typ.Label()
			switch {
			case !available:
				b.WriteString(t.ListItemDisabled.Render("  " + line + "  (unavailable)"))
			case i == s.cursor:
				b.WriteString(t.ListItemSelected.Render("› " + line))
			default:
				b.WriteString(t.ListItem.Render("  " + line))
			}
			b.WriteString("\n")
			if i == s.cursor {
				b.WriteString(t.Hint.Render("    "+typ.Summary()) + "\n")
			}
		}
		b.WriteString("\n" + t.Hint.Render("enter to choose · esc to go back"))

	default:
		b.WriteString(s.stepBar.View(1) + "\n\n")
		b.WriteString(t.Subtle.Render(s.chosen.Glyph()+" "+s.chosen.Label()) + "\n\n")
		for _, f := range s.formFields() {
			b.WriteString(f.View() + "\n\n")
		}
		if s.busy {
			b.WriteString(t.Hint.Render("Generating… this can take a few seconds"))
		} else {
			b.WriteString(t.Hint.Render("enter to generate · esc to re-pick the type"))
		}
	}

	return t.Card.Render(b.String())
}

func (s *generateScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "confirm"},
		{Key: "esc", Desc: "back"},
	}
}
