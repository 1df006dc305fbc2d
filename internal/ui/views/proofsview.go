// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// PROOFS SCREEN
// =============================================================================

// proofsScreen lists the account's proofs with pagination. When the
// service is unreachable the cached copy renders instead, clearly marked.
type proofsScreen struct {
	app *App

	items      []api.Proof
	pagination api.Pagination
	page       int
	selected   int
	fromCache  bool
	busy       bool

	// client-side name filter, entered with /
	filter    string
	filtering bool

	// detail panel for the highlighted proof
	detail *api.Proof
}

func newProofsScreen(app *App) *proofsScreen {
	return &proofsScreen{app: app, page: 1}
}

func (s *proofsScreen) Enter() tea.Cmd {
	s.page = 1
	s.selected = 0
	s.filter = ""
	s.filtering = false
	s.detail = nil
	return s.load()
}

// visible applies the name filter to the loaded page.
func (s *proofsScreen) visible() []api.Proof {
	if s.filter == "" {
		return s.items
	}
	needle := strings.ToLower(s.filter)
	var out []api.Proof
	for _, p := range s.items {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// load fetches the current page, falling back to the cache on transport
// failure.
func (s *proofsScreen) load() tea.Cmd {
	s.busy = true
	app := s.app
	page := s.page
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()

		list, err := app.Client.ListProofs(ctx, api.ProofListFilter{
			Page:  page,
			Limit: app.Cfg.UI.PageSize,
		})
		if err == nil {
			if app.Cache != nil {
				// Cache trouble never blocks a fresh listing.
				_ = app.Cache.PutAll(list.Proofs)
			}
			return ProofsLoadedMsg{List: list}
		}

		if errors.Is(err, api.ErrTransport) && app.Cache != nil {
			cached, cacheErr := app.Cache.List("", "")
			if cacheErr == nil && len(cached) > 0 {
				return ProofsLoadedMsg{
					List: &api.ProofList{Proofs: cached, Pagination: api.Pagination{Page: 1, Pages: 1, Total: len(cached)}},
					Err:  "offline — showing cached proofs",
				}
			}
		}
		return ProofsLoadedMsg{Err: "Could not load proofs. Check your connection and try again."}
	}
}

func (s *proofsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ProofsLoadedMsg:
		s.busy = false
		if msg.List != nil {
			s.items = msg.List.Proofs
			s.pagination = msg.List.Pagination
			s.fromCache = msg.Err != ""
			if s.selected >= len(s.items) {
				s.selected = 0
			}
		}
		return nil

	case OpResultMsg:
		if msg.From == ViewProofs {
			s.busy = false
			if msg.Result.OK {
				return s.load() // re-fetch after delete
			}
		}
		return nil

	case ProofDetailMsg:
		s.busy = false
		s.detail = msg.Proof
		return nil

	case tea.KeyMsg:
		if s.busy {
			return nil
		}
		if s.detail != nil {
			switch msg.String() {
			case "esc", "enter", "q":
				s.detail = nil
			}
			return nil
		}
		if s.filtering {
			switch msg.String() {
			case "enter":
				s.filtering = false
			case "esc":
				s.filtering = false
				s.filter = ""
			case "backspace":
				if s.filter != "" {
					s.filter = s.filter[:len(s.filter)-1]
				}
			default:
				if msg.Type == tea.KeyRunes {
					s.filter += string(msg.Runes)
				}
			}
			if s.selected >= len(s.visible()) {
				s.selected = 0
			}
			return nil
		}
		switch msg.String() {
		case "j", "down":
			if s.selected < len(s.visible())-1 {
				s.selected++
			}
		case "k", "up":
			if s.selected > 0 {
				s.selected--
			}
		case "n", "right":
			if s.page < s.pagination.Pages {
				s.page++
				return s.load()
			}
		case "p", "left":
			if s.page > 1 {
				s.page--
				return s.load()
			}
		case "/":
			s.filtering = true
		case "enter":
			return s.openSelected()
		case "r":
			return s.load()
		case "d":
			return s.deleteSelected()
		case "g":
			return func() tea.Msg { return Navigate(ViewGenerate) }
		case "esc":
			if s.filter != "" {
				s.filter = ""
				s.selected = 0
				return nil
			}
			return func() tea.Msg { return Navigate(ViewDashboard) }
		}
	}
	return nil
}

// openSelected fetches the highlighted proof's current state for the
// detail panel. The list copy may be stale or cached.
func (s *proofsScreen) openSelected() tea.Cmd {
	visible := s.visible()
	if s.selected >= len(visible) {
		return nil
	}
	id := visible[s.selected].ID
	s.busy = true
	app := s.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		proof, err := app.Client.GetProof(ctx, id)
		if err != nil {
			return OpResultMsg{From: ViewProofs, Op: "detail", Result: session.Result{Err: "Could not load the proof."}}
		}
		return ProofDetailMsg{Proof: proof}
	}
}

// deleteSelected revokes the highlighted proof.
func (s *proofsScreen) deleteSelected() tea.Cmd {
	visible := s.visible()
	if s.selected >= len(visible) {
		return nil
	}
	id := visible[s.selected].ID
	s.busy = true
	app := s.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		if err := app.Client.DeleteProof(ctx, id); err != nil {
			var svcErr *api.Error
			if errors.As(err, &svcErr) {
				return OpResultMsg{From: ViewProofs, Op: "delete", Result: session.Result{Err: svcErr.UserMessage()}}
			}
			return OpResultMsg{From: ViewProofs, Op: "delete", Result: session.Result{Err: "Could not delete the proof."}}
		}
		if app.Cache != nil {
			_ = app.Cache.Delete(id)
		}
		return OpResultMsg{From: ViewProofs, Op: "delete", Result: session.Result{OK: true}}
	}
}

func (s *proofsScreen) View(width int) string {
	t := s.app.Theme

	if s.detail != nil {
		return s.renderDetail(width)
	}

	var b strings.Builder
	header := t.Title.Render("Your proofs")
	if s.fromCache {
		header += "  " + t.BadgePending.Render("cached")
	}
	b.WriteString(header + "\n\n")

	if s.busy {
		b.WriteString(t.Hint.Render("Loading…"))
		return b.String()
	}
	if s.filtering || s.filter != "" {
		prompt := "/" + s.filter
		if s.filtering {
			prompt += "▌"
		}
		b.WriteString(t.LabelFocused.Render(prompt) + "\n\n")
	}

	visible := s.visible()
	if len(s.items) == 0 {
		b.WriteString(t.Subtle.Render("No proofs yet.") + "\n")
		b.WriteString(t.Hint.Render("press g to generate your first proof"))
		return b.String()
	}
	if len(visible) == 0 {
		b.WriteString(t.Subtle.Render("No proofs match the filter."))
		return b.String()
	}

	for i, p := range visible {
		line := s.renderItem(p, width)
		if i == s.selected {
			b.WriteString(t.ListItemSelected.Render("› " + line))
		} else {
			b.WriteString(t.ListItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if s.pagination.Pages > 1 {
		b.WriteString("\n" + t.Subtle.Render(
			"page "+util.IntToString(s.pagination.Page)+"/"+util.IntToString(s.pagination.Pages)+
				" · "+util.IntToString(s.pagination.Total)+" total"))
	}
	return b.String()
}

// renderItem draws one list row.
func (s *proofsScreen) renderItem(p api.Proof, width int) string {
	t := s.app.Theme

	glyph := "·"
	label := p.ProofType
	if typ, ok := proofs.ParseType(p.ProofType); ok {
		glyph = typ.Glyph()
		label = typ.Label()
	}

	usage := "unlimited"
	if p.MaxUsage > 0 {
		usage = util.IntToString(p.UsageCount) + "/" + util.IntToString(p.MaxUsage)
	}

	name := util.TruncateWidth(p.Name, 24)
	return glyph + " " + util.PadRight(name, 25) +
		t.Subtle.Render(util.PadRight(label, 20)) +
		t.StatusBadge(p.Status).Render(p.Status) + "  " +
		t.Subtle.Render(usage)
}

// renderDetail draws the full record for one proof.
func (s *proofsScreen) renderDetail(width int) string {
	t := s.app.Theme
	p := s.detail

	label := p.ProofType
	if typ, ok := proofs.ParseType(p.ProofType); ok {
		label = typ.Label()
	}
	usage := "unlimited"
	if p.MaxUsage > 0 {
		usage = util.IntToString(p.UsageCount) + " of " + util.IntToString(p.MaxUsage)
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(p.Name) + "\n\n")
	b.WriteString(t.Label.Render("Type     ") + label + "\n")
	b.WriteString(t.Label.Render("Status   ") + t.StatusBadge(p.Status).Render(p.Status) + "\n")
	b.WriteString(t.Label.Render("Usage    ") + usage + "\n")
	if p.ExpiresAt != "" {
		b.WriteString(t.Label.Render("Expires  ") + p.ExpiresAt + "\n")
	}
	if p.Description != "" {
		b.WriteString("\n" + t.Subtle.Render(p.Description) + "\n")
	}
	b.WriteString(t.Label.Render("ID       ") + t.Subtle.Render(p.ID) + "\n")
	b.WriteString("\n" + t.Hint.Render("esc to return · zkid proofs export "+p.ID+" to share"))
	return t.Card.Render(b.String())
}

func (s *proofsScreen) Shortcuts() []components.Shortcut {
	if s.detail != nil {
		return []components.Shortcut{{Key: "esc", Desc: "back"}}
	}
	return []components.Shortcut{
		{Key: "j/k", Desc: "move"},
		{Key: "enter", Desc: "detail"},
		{Key: "/", Desc: "filter"},
		{Key: "n/p", Desc: "page"},
		{Key: "d", Desc: "delete"},
		{Key: "g", Desc: "generate"},
		{Key: "esc", Desc: "back"},
	}
}
