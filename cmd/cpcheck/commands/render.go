package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/charmbracelet/lipgloss"
)

// Column widths of the per-position table
const (
	colPos      = 4
	colRole     = 12
	colNote     = 6
	colInterval = 9
)

type renderer struct {
	header     lipgloss.Style
	dim        lipgloss.Style
	ok         lipgloss.Style
	fail       lipgloss.Style
	warning    lipgloss.Style
	suggestion lipgloss.Style
}

func newRenderer(plain bool) renderer {
	if plain {
		s := lipgloss.NewStyle()
		return renderer{header: s.Bold(true), dim: s, ok: s, fail: s, warning: s, suggestion: s}
	}
	return renderer{
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681")),
		ok:         lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950")),
		fail:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f85149")),
		warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d29922")),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff")),
	}
}

func (r renderer) severity(s counterpoint.Severity) lipgloss.Style {
	switch s {
	case counterpoint.SeverityError:
		return r.fail
	case counterpoint.SeverityWarning:
		return r.warning
	default:
		return r.suggestion
	}
}

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// Result renders the per-position table followed by global issues and the score
func (r renderer) Result(ex counterpoint.Exercise, res counterpoint.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s %s, counterpoint %s\n\n",
		r.header.Render(titleWord(ex.Species.String())+" species"),
		ex.Key, ex.Mode, ex.Position)

	b.WriteString(r.header.Render(
		cell("#", colPos) + cell("role", colRole) + cell("CF", colNote) + cell("CP", colNote) +
			cell("interval", colInterval) + "issues"))
	b.WriteString("\n")

	profile, _ := counterpoint.ProfileFor(ex.Species)
	last := len(ex.Counterpoint) - 1
	for pos, note := range ex.Counterpoint {
		cf, hasCF := cantusAt(ex, profile, pos)

		role := ""
		if profile.Role != nil {
			role = profile.Role(pos, last).String()
		}
		ivName := ""
		if hasCF && !note.Rest {
			ivName = harmonicName(ex.Position, cf, note.Pitch)
		}
		cfText := "-"
		if hasCF {
			cfText = cf.String()
		}

		row := cell(strconv.Itoa(pos), colPos) + r.dim.Render(cell(role, colRole)) +
			cell(cfText, colNote) + cell(note.String(), colNote) + cell(ivName, colInterval)

		var issues []string
		if pos < len(res.Positions) {
			for _, is := range res.Positions[pos].Issues {
				issues = append(issues, r.severity(is.Severity).Render(string(is.Rule)))
			}
		}
		if len(issues) == 0 {
			row += r.ok.Render("ok")
		} else {
			row += strings.Join(issues, ", ")
		}
		b.WriteString(row + "\n")
	}

	all := res.Issues()
	if len(all) > 0 {
		b.WriteString("\n")
		for _, is := range all {
			where := "line"
			if is.Position != counterpoint.GlobalPosition {
				where = "pos " + strconv.Itoa(is.Position)
			}
			fmt.Fprintf(&b, "  %s %s %s\n",
				r.severity(is.Severity).Render(cell(string(is.Severity), 11)),
				cell(where, 7), is.Message)
		}
	}

	verdict := r.ok.Render("VALID")
	if !res.Valid {
		verdict = r.fail.Render("INVALID")
	}
	fmt.Fprintf(&b, "\n%s  score %d/100  (%d errors, %d warnings, %d suggestions)\n",
		verdict, res.Score, len(res.Errors), len(res.Warnings), len(res.Suggestions))
	return b.String()
}

// Catalog renders a list of catalog entries
func (r renderer) Catalog(entries []services.CatalogEntry) string {
	var b strings.Builder
	b.WriteString(r.header.Render(cell("slug", 18)+cell("mode", 12)+cell("key", 5)+cell("notes", 7)+"title") + "\n")
	for _, e := range entries {
		b.WriteString(cell(e.Slug, 18) + cell(e.Mode, 12) + cell(e.Key, 5) +
			cell(strconv.Itoa(len(e.Notes)), 7) + r.dim.Render(e.Title) + "\n")
	}
	return b.String()
}

// Entry renders one catalog entry
func (r renderer) Entry(e services.CatalogEntry) string {
	var b strings.Builder
	b.WriteString(r.header.Render(e.Title) + "\n")
	fmt.Fprintf(&b, "  slug:   %s\n  key:    %s %s\n", e.Slug, e.Key, e.Mode)
	if e.Source != "" {
		fmt.Fprintf(&b, "  source: %s\n", r.dim.Render(e.Source))
	}
	fmt.Fprintf(&b, "  notes:  %s\n", strings.Join(e.Notes, " "))
	return b.String()
}

func cantusAt(ex counterpoint.Exercise, p counterpoint.Profile, pos int) (pitch.Pitch, bool) {
	if p.Ratio == 0 {
		return pitch.Pitch{}, false
	}
	i := pos / p.Ratio
	if i >= len(ex.CantusFirmus) {
		return pitch.Pitch{}, false
	}
	return ex.CantusFirmus[i], true
}

func harmonicName(position counterpoint.VoicePosition, cf, cp pitch.Pitch) string {
	lower, upper := cf, cp
	if position == counterpoint.Lower {
		lower, upper = cp, cf
	}
	iv := interval.Between(lower, upper)
	if iv.Direction == interval.Down {
		return "-" + iv.String()
	}
	return iv.String()
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
