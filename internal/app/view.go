package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
	"github.com/wahlandcase/attuned.prwatch/internal/ui"
)

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenAddPR:
		return m.viewAdd()
	case ScreenError:
		return "\n" + ui.ErrorStyle.Render("  "+m.errorMessage) + "\n\n" +
			ui.HelpStyle.Render("  press any key to exit") + "\n"
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString("\n" + m.headerLine() + "\n")

	if m.authError != nil {
		b.WriteString(ui.ErrorStyle.Render("  "+m.authError.Error()) + "\n")
	}

	latest := m.sched.Latest()
	switch {
	case latest == nil && m.sched.Fetching():
		b.WriteString("\n  " + m.spin.View() + " Fetching PRs…\n")
	case latest == nil:
		b.WriteString("\n  Waiting for first fetch…\n")
	case len(m.rows) == 0:
		b.WriteString("\n  No PRs. Press 'a' to watch one.\n")
	default:
		b.WriteString(m.viewRows(latest))
	}

	if m.statusMessage != "" {
		b.WriteString("\n" + ui.WarnStyle.Render("  "+m.statusMessage) + "\n")
	}

	b.WriteString("\n" + m.footerLine() + "\n")
	return b.String()
}

// headerLine is the aggregate indicator: open count with a failing or
// changes-requested marker taking precedence, plus fetch state.
func (m Model) headerLine() string {
	parts := []string{ui.HeaderStyle.Render("  PR Watch")}

	if latest := m.sched.Latest(); latest != nil {
		open := latest.OpenCount()
		switch {
		case latest.FailingCount() > 0:
			parts = append(parts, fmt.Sprintf("❌ %d open", open))
		case latest.BlockedCount() > 0:
			parts = append(parts, fmt.Sprintf("🔴 %d open", open))
		default:
			parts = append(parts, fmt.Sprintf("%d open", open))
		}
		parts = append(parts, ui.HelpStyle.Render("updated "+ui.TimeAgo(latest.FetchedAt)))
	}

	if m.sched.Degraded() {
		parts = append(parts, ui.WarnStyle.Render("⚠ fetch failed"))
	}
	if m.sched.Fetching() {
		parts = append(parts, m.spin.View())
	}
	if m.updateAvailable != nil {
		parts = append(parts, ui.WarnStyle.Render("⬆ update available (u)"))
	}

	return strings.Join(parts, "  ")
}

func (m Model) viewRows(latest *models.ResultSet) string {
	var b strings.Builder

	index := 0
	writeSection := func(title string, prs []models.PullRequest) {
		if len(prs) == 0 {
			return
		}
		b.WriteString("\n" + ui.SectionHeader(title, ui.ColorCyan) + "\n")
		for _, pr := range prs {
			b.WriteString(m.renderRow(pr, index == m.cursor))
			index++
		}
	}

	writeSection("MINE", latest.Authored)
	writeSection("WATCHING", latest.Watched)
	return b.String()
}

func (m Model) renderRow(pr models.PullRequest, selected bool) string {
	cursor := "  "
	titleStyle := lipgloss.NewStyle().Foreground(ui.StatusColor(pr.StatusIcon))
	if selected {
		cursor = "▶ "
		titleStyle = titleStyle.Bold(true)
	}

	draft := ""
	if pr.IsDraft {
		draft = " [draft]"
	}
	suffix := ""
	switch pr.State {
	case models.StateMerged:
		suffix = " — merged"
	case models.StateClosed:
		suffix = " — closed"
	}

	line := fmt.Sprintf("%s%s  %s#%d: %s%s%s",
		cursor, pr.StatusIcon.Glyph(), pr.RepoShort, pr.Number,
		ui.Truncate(pr.Title, 55), draft, suffix)

	out := titleStyle.Render(line) + "\n"
	if detail := detailLine(pr); detail != "" {
		out += ui.DetailStyle.Render("       "+detail) + "\n"
	}
	return out
}

// detailLine summarizes CI and review state for one PR, mirroring the
// second line of each dropdown entry.
func detailLine(pr models.PullRequest) string {
	if pr.State.Done() {
		return ""
	}

	var parts []string
	switch {
	case pr.InMergeQueue:
		if pr.MergeQueuePosition != nil {
			parts = append(parts, fmt.Sprintf("Merge queue #%d", *pr.MergeQueuePosition))
		} else {
			parts = append(parts, "Merge queue")
		}
	case pr.Mergeable == models.MergeableConflicting:
		parts = append(parts, "Has conflicts")
	default:
		parts = append(parts, pr.CILabel, pr.ReviewLabel)
	}

	if pr.Source == models.SourceWatched && pr.Author != "" {
		parts = append(parts, "by "+pr.Author)
	}
	if ago := ui.TimeAgo(pr.UpdatedAt); ago != "" {
		parts = append(parts, ago)
	}

	if failing := pr.FailingChecks(); len(failing) > 0 {
		names := make([]string, 0, 3)
		for _, c := range failing[:min(len(failing), 3)] {
			names = append(names, c.Name)
		}
		parts = append(parts, "✕ "+strings.Join(names, ", "))
	}

	return strings.Join(parts, " · ")
}

func (m Model) footerLine() string {
	return ui.HelpStyle.Render("  ↑/↓ move · enter open · a add · d dismiss · r refresh · q quit")
}

func (m Model) viewAdd() string {
	var b strings.Builder
	b.WriteString("\n" + ui.SectionHeader("WATCH A PR", ui.ColorCyan) + "\n\n")
	b.WriteString("  Paste a GitHub PR URL to watch:\n\n")
	b.WriteString("  " + m.input.View() + "\n")
	if m.statusMessage != "" {
		b.WriteString("\n" + ui.WarnStyle.Render("  "+m.statusMessage) + "\n")
	}
	b.WriteString("\n" + ui.HelpStyle.Render("  enter add · esc cancel") + "\n")
	return b.String()
}
