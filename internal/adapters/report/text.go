// Package report renders reconciliation results for people and for machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/reqsync/internal/ui/style"
)

const (
	indent = "  "

	// maxLabelWidth caps labels that are followed by a note, such as long direct URLs.
	maxLabelWidth = 60
)

// Text implements ports.Reporter with aligned, colored lines.
type Text struct {
	w       io.Writer
	heading lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	failed  lipgloss.Style
	faint   lipgloss.Style
}

// NewText creates a Text reporter writing to w with the given color profile.
func NewText(w io.Writer, profile termenv.Profile) *Text {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Text{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(style.Iris),
		added:   r.NewStyle().Foreground(style.Green),
		removed: r.NewStyle().Foreground(style.Yellow),
		failed:  r.NewStyle().Foreground(style.Red),
		faint:   r.NewStyle().Foreground(style.Slate),
	}
}

// UpToDate reports that nothing has to change.
func (t *Text) UpToDate() {
	t.println(t.added.Render(style.Check) + " Everything up-to-date")
}

// Plan lists what a sync would uninstall and install.
func (t *Text) Plan(diff domain.SyncDiff) {
	if len(diff.ToUninstall) > 0 {
		t.println(t.heading.Render("Would uninstall:"))
		rows := make([]row, 0, len(diff.ToUninstall))
		for _, d := range diff.ToUninstall {
			rows = append(rows, row{icon: t.removed.Render(style.Minus), label: d.String()})
		}
		t.table(rows)
	}

	if len(diff.ToInstall) > 0 {
		t.println(t.heading.Render("Would install:"))
		rows := make([]row, 0, len(diff.ToInstall))
		for _, r := range diff.ToInstall {
			rows = append(rows, row{icon: t.added.Render(style.Plus), label: truncate(r.String()), note: r.Origin})
		}
		t.table(rows)
	}

	t.println("")
	t.println(t.faint.Render(fmt.Sprintf("%d to uninstall, %d to install, %d unchanged",
		len(diff.ToUninstall), len(diff.ToInstall), len(diff.Unchanged))))
}

// Summary lists every applied item and the totals.
func (t *Text) Summary(result domain.SyncResult) {
	rows := make([]row, 0, len(result.Uninstalled)+len(result.Installed))
	for _, item := range result.Uninstalled {
		rows = append(rows, t.itemRow(item, t.removed.Render(style.Minus)))
	}
	for _, item := range result.Installed {
		rows = append(rows, t.itemRow(item, t.added.Render(style.Plus)))
	}
	t.table(rows)

	failures := len(result.Failures())
	line := fmt.Sprintf("Uninstalled %d, installed %d",
		succeeded(result.Uninstalled), succeeded(result.Installed))
	if failures > 0 {
		t.println(line + ", " + t.failed.Render(fmt.Sprintf("%d failed", failures)))
		return
	}
	t.println(line)
}

// Status shows the last sync record and whether it matches currentDigest.
func (t *Text) Status(record *domain.SyncRecord, currentDigest string) {
	if record == nil {
		t.println(t.removed.Render(style.Warning) + " No sync recorded yet")
		return
	}

	rows := []row{
		{label: "Last sync", note: record.SyncedAt.UTC().Format(time.DateTime + " MST")},
		{label: "Digest", note: record.Digest},
		{label: "Packages", note: fmt.Sprintf("%d (%d installed, %d uninstalled)",
			record.Packages, record.Installed, record.Uninstalled)},
		{label: "Sources", note: strings.Join(record.Sources, ", ")},
	}
	for i := range rows {
		rows[i].label = t.faint.Render(rows[i].label)
	}
	t.table(rows)

	if record.Digest == currentDigest {
		t.println(t.added.Render(style.Check) + " Requirements match the last sync")
		return
	}
	t.println(t.removed.Render(style.Warning) + " Requirements changed since the last sync")
}

type row struct {
	icon  string
	label string
	note  string
}

func (t *Text) itemRow(item domain.ItemResult, icon string) row {
	if item.Failed() {
		return row{icon: t.failed.Render(style.Cross), label: item.Label, note: t.failed.Render(item.Err.Error())}
	}
	return row{icon: icon, label: item.Label}
}

// table prints rows with their notes aligned on the widest visible label.
func (t *Text) table(rows []row) {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}

	for _, r := range rows {
		var b strings.Builder
		b.WriteString(indent)
		if r.icon != "" {
			b.WriteString(r.icon)
			b.WriteString(" ")
		}
		b.WriteString(r.label)
		if r.note != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(r.label)))
			b.WriteString(indent)
			b.WriteString(r.note)
		}
		t.println(b.String())
	}
}

func (t *Text) println(s string) {
	_, _ = fmt.Fprintln(t.w, s)
}

func truncate(label string) string {
	return runewidth.Truncate(label, maxLabelWidth, "…")
}

func succeeded(items []domain.ItemResult) int {
	n := 0
	for _, item := range items {
		if !item.Failed() {
			n++
		}
	}
	return n
}
