package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/licensekit/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderLintSummary renders a lint report as a styled block for the terminal.
func RenderLintSummary(report *domain.LintReport) string {
	var b strings.Builder

	verdict := passStyle.Bold(true).Render("COMPLIANT")
	if !report.Result.IsCompliant {
		verdict = failStyle.Bold(true).Render("NOT COMPLIANT")
	}
	title := headerStyle.Render("licensekit")
	subtitle := dimStyle.Render(filepath.Base(report.RootPath))
	counts := titleStyle.Render(fmt.Sprintf("%d files, %d unlicensed", report.Files, len(report.Result.NonCompliantPaths)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + counts))
	b.WriteString("\n")

	renderPathSection(&b, "Missing license", report.Result.NonCompliantPaths, failStyle)
	renderPathSection(&b, "Missing copyright", report.MissingCopyright, warnStyle)

	if len(report.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			sectionHeaderStyle.Render("Problems"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.Errors))),
		))
		for _, fe := range report.Errors {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				warnStyle.Render("●"),
				fe.Path,
				faintStyle.Render(errorDetail(fe)),
			))
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	return b.String()
}

func renderPathSection(b *strings.Builder, title string, paths []string, bullet lipgloss.Style) {
	if len(paths) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(paths))),
	))
	for _, p := range paths {
		b.WriteString(fmt.Sprintf("    %s %s\n", bullet.Render("●"), p))
	}
}

func errorDetail(fe domain.FileError) string {
	if fe.Err == nil {
		return string(fe.Kind)
	}
	return fmt.Sprintf("%s: %v", fe.Kind, fe.Err)
}
