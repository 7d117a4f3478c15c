// Package console styles the human-readable output of the command line tools.
// Styles are bound to the output writer, so nothing is colored when it is not a terminal.
package console

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("220")
	colorCyan   = lipgloss.Color("39")
	colorGray   = lipgloss.Color("240")
)

type Palette struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

func New(w io.Writer) *Palette {
	r := lipgloss.NewRenderer(w)
	return &Palette{
		Header:  r.NewStyle().Bold(true).Foreground(colorCyan),
		Success: r.NewStyle().Foreground(colorGreen),
		Error:   r.NewStyle().Foreground(colorRed),
		Warning: r.NewStyle().Foreground(colorYellow),
		Info:    r.NewStyle().Foreground(colorCyan),
		Muted:   r.NewStyle().Foreground(colorGray),
		Bold:    r.NewStyle().Bold(true),
	}
}

// Separator repeats char n times in the muted color.
func (p *Palette) Separator(char string, n int) string {
	return p.Muted.Render(strings.Repeat(char, n))
}

// StatusIcon returns a colored status icon.
func (p *Palette) StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "success", "ok", "done":
		return p.Success.Render("✅")
	case "error", "fail", "failed":
		return p.Error.Render("❌")
	case "warning", "warn":
		return p.Warning.Render("⚠️")
	case "stats":
		return p.Info.Render("📊")
	case "search":
		return p.Info.Render("🔍")
	case "results", "plan":
		return p.Info.Render("📋")
	case "empty":
		return p.Muted.Render("📭")
	case "connect":
		return p.Info.Render("🔗")
	case "disconnect":
		return p.Muted.Render("🔌")
	case "time":
		return p.Muted.Render("🕒")
	case "cleanup":
		return p.Warning.Render("🧹")
	case "target":
		return p.Info.Render("🎯")
	case "start":
		return p.Info.Render("🚀")
	case "celebrate":
		return p.Success.Render("🎉")
	default:
		return status
	}
}

// Table returns a bordered table with a bold header row; numeric columns are right aligned.
func (p *Palette) Table(numericCols ...int) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := p.Muted.UnsetForeground().Padding(0, 1)
			for _, c := range numericCols {
				if c == col {
					style = style.Align(lipgloss.Right)
				}
			}
			if row == table.HeaderRow {
				return style.Inherit(p.Bold)
			}
			return style
		})
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
