package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/o11c/targets/internal/domain"
)

type theme struct {
	OK     lipgloss.Style
	Name   lipgloss.Style
	Detail lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		OK:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Name:   lipgloss.NewStyle().Bold(true),
		Detail: lipgloss.NewStyle().Faint(true),
	}
}

func printReports(w io.Writer, reports []domain.TargetReport) {
	th := defaultTheme()
	for _, r := range reports {
		fmt.Fprintf(w, "%s %s %s\n", th.OK.Render("OK"), th.Name.Render(r.Requested), th.Detail.Render(summary(r.Target)))
	}
}

func summary(t domain.Target) string {
	s := fmt.Sprintf("(arch=%s kernel=%s libc=%s endian=%s", t.Arch, t.Kernel, t.Libc, t.Endian)
	if len(t.Variants) > 1 {
		s += fmt.Sprintf(" variants=%d", len(t.Variants))
	}
	if t.Freestanding {
		s += " freestanding"
	}
	return s + ")"
}
