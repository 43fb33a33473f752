package tui

import (
	"strings"

	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func (m appModel) viewSplash() string {
	return ui.Heading(ui.IconApp, "Welled") + "\n\n" + m.spin.View() + " Restoring session…"
}

func renderFooter(lastLog string) string {
	return "\n" + ui.Dim.Render(lastLog)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
