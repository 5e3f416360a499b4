package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/tsheets/internal/client/customfields"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/timex"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(8).Faint(true)
	idStyle    = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("6"))
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func renderTitle(s string) string {
	return titleStyle.Render(s)
}

func renderClock(on bool) string {
	if on {
		return onStyle.Render("on the clock")
	}
	return offStyle.Render("off the clock")
}

func renderTotals(t models.Totals) string {
	rows := []struct {
		label string
		d     string
	}{
		{"Shift", timex.FormatDuration(t.Item)},
		{"Day", timex.FormatDuration(t.Day)},
		{"Week", timex.FormatDuration(t.Week)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label) + r.d + "\n")
	}
	return b.String()
}

func renderJobCodes(codes []models.JobCode) string {
	if len(codes) == 0 {
		return "No job codes assigned.\n"
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(idStyle.Render(fmt.Sprint(c.ID)) + c.Name + "\n")
	}
	return b.String()
}

func renderFields(fields []models.CustomField) string {
	if len(fields) == 0 {
		return "No custom fields.\n"
	}
	var b strings.Builder
	for _, f := range fields {
		line := idStyle.Render(fmt.Sprint(f.ID)) + f.Name
		if f.Required {
			line += " " + offStyle.Render("(required)")
		}
		b.WriteString(line + "\n")
		if names := customfields.ItemNames(f); len(names) > 0 {
			b.WriteString(strings.Repeat(" ", 10) + strings.Join(names, ", ") + "\n")
		}
	}
	return b.String()
}
