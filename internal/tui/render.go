package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ewbf/internal/capability"
	"ewbf/internal/options"
	"ewbf/internal/plugin"
)

var (
	titleStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	sectionStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	labelStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	mutedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	menuItemStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	menuItemSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	descStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).PaddingLeft(2)
	hintStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	okStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))
	errorStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	commandStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5fafff")).Padding(0, 1)
)

func (m Model) renderMenu() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d.%d - Main Menu", plugin.Name, plugin.Version.Major, plugin.Version.Minor)))
	b.WriteString("\n\n")

	for i, item := range DefaultMenuItems() {
		text := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == m.selection {
			b.WriteString(menuItemSelectedStyle.Render(text))
		} else {
			b.WriteString(menuItemStyle.Render(text))
		}
		b.WriteString("\n")
		b.WriteString(descStyle.Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Navigate: up/down or numbers | Select: Enter | Back: Esc | Quit: q"))
	b.WriteString("\n")

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.lastError))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderDevicesScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Devices"))
	b.WriteString("\n\n")

	driver := m.report.DriverVersion
	if driver == "" {
		driver = "unknown"
	}
	b.WriteString(labelStyle.Render("Driver: "))
	b.WriteString(valueStyle.Render(driver))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (minimum %s)", capability.MinimumDriverVersion)))
	b.WriteString("\n")

	if m.report.ErrorMessage != "" {
		b.WriteString(errorStyle.Render(m.report.ErrorMessage))
		b.WriteString("\n")
	}

	if len(m.report.Devices) == 0 {
		b.WriteString(mutedStyle.Render("No devices detected"))
		b.WriteString("\n")
	}

	for _, d := range m.report.Devices {
		algos, ok := m.supported[d]
		if ok {
			names := make([]string, 0, len(algos))
			for _, a := range algos {
				names = append(names, a.String())
			}
			b.WriteString(okStyle.Render("+ "))
			b.WriteString(valueStyle.Render(d.String()))
			b.WriteString(labelStyle.Render("  " + strings.Join(names, ", ")))
		} else {
			b.WriteString(mutedStyle.Render("- " + d.String() + "  unsupported"))
		}
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("Back: Esc | Quit: q"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderOptionsScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Launch Options"))
	b.WriteString("\n\n")

	for i, opt := range m.catalogue {
		line := fmt.Sprintf("%-12s %-6s %s", opt.ShortName, opt.Kind, m.describeValue(opt))
		if i == m.optionSelection {
			b.WriteString(menuItemSelectedStyle.Render(line))
		} else {
			b.WriteString(menuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.editing {
		opt := m.catalogue[m.optionSelection]
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(opt.ShortName + " = "))
		b.WriteString(valueStyle.Render(m.editBuffer + "_"))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Confirm: Enter | Cancel: Esc | Empty value restores the default"))
	} else {
		b.WriteString(hintStyle.Render("Edit: Enter | Toggle flag: t | Reset: d | Back: Esc"))
	}
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString(okStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) describeValue(opt options.Option) string {
	value, bound := m.values[opt.ID]
	switch {
	case opt.Kind == options.KindFlag && bound:
		return "on"
	case opt.Kind == options.KindFlag:
		return "off"
	case bound:
		return value
	case opt.HasDefault():
		return opt.DefaultValue + " (default)"
	default:
		return "(unset)"
	}
}

func (m Model) renderCommandScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Command Preview"))
	b.WriteString("\n\n")

	cmd := m.Command()
	b.WriteString(commandStyle.Render(cmd.String()))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Working directory"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(cmd.Dir))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Environment"))
	b.WriteString("\n")
	if len(cmd.Env) == 0 {
		b.WriteString(mutedStyle.Render("(none)"))
		b.WriteString("\n")
	}
	for _, kv := range cmd.Env {
		b.WriteString(valueStyle.Render(kv))
		b.WriteString("\n")
	}

	if len(m.supported) == 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("No supported devices: the worker would mine on nothing"))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("Back: Esc | Quit: q"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderBinariesScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Binary Package"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Path: "))
	b.WriteString(valueStyle.Render(m.plugin.BinsPath()))
	b.WriteString("\n\n")

	if len(m.missing) == 0 {
		b.WriteString(okStyle.Render("All required files present"))
		b.WriteString("\n")
	}
	for _, name := range m.missing {
		b.WriteString(errorStyle.Render("missing: " + name))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("Re-check: r | Back: Esc | Quit: q"))
	b.WriteString("\n")
	if m.statusMessage != "" {
		b.WriteString(okStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelpScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n\n")

	lines := [][2]string{
		{"1-4, ?", "Jump to a screen from the menu"},
		{"up/down, k/j", "Move the selection"},
		{"Enter", "Open a screen or edit the selected option"},
		{"t", "Toggle the selected flag option"},
		{"d", "Reset the selected option to its default"},
		{"r", "Re-check the binary package"},
		{"Esc", "Back to the menu"},
		{"q, Ctrl+C", "Quit and save option values"},
	}
	for _, l := range lines {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", l[0])))
		b.WriteString(valueStyle.Render(l[1]))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("Back: Esc"))
	b.WriteString("\n")
	return b.String()
}
