package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ewbf/internal/algorithm"
	"ewbf/internal/capability"
	"ewbf/internal/gpu"
	"ewbf/internal/launch"
	"ewbf/internal/logging"
	"ewbf/internal/options"
	"ewbf/internal/plugin"
)

const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// Model is the launch-option editor
type Model struct {
	quitting bool

	logger       *logging.Logger
	plugin       *plugin.Plugin
	stateManager *UIStateManager

	// UI State
	currentScreen Screen
	selection     int
	lastError     string
	statusMessage string

	// Inventory
	report    gpu.Report
	supported capability.Supported
	pool      launch.Pool

	// Options Screen State
	catalogue       []options.Option
	values          launch.Values
	optionSelection int
	editing         bool
	editBuffer      string

	missing []string
}

// NewModel creates the editor for p over an inventory report. Option values
// saved by a previous session are restored.
func NewModel(p *plugin.Plugin, report gpu.Report, pool launch.Pool, logger *logging.Logger) Model {
	m := Model{
		logger:        logger,
		plugin:        p,
		stateManager:  NewUIStateManager(p.InternalsPath(), logger),
		currentScreen: ScreenMenu,
		report:        report,
		supported:     p.GetSupportedAlgorithms(report.DriverVersion, report.Devices),
		pool:          pool,
		catalogue:     p.Options().All(),
		values:        launch.Values{},
	}

	if state, err := m.stateManager.Load(); err == nil {
		m.currentScreen = state.CurrentScreen
		m.selection = state.Selection
		m.lastError = state.LastError
		for id, v := range state.Values {
			if _, ok := p.Options().Lookup(id); ok {
				m.values[id] = v
			}
		}
	} else {
		m.lastError = err.Error()
	}

	m.missing = p.CheckBinaryPackageMissingFiles()

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()

	// While editing every key belongs to the input line
	if m.editing {
		return m.handleEditKeys(keyMsg), nil
	}

	if next, handled, cmd := m.handleQuitKeys(key); handled {
		return next, cmd
	}

	if next, handled := m.handleEscapeKey(key); handled {
		return next, nil
	}

	if next, handled := m.handleMenuKeys(key); handled {
		return next, nil
	}

	if next, handled := m.handleOptionsScreenKeys(key); handled {
		return next, nil
	}

	if next, handled := m.handleBinariesScreenKeys(key); handled {
		return next, nil
	}

	return m, nil
}

func (m Model) handleQuitKeys(key string) (tea.Model, bool, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		m.saveState()
		return m, true, tea.Quit
	}
	return m, false, nil
}

func (m Model) handleEscapeKey(key string) (tea.Model, bool) {
	if key == keyEsc && m.currentScreen != ScreenMenu {
		m.currentScreen = ScreenMenu
		m.statusMessage = ""
		m.saveState()
		return m, true
	}
	return m, false
}

func (m Model) handleMenuKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenMenu {
		return m, false
	}

	switch key {
	case keyUp, "k":
		return m.navigateUp(), true
	case keyDown, "j":
		return m.navigateDown(), true
	case keyEnter, " ", "space":
		return m.selectMenuItem(), true
	}

	for i, item := range DefaultMenuItems() {
		if item.Key == key {
			m.selection = i
			return m.selectMenuItem(), true
		}
	}
	return m, false
}

func (m Model) handleOptionsScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenOptions || len(m.catalogue) == 0 {
		return m, false
	}

	switch key {
	case keyUp, "k":
		m.optionSelection = (m.optionSelection - 1 + len(m.catalogue)) % len(m.catalogue)
		return m, true
	case keyDown, "j":
		m.optionSelection = (m.optionSelection + 1) % len(m.catalogue)
		return m, true
	case keyEnter:
		opt := m.catalogue[m.optionSelection]
		if opt.Kind == options.KindFlag {
			return m.toggleFlag(opt), true
		}
		m.editing = true
		m.editBuffer = m.values[opt.ID]
		return m, true
	case "t", " ", "space":
		opt := m.catalogue[m.optionSelection]
		if opt.Kind == options.KindFlag {
			return m.toggleFlag(opt), true
		}
	case "d":
		opt := m.catalogue[m.optionSelection]
		delete(m.values, opt.ID)
		m.statusMessage = "Reset " + opt.ShortName + " to default"
		m.saveState()
		return m, true
	}
	return m, false
}

func (m Model) handleBinariesScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenBinaries || key != "r" {
		return m, false
	}
	m.missing = m.plugin.CheckBinaryPackageMissingFiles()
	m.statusMessage = "Binary package re-checked"
	return m, true
}

func (m Model) handleEditKeys(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		opt := m.catalogue[m.optionSelection]
		if m.editBuffer == "" {
			delete(m.values, opt.ID)
		} else {
			m.values[opt.ID] = m.editBuffer
		}
		m.editing = false
		m.editBuffer = ""
		m.statusMessage = "Updated " + opt.ShortName
		m.saveState()
	case tea.KeyEsc:
		m.editing = false
		m.editBuffer = ""
	case tea.KeyBackspace:
		if r := []rune(m.editBuffer); len(r) > 0 {
			m.editBuffer = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.editBuffer += " "
	case tea.KeyRunes:
		m.editBuffer += string(msg.Runes)
	}
	return m
}

func (m Model) toggleFlag(opt options.Option) Model {
	if _, on := m.values[opt.ID]; on {
		delete(m.values, opt.ID)
		m.statusMessage = opt.ShortName + " disabled"
	} else {
		m.values[opt.ID] = "true"
		m.statusMessage = opt.ShortName + " enabled"
	}
	m.saveState()
	return m
}

func (m Model) navigateUp() Model {
	items := len(DefaultMenuItems())
	m.selection = (m.selection - 1 + items) % items
	return m
}

func (m Model) navigateDown() Model {
	m.selection = (m.selection + 1) % len(DefaultMenuItems())
	return m
}

func (m Model) selectMenuItem() Model {
	items := DefaultMenuItems()
	if m.selection < 0 || m.selection >= len(items) {
		m.selection = 0
	}
	m.currentScreen = items[m.selection].Screen
	m.lastError = ""
	m.statusMessage = ""
	m.saveState()
	return m
}

// Command returns the worker command for the current bindings over every supported device
func (m Model) Command() launch.Command {
	algo := algorithm.New(m.plugin.PluginUUID(), algorithm.TypeZHash)
	return m.plugin.CreateCommandWithValues(algo, m.supported.Devices(), m.pool, m.values)
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentScreen {
	case ScreenMenu:
		return m.renderMenu()
	case ScreenDevices:
		return m.renderDevicesScreen()
	case ScreenOptions:
		return m.renderOptionsScreen()
	case ScreenCommand:
		return m.renderCommandScreen()
	case ScreenBinaries:
		return m.renderBinariesScreen()
	case ScreenHelp:
		return m.renderHelpScreen()
	default:
		return m.renderMenu()
	}
}

func (m *Model) saveState() {
	values := make(map[string]string, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}

	state := &UIState{
		CurrentScreen: m.currentScreen,
		Selection:     m.selection,
		Values:        values,
		LastError:     m.lastError,
	}

	if err := m.stateManager.Save(state); err != nil {
		m.logger.Warn("tui.state.save_failed", "Failed to save UI state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
