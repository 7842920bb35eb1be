// Package viewer implements the terminal shell: the layer list, the plugin
// list and the dock pane contributed by UI plugins.
package viewer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/strataview/strata/internal/events"
	"github.com/strataview/strata/internal/layers"
	"github.com/strataview/strata/internal/plugins"
)

const (
	focusLayers = iota
	focusPlugins
)

// statusLine is shared with the bus handlers, which outlive any particular
// copy of the model value.
type statusLine struct {
	text  string
	isErr bool
}

// Model is the bubbletea model for the viewer shell.
type Model struct {
	title   string
	layers  *layers.Manager
	plugins *plugins.Manager
	log     zerolog.Logger

	status *statusLine
	focus  int
	cursor int
	plugin int
	width  int
	height int
}

// New builds the shell model and wires status updates to the notification
// bus.
func New(
	title string,
	lm *layers.Manager,
	pm *plugins.Manager,
	bus *events.Bus,
	logger zerolog.Logger,
) Model {
	status := &statusLine{text: "ready"}

	bus.Subscribe(events.PluginLoaded, func(e events.Event) {
		pe := e.Data.(events.PluginEvent)
		status.text = "loaded plugin " + pe.Name
		status.isErr = false
	})
	bus.Subscribe(events.PluginUnloaded, func(e events.Event) {
		pe := e.Data.(events.PluginEvent)
		status.text = "unloaded plugin " + pe.Name
		status.isErr = false
	})
	bus.Subscribe(events.PluginLoadFailed, func(e events.Event) {
		pe := e.Data.(events.PluginEvent)
		status.text = "plugin load failed: " + pe.Message
		status.isErr = true
	})
	bus.Subscribe(events.PluginEnabledChanged, func(e events.Event) {
		pe := e.Data.(events.PluginEvent)
		state := "disabled"
		if pe.Enabled {
			state = "enabled"
		}
		status.text = pe.Name + " " + state
		status.isErr = false
	})
	bus.Subscribe(events.LayerAdded, func(e events.Event) {
		le := e.Data.(events.LayerEvent)
		status.text = "added layer " + le.Name
		status.isErr = false
	})
	bus.Subscribe(events.LayerRemoved, func(e events.Event) {
		le := e.Data.(events.LayerEvent)
		status.text = "removed layer " + le.Name
		status.isErr = false
	})

	return Model{
		title:   title,
		layers:  lm,
		plugins: pm,
		log:     logger,
		status:  status,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 2
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		default:
			if m.focus == focusLayers {
				m.handleLayerKey(msg.String())
			} else {
				m.handlePluginKey(msg.String())
			}
		}
	}

	m.clampCursors()

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusLayers {
		m.cursor += delta
	} else {
		m.plugin += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if max := m.layers.Count() - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := len(m.plugins.Loaded()) - 1; m.plugin > max {
		m.plugin = max
	}
	if m.plugin < 0 {
		m.plugin = 0
	}
}

func (m *Model) handleLayerKey(key string) {
	layer := m.layers.Layer(m.cursor)
	if layer == nil {
		return
	}
	switch key {
	case "v":
		layer.SetVisible(!layer.Visible())
	case "+", "=":
		layer.SetOpacity(layer.Opacity() + 0.1)
	case "-":
		layer.SetOpacity(layer.Opacity() - 0.1)
	case "x":
		m.layers.Remove(m.cursor)
	case "K":
		if m.layers.Move(m.cursor, m.cursor-1) {
			m.cursor--
		}
	case "J":
		if m.layers.Move(m.cursor, m.cursor+1) {
			m.cursor++
		}
	}
}

func (m *Model) handlePluginKey(key string) {
	names := m.plugins.Loaded()
	if m.plugin >= len(names) {
		return
	}
	name := names[m.plugin]
	switch key {
	case " ", "enter":
		if err := m.plugins.SetEnabled(name, !m.plugins.IsEnabled(name)); err != nil {
			m.log.Warn().Err(err).Str("plugin", name).Msg("toggle failed")
		}
	case "u":
		if err := m.plugins.Unload(name); err != nil {
			m.log.Warn().Err(err).Str("plugin", name).Msg("unload failed")
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	paneWidth := m.width/2 - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	left := m.layerPane(paneWidth)
	right := m.pluginPane(paneWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	sections := []string{titleStyle.Render(m.title), body}
	if dock := m.dockPane(m.width - 4); dock != "" {
		sections = append(sections, dock)
	}
	sections = append(sections, m.statusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) layerPane(width int) string {
	var b strings.Builder
	all := m.layers.Layers()
	if len(all) == 0 {
		b.WriteString(dimStyle.Render("no layers"))
	}
	for i, layer := range all {
		glyph := " "
		if layer.Visible() {
			glyph = "●"
		}
		row := fmt.Sprintf("%s %-12s %-8s %3.0f%%",
			glyph, layer.Name(), layer.Type(), layer.Opacity()*100)
		if m.focus == focusLayers && i == m.cursor {
			row = selectedRowStyle.Render("▶ " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		if i+1 < len(all) {
			b.WriteByte('\n')
		}
	}

	style := panelStyle
	if m.focus == focusLayers {
		style = activePanelStyle
	}

	return style.Width(width).Render("Layers\n" + b.String())
}

func (m Model) pluginPane(width int) string {
	var b strings.Builder
	recs := m.plugins.Records()
	if len(recs) == 0 {
		b.WriteString(dimStyle.Render("no plugins loaded"))
	}
	for i, rec := range recs {
		state := "off"
		if rec.Enabled {
			state = "on"
		}
		row := fmt.Sprintf("%-12s %-8s %s",
			rec.Meta.Name, rec.Meta.Version, state)
		if m.focus == focusPlugins && i == m.plugin {
			row = selectedRowStyle.Render("▶ " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		if i+1 < len(recs) {
			b.WriteByte('\n')
		}
	}

	style := panelStyle
	if m.focus == focusPlugins {
		style = activePanelStyle
	}

	return style.Width(width).Render("Plugins\n" + b.String())
}

// dockPane renders the first enabled UI plugin's contributed pane.
func (m Model) dockPane(width int) string {
	recs := m.plugins.ByCapability(plugins.CapabilityUI)
	if len(recs) == 0 {
		return ""
	}
	ui, ok := recs[0].UI()
	if !ok {
		return ""
	}

	ctx := context.Background()
	title, err := ui.DockTitle(ctx)
	if err != nil {
		title = recs[0].Meta.Name
	}
	content, err := ui.Render(ctx, width-4, 6)
	if err != nil {
		m.log.Warn().Err(err).Str("plugin", recs[0].Meta.Name).Msg("dock render failed")
		content = errorStyle.Render("render failed")
	}

	return panelStyle.Width(width).Render(title + "\n" + content)
}

func (m Model) statusBar() string {
	text := m.status.text
	if m.status.isErr {
		text = errorStyle.Render(text)
	}
	help := dimStyle.Render("tab focus · v visibility · +/- opacity · space toggle · u unload · q quit")

	return statusStyle.Render(text + "  " + help)
}
