package plugins

import "context"

// Capability names an optional, additive plugin contract. A plugin has a
// capability only when its metadata declares it AND the module exports every
// function the capability requires; no runtime type identity is consulted.
type Capability string

const (
	// CapabilityUI marks plugins that contribute a dockable pane and menu
	// actions to the viewer shell.
	CapabilityUI Capability = "ui"

	// CapabilityData marks plugins that can load layer data from files.
	CapabilityData Capability = "data"
)

// capabilityExports lists the exported functions each capability requires.
var capabilityExports = map[Capability][]string{
	CapabilityUI:   {"Render", "DockTitle", "DockArea", "MenuActions"},
	CapabilityData: {"CanHandle", "LoadData"},
}

// DockArea is a UI plugin's preferred pane placement.
type DockArea int

const (
	DockRight DockArea = iota
	DockLeft
	DockBottom
)

// String returns the dock area name.
func (a DockArea) String() string {
	switch a {
	case DockLeft:
		return "left"
	case DockBottom:
		return "bottom"
	default:
		return "right"
	}
}

// MenuAction is a menu entry contributed by a UI plugin.
type MenuAction struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Shortcut string `json:"shortcut,omitempty"`
}

// UIModule is the capability surface of plugins declaring CapabilityUI.
type UIModule interface {
	// Render draws the plugin pane content for the given dimensions.
	Render(ctx context.Context, width, height int) (string, error)

	// DockTitle returns the pane title.
	DockTitle(ctx context.Context) (string, error)

	// DockArea returns the preferred pane placement.
	DockArea(ctx context.Context) (DockArea, error)

	// MenuActions returns the plugin's menu contributions.
	MenuActions(ctx context.Context) ([]MenuAction, error)
}

// DataModule is the capability surface of plugins declaring CapabilityData.
type DataModule interface {
	// CanHandle reports whether the plugin can load the named file.
	CanHandle(ctx context.Context, name string) (bool, error)

	// LoadData loads layer data from the given path.
	LoadData(ctx context.Context, path string) error
}
