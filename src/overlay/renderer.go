package overlay

import (
	"scan-overlay/src/geometry"
	"scan-overlay/src/settings"
)

// Renderer strategies. Each optional element is drawn by an independently
// swappable implementation registered on the coordinator; hosts customize
// appearance by replacing a strategy, never by subclassing. The
// coordinator attaches a renderer when the element becomes visible,
// detaches it when it is hidden, and pushes a fresh frame on every layout
// pass. All calls happen on the control thread.

// ViewfinderFrame is the draw state of the viewfinder box.
type ViewfinderFrame struct {
	Rect    geometry.Rect
	Color   settings.Color
	Decoded bool
	// Caption is shown while the engine is still initializing; empty once
	// the engine reports ready.
	Caption string
}

// ViewfinderRenderer draws the viewfinder box and decode highlight.
type ViewfinderRenderer interface {
	Attach()
	Detach()
	Update(frame ViewfinderFrame)
}

// ButtonFrame is the draw state of the torch or camera-switch button.
type ButtonFrame struct {
	Rect         geometry.Rect
	Image        string
	PressedImage string
}

// ButtonRenderer draws an icon button.
type ButtonRenderer interface {
	Attach()
	Detach()
	Update(frame ButtonFrame)
}

// SearchBarFrame is the draw state of the manual search bar.
type SearchBarFrame struct {
	ActionCaption string
	Placeholder   string
	Keyboard      settings.KeyboardType
	Text          string
	// Invalid marks a rejected submission; the text stays in the field
	// and the renderer shows validation feedback.
	Invalid bool
}

// SearchBarRenderer draws the manual entry field.
type SearchBarRenderer interface {
	Attach()
	Detach()
	Update(frame SearchBarFrame)
}

// ToolbarFrame is the draw state of the bottom toolbar.
type ToolbarFrame struct {
	Caption string
}

// ToolbarRenderer draws the cancel toolbar.
type ToolbarRenderer interface {
	Attach()
	Detach()
	Update(frame ToolbarFrame)
}

// LogoFrame is the draw state of the powered-by banner.
type LogoFrame struct {
	Anchor geometry.Point
	Image  string
}

// LogoRenderer draws the banner image anchored at the bottom of the
// screen.
type LogoRenderer interface {
	Attach()
	Detach()
	Update(frame LogoFrame)
}

// Renderers bundles the strategies for one overlay session. Nil entries
// are allowed; lifecycle and dispatch behave identically without them.
type Renderers struct {
	Viewfinder   ViewfinderRenderer
	Torch        ButtonRenderer
	CameraSwitch ButtonRenderer
	SearchBar    SearchBarRenderer
	Toolbar      ToolbarRenderer
	Logo         LogoRenderer
}
