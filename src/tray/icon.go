package tray

import (
	_ "embed"
)

// Embedded SVG icon data
//
//go:embed icon.svg
var IconSVG string

// Icon returns the raw tray icon bytes. Systray wants platform icon
// formats; the SVG works on Linux trays and is ignored elsewhere.
func Icon() []byte {
	return []byte(IconSVG)
}
