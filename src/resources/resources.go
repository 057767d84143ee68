package resources

import (
	"os"
	"path/filepath"
)

// Built-in identifiers every overlay session starts with. An unset or
// failed image/sound setter always falls back to one of these, never to an
// empty identifier.
const (
	DefaultScanSound = "beep"

	DefaultTorchOnImage         = "flashlight-turn-on-icon"
	DefaultTorchOnPressedImage  = "flashlight-turn-on-icon-pressed"
	DefaultTorchOffImage        = "flashlight-turn-off-icon"
	DefaultTorchOffPressedImage = "flashlight-turn-off-icon-pressed"

	DefaultCameraSwitchImage        = "camera-swap-icon"
	DefaultCameraSwitchPressedImage = "camera-swap-icon-pressed"

	DefaultBannerImage = "poweredby"
)

// Resolver reports whether a resource identifier can be resolved to an
// actual asset. Setters that take identifiers probe the resolver before
// accepting a new value.
type Resolver interface {
	Resolve(name string) bool
}

// Dir resolves identifiers against files in a directory, probing a fixed
// extension list the way a bundled asset folder is laid out.
type Dir struct {
	Path string
	// Extensions probed in order; defaults to png and wav when empty.
	Extensions []string
}

func (d Dir) Resolve(name string) bool {
	if name == "" {
		return false
	}
	exts := d.Extensions
	if len(exts) == 0 {
		exts = []string{"png", "wav"}
	}
	for _, ext := range exts {
		if _, err := os.Stat(filepath.Join(d.Path, name+"."+ext)); err == nil {
			return true
		}
	}
	return false
}

// Static resolves identifiers from a fixed name set. Used in tests and by
// hosts that embed their assets.
type Static map[string]bool

func (s Static) Resolve(name string) bool { return s[name] }

// BuiltIn returns a Static resolver preloaded with every default
// identifier.
func BuiltIn() Static {
	return Static{
		DefaultScanSound:                true,
		DefaultTorchOnImage:             true,
		DefaultTorchOnPressedImage:      true,
		DefaultTorchOffImage:            true,
		DefaultTorchOffPressedImage:     true,
		DefaultCameraSwitchImage:        true,
		DefaultCameraSwitchPressedImage: true,
		DefaultBannerImage:              true,
	}
}
