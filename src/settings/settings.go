// Package settings is the configuration store for one overlay session. It
// holds every customizable visual and behavioral property with the
// documented defaults, validates mutations, and hands out consistent
// snapshots for layout and dispatch decisions.
//
// Out-of-range relative coordinates and color components are clamped into
// [0,1] instead of failing: visual misconfiguration is recoverable and must
// never abort a scan session. Resource-based setters return false when the
// identifier cannot be resolved and keep the prior value.
package settings

import (
	"sync"

	"scan-overlay/src/geometry"
	"scan-overlay/src/resources"
)

// CameraSwitchVisibility controls when the camera-switch button may appear
// on devices with more than one camera.
type CameraSwitchVisibility int

const (
	CameraSwitchNever CameraSwitchVisibility = iota
	CameraSwitchOnTablet
	CameraSwitchAlways
)

func (v CameraSwitchVisibility) String() string {
	switch v {
	case CameraSwitchOnTablet:
		return "on-tablet"
	case CameraSwitchAlways:
		return "always"
	default:
		return "never"
	}
}

// KeyboardType selects the keyboard shown for manual search entry.
type KeyboardType int

const (
	KeyboardNumber KeyboardType = iota
	KeyboardText
	KeyboardURL
	KeyboardEmail
)

// Color is an RGB triple with components in [0,1].
type Color struct {
	R, G, B float64
}

// Default values, matching the documented overlay contract.
const (
	DefaultToolbarCaption         = "Cancel"
	DefaultSearchActionCaption    = "Go"
	DefaultSearchPlaceholder      = "Scan barcode or enter it here"
	DefaultInitializingCaption    = "Initializing camera..."
	DefaultMinSearchBarCodeLength = 8
	DefaultMaxSearchBarCodeLength = 100
)

// Snapshot is a consistent copy of every stored value. The layout engine
// and the coordinator work from snapshots so reads never interleave with a
// multi-field setter.
type Snapshot struct {
	BeepEnabled    bool
	VibrateEnabled bool
	ScanSound      string

	TorchEnabled        bool
	TorchOnImage        string
	TorchOnPressedImage string
	TorchOffImage       string
	TorchOffPressed     string
	Torch               geometry.RelativeRect

	CameraSwitchVisibility   CameraSwitchVisibility
	CameraSwitchImage        string
	CameraSwitchPressedImage string
	CameraSwitch             geometry.RelativeRect

	ViewfinderDrawn     bool
	ViewfinderPortrait  geometry.FractionSize
	ViewfinderLandscape geometry.FractionSize
	ViewfinderColor     Color
	ViewfinderDecoded   Color
	InitializingCaption string

	LogoOffsetPortrait  geometry.Point
	LogoOffsetLandscape geometry.Point
	BannerImage         string

	ToolbarVisible bool
	ToolbarCaption string

	SearchBarVisible       bool
	SearchActionCaption    string
	SearchPlaceholder      string
	SearchKeyboard         KeyboardType
	MinSearchBarCodeLength int
	MaxSearchBarCodeLength int
}

// Store owns the configuration of one overlay session. All methods are
// guarded by a single mutex so callers on the engine thread and the control
// thread may mutate it without external serialization.
type Store struct {
	mu       sync.Mutex
	resolver resources.Resolver
	s        Snapshot
}

// New creates a store with the documented defaults. A nil resolver accepts
// every identifier; pass one when the host manages assets itself.
func New(resolver resources.Resolver) *Store {
	return &Store{
		resolver: resolver,
		s: Snapshot{
			BeepEnabled:    true,
			VibrateEnabled: true,
			ScanSound:      resources.DefaultScanSound,

			TorchEnabled:        true,
			TorchOnImage:        resources.DefaultTorchOnImage,
			TorchOnPressedImage: resources.DefaultTorchOnPressedImage,
			TorchOffImage:       resources.DefaultTorchOffImage,
			TorchOffPressed:     resources.DefaultTorchOffPressedImage,
			Torch:               geometry.RelativeRect{X: 0.05, Y: 0.01, W: 67, H: 33},

			CameraSwitchVisibility:   CameraSwitchNever,
			CameraSwitchImage:        resources.DefaultCameraSwitchImage,
			CameraSwitchPressedImage: resources.DefaultCameraSwitchPressedImage,
			CameraSwitch:             geometry.RelativeRect{X: 0.05, Y: 0.01, W: 67, H: 33},

			ViewfinderDrawn:     true,
			ViewfinderPortrait:  geometry.FractionSize{W: 0.8, H: 0.4},
			ViewfinderLandscape: geometry.FractionSize{W: 0.6, H: 0.4},
			ViewfinderColor:     Color{R: 1, G: 1, B: 1},
			ViewfinderDecoded:   Color{R: 0.222, G: 0.753, B: 0.8},
			InitializingCaption: DefaultInitializingCaption,

			BannerImage: resources.DefaultBannerImage,

			ToolbarCaption: DefaultToolbarCaption,

			SearchActionCaption:    DefaultSearchActionCaption,
			SearchPlaceholder:      DefaultSearchPlaceholder,
			SearchKeyboard:         KeyboardNumber,
			MinSearchBarCodeLength: DefaultMinSearchBarCodeLength,
			MaxSearchBarCodeLength: DefaultMaxSearchBarCodeLength,
		},
	}
}

// Snapshot returns a consistent copy of the current configuration.
func (st *Store) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

func (st *Store) resolve(name string) bool {
	if st.resolver == nil {
		return name != ""
	}
	return st.resolver.Resolve(name)
}

// Sound configuration.

func (st *Store) SetBeepEnabled(enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.BeepEnabled = enabled
}

func (st *Store) SetVibrateEnabled(enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.VibrateEnabled = enabled
}

// SetScanSound changes the sound played on a successful decode. Returns
// false and keeps the prior sound when the resource does not resolve.
func (st *Store) SetScanSound(name string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.resolve(name) {
		return false
	}
	st.s.ScanSound = name
	return true
}

// Torch configuration.

func (st *Store) SetTorchEnabled(enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.TorchEnabled = enabled
}

// SetTorchOnImage uses the same image for the idle and pressed states.
func (st *Store) SetTorchOnImage(name string) bool {
	return st.SetTorchOnImages(name, name)
}

// SetTorchOnImages is atomic: either both identifiers apply or neither.
func (st *Store) SetTorchOnImages(name, pressed string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.resolve(name) || !st.resolve(pressed) {
		return false
	}
	st.s.TorchOnImage = name
	st.s.TorchOnPressedImage = pressed
	return true
}

func (st *Store) SetTorchOffImage(name string) bool {
	return st.SetTorchOffImages(name, name)
}

func (st *Store) SetTorchOffImages(name, pressed string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.resolve(name) || !st.resolve(pressed) {
		return false
	}
	st.s.TorchOffImage = name
	st.s.TorchOffPressed = pressed
	return true
}

// SetTorchButton positions the torch toggle. x and y are fractions of the
// screen clamped into [0,1]; width and height are pixels, never negative.
func (st *Store) SetTorchButton(x, y, w, h float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Torch = clampRelativeRect(x, y, w, h)
}

// Camera-switch configuration.

func (st *Store) SetCameraSwitchVisibility(v CameraSwitchVisibility) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.CameraSwitchVisibility = v
}

func (st *Store) SetCameraSwitchImage(name string) bool {
	return st.SetCameraSwitchImages(name, name)
}

func (st *Store) SetCameraSwitchImages(name, pressed string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.resolve(name) || !st.resolve(pressed) {
		return false
	}
	st.s.CameraSwitchImage = name
	st.s.CameraSwitchPressedImage = pressed
	return true
}

// SetCameraSwitchButton positions the camera-switch button. x is an
// inverse-x: the relative distance from the right screen edge.
func (st *Store) SetCameraSwitchButton(x, y, w, h float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.CameraSwitch = clampRelativeRect(x, y, w, h)
}

// Viewfinder configuration.

// SetViewfinderSize stores the box fractions for both orientations.
// Changing one orientation's fractions never affects the other; pass the
// current values to leave an orientation unchanged.
func (st *Store) SetViewfinderSize(h, w, landscapeH, landscapeW float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderPortrait = geometry.FractionSize{
		W: geometry.Clamp01(w),
		H: geometry.Clamp01(h),
	}
	st.s.ViewfinderLandscape = geometry.FractionSize{
		W: geometry.Clamp01(landscapeW),
		H: geometry.Clamp01(landscapeH),
	}
}

// SetPortraitViewfinderSize changes only the portrait fractions.
func (st *Store) SetPortraitViewfinderSize(h, w float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderPortrait = geometry.FractionSize{
		W: geometry.Clamp01(w),
		H: geometry.Clamp01(h),
	}
}

// SetLandscapeViewfinderSize changes only the landscape fractions.
func (st *Store) SetLandscapeViewfinderSize(h, w float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderLandscape = geometry.FractionSize{
		W: geometry.Clamp01(w),
		H: geometry.Clamp01(h),
	}
}

func (st *Store) SetViewfinderDrawn(draw bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderDrawn = draw
}

// SetViewfinderColor sets the box color before a code is recognized.
func (st *Store) SetViewfinderColor(r, g, b float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderColor = clampColor(r, g, b)
}

// SetViewfinderDecodedColor sets the box color once a code is recognized.
func (st *Store) SetViewfinderDecodedColor(r, g, b float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ViewfinderDecoded = clampColor(r, g, b)
}

// SetInitializingCameraCaption sets the text shown while a non-autofocus
// camera starts up. An empty caption hides the text, not the viewfinder.
func (st *Store) SetInitializingCameraCaption(text string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.InitializingCaption = text
}

// Logo configuration.

// SetLogoOffsets shifts the banner anchor in pixels, independently per
// orientation.
func (st *Store) SetLogoOffsets(x, y, landscapeX, landscapeY float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.LogoOffsetPortrait = geometry.Point{X: x, Y: y}
	st.s.LogoOffsetLandscape = geometry.Point{X: landscapeX, Y: landscapeY}
}

func (st *Store) SetBannerImage(name string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.resolve(name) {
		return false
	}
	st.s.BannerImage = name
	return true
}

// Toolbar configuration.

func (st *Store) ShowToolbar(show bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ToolbarVisible = show
}

func (st *Store) SetToolbarCaption(caption string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ToolbarCaption = caption
}

// Search-bar configuration.

func (st *Store) ShowSearchBar(show bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SearchBarVisible = show
}

func (st *Store) SetSearchBarActionCaption(caption string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SearchActionCaption = caption
}

func (st *Store) SetSearchBarPlaceholder(text string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SearchPlaceholder = text
}

func (st *Store) SetSearchBarKeyboardType(kt KeyboardType) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SearchKeyboard = kt
}

// SetMinSearchBarCodeLength rejects values below 1 or above the current
// maximum; the min <= max invariant always holds.
func (st *Store) SetMinSearchBarCodeLength(length int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if length < 1 || length > st.s.MaxSearchBarCodeLength {
		return false
	}
	st.s.MinSearchBarCodeLength = length
	return true
}

// SetMaxSearchBarCodeLength rejects values below the current minimum.
func (st *Store) SetMaxSearchBarCodeLength(length int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if length < st.s.MinSearchBarCodeLength {
		return false
	}
	st.s.MaxSearchBarCodeLength = length
	return true
}

func clampRelativeRect(x, y, w, h float64) geometry.RelativeRect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return geometry.RelativeRect{
		X: geometry.Clamp01(x),
		Y: geometry.Clamp01(y),
		W: w,
		H: h,
	}
}

func clampColor(r, g, b float64) Color {
	return Color{
		R: geometry.Clamp01(r),
		G: geometry.Clamp01(g),
		B: geometry.Clamp01(b),
	}
}
