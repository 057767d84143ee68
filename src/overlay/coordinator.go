// Package overlay owns the scan screen state: which optional elements are
// attached, where they sit for the current orientation, and the delegate
// dispatch contract. Exactly one delegate call fires per external trigger
// (decode, cancel, manual submit); invalid input is rejected at the
// boundary and nothing here is fatal to the process.
package overlay

import (
	"log"
	"sync"

	"scan-overlay/src/feedback"
	"scan-overlay/src/geometry"
	"scan-overlay/src/settings"
	"scan-overlay/src/symbology"
)

// State of the dispatch machine. Transitions are synchronous: a trigger
// passes through its confirming state and returns to Idle (or ManualEntry
// while the search bar holds text) before the entry point returns.
type State int

const (
	StateIdle State = iota
	StateScanConfirmed
	StateManualEntry
	StateManualSubmitted
	StateCancelling
	StateCancelled
)

// Device describes the host hardware the coordinator needs for element
// visibility rules. The core never probes hardware itself.
type Device struct {
	Cameras int
	Tablet  bool
	Torch   bool
}

// Coordinator mediates between the configuration store, the renderer
// strategies, the scan engine, and the delegate. One per scan session. A
// single mutex serializes the engine-thread entry points against
// control-thread calls, which is the documented alternative to external
// marshaling.
type Coordinator struct {
	mu sync.Mutex

	store    *settings.Store
	player   feedback.Player
	device   Device
	delegate Delegate

	renderers Renderers

	orientation geometry.Orientation
	screen      geometry.Size
	engineReady bool

	state         State
	searchText    string
	searchInvalid bool
	decoded       bool
	torchOn       bool

	attached attachedSet

	dropped    int
	violations int
}

type attachedSet struct {
	viewfinder   bool
	torch        bool
	cameraSwitch bool
	searchBar    bool
	toolbar      bool
	logo         bool
}

// New creates a coordinator bound to one configuration store. The player
// may be nil; feedback is skipped then.
func New(store *settings.Store, player feedback.Player, device Device) *Coordinator {
	return &Coordinator{
		store:  store,
		player: player,
		device: device,
	}
}

// Store returns the bound configuration store.
func (c *Coordinator) Store() *settings.Store { return c.store }

// SetRenderers registers the rendering strategies. Call before the first
// layout pass; replacing a strategy mid-session takes effect on the next
// pass.
func (c *Coordinator) SetRenderers(r Renderers) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderers = r
}

// SetDelegate installs (or, with nil, detaches) the event receiver. The
// reference is non-owning; events arriving while no delegate is attached
// are dropped silently.
func (c *Coordinator) SetDelegate(d Delegate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delegate = d
}

// SetDevice updates the hardware descriptor; visibility rules apply on the
// next layout pass.
func (c *Coordinator) SetDevice(d Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.device = d
}

// State returns the current dispatch state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Orientation returns the active layout orientation.
func (c *Coordinator) Orientation() geometry.Orientation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

// DroppedEvents counts valid triggers that arrived with no delegate
// attached.
func (c *Coordinator) DroppedEvents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// ContractViolations counts engine callbacks rejected at the boundary.
func (c *Coordinator) ContractViolations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.violations
}

// EngineReady marks the capture engine as initialized; the viewfinder
// caption disappears on the next layout pass.
func (c *Coordinator) EngineReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engineReady = true
	c.pushViewfinder()
}

// OrientationChanged switches the layout mode. Geometry is recomputed on
// the next layout pass.
func (c *Coordinator) OrientationChanged(o geometry.Orientation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = o
}

// Screen returns the last laid-out screen size.
func (c *Coordinator) Screen() geometry.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// DecodeResult is the engine callback for a successful decode. A raw
// symbology outside the closed vocabulary is a contract violation by the
// engine: the event is rejected here and never reaches the delegate.
func (c *Coordinator) DecodeResult(text, rawSymbology string) {
	c.mu.Lock()

	sym, ok := symbology.Parse(rawSymbology)
	if !ok {
		c.violations++
		c.mu.Unlock()
		log.Printf("Overlay: rejected decode with unknown symbology %q", rawSymbology)
		return
	}

	c.state = StateScanConfirmed
	c.decoded = true
	c.pushViewfinder()

	snap := c.store.Snapshot()
	player := c.player
	d := c.delegate
	if d == nil {
		c.dropped++
	}
	c.state = StateIdle
	c.mu.Unlock()

	if player != nil {
		if snap.BeepEnabled {
			if err := player.PlaySound(snap.ScanSound); err != nil {
				log.Printf("Overlay: scan sound failed: %v", err)
			}
		}
		if snap.VibrateEnabled {
			player.Vibrate()
		}
	}

	if d != nil {
		d.DidScan(Scan{Barcode: text, Symbology: sym})
	}
}

// Cancel handles the toolbar/cancel action. Terminal for the current scan
// attempt; the coordinator returns to Idle with no asynchronous cleanup.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.state = StateCancelling
	d := c.delegate
	if d == nil {
		c.dropped++
	}
	c.state = StateIdle
	c.mu.Unlock()

	if d != nil {
		d.DidCancel(Status{})
	}
}

// SetSearchText stores in-progress manual entry. Transient render state:
// ResetUI clears it, configuration does not.
func (c *Coordinator) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchText = text
	c.searchInvalid = false
	if text == "" {
		c.state = StateIdle
	} else {
		c.state = StateManualEntry
	}
	c.pushSearchBar()
}

// SearchText returns the in-progress manual entry text.
func (c *Coordinator) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchText
}

// SubmitManualSearch dispatches the current search text if its length is
// within the configured bounds. Out-of-range input stays in the field with
// the invalid flag set and never reaches the delegate.
func (c *Coordinator) SubmitManualSearch() {
	c.mu.Lock()

	snap := c.store.Snapshot()
	length := len([]rune(c.searchText))
	if length < snap.MinSearchBarCodeLength || length > snap.MaxSearchBarCodeLength {
		c.searchInvalid = true
		c.pushSearchBar()
		c.mu.Unlock()
		return
	}

	c.state = StateManualSubmitted
	text := c.searchText
	c.searchText = ""
	c.searchInvalid = false
	c.pushSearchBar()

	d := c.delegate
	if d == nil {
		c.dropped++
	}
	c.state = StateIdle
	c.mu.Unlock()

	if d != nil {
		d.DidManualSearch(text)
	}
}

// ToggleTorch flips the torch button's visual state. Actual torch hardware
// control is the engine's concern.
func (c *Coordinator) ToggleTorch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.torchOn = !c.torchOn
	c.pushTorch(c.store.Snapshot())
	return c.torchOn
}

// ResetUI clears transient render state: manual entry text, validation
// feedback, and the decode highlight. Configured visibility and every
// other setting stay untouched. Calling it twice is the same as once.
func (c *Coordinator) ResetUI() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchText = ""
	c.searchInvalid = false
	c.decoded = false
	c.torchOn = false
	c.state = StateIdle
	c.pushSearchBar()
	c.pushViewfinder()
	c.pushTorch(c.store.Snapshot())
}

// Layout runs one layout pass: it reads the store fresh, attaches or
// detaches elements per the visibility rules, and pushes placement and
// draw state to every attached renderer. Configuration changes made since
// the last pass apply here, immediately and unconditionally.
func (c *Coordinator) Layout(screen geometry.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen = screen
	snap := c.store.Snapshot()

	l := geometry.Compute(geometry.Input{
		Orientation:         c.orientation,
		Screen:              screen,
		Torch:               snap.Torch,
		CameraSwitch:        snap.CameraSwitch,
		ViewfinderPortrait:  snap.ViewfinderPortrait,
		ViewfinderLandscape: snap.ViewfinderLandscape,
		LogoOffsetPortrait:  snap.LogoOffsetPortrait,
		LogoOffsetLandscape: snap.LogoOffsetLandscape,
	})

	c.syncAttachment(&c.attached.viewfinder, snap.ViewfinderDrawn, viewfinderRenderer{c.renderers.Viewfinder})
	c.syncAttachment(&c.attached.torch, snap.TorchEnabled && c.device.Torch, buttonRenderer{c.renderers.Torch})
	c.syncAttachment(&c.attached.cameraSwitch, c.cameraSwitchVisible(snap), buttonRenderer{c.renderers.CameraSwitch})
	c.syncAttachment(&c.attached.searchBar, snap.SearchBarVisible, searchRenderer{c.renderers.SearchBar})
	c.syncAttachment(&c.attached.toolbar, snap.ToolbarVisible, toolbarRenderer{c.renderers.Toolbar})
	c.syncAttachment(&c.attached.logo, true, logoRenderer{c.renderers.Logo})

	if c.attached.viewfinder && c.renderers.Viewfinder != nil {
		c.renderers.Viewfinder.Update(c.viewfinderFrame(snap, l.Viewfinder))
	}
	if c.attached.torch && c.renderers.Torch != nil {
		c.renderers.Torch.Update(c.torchFrame(snap, l.Torch))
	}
	if c.attached.cameraSwitch && c.renderers.CameraSwitch != nil {
		c.renderers.CameraSwitch.Update(ButtonFrame{
			Rect:         l.CameraSwitch,
			Image:        snap.CameraSwitchImage,
			PressedImage: snap.CameraSwitchPressedImage,
		})
	}
	if c.attached.searchBar && c.renderers.SearchBar != nil {
		c.renderers.SearchBar.Update(c.searchBarFrame(snap))
	}
	if c.attached.toolbar && c.renderers.Toolbar != nil {
		c.renderers.Toolbar.Update(ToolbarFrame{Caption: snap.ToolbarCaption})
	}
	if c.attached.logo && c.renderers.Logo != nil {
		c.renderers.Logo.Update(LogoFrame{Anchor: l.Logo, Image: snap.BannerImage})
	}
}

func (c *Coordinator) cameraSwitchVisible(snap settings.Snapshot) bool {
	if c.device.Cameras < 2 {
		return false
	}
	switch snap.CameraSwitchVisibility {
	case settings.CameraSwitchAlways:
		return true
	case settings.CameraSwitchOnTablet:
		return c.device.Tablet
	default:
		return false
	}
}

// attachable abstracts the shared Attach/Detach half of every renderer
// interface so attachment transitions live in one place.
type attachable interface {
	Attach()
	Detach()
}

type viewfinderRenderer struct{ r ViewfinderRenderer }

func (v viewfinderRenderer) Attach() {
	if v.r != nil {
		v.r.Attach()
	}
}
func (v viewfinderRenderer) Detach() {
	if v.r != nil {
		v.r.Detach()
	}
}

type buttonRenderer struct{ r ButtonRenderer }

func (b buttonRenderer) Attach() {
	if b.r != nil {
		b.r.Attach()
	}
}
func (b buttonRenderer) Detach() {
	if b.r != nil {
		b.r.Detach()
	}
}

type searchRenderer struct{ r SearchBarRenderer }

func (s searchRenderer) Attach() {
	if s.r != nil {
		s.r.Attach()
	}
}
func (s searchRenderer) Detach() {
	if s.r != nil {
		s.r.Detach()
	}
}

type toolbarRenderer struct{ r ToolbarRenderer }

func (t toolbarRenderer) Attach() {
	if t.r != nil {
		t.r.Attach()
	}
}
func (t toolbarRenderer) Detach() {
	if t.r != nil {
		t.r.Detach()
	}
}

type logoRenderer struct{ r LogoRenderer }

func (l logoRenderer) Attach() {
	if l.r != nil {
		l.r.Attach()
	}
}
func (l logoRenderer) Detach() {
	if l.r != nil {
		l.r.Detach()
	}
}

func (c *Coordinator) syncAttachment(attached *bool, want bool, r attachable) {
	if want == *attached {
		return
	}
	*attached = want
	if want {
		r.Attach()
	} else {
		r.Detach()
	}
}

func (c *Coordinator) viewfinderFrame(snap settings.Snapshot, rect geometry.Rect) ViewfinderFrame {
	color := snap.ViewfinderColor
	if c.decoded {
		color = snap.ViewfinderDecoded
	}
	caption := ""
	if !c.engineReady {
		caption = snap.InitializingCaption
	}
	return ViewfinderFrame{
		Rect:    rect,
		Color:   color,
		Decoded: c.decoded,
		Caption: caption,
	}
}

func (c *Coordinator) torchFrame(snap settings.Snapshot, rect geometry.Rect) ButtonFrame {
	if c.torchOn {
		return ButtonFrame{Rect: rect, Image: snap.TorchOnImage, PressedImage: snap.TorchOnPressedImage}
	}
	return ButtonFrame{Rect: rect, Image: snap.TorchOffImage, PressedImage: snap.TorchOffPressed}
}

func (c *Coordinator) searchBarFrame(snap settings.Snapshot) SearchBarFrame {
	return SearchBarFrame{
		ActionCaption: snap.SearchActionCaption,
		Placeholder:   snap.SearchPlaceholder,
		Keyboard:      snap.SearchKeyboard,
		Text:          c.searchText,
		Invalid:       c.searchInvalid,
	}
}

// pushSearchBar, pushViewfinder, and pushTorch update a single attached
// renderer in place without a full layout pass. Callers hold c.mu.

func (c *Coordinator) pushSearchBar() {
	if c.attached.searchBar && c.renderers.SearchBar != nil {
		c.renderers.SearchBar.Update(c.searchBarFrame(c.store.Snapshot()))
	}
}

func (c *Coordinator) pushViewfinder() {
	if !c.attached.viewfinder || c.renderers.Viewfinder == nil {
		return
	}
	snap := c.store.Snapshot()
	l := geometry.Compute(geometry.Input{
		Orientation:         c.orientation,
		Screen:              c.screen,
		Torch:               snap.Torch,
		CameraSwitch:        snap.CameraSwitch,
		ViewfinderPortrait:  snap.ViewfinderPortrait,
		ViewfinderLandscape: snap.ViewfinderLandscape,
		LogoOffsetPortrait:  snap.LogoOffsetPortrait,
		LogoOffsetLandscape: snap.LogoOffsetLandscape,
	})
	c.renderers.Viewfinder.Update(c.viewfinderFrame(snap, l.Viewfinder))
}

func (c *Coordinator) pushTorch(snap settings.Snapshot) {
	if !c.attached.torch || c.renderers.Torch == nil {
		return
	}
	l := geometry.Compute(geometry.Input{
		Orientation:  c.orientation,
		Screen:       c.screen,
		Torch:        snap.Torch,
		CameraSwitch: snap.CameraSwitch,
	})
	c.renderers.Torch.Update(c.torchFrame(snap, l.Torch))
}
