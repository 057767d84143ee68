package overlay

import (
	"fmt"
	"sync"
	"testing"

	"scan-overlay/src/feedback"
	"scan-overlay/src/geometry"
	"scan-overlay/src/settings"
	"scan-overlay/src/symbology"
)

type recordingDelegate struct {
	mu       sync.Mutex
	scans    []Scan
	cancels  []Status
	searches []string
}

func (d *recordingDelegate) DidScan(s Scan) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scans = append(d.scans, s)
}

func (d *recordingDelegate) DidCancel(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancels = append(d.cancels, s)
}

func (d *recordingDelegate) DidManualSearch(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.searches = append(d.searches, text)
}

func (d *recordingDelegate) counts() (int, int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.scans), len(d.cancels), len(d.searches)
}

type fakeSearchBar struct {
	attached int
	detached int
	frames   []SearchBarFrame
}

func (f *fakeSearchBar) Attach() { f.attached++ }
func (f *fakeSearchBar) Detach() { f.detached++ }
func (f *fakeSearchBar) Update(fr SearchBarFrame) { f.frames = append(f.frames, fr) }

type fakeViewfinder struct {
	attached int
	detached int
	frames   []ViewfinderFrame
}

func (f *fakeViewfinder) Attach() { f.attached++ }
func (f *fakeViewfinder) Detach() { f.detached++ }
func (f *fakeViewfinder) Update(fr ViewfinderFrame) { f.frames = append(f.frames, fr) }

type fakeButton struct {
	attached int
	detached int
	frames   []ButtonFrame
}

func (f *fakeButton) Attach() { f.attached++ }
func (f *fakeButton) Detach() { f.detached++ }
func (f *fakeButton) Update(fr ButtonFrame) { f.frames = append(f.frames, fr) }

func newTestCoordinator() (*Coordinator, *recordingDelegate) {
	c := New(settings.New(nil), feedback.LogPlayer{}, Device{Cameras: 1, Torch: true})
	d := &recordingDelegate{}
	c.SetDelegate(d)
	return c, d
}

func TestDecodeDispatchesExactlyOnce(t *testing.T) {
	c, d := newTestCoordinator()

	c.DecodeResult("4006381333931", "EAN13")

	scans, cancels, searches := d.counts()
	if scans != 1 || cancels != 0 || searches != 0 {
		t.Errorf("Expected exactly one scan dispatch, got %d/%d/%d", scans, cancels, searches)
	}
	if d.scans[0].Barcode != "4006381333931" || d.scans[0].Symbology != symbology.EAN13 {
		t.Errorf("Expected payload to carry barcode and symbology, got %+v", d.scans[0])
	}
	if c.State() != StateIdle {
		t.Errorf("Expected coordinator back in Idle, got %v", c.State())
	}
}

func TestDecodeRejectsUnknownSymbology(t *testing.T) {
	c, d := newTestCoordinator()

	c.DecodeResult("123", "AZTEC")
	c.DecodeResult("123", "")
	c.DecodeResult("123", "ean13")

	if scans, _, _ := d.counts(); scans != 0 {
		t.Errorf("Expected no dispatch for unknown symbologies, got %d", scans)
	}
	if c.ContractViolations() != 3 {
		t.Errorf("Expected 3 contract violations, got %d", c.ContractViolations())
	}
}

func TestEveryVocabularySymbologyDispatches(t *testing.T) {
	c, d := newTestCoordinator()

	for _, s := range symbology.All() {
		c.DecodeResult("payload", string(s))
	}

	if scans, _, _ := d.counts(); scans != len(symbology.All()) {
		t.Errorf("Expected %d dispatches, got %d", len(symbology.All()), scans)
	}
}

func TestCancelDispatchesEmptyStatus(t *testing.T) {
	c, d := newTestCoordinator()

	c.Cancel()

	if _, cancels, _ := d.counts(); cancels != 1 {
		t.Errorf("Expected exactly one cancel dispatch, got %d", cancels)
	}
	if c.State() != StateIdle {
		t.Errorf("Expected Idle after cancel, got %v", c.State())
	}
}

func TestManualSearchLengthBounds(t *testing.T) {
	c, d := newTestCoordinator()

	cases := []struct {
		length   int
		dispatch bool
	}{
		{7, false},
		{8, true},
		{100, true},
		{101, false},
	}

	want := 0
	for _, tc := range cases {
		text := ""
		for i := 0; i < tc.length; i++ {
			text += "7"
		}
		c.SetSearchText(text)
		c.SubmitManualSearch()
		if tc.dispatch {
			want++
		}
		if _, _, searches := d.counts(); searches != want {
			t.Errorf("Expected %d dispatches after length-%d submission, got %d", want, tc.length, searches)
		}
	}
}

func TestRejectedSearchKeepsTextWithInvalidFlag(t *testing.T) {
	c, _ := newTestCoordinator()
	bar := &fakeSearchBar{}
	c.SetRenderers(Renderers{SearchBar: bar})
	c.Store().ShowSearchBar(true)
	c.Layout(geometry.Size{W: 400, H: 800})

	c.SetSearchText("1234567")
	c.SubmitManualSearch()

	if c.SearchText() != "1234567" {
		t.Errorf("Expected rejected text to stay in the field, got %q", c.SearchText())
	}
	last := bar.frames[len(bar.frames)-1]
	if !last.Invalid {
		t.Errorf("Expected validation feedback frame, got %+v", last)
	}
}

func TestAcceptedSearchClearsField(t *testing.T) {
	c, d := newTestCoordinator()

	c.SetSearchText("12345678")
	c.SubmitManualSearch()

	if c.SearchText() != "" {
		t.Errorf("Expected field cleared after dispatch, got %q", c.SearchText())
	}
	if d.searches[0] != "12345678" {
		t.Errorf("Expected dispatched text 12345678, got %q", d.searches[0])
	}
}

func TestEventsDroppedWithoutDelegate(t *testing.T) {
	c, _ := newTestCoordinator()
	c.SetDelegate(nil)

	c.DecodeResult("4006381333931", "EAN13")
	c.Cancel()
	c.SetSearchText("12345678")
	c.SubmitManualSearch()

	if c.DroppedEvents() != 3 {
		t.Errorf("Expected 3 dropped events, got %d", c.DroppedEvents())
	}
}

func TestResetUIIsIdempotent(t *testing.T) {
	c, _ := newTestCoordinator()
	vf := &fakeViewfinder{}
	bar := &fakeSearchBar{}
	c.SetRenderers(Renderers{Viewfinder: vf, SearchBar: bar})
	c.Store().ShowSearchBar(true)
	c.Layout(geometry.Size{W: 400, H: 800})

	c.SetSearchText("999")
	c.DecodeResult("x", "QR")

	c.ResetUI()
	if c.SearchText() != "" {
		t.Errorf("Expected search text cleared, got %q", c.SearchText())
	}
	vfFrames := len(vf.frames)
	barFrames := len(bar.frames)
	firstVf := vf.frames[vfFrames-1]
	firstBar := bar.frames[barFrames-1]

	c.ResetUI()
	if vf.frames[len(vf.frames)-1] != firstVf || bar.frames[len(bar.frames)-1] != firstBar {
		t.Errorf("Expected second ResetUI to produce no observable change")
	}
	if firstVf.Decoded {
		t.Errorf("Expected highlight cleared by ResetUI")
	}
}

func TestResetUIDoesNotTouchConfiguredVisibility(t *testing.T) {
	c, _ := newTestCoordinator()
	c.Store().ShowSearchBar(true)
	c.Store().ShowToolbar(true)

	c.ResetUI()

	s := c.Store().Snapshot()
	if !s.SearchBarVisible || !s.ToolbarVisible {
		t.Errorf("Expected ResetUI to leave configured visibility untouched, got %+v", s)
	}
}

func TestDecodeSetsHighlightColor(t *testing.T) {
	c, _ := newTestCoordinator()
	vf := &fakeViewfinder{}
	c.SetRenderers(Renderers{Viewfinder: vf})
	c.Layout(geometry.Size{W: 400, H: 800})

	c.DecodeResult("x", "QR")

	last := vf.frames[len(vf.frames)-1]
	if !last.Decoded {
		t.Errorf("Expected decoded frame after scan")
	}
	if last.Color != (settings.Color{R: 0.222, G: 0.753, B: 0.8}) {
		t.Errorf("Expected decoded color, got %+v", last.Color)
	}
}

func TestSearchBarAttachFollowsConfiguredVisibility(t *testing.T) {
	c, _ := newTestCoordinator()
	bar := &fakeSearchBar{}
	c.SetRenderers(Renderers{SearchBar: bar})
	screen := geometry.Size{W: 400, H: 800}

	c.Layout(screen)
	if bar.attached != 0 {
		t.Errorf("Expected hidden search bar to stay detached")
	}

	c.Store().ShowSearchBar(true)
	if bar.attached != 0 {
		t.Errorf("Expected show to take effect only on the next layout pass")
	}

	c.Layout(screen)
	if bar.attached != 1 {
		t.Errorf("Expected search bar attached after layout, got %d", bar.attached)
	}

	c.Store().ShowSearchBar(false)
	c.Layout(screen)
	if bar.detached != 1 {
		t.Errorf("Expected search bar detached after hide, got %d", bar.detached)
	}
}

func TestCameraSwitchVisibilityRules(t *testing.T) {
	cases := []struct {
		visibility settings.CameraSwitchVisibility
		device     Device
		attached   bool
	}{
		{settings.CameraSwitchNever, Device{Cameras: 2, Tablet: true}, false},
		{settings.CameraSwitchAlways, Device{Cameras: 1}, false},
		{settings.CameraSwitchAlways, Device{Cameras: 2}, true},
		{settings.CameraSwitchOnTablet, Device{Cameras: 2}, false},
		{settings.CameraSwitchOnTablet, Device{Cameras: 2, Tablet: true}, true},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			c := New(settings.New(nil), nil, tc.device)
			btn := &fakeButton{}
			c.SetRenderers(Renderers{CameraSwitch: btn})
			c.Store().SetCameraSwitchVisibility(tc.visibility)
			c.Layout(geometry.Size{W: 400, H: 800})
			got := btn.attached == 1
			if got != tc.attached {
				t.Errorf("Expected attached=%v for %v with %+v, got %v", tc.attached, tc.visibility, tc.device, got)
			}
		})
	}
}

func TestTorchToggleSwapsImages(t *testing.T) {
	c, _ := newTestCoordinator()
	btn := &fakeButton{}
	c.SetRenderers(Renderers{Torch: btn})
	c.Layout(geometry.Size{W: 400, H: 800})

	first := btn.frames[len(btn.frames)-1]
	if first.Image != "flashlight-turn-off-icon" {
		t.Errorf("Expected torch off image initially, got %q", first.Image)
	}

	if on := c.ToggleTorch(); !on {
		t.Errorf("Expected toggle to turn torch on")
	}
	last := btn.frames[len(btn.frames)-1]
	if last.Image != "flashlight-turn-on-icon" {
		t.Errorf("Expected torch on image after toggle, got %q", last.Image)
	}
}

func TestOrientationChangeAppliesOnNextLayout(t *testing.T) {
	c, _ := newTestCoordinator()
	vf := &fakeViewfinder{}
	c.SetRenderers(Renderers{Viewfinder: vf})

	c.Layout(geometry.Size{W: 400, H: 800})
	portrait := vf.frames[len(vf.frames)-1]
	if portrait.Rect.W != 320 {
		t.Errorf("Expected portrait viewfinder width 320, got %v", portrait.Rect.W)
	}

	c.OrientationChanged(geometry.Landscape)
	c.Layout(geometry.Size{W: 800, H: 400})
	landscape := vf.frames[len(vf.frames)-1]
	if landscape.Rect.W != 480 || landscape.Rect.H != 160 {
		t.Errorf("Expected landscape viewfinder 480x160, got %vx%v", landscape.Rect.W, landscape.Rect.H)
	}
}

func TestInitializingCaptionClearsOnEngineReady(t *testing.T) {
	c, _ := newTestCoordinator()
	vf := &fakeViewfinder{}
	c.SetRenderers(Renderers{Viewfinder: vf})
	c.Layout(geometry.Size{W: 400, H: 800})

	if got := vf.frames[len(vf.frames)-1].Caption; got != settings.DefaultInitializingCaption {
		t.Errorf("Expected initializing caption before engine ready, got %q", got)
	}

	c.EngineReady()
	if got := vf.frames[len(vf.frames)-1].Caption; got != "" {
		t.Errorf("Expected empty caption after engine ready, got %q", got)
	}
}

func TestRapidTriggersDispatchOnceEach(t *testing.T) {
	c, d := newTestCoordinator()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			c.DecodeResult("x", "QR")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			c.Cancel()
		}
	}()
	wg.Wait()

	scans, cancels, _ := d.counts()
	if scans != n || cancels != n {
		t.Errorf("Expected %d scans and %d cancels, got %d/%d", n, n, scans, cancels)
	}
}

func TestConfigChangesApplyOnNextPass(t *testing.T) {
	c, _ := newTestCoordinator()
	vf := &fakeViewfinder{}
	c.SetRenderers(Renderers{Viewfinder: vf})
	screen := geometry.Size{W: 400, H: 800}
	c.Layout(screen)

	c.Store().SetViewfinderColor(0.5, 0.5, 0.5)
	c.Layout(screen)

	last := vf.frames[len(vf.frames)-1]
	if last.Color != (settings.Color{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("Expected mid-session color change to apply immediately, got %+v", last.Color)
	}
}
