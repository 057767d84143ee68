package fyneui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"scan-overlay/src/geometry"
	"scan-overlay/src/overlay"
	"scan-overlay/src/settings"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	test.NewApp()
	v := NewView(t.TempDir())
	// Renderer calls come from the test goroutine directly.
	v.runOnMain = func(f func()) { f() }
	return v
}

func TestViewfinderAttachCycle(t *testing.T) {
	v := newTestView(t)
	r := v.Renderers().Viewfinder

	if v.viewfinder.box.Visible() {
		t.Error("Expected viewfinder to start hidden")
	}
	r.Attach()
	if !v.viewfinder.box.Visible() {
		t.Error("Expected viewfinder to be visible after Attach")
	}
	r.Update(overlay.ViewfinderFrame{
		Rect:    geometry.Rect{X: 40, Y: 240, W: 320, H: 320},
		Color:   settings.Color{R: 1, G: 1, B: 1},
		Caption: "Initializing camera...",
	})
	if got := v.viewfinder.box.Position().X; got != 40 {
		t.Errorf("Expected viewfinder x to be 40, got %v", got)
	}
	if got := v.viewfinder.box.Size().Width; got != 320 {
		t.Errorf("Expected viewfinder width to be 320, got %v", got)
	}
	if v.viewfinder.caption.Text != "Initializing camera..." {
		t.Errorf("Expected caption to be set, got '%s'", v.viewfinder.caption.Text)
	}
	r.Detach()
	if v.viewfinder.box.Visible() {
		t.Error("Expected viewfinder to be hidden after Detach")
	}
}

func TestSearchBarInvalidFeedback(t *testing.T) {
	v := newTestView(t)
	r := v.Renderers().SearchBar
	r.Attach()

	r.Update(overlay.SearchBarFrame{
		ActionCaption: "Go",
		Placeholder:   "Scan barcode or enter it here",
		Text:          "1234",
		Invalid:       true,
	})
	if v.searchBar.entry.Text != "1234" {
		t.Errorf("Expected entry text to be '1234', got '%s'", v.searchBar.entry.Text)
	}
	if !v.searchBar.invalid.Visible() {
		t.Error("Expected validation message to be visible")
	}

	r.Update(overlay.SearchBarFrame{ActionCaption: "Go", Text: "1234"})
	if v.searchBar.invalid.Visible() {
		t.Error("Expected validation message to clear")
	}
}

func TestSearchBarForwardsEvents(t *testing.T) {
	v := newTestView(t)
	var changed string
	submitted := 0
	v.OnSearchChanged = func(text string) { changed = text }
	v.OnSearchSubmitted = func() { submitted++ }

	v.searchBar.entry.SetText("98765432")
	if changed != "98765432" {
		t.Errorf("Expected change callback with '98765432', got '%s'", changed)
	}
	v.searchBar.entry.OnSubmitted("98765432")
	test.Tap(v.searchBar.action)
	if submitted != 2 {
		t.Errorf("Expected 2 submissions, got %d", submitted)
	}
}

func TestToolbarTapFiresCancel(t *testing.T) {
	v := newTestView(t)
	cancelled := 0
	v.OnCancelTapped = func() { cancelled++ }

	v.Renderers().Toolbar.Update(overlay.ToolbarFrame{Caption: "Cancel"})
	if v.toolbar.button.Text != "Cancel" {
		t.Errorf("Expected toolbar caption to be 'Cancel', got '%s'", v.toolbar.button.Text)
	}
	test.Tap(v.toolbar.button)
	if cancelled != 1 {
		t.Errorf("Expected 1 cancel tap, got %d", cancelled)
	}
}

func TestButtonImageSwap(t *testing.T) {
	v := newTestView(t)
	r := v.Renderers().Torch
	r.Attach()
	r.Update(overlay.ButtonFrame{
		Rect:         geometry.Rect{X: 20, Y: 8, W: 67, H: 33},
		Image:        "flashlight-turn-on-icon",
		PressedImage: "flashlight-turn-on-icon-pressed",
	})
	if got := v.torch.button.image.File; got != v.imagePath("flashlight-turn-on-icon") {
		t.Errorf("Expected torch image path, got '%s'", got)
	}
	if got := v.torch.button.Position().X; got != 20 {
		t.Errorf("Expected torch x to be 20, got %v", got)
	}
}
