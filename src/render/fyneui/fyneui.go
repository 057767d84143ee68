// Package fyneui renders the overlay elements with Fyne. It implements
// every renderer strategy against a single absolute-positioned container
// that the host places above its camera preview.
package fyneui

import (
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"scan-overlay/src/overlay"
	"scan-overlay/src/settings"
)

// View owns the overlay canvas objects. Renderer updates arrive on the
// overlay control goroutine and are forwarded to the Fyne event loop.
type View struct {
	resourceDir string
	root        *fyne.Container
	runOnMain   func(func())

	// UI events, forwarded to the host. Nil callbacks are skipped.
	OnTorchTapped        func()
	OnCameraSwitchTapped func()
	OnCancelTapped       func()
	OnSearchChanged      func(text string)
	OnSearchSubmitted    func()

	viewfinder   *viewfinderView
	torch        *buttonView
	cameraSwitch *buttonView
	searchBar    *searchBarView
	toolbar      *toolbarView
	logo         *logoView
}

// NewView builds the overlay view. Image identifiers from the
// configuration resolve to PNG files under resourceDir.
func NewView(resourceDir string) *View {
	v := &View{
		resourceDir: resourceDir,
		root:        container.NewWithoutLayout(),
		runOnMain:   fyne.Do,
	}
	v.viewfinder = newViewfinderView(v)
	v.torch = newButtonView(v, func() {
		if v.OnTorchTapped != nil {
			v.OnTorchTapped()
		}
	})
	v.cameraSwitch = newButtonView(v, func() {
		if v.OnCameraSwitchTapped != nil {
			v.OnCameraSwitchTapped()
		}
	})
	v.searchBar = newSearchBarView(v)
	v.toolbar = newToolbarView(v)
	v.logo = newLogoView(v)
	return v
}

// Canvas returns the container the host adds to its window, stacked over
// the preview.
func (v *View) Canvas() fyne.CanvasObject { return v.root }

// Renderers returns the strategy bundle for the coordinator.
func (v *View) Renderers() overlay.Renderers {
	return overlay.Renderers{
		Viewfinder:   v.viewfinder,
		Torch:        v.torch,
		CameraSwitch: v.cameraSwitch,
		SearchBar:    v.searchBar,
		Toolbar:      v.toolbar,
		Logo:         v.logo,
	}
}

func (v *View) imagePath(name string) string {
	return filepath.Join(v.resourceDir, name+".png")
}

func (v *View) add(objects ...fyne.CanvasObject) {
	for _, o := range objects {
		o.Hide()
		v.root.Add(o)
	}
}

func toColor(c settings.Color) color.NRGBA {
	return color.NRGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: 255}
}

// viewfinderView draws the box as a stroked rectangle with the
// initializing caption centered inside it.
type viewfinderView struct {
	view    *View
	box     *fynecanvas.Rectangle
	caption *fynecanvas.Text
}

func newViewfinderView(v *View) *viewfinderView {
	box := fynecanvas.NewRectangle(color.Transparent)
	box.StrokeWidth = 2
	caption := fynecanvas.NewText("", color.White)
	caption.Alignment = fyne.TextAlignCenter
	v.add(box, caption)
	return &viewfinderView{view: v, box: box, caption: caption}
}

func (r *viewfinderView) Attach() {
	r.view.runOnMain(func() {
		r.box.Show()
		r.caption.Show()
	})
}

func (r *viewfinderView) Detach() {
	r.view.runOnMain(func() {
		r.box.Hide()
		r.caption.Hide()
	})
}

func (r *viewfinderView) Update(frame overlay.ViewfinderFrame) {
	r.view.runOnMain(func() {
		r.box.StrokeColor = toColor(frame.Color)
		r.box.Move(fyne.NewPos(float32(frame.Rect.X), float32(frame.Rect.Y)))
		r.box.Resize(fyne.NewSize(float32(frame.Rect.W), float32(frame.Rect.H)))
		r.box.Refresh()
		r.caption.Text = frame.Caption
		r.caption.Move(fyne.NewPos(float32(frame.Rect.X), float32(frame.Rect.Y+frame.Rect.H/2)))
		r.caption.Resize(fyne.NewSize(float32(frame.Rect.W), 24))
		r.caption.Refresh()
	})
}

// buttonView draws an icon button. The normal image is shown at rest and
// the pressed variant while a tap is in progress.
type buttonView struct {
	view   *View
	button *iconButton
}

func newButtonView(v *View, onTap func()) *buttonView {
	b := newIconButton(onTap)
	v.add(b)
	return &buttonView{view: v, button: b}
}

func (r *buttonView) Attach() { r.view.runOnMain(r.button.Show) }
func (r *buttonView) Detach() { r.view.runOnMain(r.button.Hide) }

func (r *buttonView) Update(frame overlay.ButtonFrame) {
	r.view.runOnMain(func() {
		r.button.setImages(r.view.imagePath(frame.Image), r.view.imagePath(frame.PressedImage))
		r.button.Move(fyne.NewPos(float32(frame.Rect.X), float32(frame.Rect.Y)))
		r.button.Resize(fyne.NewSize(float32(frame.Rect.W), float32(frame.Rect.H)))
	})
}

// iconButton is a tappable image with a pressed state.
type iconButton struct {
	widget.BaseWidget
	image       *fynecanvas.Image
	normalPath  string
	pressedPath string
	onTap       func()
}

func newIconButton(onTap func()) *iconButton {
	b := &iconButton{image: fynecanvas.NewImageFromFile(""), onTap: onTap}
	b.image.FillMode = fynecanvas.ImageFillContain
	b.ExtendBaseWidget(b)
	return b
}

func (b *iconButton) setImages(normal, pressed string) {
	b.normalPath, b.pressedPath = normal, pressed
	b.image.File = normal
	b.image.Refresh()
}

func (b *iconButton) Tapped(*fyne.PointEvent) {
	if b.onTap != nil {
		b.onTap()
	}
}

func (b *iconButton) MouseDown(*desktop.MouseEvent) {
	b.image.File = b.pressedPath
	b.image.Refresh()
}

func (b *iconButton) MouseUp(*desktop.MouseEvent) {
	b.image.File = b.normalPath
	b.image.Refresh()
}

func (b *iconButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}

// searchBarView draws the manual entry field with its action button and a
// validation message for rejected submissions.
type searchBarView struct {
	view    *View
	entry   *widget.Entry
	action  *widget.Button
	invalid *fynecanvas.Text
	box     *fyne.Container
}

func newSearchBarView(v *View) *searchBarView {
	r := &searchBarView{view: v}
	r.entry = widget.NewEntry()
	r.entry.OnChanged = func(text string) {
		if v.OnSearchChanged != nil {
			v.OnSearchChanged(text)
		}
	}
	r.entry.OnSubmitted = func(string) {
		if v.OnSearchSubmitted != nil {
			v.OnSearchSubmitted()
		}
	}
	r.action = widget.NewButton("", func() {
		if v.OnSearchSubmitted != nil {
			v.OnSearchSubmitted()
		}
	})
	r.invalid = fynecanvas.NewText("", color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	r.invalid.Hide()
	r.box = container.NewBorder(nil, r.invalid, nil, r.action, r.entry)
	v.add(r.box)
	return r
}

func (r *searchBarView) Attach() { r.view.runOnMain(r.box.Show) }
func (r *searchBarView) Detach() { r.view.runOnMain(r.box.Hide) }

func (r *searchBarView) Update(frame overlay.SearchBarFrame) {
	r.view.runOnMain(func() {
		r.action.SetText(frame.ActionCaption)
		r.entry.SetPlaceHolder(frame.Placeholder)
		if r.entry.Text != frame.Text {
			r.entry.SetText(frame.Text)
		}
		if frame.Invalid {
			r.invalid.Text = "Code length not accepted"
			r.invalid.Show()
		} else {
			r.invalid.Hide()
		}
		r.invalid.Refresh()
	})
}

// toolbarView draws the cancel toolbar as a single full-width button.
type toolbarView struct {
	view   *View
	button *widget.Button
}

func newToolbarView(v *View) *toolbarView {
	r := &toolbarView{view: v}
	r.button = widget.NewButton("", func() {
		if v.OnCancelTapped != nil {
			v.OnCancelTapped()
		}
	})
	v.add(r.button)
	return r
}

func (r *toolbarView) Attach() { r.view.runOnMain(r.button.Show) }
func (r *toolbarView) Detach() { r.view.runOnMain(r.button.Hide) }

func (r *toolbarView) Update(frame overlay.ToolbarFrame) {
	r.view.runOnMain(func() {
		r.button.SetText(frame.Caption)
	})
}

// logoView draws the banner image with its bottom-center at the anchor.
type logoView struct {
	view  *View
	image *fynecanvas.Image
}

func newLogoView(v *View) *logoView {
	img := fynecanvas.NewImageFromFile("")
	img.FillMode = fynecanvas.ImageFillOriginal
	v.add(img)
	return &logoView{view: v, image: img}
}

func (r *logoView) Attach() { r.view.runOnMain(r.image.Show) }
func (r *logoView) Detach() { r.view.runOnMain(r.image.Hide) }

func (r *logoView) Update(frame overlay.LogoFrame) {
	r.view.runOnMain(func() {
		r.image.File = r.view.imagePath(frame.Image)
		size := r.image.MinSize()
		r.image.Resize(size)
		r.image.Move(fyne.NewPos(
			float32(frame.Anchor.X)-size.Width/2,
			float32(frame.Anchor.Y)-size.Height,
		))
		r.image.Refresh()
	})
}
