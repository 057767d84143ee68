// Package geometry computes concrete on-screen placement for the overlay
// elements. Compute is pure: the same input always yields the same layout,
// so placement is testable without rendering anything.
package geometry

// Orientation of the scan screen.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Size in device-independent pixels.
type Size struct {
	W, H float64
}

// Rect is a placement rectangle in device-independent pixels, origin at the
// screen's top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Point in device-independent pixels.
type Point struct {
	X, Y float64
}

// RelativeRect positions an element with screen-relative origin coordinates
// in [0,1] and a pixel size.
type RelativeRect struct {
	X, Y float64 // fractions of screen width/height
	W, H float64 // pixels
}

// FractionSize is a box size expressed as fractions of the screen.
type FractionSize struct {
	W, H float64
}

// Input is the geometry-relevant slice of the overlay configuration plus
// the current orientation and screen size.
type Input struct {
	Orientation Orientation
	Screen      Size

	Torch RelativeRect
	// CameraSwitch.X is an inverse-x: the distance is measured leftward
	// from the right screen edge so the button reads as anchored to its
	// own edge, mirroring the torch on the left.
	CameraSwitch RelativeRect

	ViewfinderPortrait  FractionSize
	ViewfinderLandscape FractionSize

	LogoOffsetPortrait  Point
	LogoOffsetLandscape Point
}

// Layout is the computed placement for every positioned element.
type Layout struct {
	Torch        Rect
	CameraSwitch Rect
	Viewfinder   Rect
	// Logo is the anchor for the banner image: bottom-center of the
	// screen shifted by the active orientation's offset pair. Positive Y
	// moves the logo up, away from the bottom edge.
	Logo Point
}

// Compute derives the layout for one orientation. Fractions for the
// inactive orientation never influence the result.
func Compute(in Input) Layout {
	var l Layout

	l.Torch = Rect{
		X: in.Torch.X * in.Screen.W,
		Y: in.Torch.Y * in.Screen.H,
		W: in.Torch.W,
		H: in.Torch.H,
	}

	l.CameraSwitch = Rect{
		X: in.Screen.W - in.CameraSwitch.X*in.Screen.W - in.CameraSwitch.W,
		Y: in.CameraSwitch.Y * in.Screen.H,
		W: in.CameraSwitch.W,
		H: in.CameraSwitch.H,
	}

	frac := in.ViewfinderPortrait
	offset := in.LogoOffsetPortrait
	if in.Orientation == Landscape {
		frac = in.ViewfinderLandscape
		offset = in.LogoOffsetLandscape
	}

	vw := frac.W * in.Screen.W
	vh := frac.H * in.Screen.H
	l.Viewfinder = Rect{
		X: (in.Screen.W - vw) / 2,
		Y: (in.Screen.H - vh) / 2,
		W: vw,
		H: vh,
	}

	l.Logo = Point{
		X: in.Screen.W/2 + offset.X,
		Y: in.Screen.H - offset.Y,
	}

	return l
}

// Clamp01 confines a relative coordinate or color component to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
