package geometry

import "testing"

func baseInput() Input {
	return Input{
		Orientation:         Portrait,
		Screen:              Size{W: 400, H: 800},
		Torch:               RelativeRect{X: 0.05, Y: 0.01, W: 67, H: 33},
		CameraSwitch:        RelativeRect{X: 0.05, Y: 0.01, W: 67, H: 33},
		ViewfinderPortrait:  FractionSize{W: 0.8, H: 0.4},
		ViewfinderLandscape: FractionSize{W: 0.6, H: 0.4},
	}
}

func TestTorchAnchoredFromLeftTop(t *testing.T) {
	l := Compute(baseInput())
	if l.Torch.X != 20 || l.Torch.Y != 8 {
		t.Errorf("Expected torch origin (20, 8), got (%v, %v)", l.Torch.X, l.Torch.Y)
	}
	if l.Torch.W != 67 || l.Torch.H != 33 {
		t.Errorf("Expected torch size 67x33, got %vx%v", l.Torch.W, l.Torch.H)
	}
}

func TestCameraSwitchAnchoredFromRightEdge(t *testing.T) {
	l := Compute(baseInput())
	// 400 - 0.05*400 - 67 = 313
	if l.CameraSwitch.X != 313 {
		t.Errorf("Expected camera switch x 313, got %v", l.CameraSwitch.X)
	}
	if l.CameraSwitch.Y != 8 {
		t.Errorf("Expected camera switch y 8, got %v", l.CameraSwitch.Y)
	}
}

func TestViewfinderCenteredPerOrientation(t *testing.T) {
	in := baseInput()
	l := Compute(in)
	if l.Viewfinder.W != 320 || l.Viewfinder.H != 320 {
		t.Errorf("Expected portrait viewfinder 320x320, got %vx%v", l.Viewfinder.W, l.Viewfinder.H)
	}
	if l.Viewfinder.X != 40 || l.Viewfinder.Y != 240 {
		t.Errorf("Expected portrait viewfinder origin (40, 240), got (%v, %v)", l.Viewfinder.X, l.Viewfinder.Y)
	}

	in.Orientation = Landscape
	in.Screen = Size{W: 800, H: 400}
	l = Compute(in)
	if l.Viewfinder.W != 480 || l.Viewfinder.H != 160 {
		t.Errorf("Expected landscape viewfinder 480x160, got %vx%v", l.Viewfinder.W, l.Viewfinder.H)
	}
}

func TestOrientationFractionIndependence(t *testing.T) {
	in := baseInput()
	in.ViewfinderLandscape = FractionSize{W: 0.9, H: 0.9}
	l := Compute(in)
	// Portrait output unaffected by landscape fractions.
	if l.Viewfinder.W != 320 || l.Viewfinder.H != 320 {
		t.Errorf("Expected portrait layout to ignore landscape fractions, got %vx%v", l.Viewfinder.W, l.Viewfinder.H)
	}
}

func TestLogoOffsetsPerOrientation(t *testing.T) {
	in := baseInput()
	in.LogoOffsetPortrait = Point{X: 10, Y: 20}
	in.LogoOffsetLandscape = Point{X: -5, Y: 0}
	l := Compute(in)
	if l.Logo.X != 210 || l.Logo.Y != 780 {
		t.Errorf("Expected portrait logo anchor (210, 780), got (%v, %v)", l.Logo.X, l.Logo.Y)
	}

	in.Orientation = Landscape
	in.Screen = Size{W: 800, H: 400}
	l = Compute(in)
	if l.Logo.X != 395 || l.Logo.Y != 400 {
		t.Errorf("Expected landscape logo anchor (395, 400), got (%v, %v)", l.Logo.X, l.Logo.Y)
	}
}

func TestComputeIsPure(t *testing.T) {
	in := baseInput()
	a := Compute(in)
	b := Compute(in)
	if a != b {
		t.Errorf("Expected identical layouts for identical inputs, got %+v vs %+v", a, b)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {3.2, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Errorf("Expected Clamp01(%v) to be %v, got %v", c.in, c.want, got)
		}
	}
}
