package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/kbinani/screenshot"

	"scan-overlay/src/clipboard"
	"scan-overlay/src/engine"
	"scan-overlay/src/feedback"
	"scan-overlay/src/geometry"
	"scan-overlay/src/hotkey"
	"scan-overlay/src/logutil"
	"scan-overlay/src/overlay"
	"scan-overlay/src/render/fyneui"
	"scan-overlay/src/runtimeinit"
	"scan-overlay/src/symbology"
	"scan-overlay/src/tray"
)

// normalizeFlagDashes maps GNU-style --scan-once to Go's -scan-once
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case arg == "--scan-once":
			os.Args[i] = "-scan-once"
		case strings.HasPrefix(arg, "--scan-once="):
			os.Args[i] = "-scan-once" + arg[len("--scan-once"):]
		case arg == "--stdout":
			os.Args[i] = "-stdout"
		}
	}
}

// clipDelegate copies every accepted code to the clipboard and mirrors it
// into the tray status line.
type clipDelegate struct{}

func (clipDelegate) DidScan(s overlay.Scan) {
	log.Printf("Scanned %s code %s", s.Symbology, logutil.RedactCode(s.Barcode))
	if err := clipboard.Write(s.Barcode); err != nil {
		log.Printf("Failed to write to clipboard: %v", err)
	}
	tray.SetStatus(fmt.Sprintf("%s: %s", s.Symbology, s.Barcode))
}

func (clipDelegate) DidCancel(overlay.Status) {
	log.Printf("Scan cancelled")
	tray.SetStatus("Scan cancelled")
}

func (clipDelegate) DidManualSearch(text string) {
	log.Printf("Manual search for %s", logutil.RedactCode(text))
	if err := clipboard.Write(text); err != nil {
		log.Printf("Failed to write to clipboard: %v", err)
	}
	tray.SetStatus("Search: " + text)
}

// controlBridge forwards engine callbacks onto the control goroutine, so
// the coordinator only ever runs there.
type controlBridge struct {
	actions chan<- func()
	coord   *overlay.Coordinator
	display int
}

func (b controlBridge) post(fn func()) {
	select {
	case b.actions <- fn:
	default:
		log.Printf("Control queue full, dropping engine callback")
	}
}

func (b controlBridge) DecodeResult(text, symbology string) {
	b.post(func() { b.coord.DecodeResult(text, symbology) })
}

func (b controlBridge) EngineReady() {
	b.post(func() { b.coord.EngineReady() })
}

func (b controlBridge) OrientationChanged(o geometry.Orientation) {
	b.post(func() {
		b.coord.OrientationChanged(o)
		b.coord.Layout(displaySize(b.display))
	})
}

func displaySize(display int) geometry.Size {
	bounds := screenshot.GetDisplayBounds(display)
	return geometry.Size{W: float64(bounds.Dx()), H: float64(bounds.Dy())}
}

func main() {
	// Lock main goroutine to its own OS thread; the window driver wants it
	runtime.LockOSThread()

	normalizeFlagDashes()
	scanOnce := flag.Bool("scan-once", false, "Decode one frame from the display, copy the code, and exit")
	stdout := flag.Bool("stdout", false, "With -scan-once, print the code instead of copying it")
	flag.Parse()

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{SetupLogging: setupLogging})
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	cfg := rt.Config

	if *scanOnce {
		runScanOnce(rt, *stdout)
		return
	}

	log.Printf("Scan overlay initialized")
	log.Printf("Resource dir: %s", cfg.ResourceDir)
	log.Printf("Cancel hotkey: %s", cfg.Hotkey)

	store := rt.Store
	if cfg.ShowSearchBar {
		store.ShowSearchBar(true)
	}
	if cfg.ShowToolbar {
		store.ShowToolbar(true)
	}

	coord := overlay.New(store, feedback.LogPlayer{}, overlay.Device{Cameras: 1})
	coord.SetDelegate(clipDelegate{})

	// Control goroutine: every coordinator call funnels through here.
	actions := make(chan func(), 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case fn := <-actions:
				fn()
			}
		}
	}()

	view := fyneui.NewView(cfg.ResourceDir)
	view.OnCancelTapped = func() { actions <- func() { coord.Cancel() } }
	view.OnTorchTapped = func() { actions <- func() { coord.ToggleTorch() } }
	view.OnSearchChanged = func(text string) { actions <- func() { coord.SetSearchText(text) } }
	view.OnSearchSubmitted = func() { actions <- func() { coord.SubmitManualSearch() } }
	coord.SetRenderers(view.Renderers())

	bridge := controlBridge{actions: actions, coord: coord, display: cfg.Display}
	source := engine.NewScreenSource(bridge, cfg.Display, time.Duration(cfg.ScanIntervalMS)*time.Millisecond)
	go func() {
		if err := source.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Engine stopped: %v", err)
		}
	}()

	hotkey.Listen(cfg.Hotkey, func() {
		actions <- func() { coord.Cancel() }
	})

	go tray.Run(tray.Config{
		Tooltip: fmt.Sprintf("Scan Overlay - Press %s to cancel", cfg.Hotkey),
		Hotkey:  cfg.Hotkey,
		OnCancel: func() {
			actions <- func() { coord.Cancel() }
		},
		OnTorch: func() {
			actions <- func() { coord.ToggleTorch() }
		},
		OnQuit: func() { cancel() },
	})

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	app := fyneapp.New()
	win := app.NewWindow("Scan Overlay")
	win.SetContent(view.Canvas())
	size := displaySize(cfg.Display)
	win.Resize(fyne.NewSize(float32(size.W/2), float32(size.H/2)))
	win.SetCloseIntercept(func() {
		cancel()
		win.Close()
	})

	actions <- func() { coord.Layout(displaySize(cfg.Display)) }

	go func() {
		<-ctx.Done()
		fyne.Do(app.Quit)
	}()

	win.ShowAndRun()
	tray.Quit()
}

func setupLogging(enableFileLogging bool) {
	logutil.Setup(enableFileLogging)
}

// runScanOnce decodes a single display frame and exits.
func runScanOnce(rt *runtimeinit.Runtime, outputToStdout bool) {
	cfg := rt.Config
	if screenshot.NumActiveDisplays() <= cfg.Display {
		fmt.Fprintf(os.Stderr, "Display %d not available\n", cfg.Display)
		os.Exit(1)
	}

	frame, err := screenshot.CaptureDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Capture failed: %v\n", err)
		os.Exit(1)
	}

	pool := engine.NewPool(0)
	defer pool.Close()

	ctx, cancelDecode := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDecode()

	done := make(chan struct{})
	var result *zxinggo.Result
	var decodeErr error
	pool.Submit(ctx, frame, func(r *zxinggo.Result, err error) {
		result, decodeErr = r, err
		close(done)
	})
	<-done

	if decodeErr != nil {
		fmt.Fprintf(os.Stderr, "No barcode found: %v\n", decodeErr)
		os.Exit(1)
	}
	sym, ok := symbology.FromFormat(result.Format)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unsupported barcode format %s\n", result.Format)
		os.Exit(1)
	}

	log.Printf("Scan-once decoded %s code %s", sym, logutil.RedactCode(result.Text))
	if outputToStdout {
		fmt.Print(result.Text)
		return
	}
	if err := clipboard.Write(result.Text); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to clipboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Copied %s code to clipboard\n", sym)
}
