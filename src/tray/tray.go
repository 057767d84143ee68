package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// Config wires the tray menu to the overlay shell.
type Config struct {
	Tooltip string
	Hotkey  string

	OnCancel func()
	OnTorch  func()
	OnQuit   func()
}

var (
	statusMu   sync.Mutex
	statusItem *systray.MenuItem
)

// Run starts the systray loop. It blocks until Quit is selected or
// systray.Quit is called.
func Run(cfg Config) {
	systray.Run(func() { onReady(cfg) }, onExit)
}

// Quit stops the systray loop.
func Quit() {
	systray.Quit()
}

// SetStatus updates the disabled status line with the latest scan result.
func SetStatus(text string) {
	statusMu.Lock()
	defer statusMu.Unlock()
	if statusItem != nil {
		statusItem.SetTitle(text)
	}
}

func onReady(cfg Config) {
	systray.SetIcon(Icon())
	systray.SetTitle("Scan Overlay")
	tooltip := cfg.Tooltip
	if tooltip == "" {
		tooltip = "Scan Overlay"
	}
	systray.SetTooltip(tooltip)

	mStatus := systray.AddMenuItem("No scans yet", "Last scan result")
	mStatus.Disable()
	statusMu.Lock()
	statusItem = mStatus
	statusMu.Unlock()

	if cfg.Hotkey != "" {
		mHotkey := systray.AddMenuItem("Cancel hotkey: "+cfg.Hotkey, "Global cancel shortcut")
		mHotkey.Disable()
	}

	mTorch := systray.AddMenuItem("Toggle Torch", "Toggle the torch button state")
	mCancel := systray.AddMenuItem("Cancel Scan", "Dismiss the current scan session")
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mTorch.ClickedCh:
				if cfg.OnTorch != nil {
					cfg.OnTorch()
				}
			case <-mCancel.ClickedCh:
				if cfg.OnCancel != nil {
					cfg.OnCancel()
				}
			case <-mQuit.ClickedCh:
				log.Printf("Quit selected from tray")
				if cfg.OnQuit != nil {
					cfg.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func onExit() {
	statusMu.Lock()
	statusItem = nil
	statusMu.Unlock()
}
