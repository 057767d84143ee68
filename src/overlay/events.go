package overlay

import "scan-overlay/src/symbology"

// Event is implemented by every payload handed to the delegate, so hosts
// can log or route them uniformly.
type Event interface {
	Kind() string
}

// Event kind constants for type identification.
const (
	KindScan         = "Scan"
	KindCancel       = "Cancel"
	KindManualSearch = "ManualSearch"
)

// Scan is the payload of a successful decode. Symbology is always a member
// of the closed vocabulary; results outside it never reach the delegate.
type Scan struct {
	Barcode   string
	Symbology symbology.Symbology
}

func (Scan) Kind() string { return KindScan }

// Status accompanies a cancel event. It is currently empty and reserved
// for future fields; hosts must treat unknown fields as forward-compatible.
type Status struct{}

func (Status) Kind() string { return KindCancel }

// ManualSearch carries the text of a valid manual search submission.
type ManualSearch struct {
	Text string
}

func (ManualSearch) Kind() string { return KindManualSearch }

// Delegate receives overlay events. The coordinator holds a non-owning
// reference: it never extends the delegate's lifetime, and every external
// trigger produces exactly one call on exactly one of these methods.
type Delegate interface {
	DidScan(scan Scan)
	DidCancel(status Status)
	DidManualSearch(text string)
}
