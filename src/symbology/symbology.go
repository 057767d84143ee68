package symbology

import (
	zxinggo "github.com/ericlevine/zxinggo"
)

// Symbology identifies the barcode standard a decoded value conforms to.
// The set of valid identifiers is closed: scan engines reporting anything
// else are violating the decode contract and their result must not be
// forwarded to the host.
type Symbology string

const (
	EAN8          Symbology = "EAN8"
	EAN13         Symbology = "EAN13"
	UPC12         Symbology = "UPC12"
	UPCE          Symbology = "UPCE"
	Code128       Symbology = "CODE128"
	GS1128        Symbology = "GS1-128"
	Code39        Symbology = "CODE39"
	ITF           Symbology = "ITF"
	QR            Symbology = "QR"
	GS1QR         Symbology = "GS1-QR"
	DataMatrix    Symbology = "DATAMATRIX"
	GS1DataMatrix Symbology = "GS1-DATAMATRIX"
	PDF417        Symbology = "PDF417"
	MSI           Symbology = "MSI"
)

var all = []Symbology{
	EAN8, EAN13, UPC12, UPCE,
	Code128, GS1128, Code39, ITF,
	QR, GS1QR, DataMatrix, GS1DataMatrix,
	PDF417, MSI,
}

var valid = func() map[Symbology]bool {
	m := make(map[Symbology]bool, len(all))
	for _, s := range all {
		m[s] = true
	}
	return m
}()

// All returns the vocabulary in its documented order.
func All() []Symbology {
	out := make([]Symbology, len(all))
	copy(out, all)
	return out
}

// Parse validates a raw identifier against the vocabulary.
func Parse(raw string) (Symbology, bool) {
	s := Symbology(raw)
	if !valid[s] {
		return "", false
	}
	return s, true
}

// String returns the wire identifier.
func (s Symbology) String() string { return string(s) }

// FromFormat maps a decode-engine format onto the vocabulary. Formats
// without a vocabulary entry (Aztec, Codabar) report false and must be
// dropped by the caller.
func FromFormat(f zxinggo.Format) (Symbology, bool) {
	switch f {
	case zxinggo.FormatEAN8:
		return EAN8, true
	case zxinggo.FormatEAN13:
		return EAN13, true
	case zxinggo.FormatUPCA:
		return UPC12, true
	case zxinggo.FormatUPCE:
		return UPCE, true
	case zxinggo.FormatCode128:
		return Code128, true
	case zxinggo.FormatCode39:
		return Code39, true
	case zxinggo.FormatITF:
		return ITF, true
	case zxinggo.FormatQRCode:
		return QR, true
	case zxinggo.FormatDataMatrix:
		return DataMatrix, true
	case zxinggo.FormatPDF417:
		return PDF417, true
	default:
		return "", false
	}
}
