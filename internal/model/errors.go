package model

import "github.com/pkg/errors"

// TitelblattFehlendesFeld tags which of the three title-page tokens (§4.C)
// was missing.
type TitelblattFehlendesFeld int

const (
	KeinAmtsgericht TitelblattFehlendesFeld = iota
	KeinGbBezirk
	KeinGbBlatt
)

func (f TitelblattFehlendesFeld) String() string {
	switch f {
	case KeinAmtsgericht:
		return "KeinAmtsgericht"
	case KeinGbBezirk:
		return "KeinGbBezirk"
	case KeinGbBlatt:
		return "KeinGbBlatt"
	default:
		return "unbekannt"
	}
}

// TitelblattError is returned by the title-page reader (§4.C) when one of
// the three expected tokens is missing.
type TitelblattError struct {
	Feld TitelblattFehlendesFeld
}

func (e *TitelblattError) Error() string {
	return "titelblatt: " + e.Feld.String()
}

// NewTitelblattError wraps a TitelblattFehlendesFeld as an error.
func NewTitelblattError(feld TitelblattFehlendesFeld) error {
	return &TitelblattError{Feld: feld}
}

// FalscheSeitenZahlError is returned when a requested page has no layout
// data (§4.D).
type FalscheSeitenZahlError struct {
	Seite int
}

func (e *FalscheSeitenZahlError) Error() string {
	return errors.Errorf("falsche seitenzahl: Seite %d hat keine Layoutdaten", e.Seite).Error()
}

// UnbekannterSeitentypError is returned when the classifier (§4.F) cannot
// decide a page's SeitenTyp.
type UnbekannterSeitentypError struct {
	Seite int
}

func (e *UnbekannterSeitentypError) Error() string {
	return errors.Errorf("unbekannter seitentyp auf Seite %d", e.Seite).Error()
}

// PdfError wraps an underlying PDF-library failure (§7 Pdf(…)).
type PdfError struct {
	Cause error
}

func (e *PdfError) Error() string { return "pdf: " + e.Cause.Error() }
func (e *PdfError) Unwrap() error { return e.Cause }

// BildError wraps an image decode/encode failure keyed by the offending
// path (§7 Bild(path, …)).
type BildError struct {
	Path  string
	Cause error
}

func (e *BildError) Error() string {
	return errors.Errorf("bild %s: %v", e.Path, e.Cause).Error()
}
func (e *BildError) Unwrap() error { return e.Cause }

// IoError wraps a filesystem failure keyed by the offending path (§7
// Io(path, …)).
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string {
	return errors.Errorf("io %s: %v", e.Path, e.Cause).Error()
}
func (e *IoError) Unwrap() error { return e.Cause }
