package model

import (
	"strconv"

	"github.com/pkg/errors"
)

// Section names one of the four Grundbuch sections an edit targets.
type Section int

const (
	SectionBV Section = iota
	SectionAbt1
	SectionAbt2
	SectionAbt3
)

// Event is the edit language spec.md §4.L describes. Exactly one
// constructor-shaped field is set per event; Apply dispatches on it.
type Event struct {
	EintragNeu      *EintragNeu
	EintragLoeschen *EintragLoeschen
	EintragRoeten   *EintragRoeten
	EditText        *EditText
	BvTypAendern    *BvTypAendern
	KlassifiziereSeiteNeu *KlassifiziereSeiteNeu
	ZeileNeu        *ZeileNeu
	ZeileLoeschen   *ZeileLoeschen
	ResizeColumn    *ResizeColumn
}

type EintragNeu struct {
	Section Section
	Row     int
}

type EintragLoeschen struct {
	Section Section
	Row     int
}

type EintragRoeten struct {
	Section Section
	Row     int
	Wert    bool
}

type EditText struct {
	Section Section
	Row     int
	Field   string
	Value   string
}

type BvTypAendern struct {
	Row int
	Typ BvEintragTyp
}

type KlassifiziereSeiteNeu struct {
	Seite int
	Typ   SeitenTyp
}

type ZeileNeu struct {
	Seite int
	YMM   float64
}

type ZeileLoeschen struct {
	Seite int
	Index int
}

type ResizeColumnCorner int

const (
	CornerTopLeft ResizeColumnCorner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

type ResizeColumn struct {
	Seite    int
	ColumnID string
	Corner   ResizeColumnCorner
	XMM      float64
	YMM      float64
}

// Apply performs ev against f, pushing a snapshot of the prior Grundbuch
// state onto the undo stack and clearing the redo stack (§9: value
// snapshots, not command replay).
func (f *PdfFile) Apply(ev Event) error {
	prior := cloneGrundbuch(f.Analysiert)

	if err := f.applyEvent(ev); err != nil {
		return err
	}

	f.undoStack = append(f.undoStack, prior)
	f.redoStack = nil
	return nil
}

func (f *PdfFile) applyEvent(ev Event) error {
	switch {
	case ev.EintragNeu != nil:
		return f.eintragNeu(*ev.EintragNeu)
	case ev.EintragLoeschen != nil:
		return f.eintragLoeschen(*ev.EintragLoeschen)
	case ev.EintragRoeten != nil:
		return f.eintragRoeten(*ev.EintragRoeten)
	case ev.EditText != nil:
		return f.editText(*ev.EditText)
	case ev.BvTypAendern != nil:
		return f.bvTypAendern(*ev.BvTypAendern)
	case ev.KlassifiziereSeiteNeu != nil:
		f.KlassifikationNeu[itoaInt(ev.KlassifiziereSeiteNeu.Seite)] = ev.KlassifiziereSeiteNeu.Typ
		return nil
	case ev.ZeileNeu != nil:
		return f.zeileNeu(*ev.ZeileNeu)
	case ev.ZeileLoeschen != nil:
		return f.zeileLoeschen(*ev.ZeileLoeschen)
	case ev.ResizeColumn != nil:
		return f.resizeColumn(*ev.ResizeColumn)
	default:
		return errors.New("event: no operation set")
	}
}

// Undo pops the most recent snapshot back onto the current state, pushing
// the current state onto the redo stack. It is a no-op if there is
// nothing to undo.
func (f *PdfFile) Undo() bool {
	if len(f.undoStack) == 0 {
		return false
	}
	n := len(f.undoStack) - 1
	prior := f.undoStack[n]
	f.undoStack = f.undoStack[:n]

	f.redoStack = append(f.redoStack, cloneGrundbuch(f.Analysiert))
	f.Analysiert = prior
	return true
}

// Redo re-applies the most recently undone snapshot.
func (f *PdfFile) Redo() bool {
	if len(f.redoStack) == 0 {
		return false
	}
	n := len(f.redoStack) - 1
	next := f.redoStack[n]
	f.redoStack = f.redoStack[:n]

	f.undoStack = append(f.undoStack, cloneGrundbuch(f.Analysiert))
	f.Analysiert = next
	return true
}

func (f *PdfFile) eintragNeu(e EintragNeu) error {
	switch e.Section {
	case SectionBV:
		entries := f.Analysiert.Bestandsverzeichnis.Eintraege
		neu := BvEintrag{Typ: BvTypFlurstueck}
		entries = insertAt(entries, e.Row, neu)
		f.Analysiert.Bestandsverzeichnis.Eintraege = entries
	case SectionAbt1:
		f.Analysiert.Abt1.Eintraege = insertAt(f.Analysiert.Abt1.Eintraege, e.Row, Abt1Eintrag{})
	case SectionAbt2:
		f.Analysiert.Abt2.Eintraege = insertAt(f.Analysiert.Abt2.Eintraege, e.Row, Abt2Eintrag{})
	case SectionAbt3:
		f.Analysiert.Abt3.Eintraege = insertAt(f.Analysiert.Abt3.Eintraege, e.Row, Abt3Eintrag{})
	default:
		return errors.Errorf("eintragNeu: unknown section %v", e.Section)
	}
	return nil
}

func (f *PdfFile) eintragLoeschen(e EintragLoeschen) error {
	switch e.Section {
	case SectionBV:
		entries := f.Analysiert.Bestandsverzeichnis.Eintraege
		if e.Row < 0 || e.Row >= len(entries) {
			return errors.Errorf("eintragLoeschen: row %d out of range", e.Row)
		}
		f.Analysiert.Bestandsverzeichnis.Eintraege = append(entries[:e.Row], entries[e.Row+1:]...)
	case SectionAbt1:
		entries := f.Analysiert.Abt1.Eintraege
		if e.Row < 0 || e.Row >= len(entries) {
			return errors.Errorf("eintragLoeschen: row %d out of range", e.Row)
		}
		f.Analysiert.Abt1.Eintraege = append(entries[:e.Row], entries[e.Row+1:]...)
	case SectionAbt2:
		entries := f.Analysiert.Abt2.Eintraege
		if e.Row < 0 || e.Row >= len(entries) {
			return errors.Errorf("eintragLoeschen: row %d out of range", e.Row)
		}
		f.Analysiert.Abt2.Eintraege = append(entries[:e.Row], entries[e.Row+1:]...)
	case SectionAbt3:
		entries := f.Analysiert.Abt3.Eintraege
		if e.Row < 0 || e.Row >= len(entries) {
			return errors.Errorf("eintragLoeschen: row %d out of range", e.Row)
		}
		f.Analysiert.Abt3.Eintraege = append(entries[:e.Row], entries[e.Row+1:]...)
	default:
		return errors.Errorf("eintragLoeschen: unknown section %v", e.Section)
	}
	return nil
}

func (f *PdfFile) eintragRoeten(e EintragRoeten) error {
	wert := e.Wert
	switch e.Section {
	case SectionBV:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Bestandsverzeichnis.Eintraege) {
			return errors.Errorf("eintragRoeten: row %d out of range", e.Row)
		}
		f.Analysiert.Bestandsverzeichnis.Eintraege[e.Row].ManuellGeroetet = &wert
	case SectionAbt1:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt1.Eintraege) {
			return errors.Errorf("eintragRoeten: row %d out of range", e.Row)
		}
		f.Analysiert.Abt1.Eintraege[e.Row].ManuellGeroetet = &wert
	case SectionAbt2:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt2.Eintraege) {
			return errors.Errorf("eintragRoeten: row %d out of range", e.Row)
		}
		f.Analysiert.Abt2.Eintraege[e.Row].ManuellGeroetet = &wert
	case SectionAbt3:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt3.Eintraege) {
			return errors.Errorf("eintragRoeten: row %d out of range", e.Row)
		}
		f.Analysiert.Abt3.Eintraege[e.Row].ManuellGeroetet = &wert
	default:
		return errors.Errorf("eintragRoeten: unknown section %v", e.Section)
	}
	return nil
}

func (f *PdfFile) editText(e EditText) error {
	switch e.Section {
	case SectionBV:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Bestandsverzeichnis.Eintraege) {
			return errors.Errorf("editText: row %d out of range", e.Row)
		}
		entry := &f.Analysiert.Bestandsverzeichnis.Eintraege[e.Row]
		switch e.Field {
		case "text":
			entry.Text = e.Value
		case "bezeichnung":
			v := e.Value
			entry.Bezeichnung = &v
		case "flurstueck":
			entry.Flurstueck = e.Value
		}
	case SectionAbt1:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt1.Eintraege) {
			return errors.Errorf("editText: row %d out of range", e.Row)
		}
		if e.Field == "text" {
			f.Analysiert.Abt1.Eintraege[e.Row].Text = e.Value
		}
	case SectionAbt2:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt2.Eintraege) {
			return errors.Errorf("editText: row %d out of range", e.Row)
		}
		if e.Field == "text" {
			f.Analysiert.Abt2.Eintraege[e.Row].Text = e.Value
		}
	case SectionAbt3:
		if e.Row < 0 || e.Row >= len(f.Analysiert.Abt3.Eintraege) {
			return errors.Errorf("editText: row %d out of range", e.Row)
		}
		if e.Field == "text" {
			f.Analysiert.Abt3.Eintraege[e.Row].Text = e.Value
		}
	default:
		return errors.Errorf("editText: unknown section %v", e.Section)
	}
	return nil
}

func (f *PdfFile) bvTypAendern(e BvTypAendern) error {
	entries := f.Analysiert.Bestandsverzeichnis.Eintraege
	if e.Row < 0 || e.Row >= len(entries) {
		return errors.Errorf("bvTypAendern: row %d out of range", e.Row)
	}
	entries[e.Row].Typ = e.Typ
	return nil
}

func (f *PdfFile) zeileNeu(e ZeileNeu) error {
	key := itoaInt(e.Seite)
	a := f.AnpassungenSeite[key]
	a.Zeilen = insertSortedFloat(a.Zeilen, e.YMM)
	f.AnpassungenSeite[key] = a
	return nil
}

func (f *PdfFile) zeileLoeschen(e ZeileLoeschen) error {
	key := itoaInt(e.Seite)
	a := f.AnpassungenSeite[key]
	if e.Index < 0 || e.Index >= len(a.Zeilen) {
		return errors.Errorf("zeileLoeschen: index %d out of range", e.Index)
	}
	a.Zeilen = append(a.Zeilen[:e.Index], a.Zeilen[e.Index+1:]...)
	f.AnpassungenSeite[key] = a
	return nil
}

func (f *PdfFile) resizeColumn(e ResizeColumn) error {
	key := itoaInt(e.Seite)
	a := f.AnpassungenSeite[key]
	if a.Spalten == nil {
		a.Spalten = map[string]ColumnRect{}
	}
	r := a.Spalten[e.ColumnID]
	switch e.Corner {
	case CornerTopLeft:
		r.MinX, r.MinY = e.XMM, e.YMM
	case CornerTopRight:
		r.MaxX, r.MinY = e.XMM, e.YMM
	case CornerBottomLeft:
		r.MinX, r.MaxY = e.XMM, e.YMM
	case CornerBottomRight:
		r.MaxX, r.MaxY = e.XMM, e.YMM
	}
	a.Spalten[e.ColumnID] = r
	f.AnpassungenSeite[key] = a
	return nil
}

func insertAt[T any](s []T, i int, v T) []T {
	if i < 0 || i > len(s) {
		i = len(s)
	}
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertSortedFloat(s []float64, v float64) []float64 {
	i := 0
	for i < len(s) && s[i] < v {
		i++
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func cloneGrundbuch(g Grundbuch) Grundbuch {
	out := g
	out.Bestandsverzeichnis.Eintraege = append([]BvEintrag(nil), g.Bestandsverzeichnis.Eintraege...)
	out.Bestandsverzeichnis.Zuschreibungen = append([]BvZuAbschreibung(nil), g.Bestandsverzeichnis.Zuschreibungen...)
	out.Bestandsverzeichnis.Abschreibungen = append([]BvZuAbschreibung(nil), g.Bestandsverzeichnis.Abschreibungen...)
	out.Abt1.Eintraege = append([]Abt1Eintrag(nil), g.Abt1.Eintraege...)
	out.Abt1.Veraenderungen = append([]Abt1Veraenderung(nil), g.Abt1.Veraenderungen...)
	out.Abt1.Loeschungen = append([]Abt1Loeschung(nil), g.Abt1.Loeschungen...)
	out.Abt2.Eintraege = append([]Abt2Eintrag(nil), g.Abt2.Eintraege...)
	out.Abt2.Veraenderungen = append([]Abt2Veraenderung(nil), g.Abt2.Veraenderungen...)
	out.Abt2.Loeschungen = append([]Abt2Loeschung(nil), g.Abt2.Loeschungen...)
	out.Abt3.Eintraege = append([]Abt3Eintrag(nil), g.Abt3.Eintraege...)
	out.Abt3.Veraenderungen = append([]Abt3Veraenderung(nil), g.Abt3.Veraenderungen...)
	out.Abt3.Loeschungen = append([]Abt3Loeschung(nil), g.Abt3.Loeschungen...)
	out.Nebenbeteiligte = append([]Nebenbeteiligter(nil), g.Nebenbeteiligte...)
	out.Warnungen = append([]Warnung(nil), g.Warnungen...)
	return out
}

func itoaInt(i int) string {
	return strconv.Itoa(i)
}
