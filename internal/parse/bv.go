package parse

import (
	"strings"
	"unicode"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// fieldAt reads one field either directly (cell mode, where every column's
// Textblock slice is already row-aligned to the page's zeilen cuts) or via
// the anchor-and-look-across geometry (line mode), per §4.K.
func fieldAt(texte [][]model.Textblock, cellMode bool, col, i int, ankerStartY float64) (model.Textblock, bool) {
	if cellMode {
		return cellAt(texte, col, i)
	}
	if col < 0 || col >= len(texte) {
		return model.Textblock{}, false
	}
	return getErsterTextBeiCa(texte[col], i, ankerStartY)
}

func parseUint64(s string) uint64 {
	return uint64(parseUint(s))
}

// splitGemarkungFlur splits a vertical BV page's combined "flur" cell into
// its letter run (Gemarkung) and digit run (Flur), per §4.K's vertical cell
// layout note.
func splitGemarkungFlur(s string) (*string, uint) {
	var alpha, digit strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit.WriteRune(r)
		case unicode.IsLetter(r) || r == ' ':
			alpha.WriteRune(r)
		}
	}
	gemarkung := strings.TrimSpace(alpha.String())
	var g *string
	if gemarkung != "" {
		g = &gemarkung
	}
	return g, parseUint(digit.String())
}

// ParseBvHorizontal implements §4.K's BV-horz main entry layout: columns
// 0=lfd_nr, 1=bisherige_lfd_nr, 2=gemarkung, 3=flur, 4=flurstueck,
// 5=bezeichnung, 6=ha, 7=a, 8=m². Line mode anchors on column 4
// (flurstueck); cell mode reads every column at the same row index.
func ParseBvHorizontal(texte [][]model.Textblock, cellMode bool) []model.BvEintrag {
	ankerCol := 4
	if cellMode {
		ankerCol = 0
	}
	if ankerCol >= len(texte) {
		return nil
	}

	var out []model.BvEintrag
	for i, anker := range texte[ankerCol] {
		ay := anker.StartY

		lfdTb, _ := fieldAt(texte, cellMode, 0, i, ay)
		bisherTb, bisherOk := fieldAt(texte, cellMode, 1, i, ay)
		gemarkTb, gemarkOk := fieldAt(texte, cellMode, 2, i, ay)
		flurTb, _ := fieldAt(texte, cellMode, 3, i, ay)
		flurstTb, flurstOk := fieldAt(texte, cellMode, 4, i, ay)
		bezTb, bezOk := fieldAt(texte, cellMode, 5, i, ay)
		haTb, haOk := fieldAt(texte, cellMode, 6, i, ay)
		aTb, aOk := fieldAt(texte, cellMode, 7, i, ay)
		m2Tb, m2Ok := fieldAt(texte, cellMode, 8, i, ay)

		e := model.BvEintrag{
			Typ:   model.BvTypFlurstueck,
			LfdNr: parseUint(trimmed(lfdTb)),
			Flur:  parseUint(trimmed(flurTb)),
		}
		if bisherOk {
			e.BisherigeLfdNr = parseUintPtr(trimmed(bisherTb))
		}
		if gemarkOk {
			g := trimmed(gemarkTb)
			e.Gemarkung = &g
		}
		flurstRaw := ""
		if flurstOk {
			flurstRaw = trimmed(flurstTb)
			e.Flurstueck = flurstueckDigitsSlash(flurstRaw)
		}
		if bezOk {
			b := trimmed(bezTb)
			e.Bezeichnung = &b
		}
		e.Groesse = hektarGroesse(haOk, haTb, aOk, aTb, m2Ok, m2Tb)

		if hasArtifact(flurstRaw) || (e.Bezeichnung != nil && hasArtifact(*e.Bezeichnung)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hektarGroesse(haOk bool, haTb model.Textblock, aOk bool, aTb model.Textblock, m2Ok bool, m2Tb model.Textblock) *model.FlurstueckGroesse {
	if !haOk && !aOk && !m2Ok {
		return nil
	}
	hg := model.HektarGroesse{}
	if haOk {
		v := parseUint64(trimmed(haTb))
		hg.Hektar = &v
	}
	if aOk {
		v := parseUint64(trimmed(aTb))
		hg.Ar = &v
	}
	if m2Ok {
		v := parseUint64(trimmed(m2Tb))
		hg.QuadratMeter = &v
	}
	return &model.FlurstueckGroesse{Hektar: &hg}
}

// ParseBvVertical implements §4.K's BV-vert main entry layout: columns
// 0=lfd_nr, 1=bisherige_lfd_nr, then either (2=flur-combined, 3=flurstueck)
// or, for the variant2 schema, (2=flurstueck, 3=flur-combined), 4=bezeichnung,
// 5=m². Line mode anchors on column 0 (lfd_nr).
func ParseBvVertical(texte [][]model.Textblock, variant2 bool, cellMode bool) []model.BvEintrag {
	const ankerCol = 0
	if ankerCol >= len(texte) {
		return nil
	}

	// bv_vert orders (flur-combined, flurstueck) at columns (2,3); the
	// variant2 schema swaps them to (flurstueck, flur-combined).
	flurCol, flurstCol := 2, 3
	if variant2 {
		flurCol, flurstCol = 3, 2
	}

	var out []model.BvEintrag
	for i, anker := range texte[ankerCol] {
		ay := anker.StartY

		bisherTb, bisherOk := fieldAt(texte, cellMode, 1, i, ay)
		flurTb, flurOk := fieldAt(texte, cellMode, flurCol, i, ay)
		flurstTb, flurstOk := fieldAt(texte, cellMode, flurstCol, i, ay)
		bezTb, bezOk := fieldAt(texte, cellMode, 4, i, ay)
		m2Tb, m2Ok := fieldAt(texte, cellMode, 5, i, ay)

		e := model.BvEintrag{
			Typ:   model.BvTypFlurstueck,
			LfdNr: parseUint(trimmed(anker)),
		}
		if bisherOk {
			e.BisherigeLfdNr = parseUintPtr(trimmed(bisherTb))
		}
		if flurOk {
			g, flur := splitGemarkungFlur(trimmed(flurTb))
			e.Gemarkung = g
			e.Flur = flur
		}
		flurstRaw := ""
		if flurstOk {
			flurstRaw = trimmed(flurstTb)
			e.Flurstueck = flurstueckDigitsSlash(flurstRaw)
		}
		if bezOk {
			b := trimmed(bezTb)
			e.Bezeichnung = &b
		}
		if m2Ok {
			v := parseUint64(trimmed(m2Tb))
			e.Groesse = &model.FlurstueckGroesse{Metric: &model.MetricGroesse{QuadratMeter: &v}}
		}

		if hasArtifact(flurstRaw) || (e.Bezeichnung != nil && hasArtifact(*e.Bezeichnung)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func parseBvZuAbPair(texte [][]model.Textblock, cellMode bool, ankerCol, textCol int) []model.BvZuAbschreibung {
	if ankerCol >= len(texte) {
		return nil
	}
	var out []model.BvZuAbschreibung
	for i, bvTb := range texte[ankerCol] {
		textTb, _ := fieldAt(texte, cellMode, textCol, i, bvTb.StartY)
		bvNr := trimmed(bvTb)
		text := trimmed(textTb)
		if bvNr == "" && text == "" {
			continue
		}
		if hasArtifact(bvNr) || hasArtifact(text) {
			continue
		}
		out = append(out, model.BvZuAbschreibung{BvNr: bvNr, Text: text})
	}
	return out
}

// ParseBvZuschreibungen reads columns (0,1) = (bv_nr, text) of a BV
// Zu-/Abschreibungen page.
func ParseBvZuschreibungen(texte [][]model.Textblock, cellMode bool) []model.BvZuAbschreibung {
	return parseBvZuAbPair(texte, cellMode, 0, 1)
}

// ParseBvAbschreibungen reads columns (2,3) = (bv_nr, text) of a BV
// Zu-/Abschreibungen page.
func ParseBvAbschreibungen(texte [][]model.Textblock, cellMode bool) []model.BvZuAbschreibung {
	return parseBvZuAbPair(texte, cellMode, 2, 3)
}

func mergeBvContinuation(prev *model.BvEintrag, cont model.BvEintrag) {
	if prev.BisherigeLfdNr == nil && cont.BisherigeLfdNr != nil {
		prev.BisherigeLfdNr = cont.BisherigeLfdNr
	}
	if prev.Gemarkung == nil && cont.Gemarkung != nil {
		prev.Gemarkung = cont.Gemarkung
	}
	if prev.Flur == 0 && cont.Flur != 0 {
		prev.Flur = cont.Flur
	}
	if prev.Flurstueck == "" && cont.Flurstueck != "" {
		prev.Flurstueck = cont.Flurstueck
	}
	if prev.Bezeichnung == nil && cont.Bezeichnung != nil {
		prev.Bezeichnung = cont.Bezeichnung
	}
	if prev.Groesse == nil && cont.Groesse != nil {
		prev.Groesse = cont.Groesse
	}
	if prev.Text == "" && cont.Text != "" {
		prev.Text = cont.Text
	}
}

func foldBvContinuations(entries []model.BvEintrag) []model.BvEintrag {
	var out []model.BvEintrag
	for _, e := range entries {
		if e.LfdNr == 0 && len(out) > 0 {
			mergeBvContinuation(&out[len(out)-1], e)
			continue
		}
		out = append(out, e)
	}
	return out
}

// repairLfdNrSequence implements §4.K's second repair pass: for every
// index i>0 where lfd_nr[i-1] > lfd_nr[i], a gap of 2 to lfd_nr[i+1] forces
// lfd_nr[i] to the expected successor value; a gap of 1 whose
// bisherige_lfd_nr matches the predecessor instead adopts lfd_nr[i+1].
func repairLfdNrSequence(entries []model.BvEintrag) {
	for i := 1; i < len(entries)-1; i++ {
		prev := int(entries[i-1].LfdNr)
		cur := int(entries[i].LfdNr)
		next := int(entries[i+1].LfdNr)
		if prev <= cur {
			continue
		}
		switch {
		case next-prev == 2:
			entries[i].LfdNr = uint(prev + 1)
		case next-prev == 1:
			b := entries[i].BisherigeLfdNr
			if b != nil && int(*b) == prev {
				entries[i].LfdNr = uint(next)
			}
		}
	}
}

// RepairBv applies §4.K's two-pass BV repair: folding lfd_nr==0
// continuation rows into their predecessor, then correcting isolated
// out-of-order lfd_nr values.
func RepairBv(entries []model.BvEintrag) []model.BvEintrag {
	folded := foldBvContinuations(entries)
	repairLfdNrSequence(folded)
	return folded
}
