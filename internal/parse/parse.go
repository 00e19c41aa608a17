// Package parse implements §4.K: folding a booklet's per-page, per-column
// Textblock arrays (model.SeiteParsed) into the typed Bestandsverzeichnis
// / Abteilung 1/2/3 record lists, including the repair passes and the
// cross-page anchor-and-look-across geometry §4.K describes.
package parse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// jvaBrandenArtifact is a fixed footer artefact present in the training
// dataset's scans; every parser drops any entry whose bv_nr or primary
// text contains it (§4.K).
const jvaBrandenArtifact = "JVA Branden"

func hasArtifact(s string) bool {
	return strings.Contains(s, jvaBrandenArtifact)
}

// PageInput is one page's assembled-text result plus the geometry mode it
// was produced under, the unit §4.K's section parsers iterate.
type PageInput struct {
	Seite     int
	Typ       model.SeitenTyp
	Texte     [][]model.Textblock
	HasZeilen bool
}

// cellAt safely reads column col, row i from texte, the cell-mode
// accessor ("reads its fields straight from texte[col][i]").
func cellAt(texte [][]model.Textblock, col, i int) (model.Textblock, bool) {
	if col < 0 || col >= len(texte) {
		return model.Textblock{}, false
	}
	if i < 0 || i >= len(texte[col]) {
		return model.Textblock{}, false
	}
	return texte[col][i], true
}

// getErsterTextBeiCa implements digitalisiere.rs's get_erster_text_bei_ca:
// scanning column texte[col] from one row before the anchor's row index
// (saturating at 0), it returns the first Textblock whose y-band overlaps
// the anchor's band, allowing a 20mm upward tolerance (§4.K: "a 20mm
// upward tolerance").
func getErsterTextBeiCa(col []model.Textblock, skip int, ankerStartY float64) (model.Textblock, bool) {
	skip--
	if skip < 0 {
		skip = 0
	}
	start := ankerStartY - 20.0
	for i := skip; i < len(col); i++ {
		t := col[i]
		if t.StartY > start || !(t.EndY < start) {
			return t, true
		}
	}
	return model.Textblock{}, false
}

// stripNonDigits removes every rune that is not a decimal digit, used for
// numeric fields where the OCR/native text may carry stray punctuation.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flurstueckDigitsSlash keeps digits and "/", preserving a Flurstück
// designation like "87/2" while dropping OCR noise around it.
func flurstueckDigitsSlash(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseUint(s string) uint {
	digits := stripNonDigits(s)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func parseUintPtr(s string) *uint {
	digits := stripNonDigits(s)
	if digits == "" {
		return nil
	}
	n := parseUint(s)
	return &n
}

func trimmed(t model.Textblock) string {
	return strings.TrimSpace(t.Text)
}

// sortByStartY returns a copy of col sorted by StartY ascending (§3: "a
// textblock is a line or paragraph fragment; ordering within a column is
// by start_y ascending").
func sortByStartY(col []model.Textblock) []model.Textblock {
	out := make([]model.Textblock, len(col))
	copy(out, col)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartY < out[j].StartY })
	return out
}

// mainEntryFields is the common three/four-field shape §4.K describes for
// Abteilung 1/2/3's main entries and their Veränderungen/Löschungen
// siblings: a running number, an optional reference (BV number or
// currency amount), and the free text that anchors the row.
type mainEntryFields struct {
	lfdNr  uint
	bvNr   string
	betrag string
	text   string
}

// hasWhitespace reports whether s contains any space or tab, the test
// §4.K uses to tell prose from numeric-lookalike OCR noise.
func hasWhitespace(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '\t' {
			return true
		}
	}
	return false
}

// parseMainEntries implements §4.K's Abteilung main-entry shape: the text
// column is scanned first and filtered (blocks of length ≤12 or with no
// whitespace are dropped as numeric lookalikes); each retained block
// spawns one entry, with lfdNr/bvNr/betrag filled by the same
// anchor-and-look-across geometry used by the BV parsers. betragCol may be
// -1 when the page has no betrag column.
func parseMainEntries(texte [][]model.Textblock, cellMode bool, lfdCol, bvCol, betragCol, textCol int) []mainEntryFields {
	if textCol < 0 || textCol >= len(texte) {
		return nil
	}

	var out []mainEntryFields
	for i, block := range texte[textCol] {
		text := trimmed(block)
		if len(text) <= 12 || !hasWhitespace(text) {
			continue
		}

		ay := block.StartY
		lfdTb, _ := fieldAt(texte, cellMode, lfdCol, i, ay)
		bvTb, bvOk := fieldAt(texte, cellMode, bvCol, i, ay)

		var betrag string
		if betragCol >= 0 {
			bTb, ok := fieldAt(texte, cellMode, betragCol, i, ay)
			if ok {
				betrag = trimmed(bTb)
			}
		}

		bvNr := ""
		if bvOk {
			bvNr = trimmed(bvTb)
		}

		if hasArtifact(bvNr) || hasArtifact(text) {
			continue
		}

		out = append(out, mainEntryFields{
			lfdNr:  parseUint(trimmed(lfdTb)),
			bvNr:   bvNr,
			betrag: betrag,
			text:   text,
		})
	}
	return out
}
