package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func tb(text string, y float64) model.Textblock {
	return model.Textblock{Text: text, StartY: y, EndY: y + 5}
}

func TestParseBvHorizontalCellMode(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10), tb("2", 60)},       // lfd_nr
		{tb("", 10), tb("", 60)},         // bisherige_lfd_nr
		{tb("Musterdorf", 10), tb("", 60)}, // gemarkung
		{tb("3", 10), tb("3", 60)},       // flur
		{tb("87/2", 10), tb("88", 60)},   // flurstueck
		{tb("Ackerland", 10), tb("Wiese", 60)}, // bezeichnung
		{tb("1", 10), tb("", 60)},        // ha
		{tb("20", 10), tb("", 60)},       // a
		{tb("50", 10), tb("99", 60)},     // m2
	}

	got := ParseBvHorizontal(texte, true)
	if assert.Len(t, got, 2) {
		first := got[0]
		assert.Equal(t, uint(1), first.LfdNr)
		assert.Equal(t, "87/2", first.Flurstueck)
		assert.Equal(t, "Musterdorf", *first.Gemarkung)
		assert.Equal(t, "Ackerland", *first.Bezeichnung)
		if assert.NotNil(t, first.Groesse) && assert.NotNil(t, first.Groesse.Hektar) {
			assert.Equal(t, uint64(1), *first.Groesse.Hektar.Hektar)
			assert.Equal(t, uint64(20), *first.Groesse.Hektar.Ar)
			assert.Equal(t, uint64(50), *first.Groesse.Hektar.QuadratMeter)
		}
	}
}

func TestParseBvHorizontalDropsJvaBrandenArtifact(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)}, {tb("", 10)}, {tb("", 10)}, {tb("1", 10)},
		{tb("JVA Branden 9", 10)}, {tb("Text", 10)},
		{tb("", 10)}, {tb("", 10)}, {tb("10", 10)},
	}
	got := ParseBvHorizontal(texte, true)
	assert.Empty(t, got)
}

func TestParseBvVerticalSplitsGemarkungFromFlurCell(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("5", 10)},               // lfd_nr
		{tb("", 10)},                // bisherige_lfd_nr
		{tb("Musterdorf 12", 10)},   // flur-combined
		{tb("7/1", 10)},             // flurstueck
		{tb("Garten", 10)},          // bezeichnung
		{tb("300", 10)},             // m2
	}
	got := ParseBvVertical(texte, false, true)
	if assert.Len(t, got, 1) {
		e := got[0]
		assert.Equal(t, uint(5), e.LfdNr)
		assert.Equal(t, "Musterdorf", *e.Gemarkung)
		assert.Equal(t, uint(12), e.Flur)
		assert.Equal(t, "7/1", e.Flurstueck)
		if assert.NotNil(t, e.Groesse) && assert.NotNil(t, e.Groesse.Metric) {
			assert.Equal(t, uint64(300), *e.Groesse.Metric.QuadratMeter)
		}
	}
}

func TestParseBvVerticalVariant2SwapsFlurstueckAndFlur(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)},             // lfd_nr
		{tb("", 10)},              // bisherige_lfd_nr
		{tb("9/3", 10)},           // flurstueck (swapped position)
		{tb("Musterdorf 4", 10)},  // flur-combined (swapped position)
		{tb("Hof", 10)},           // bezeichnung
		{tb("80", 10)},            // m2
	}
	got := ParseBvVertical(texte, true, true)
	if assert.Len(t, got, 1) {
		e := got[0]
		assert.Equal(t, "9/3", e.Flurstueck)
		assert.Equal(t, "Musterdorf", *e.Gemarkung)
		assert.Equal(t, uint(4), e.Flur)
	}
}

func TestParseBvZuschreibungenAndAbschreibungenDropEmptyRows(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("12/1995", 10), tb("", 60)},
		{tb("Zuschreibung Text", 10), tb("", 60)},
		{tb("", 10), tb("14/1996", 60)},
		{tb("", 10), tb("Abschreibung Text", 60)},
	}
	zu := ParseBvZuschreibungen(texte, true)
	ab := ParseBvAbschreibungen(texte, true)
	if assert.Len(t, zu, 1) {
		assert.Equal(t, "12/1995", zu[0].BvNr)
	}
	if assert.Len(t, ab, 1) {
		assert.Equal(t, "14/1996", ab[0].BvNr)
	}
}

func TestRepairBvFoldsContinuationRows(t *testing.T) {
	bez1 := "Acker"
	entries := []model.BvEintrag{
		{LfdNr: 1, Flurstueck: "1", Bezeichnung: &bez1},
		{LfdNr: 0, Gemarkung: strPtr("Musterdorf")}, // continuation of lfd_nr 1
		{LfdNr: 2, Flurstueck: "2"},
	}
	out := RepairBv(entries)
	if assert.Len(t, out, 2) {
		assert.Equal(t, "Musterdorf", *out[0].Gemarkung)
		assert.Equal(t, "Acker", *out[0].Bezeichnung)
		assert.Equal(t, uint(2), out[1].LfdNr)
	}
}

func TestRepairBvFixesIrregularSequenceGapTwo(t *testing.T) {
	entries := []model.BvEintrag{
		{LfdNr: 5}, {LfdNr: 4}, {LfdNr: 7},
	}
	out := RepairBv(entries)
	assert.Equal(t, []uint{5, 6, 7}, lfdNrs(out))
}

func TestRepairBvFixesIrregularSequenceGapOneViaBisherige(t *testing.T) {
	five := uint(5)
	entries := []model.BvEintrag{
		{LfdNr: 5}, {LfdNr: 4, BisherigeLfdNr: &five}, {LfdNr: 6},
	}
	out := RepairBv(entries)
	assert.Equal(t, []uint{5, 6, 6}, lfdNrs(out))
}

func strPtr(s string) *string { return &s }

func lfdNrs(entries []model.BvEintrag) []uint {
	out := make([]uint, len(entries))
	for i, e := range entries {
		out[i] = e.LfdNr
	}
	return out
}
