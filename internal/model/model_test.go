package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func TestIsRedactedManuellOverridesAutomatisch(t *testing.T) {
	ja, nein := true, false

	e := model.BvEintrag{AutomatischGeroetet: true}
	assert.True(t, e.IsRedacted())

	e.ManuellGeroetet = &nein
	assert.False(t, e.IsRedacted(), "manuell nein must override automatisch ja")

	e.AutomatischGeroetet = false
	e.ManuellGeroetet = &ja
	assert.True(t, e.IsRedacted(), "manuell ja must override automatisch nein")
}

func TestGrundbuchStatus(t *testing.T) {
	var g model.Grundbuch
	assert.Equal(t, model.StatusOK, g.Status())

	typ := model.TypBank
	g.Nebenbeteiligte = []model.Nebenbeteiligter{{Typ: &typ, Name: "Kreissparkasse"}}
	assert.Equal(t, model.StatusKeineOrdnungsnummern, g.Status())

	onr := 812000
	g.Nebenbeteiligte[0].Ordnungsnummer = &onr
	assert.Equal(t, model.StatusOK, g.Status())

	g.Warnungen = []model.Warnung{{Stufe: model.StufeHinweis, Quelle: "test", Text: "harmlos"}}
	assert.Equal(t, model.StatusOK, g.Status())

	g.Warnungen = append(g.Warnungen, model.Warnung{Stufe: model.StufeFehler, Quelle: "test", Text: "kaputt"})
	assert.Equal(t, model.StatusFehler, g.Status(), "any Fehler warning wins over missing-Ordnungsnummer")
}

func TestNextOrdnungsnummerStartsAtTypeBlock(t *testing.T) {
	n, err := model.NextOrdnungsnummer(model.TypGmbH, nil)
	require.NoError(t, err)
	assert.Equal(t, 819000, n)

	n, err = model.NextOrdnungsnummer(model.TypGmbH, []int{819000, 819004, 819002})
	require.NoError(t, err)
	assert.Equal(t, 819005, n)
}

func TestNextOrdnungsnummerIgnoresNumbersOutsideTheBlock(t *testing.T) {
	// A stray Agrar number in the caller's list must not advance Bank's
	// counter past its own block.
	n, err := model.NextOrdnungsnummer(model.TypBank, []int{813500})
	require.NoError(t, err)
	assert.Equal(t, 812000, n)
}

func TestNextOrdnungsnummerExhaustedBlock(t *testing.T) {
	_, err := model.NextOrdnungsnummer(model.TypBank, []int{812999})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrOrdnungsnummerErschoepft)

	// One below the bound still allocates the final number.
	n, err := model.NextOrdnungsnummer(model.TypBank, []int{812998})
	require.NoError(t, err)
	assert.Equal(t, 812999, n)
}

func TestNextOrdnungsnummerSharedPrivatBlock(t *testing.T) {
	// TypPrivat, TypPrivatM and TypPrivatF share the 814000 start, but the
	// allocator only looks at "existing" numbers the caller passes for that
	// exact type, so callers are responsible for a shared view if they
	// want a shared counter.
	n, err := model.NextOrdnungsnummer(model.TypPrivatM, []int{814000, 814001})
	require.NoError(t, err)
	assert.Equal(t, 814002, n)
}

func TestOrdnungsnummernAutomatischVergeben(t *testing.T) {
	bank := model.TypBank
	agrar := model.TypAgrar
	existing := 812007

	v := []model.Nebenbeteiligter{
		{Typ: &bank, Name: "Hat schon eine", Ordnungsnummer: &existing},
		{Typ: &bank, Name: "Braucht eine"},
		{Typ: &agrar, Name: "Genossenschaft"},
	}

	require.NoError(t, model.OrdnungsnummernAutomatischVergeben(v))

	require.NotNil(t, v[1].Ordnungsnummer)
	assert.Equal(t, 812008, *v[1].Ordnungsnummer)

	require.NotNil(t, v[2].Ordnungsnummer)
	assert.Equal(t, 813000, *v[2].Ordnungsnummer)
}

func TestPdfFileIstGeladen(t *testing.T) {
	f := model.NewPdfFile("/tmp/x.pdf", model.Titelblatt{Amtsgericht: "Lichtenberg", GrundbuchVon: "Fennpfuhl", Blatt: 42}, []int{1, 2, 3})
	assert.False(t, f.IstGeladen())

	f.Geladen["1"] = model.SeiteParsed{Typ: model.BVVertical}
	f.SeitenVersuchtGeladen["2"] = true
	assert.False(t, f.IstGeladen(), "page 3 still unaccounted for")

	f.SeitenVersuchtGeladen["3"] = true
	assert.True(t, f.IstGeladen())
}

func TestApplyUndoRedoBvEintragNeuEditText(t *testing.T) {
	f := model.NewPdfFile("/tmp/x.pdf", model.Titelblatt{Amtsgericht: "A", GrundbuchVon: "B", Blatt: 1}, []int{1})

	original := f.Analysiert.Bestandsverzeichnis.Eintraege

	require.NoError(t, f.Apply(model.Event{EintragNeu: &model.EintragNeu{Section: model.SectionBV, Row: 0}}))
	require.Len(t, f.Analysiert.Bestandsverzeichnis.Eintraege, 1)

	require.NoError(t, f.Apply(model.Event{EditText: &model.EditText{
		Section: model.SectionBV, Row: 0, Field: "flurstueck", Value: "3",
	}}))
	assert.Equal(t, "3", f.Analysiert.Bestandsverzeichnis.Eintraege[0].Flurstueck)

	assert.True(t, f.Undo())
	assert.True(t, f.Undo())

	assert.Equal(t, original, f.Analysiert.Bestandsverzeichnis.Eintraege,
		"two undos after EintragNeu;EditText must restore the original (possibly nil/empty) slice")
	assert.False(t, f.Undo(), "nothing left to undo")

	assert.True(t, f.Redo())
	require.Len(t, f.Analysiert.Bestandsverzeichnis.Eintraege, 1)
	assert.Equal(t, "", f.Analysiert.Bestandsverzeichnis.Eintraege[0].Flurstueck)
}

func TestApplyEintragRoetenAndLoeschen(t *testing.T) {
	f := model.NewPdfFile("/tmp/x.pdf", model.Titelblatt{}, []int{1})
	require.NoError(t, f.Apply(model.Event{EintragNeu: &model.EintragNeu{Section: model.SectionAbt2, Row: 0}}))
	require.NoError(t, f.Apply(model.Event{EintragRoeten: &model.EintragRoeten{Section: model.SectionAbt2, Row: 0, Wert: true}}))

	require.Len(t, f.Analysiert.Abt2.Eintraege, 1)
	assert.True(t, f.Analysiert.Abt2.Eintraege[0].IsRedacted())

	require.NoError(t, f.Apply(model.Event{EintragLoeschen: &model.EintragLoeschen{Section: model.SectionAbt2, Row: 0}}))
	assert.Empty(t, f.Analysiert.Abt2.Eintraege)
}

func TestApplyResizeColumnAndZeile(t *testing.T) {
	f := model.NewPdfFile("/tmp/x.pdf", model.Titelblatt{}, []int{1})

	require.NoError(t, f.Apply(model.Event{ZeileNeu: &model.ZeileNeu{Seite: 1, YMM: 50}}))
	require.NoError(t, f.Apply(model.Event{ZeileNeu: &model.ZeileNeu{Seite: 1, YMM: 10}}))
	assert.Equal(t, []float64{10, 50}, f.AnpassungenSeite["1"].Zeilen, "ZeileNeu keeps Zeilen sorted ascending")

	require.NoError(t, f.Apply(model.Event{ResizeColumn: &model.ResizeColumn{
		Seite: 1, ColumnID: "lfd-nr", Corner: model.CornerBottomRight, XMM: 30, YMM: 200,
	}}))
	rect := f.AnpassungenSeite["1"].Spalten["lfd-nr"]
	assert.Equal(t, 30.0, rect.MaxX)
	assert.Equal(t, 200.0, rect.MaxY)
}
