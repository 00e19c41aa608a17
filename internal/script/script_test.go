package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func TestTextSaubernRunsDefaultScript(t *testing.T) {
	out, err := TextSaubern(DefaultTextSaubern, "  foo   bar  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "foo bar", out)
}

func TestTextSaubernMemoizesIdenticalCalls(t *testing.T) {
	const src = `var Run = func(text string, regexMap gbxscript.RegexMap) string { return text + "!" }`
	out1, err := TextSaubern(src, "once", nil)
	require.NoError(t, err)
	out2, err := TextSaubern(src, "once", nil)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Equal(t, "once!", out1)
}

func TestTextSaubernFailingScriptReturnsFehler(t *testing.T) {
	_, err := TextSaubern("var Run = func(text string, regexMap gbxscript.RegexMap) int { return 1 }", "x", nil)
	require.Error(t, err)
	var fe *Fehler
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, "text_saubern", fe.Funktion)
}

func TestTextSaubernSyntaxErrorReturnsFehler(t *testing.T) {
	_, err := TextSaubern("this is not go", "x", nil)
	require.Error(t, err)
	var fe *Fehler
	assert.ErrorAs(t, err, &fe)
}

func TestAbkuerzungenRunsDefaultScript(t *testing.T) {
	out, err := Abkuerzungen(DefaultAbkuerzungen, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Nr.")
}

func TestFlurstueckeAuslesenPassthroughDefault(t *testing.T) {
	in := []model.Spalte1Eintrag{{LfdNr: 1, Text: "a"}}
	out, err := FlurstueckeAuslesen(DefaultFlurstueckeAuslesen, in, "a, b", nil)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestKlassifiziereRechteArtAbt2DefaultScript(t *testing.T) {
	art, err := KlassifiziereRechteArtAbt2(DefaultKlassifiziereRechteArtAbt2, []string{"Grunddienstbarkeit fuer X."}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RechteArtGrunddienstbarkeit, art)

	art, err = KlassifiziereRechteArtAbt2(DefaultKlassifiziereRechteArtAbt2, []string{"Wohnrecht fuer Y."}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RechteArtNichtDefiniert, art)
}

func TestRechtsinhaberAuslesenAbt2DefaultScript(t *testing.T) {
	out, err := RechtsinhaberAuslesenAbt2(DefaultRechtsinhaberAuslesenAbt2, []string{"Max Mustermann."}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann.", out)
}

func TestRechtsinhaberAuslesenAbt3DefaultScript(t *testing.T) {
	out, err := RechtsinhaberAuslesenAbt3(DefaultRechtsinhaberAuslesenAbt3, []string{"Sparkasse."}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sparkasse.", out)
}

func TestRangvermerkAuslesenAbt2DefaultScript(t *testing.T) {
	out, err := RangvermerkAuslesenAbt2(DefaultRangvermerkAuslesenAbt2, []string{"Das Recht steht im gleichen Rang mit Abt. II Nr. 3."}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "gleichen Rang")
}

func TestTextKuerzenAbt2DefaultScript(t *testing.T) {
	out, err := TextKuerzenAbt2(DefaultTextKuerzenAbt2, []string{"Satz eins.", "Satz zwei."}, "Max Mustermann", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Satz eins. Satz zwei.", out)
}

func TestTextKuerzenAbt3DefaultScript(t *testing.T) {
	out, err := TextKuerzenAbt3(DefaultTextKuerzenAbt3, []string{"Satz eins."}, model.Betrag{Wert: 1000}, model.SchuldenArtGrundschuld, "Sparkasse", nil)
	require.NoError(t, err)
	assert.Equal(t, "Satz eins.", out)
}

func TestBetragAuslesenDefaultScriptReturnsZeroValue(t *testing.T) {
	b, err := BetragAuslesen(DefaultBetragAuslesen, []string{"50.000,00 Euro"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.Betrag{}, b)
}

func TestKlassifiziereSchuldenArtAbt3DefaultScript(t *testing.T) {
	art, err := KlassifiziereSchuldenArtAbt3(DefaultKlassifiziereSchuldenArtAbt3, []string{"Es wurde eine Grundschuld eingetragen."}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SchuldenArtGrundschuld, art)

	art, err = KlassifiziereSchuldenArtAbt3(DefaultKlassifiziereSchuldenArtAbt3, []string{"Es wurde eine Hypothek eingetragen."}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SchuldenArtHypothek, art)
}
