package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func TestParseAbt1ReadsMainEntries(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)},
		{tb("BV 1", 10)},
		{tb("Max Mustermann, Eigentümer kraft Erbfolge", 10)},
	}
	got := ParseAbt1(texte, true)
	if assert.Len(t, got, 1) {
		assert.Equal(t, uint(1), got[0].LfdNr)
		assert.Equal(t, "BV 1", got[0].BvNr)
		assert.Equal(t, "Max Mustermann, Eigentümer kraft Erbfolge", got[0].Text)
	}
}

func TestParseAbt2ReadsMainEntries(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("3", 10)},
		{tb("BV 2", 10)},
		{tb("Grunddienstbarkeit fuer Leitungsrecht zugunsten Nachbarn", 10)},
	}
	got := ParseAbt2(texte, true)
	if assert.Len(t, got, 1) {
		assert.Equal(t, uint(3), got[0].LfdNr)
		assert.Equal(t, "BV 2", got[0].BvNr)
	}
}

func TestParseAbt2VeraenderungenReadsBetragColumn(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)},
		{tb("50.000,00 EUR", 10)},
		{tb("Abtretung an die Sparkasse Musterstadt", 10)},
	}
	got := ParseAbt2Veraenderungen(texte, true)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "50.000,00 EUR", got[0].Betrag)
		assert.Equal(t, "Abtretung an die Sparkasse Musterstadt", got[0].Text)
	}
}

func TestParseAbt3ReadsMainEntries(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)},
		{tb("BV 1", 10)},
		{tb("50.000,00 EUR", 10)},
		{tb("Grundschuld ohne Brief fuer die Sparkasse Musterstadt", 10)},
	}
	got := ParseAbt3(texte, true)
	if assert.Len(t, got, 1) {
		assert.Equal(t, uint(1), got[0].LfdNr)
		assert.Equal(t, "BV 1", got[0].BvNr)
		assert.Equal(t, "Grundschuld ohne Brief fuer die Sparkasse Musterstadt", got[0].Text)
	}
}

func TestParseAbt3VeraenderungenAndLoeschungenShareLayout(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("2", 10)},
		{tb("10.000,00 EUR", 10)},
		{tb("Teilloeschung zugunsten des Eigentuemers", 10)},
	}
	ver := ParseAbt3Veraenderungen(texte, true)
	loe := ParseAbt3Loeschungen(texte, true)
	if assert.Len(t, ver, 1) {
		assert.Equal(t, uint(2), ver[0].LfdNr)
	}
	if assert.Len(t, loe, 1) {
		assert.Equal(t, uint(2), loe[0].LfdNr)
	}
}

func TestParseMainEntriesSkipsJvaBrandenArtifactInBvNr(t *testing.T) {
	texte := [][]model.Textblock{
		{tb("1", 10)},
		{tb("JVA Branden", 10)},
		{tb("Langer Freitext mit genug Zeichen fuer den Anker", 10)},
	}
	got := ParseAbt1(texte, true)
	assert.Empty(t, got)
}
