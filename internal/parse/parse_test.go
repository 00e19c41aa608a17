package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "123", stripNonDigits("1a2.3"))
	assert.Equal(t, "", stripNonDigits("abc"))
}

func TestFlurstueckDigitsSlash(t *testing.T) {
	assert.Equal(t, "87/2", flurstueckDigitsSlash("Flst. 87/2 "))
}

func TestParseUintPtr(t *testing.T) {
	assert.Nil(t, parseUintPtr("   "))
	if v := parseUintPtr("007"); assert.NotNil(t, v) {
		assert.Equal(t, uint(7), *v)
	}
}

func TestHasArtifact(t *testing.T) {
	assert.True(t, hasArtifact("gesperrt JVA Branden"))
	assert.False(t, hasArtifact("normaler Text"))
}

func TestGetErsterTextBeiCaFindsOverlappingBand(t *testing.T) {
	col := []model.Textblock{
		{Text: "zu frueh", StartY: 10, EndY: 15},
		{Text: "treffer", StartY: 48, EndY: 55},
		{Text: "spaeter", StartY: 100, EndY: 110},
	}
	got, ok := getErsterTextBeiCa(col, 0, 50)
	if assert.True(t, ok) {
		assert.Equal(t, "treffer", got.Text)
	}
}

func TestGetErsterTextBeiCaScansFromOneRowBeforeAnchor(t *testing.T) {
	col := []model.Textblock{
		{Text: "eins", StartY: 10, EndY: 15},
		{Text: "zwei", StartY: 10, EndY: 15},
		{Text: "drei", StartY: 10, EndY: 15},
	}
	// Anchor row index 2 starts the scan at index 1, one row earlier.
	got, ok := getErsterTextBeiCa(col, 2, 10)
	if assert.True(t, ok) {
		assert.Equal(t, "zwei", got.Text)
	}

	// Index 0 saturates rather than underflowing.
	got, ok = getErsterTextBeiCa(col, 0, 10)
	if assert.True(t, ok) {
		assert.Equal(t, "eins", got.Text)
	}
}

func TestGetErsterTextBeiCaNoMatch(t *testing.T) {
	// Entirely above the anchor's 20mm-tolerant band: no candidate qualifies.
	col := []model.Textblock{{Text: "weit oben", StartY: 5, EndY: 10}}
	_, ok := getErsterTextBeiCa(col, 0, 1000)
	assert.False(t, ok)
}

func TestHasWhitespace(t *testing.T) {
	assert.True(t, hasWhitespace("zwei worte"))
	assert.False(t, hasWhitespace("einwort"))
}

func TestParseMainEntriesFiltersShortAndNoWhitespaceBlocks(t *testing.T) {
	texte := [][]model.Textblock{
		{{Text: "1", StartY: 10, EndY: 15}, {Text: "2", StartY: 60, EndY: 65}, {Text: "3", StartY: 120, EndY: 125}},
		{{Text: "BV 1", StartY: 10, EndY: 15}, {Text: "BV 2", StartY: 60, EndY: 65}, {Text: "BV 3", StartY: 120, EndY: 125}},
		{
			{Text: "kurz", StartY: 10, EndY: 15},                        // <=12 chars, dropped
			{Text: "AAAAAAAAAAAAAAAA", StartY: 60, EndY: 65},            // no whitespace, dropped
			{Text: "Eigentümer laut Auflassung", StartY: 120, EndY: 125}, // kept
		},
	}
	got := parseMainEntries(texte, true, 0, 1, -1, 2)
	if assert.Len(t, got, 1) {
		assert.Equal(t, uint(3), got[0].lfdNr)
		assert.Equal(t, "BV 3", got[0].bvNr)
		assert.Equal(t, "Eigentümer laut Auflassung", got[0].text)
	}
}
