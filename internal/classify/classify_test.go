package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/classify"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/config"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestLandscape(t *testing.T) {
	assert.True(t, classify.Landscape(2100, 1500))
	assert.False(t, classify.Landscape(1500, 2100))
}

func TestSeitentypAbt2VerticalVeraenderungen(t *testing.T) {
	cfg := loadConfig(t)
	typ, err := classify.Seitentyp(cfg, 4, "Abteilung II Veränderungen und Vormerkungen", false)
	require.NoError(t, err)
	assert.Equal(t, model.Abt2VerticalVeraenderungen, typ)
}

func TestSeitentypAbt3Priority(t *testing.T) {
	cfg := loadConfig(t)
	// Abt3 keywords are matched first, even in documents that also
	// happen to echo "Abteilung" stray OCR fragments.
	typ, err := classify.Seitentyp(cfg, 5, "Dritte Abteilung Hypotheken Grundschulden Rentenschulden", true)
	require.NoError(t, err)
	assert.Equal(t, model.Abt3Horizontal, typ)
}

func TestSeitentypBVZuAbschreibungen(t *testing.T) {
	cfg := loadConfig(t)
	typ, err := classify.Seitentyp(cfg, 2, "Bestandsverzeichnis Abschreibungen", true)
	require.NoError(t, err)
	assert.Equal(t, model.BVHorizontalZuAbschreibungen, typ)
}

func TestSeitentypAbt1ByBeideKeywords(t *testing.T) {
	cfg := loadConfig(t)
	typ, err := classify.Seitentyp(cfg, 3, "Eigentümer laut Grundlage der Eintragung vom...", false)
	require.NoError(t, err)
	assert.Equal(t, model.Abt1Vertical, typ)
}

func TestSeitentypUnknown(t *testing.T) {
	cfg := loadConfig(t)
	_, err := classify.Seitentyp(cfg, 9, "vollkommen unzusammenhängender OCR Muell", false)
	require.Error(t, err)
	var target *model.UnbekannterSeitentypError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 9, target.Seite)
}

func TestResolveOverrideWins(t *testing.T) {
	override := model.Abt1Vertical
	got := classify.ResolveOverride(model.BVHorizontal, &override)
	assert.Equal(t, model.Abt1Vertical, got)

	got = classify.ResolveOverride(model.BVHorizontal, nil)
	assert.Equal(t, model.BVHorizontal, got)
}
