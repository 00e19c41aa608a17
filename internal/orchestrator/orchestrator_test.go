package orchestrator

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/parse"
)

func TestPoolSizeMatchesFormula(t *testing.T) {
	got := PoolSize()
	n := runtime.NumCPU()
	want := 1
	if n > 3 {
		want = (n + 1) / 2
		if want > maxPoolSize {
			want = maxPoolSize
		}
	}
	assert.Equal(t, want, got)
	assert.LessOrEqual(t, got, maxPoolSize)
	assert.GreaterOrEqual(t, got, 1)
}

func tb(text string, x0, x1, y0, y1 float64) model.Textblock {
	return model.Textblock{Text: text, StartX: x0, EndX: x1, StartY: y0, EndY: y1}
}

func TestFoldSectionsRoutesBvHorizontalAndRepairsLfdNr(t *testing.T) {
	// columns: 0 lfd_nr, 1 bisherige_lfd_nr, 2 gemarkung, 3 flur, 4 flurstueck, 5 bezeichnung, 6 ha, 7 a, 8 m2
	texte := make([][]model.Textblock, 9)
	texte[0] = []model.Textblock{tb("1", 0, 5, 0, 5), tb("0", 0, 5, 6, 11)}
	texte[4] = []model.Textblock{tb("87/2", 40, 50, 0, 5), tb("87/3", 40, 50, 6, 11)}
	texte[5] = []model.Textblock{tb("Ackerland", 60, 90, 0, 5), tb("Weg", 60, 90, 6, 11)}
	texte[2] = []model.Textblock{tb("Musterdorf", 20, 40, 0, 5)}
	texte[3] = []model.Textblock{tb("1", 40, 45, 0, 5)}

	pages := []parse.PageInput{{Seite: 2, Typ: model.BVHorizontal, Texte: texte, HasZeilen: true}}

	g, warnungen := foldSections(pages)
	assert.Empty(t, warnungen)
	if assert.Len(t, g.Bestandsverzeichnis.Eintraege, 1) {
		e := g.Bestandsverzeichnis.Eintraege[0]
		assert.Equal(t, uint(1), e.LfdNr)
		assert.Equal(t, "87/2", e.Flurstueck)
		require.NotNil(t, e.Bezeichnung)
		assert.Equal(t, "Ackerland", *e.Bezeichnung)
	}
}
