package assemble_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/assemble"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/ocr"
)

func TestColumnLineModeMergesWithinBreakThreshold(t *testing.T) {
	col := model.Column{MinX: 0, MaxX: 100, MinY: 0, MaxY: 1000, LineBreakAfterPx: 10}
	// column crop is 1000x2000 px covering 100x1000mm -> 2px/mm in y.
	lines := []ocr.Line{
		{Rect: image.Rect(0, 0, 500, 50), Text: "Zeile1"},
		{Rect: image.Rect(0, 60, 500, 100), Text: "Zeile2"}, // 5mm gap, within 10mm threshold -> merge
		{Rect: image.Rect(0, 2000, 500, 2050), Text: "Weit weg"},
	}
	out := assemble.Column(col, lines, 1000, 2000, nil, nil)
	if assert.Len(t, out, 2) {
		assert.Equal(t, "Zeile1 Zeile2", out[0].Text)
		assert.Equal(t, "Weit weg", out[1].Text)
	}
}

func TestColumnLineModeFoldsNativeTextblocks(t *testing.T) {
	col := model.Column{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100, LineBreakAfterPx: 10}
	lines := []ocr.Line{
		{Rect: image.Rect(0, 0, 100, 50), Text: "OCR"},
	}
	native := []model.Textblock{
		{Text: "Native", StartX: 5, EndX: 50, StartY: 6, EndY: 8}, // starts at 6mm, inside the OCR line's 0-50mm span, merges
		{Text: "Andere Spalte", StartX: 500, EndX: 550, StartY: 6, EndY: 8}, // outside column, dropped
	}
	out := assemble.Column(col, lines, 100, 100, native, nil)
	if assert.Len(t, out, 1) {
		assert.Equal(t, "OCR Native", out[0].Text)
	}
}

func TestColumnCellModeSlicesAtZeilen(t *testing.T) {
	col := model.Column{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
	native := []model.Textblock{
		{Text: "Oben", StartX: 1, StartY: 5, EndX: 10, EndY: 10},
		{Text: "Unten", StartX: 1, StartY: 60, EndX: 10, EndY: 65},
		{Text: "AmRand", StartX: 1, StartY: 99, EndX: 10, EndY: 99},
	}
	// 500 is outside [MinY,MaxY] and is ignored as a cut (§8 boundary
	// behaviour), leaving a single cut at 50 and thus two cells.
	out := assemble.Column(col, nil, 100, 100, native, []float64{50, 500})
	if assert.Len(t, out, 2) {
		assert.Equal(t, "Oben", out[0].Text)
		assert.Equal(t, "Unten AmRand", out[1].Text)
	}
}
