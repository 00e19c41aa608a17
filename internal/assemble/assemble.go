// Package assemble implements §4.J: folding a column's HOCR lines and the
// native-extractor Textblocks that fall inside its rectangle into the
// cell sequence the section parsers (§4.K) consume, either by an
// automatic line-break heuristic or, when the page carries user-supplied
// horizontal rules, by slicing the column into fixed cells.
package assemble

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/ocr"
)

// hocrToMM converts a HOCR line's pixel rectangle to the page's mm space:
// divide by the column crop's pixel width/height, multiply by the
// column's mm width/height, then add the column's min offsets (§4.J,
// §9's coordinate-space rule).
func hocrToMM(l ocr.Line, col model.Column, pxWidth, pxHeight int) model.Textblock {
	mmWidth := col.MaxX - col.MinX
	mmHeight := col.MaxY - col.MinY
	sx := mmWidth / float64(pxWidth)
	sy := mmHeight / float64(pxHeight)
	return model.Textblock{
		Text:   l.Text,
		StartX: col.MinX + float64(l.Rect.Min.X)*sx,
		EndX:   col.MinX + float64(l.Rect.Max.X)*sx,
		StartY: col.MinY + float64(l.Rect.Min.Y)*sy,
		EndY:   col.MinY + float64(l.Rect.Max.Y)*sy,
	}
}

func insideColumn(t model.Textblock, col model.Column) bool {
	return t.StartX >= col.MinX && t.StartX <= col.MaxX && t.StartY >= col.MinY && t.StartY <= col.MaxY
}

// Column runs §4.J for one column: hocrLines are the column's parsed
// HOCR `.ocr_line` elements (in pixel space, as produced by the crop of
// dimensions pxWidth x pxHeight); native is the full page's Textblocks,
// filtered here to those that fall inside col; zeilen, if non-empty,
// switches to cell mode.
func Column(col model.Column, hocrLines []ocr.Line, pxWidth, pxHeight int, native []model.Textblock, zeilen []float64) []model.Textblock {
	var nativeInCol []model.Textblock
	for _, t := range native {
		if insideColumn(t, col) {
			// Same NFC normalisation the HOCR side applies, so merged text
			// never mixes composed and decomposed umlauts.
			t.Text = norm.NFC.String(t.Text)
			nativeInCol = append(nativeInCol, t)
		}
	}

	if len(zeilen) > 0 {
		return cellMode(col, hocrLines, pxWidth, pxHeight, nativeInCol, zeilen)
	}
	return lineMode(col, hocrLines, pxWidth, pxHeight, nativeInCol)
}

// lineMode implements §4.J Mode 1: walk HOCR lines top to bottom,
// merging consecutive lines into an accumulator block while the gap
// between them stays within col.LineBreakAfterPx; then fold in native
// Textblocks, merging with the last emitted block when it is close
// enough, else appending as new blocks.
func lineMode(col model.Column, hocrLines []ocr.Line, pxWidth, pxHeight int, native []model.Textblock) []model.Textblock {
	var out []model.Textblock
	var acc *model.Textblock

	flush := func() {
		if acc != nil {
			out = append(out, *acc)
			acc = nil
		}
	}

	for _, l := range hocrLines {
		mm := hocrToMM(l, col, pxWidth, pxHeight)
		if acc == nil {
			b := mm
			acc = &b
			continue
		}
		if mm.StartY > acc.EndY+col.LineBreakAfterPx {
			flush()
			b := mm
			acc = &b
			continue
		}
		if mm.EndY > acc.EndY {
			acc.EndY = mm.EndY
		}
		if mm.EndX > acc.EndX {
			acc.EndX = mm.EndX
		}
		acc.Text = joinText(acc.Text, mm.Text)
	}
	flush()

	for _, n := range native {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if n.StartY <= last.EndY+col.LineBreakAfterPx {
				last.Text = joinText(last.Text, n.Text)
				if n.EndY > last.EndY {
					last.EndY = n.EndY
				}
				if n.EndX > last.EndX {
					last.EndX = n.EndX
				}
				continue
			}
		}
		out = append(out, n)
	}

	return out
}

// cellMode implements §4.J Mode 2: slice col into len(zeilen)+1 cells at
// the given mm y-coordinates (out-of-[MinY,MaxY] values are ignored, per
// §8's boundary behaviour), collect every raw entry (HOCR line or native
// Textblock) inside col, and emit one Textblock per cell whose text is
// the whitespace-join, in reading order, of every entry whose start
// point falls inside that cell, with the cell's own rectangle as bounds.
func cellMode(col model.Column, hocrLines []ocr.Line, pxWidth, pxHeight int, native []model.Textblock, zeilen []float64) []model.Textblock {
	var cuts []float64
	for _, y := range zeilen {
		if y < col.MinY || y > col.MaxY {
			continue
		}
		cuts = append(cuts, y)
	}
	sort.Float64s(cuts)

	bounds := append([]float64{col.MinY}, cuts...)
	bounds = append(bounds, col.MaxY)

	var raw []model.Textblock
	for _, l := range hocrLines {
		raw = append(raw, hocrToMM(l, col, pxWidth, pxHeight))
	}
	raw = append(raw, native...)
	sort.Slice(raw, func(i, j int) bool {
		if raw[i].StartY != raw[j].StartY {
			return raw[i].StartY < raw[j].StartY
		}
		return raw[i].StartX < raw[j].StartX
	})

	out := make([]model.Textblock, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		lo, hi := bounds[i], bounds[i+1]
		out[i] = model.Textblock{StartX: col.MinX, EndX: col.MaxX, StartY: lo, EndY: hi}
	}

	for _, t := range raw {
		for i := 0; i < len(bounds)-1; i++ {
			lo, hi := bounds[i], bounds[i+1]
			if t.StartY >= lo && t.StartY < hi || (i == len(bounds)-2 && t.StartY == hi) {
				out[i].Text = joinText(out[i].Text, t.Text)
				break
			}
		}
	}

	return out
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
