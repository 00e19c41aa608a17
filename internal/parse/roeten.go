package parse

import (
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// RowBand is the vertical mm extent a BV entry's source Textblocks span on
// its page, the unit automatic redaction is evaluated against.
type RowBand struct {
	MinY float64
	MaxY float64
}

// roetungSchwelle is the fraction of a row band's pixels that must have
// been painted white by the cleaning pass (§4.E) before the row counts as
// redacted.
const roetungSchwelle = 0.3

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	const weiss = 0xf000
	return r >= weiss && g >= weiss && b >= weiss
}

func decodeRaster(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(&model.IoError{Path: path, Cause: err}, "parse: open raster")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(&model.BildError{Path: path, Cause: err}, "parse: decode raster")
	}
	return img, nil
}

// BvEintraegeRoeten implements bv_eintraege_roeten (§4.K): it compares the
// raw and cleaned page rasters within each entry's row band and sets
// AutomatischGeroetet when the cleaning pass painted over enough of the
// band's pixels to conclude the row was blacked out in the source scan.
// entries and rowBands must be the same length and in the same order; the
// orchestrator calls this once per page, after parsing, passing the row
// bands it tracked alongside the BV Textblocks.
func BvEintraegeRoeten(rawPNGPath, cleanPNGPath string, mmHeight float64, entries []model.BvEintrag, rowBands []RowBand) ([]model.BvEintrag, error) {
	if len(entries) != len(rowBands) {
		return entries, errors.Errorf("parse: roeten erwartet %d row bands, hat %d", len(entries), len(rowBands))
	}

	raw, err := decodeRaster(rawPNGPath)
	if err != nil {
		return nil, err
	}
	clean, err := decodeRaster(cleanPNGPath)
	if err != nil {
		return nil, err
	}

	bounds := raw.Bounds()
	scaleY := float64(bounds.Dy()) / mmHeight

	out := make([]model.BvEintrag, len(entries))
	copy(out, entries)

	for i, band := range rowBands {
		y0 := bounds.Min.Y + int(band.MinY*scaleY)
		y1 := bounds.Min.Y + int(band.MaxY*scaleY)
		if y0 < bounds.Min.Y {
			y0 = bounds.Min.Y
		}
		if y1 > bounds.Max.Y {
			y1 = bounds.Max.Y
		}
		if y1 <= y0 {
			continue
		}

		var painted, total int
		for y := y0; y < y1; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				total++
				if isWhite(clean.At(x, y)) && !isWhite(raw.At(x, y)) {
					painted++
				}
			}
		}
		if total > 0 && float64(painted)/float64(total) >= roetungSchwelle {
			out[i].AutomatischGeroetet = true
		}
	}

	return out, nil
}
