// Package crop implements §4.H: cutting column sub-images out of the
// cleaned page raster, having first painted white over every pixel the
// native text extractor (§4.D) already covered, so the OCR stage below
// only ever sees image-only content.
package crop

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
)

// PixelRect converts a Column's mm rectangle to pixel coordinates using
// the page's mm size and the raster's pixel size (§9: all coordinate
// conversions funnel through this pair, never mixed directly).
func PixelRect(c model.Column, mmWidth, mmHeight float64, pxWidth, pxHeight int) image.Rectangle {
	return mmRectToPixels(c.MinX, c.MinY, c.MaxX, c.MaxY, mmWidth, mmHeight, pxWidth, pxHeight)
}

func mmRectToPixels(minX, minY, maxX, maxY, mmWidth, mmHeight float64, pxWidth, pxHeight int) image.Rectangle {
	sx := float64(pxWidth) / mmWidth
	sy := float64(pxHeight) / mmHeight
	return image.Rect(
		int(minX*sx), int(minY*sy),
		int(maxX*sx), int(maxY*sy),
	)
}

// maskNative paints white over every pixel inside a native Textblock's
// rectangle, step 2 of §4.H: suppress text the PDF already gave us
// cleanly so OCR only recognises image-only content.
func maskNative(img draw.Image, texte []model.Textblock, mmWidth, mmHeight float64, pxWidth, pxHeight int) {
	white := image.NewUniform(color.White)
	for _, t := range texte {
		r := mmRectToPixels(t.StartX, t.StartY, t.EndX, t.EndY, mmWidth, mmHeight, pxWidth, pxHeight).Intersect(img.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(img, r, white, image.Point{}, draw.Src)
	}
}

// Columns implements §4.H end to end for one page: load the cleaned
// raster, mask out native text once, then crop+write every column not
// already cached. Returns cols unchanged (the caller already resolved
// schema + overrides via internal/columns) so callers can chain the
// result straight into OCR.
func Columns(root workspace.Root, seite int, mmWidth, mmHeight float64, texte []model.Textblock, cols []model.Column) ([]model.Column, error) {
	type job struct {
		col  model.Column
		path string
	}

	rasterPath := root.PageCleanPNG(seite)
	pxWidth, pxHeight, err := decodeDimensions(rasterPath)
	if err != nil {
		return nil, err
	}

	// Determine which columns are cache misses before paying for the
	// (comparatively expensive) decode+mask of the full page raster.
	var jobs []job
	for _, c := range cols {
		pr := PixelRect(c, mmWidth, mmHeight, pxWidth, pxHeight)
		rect := workspace.ColumnRect{MinX: pr.Min.X, MinY: pr.Min.Y, MaxX: pr.Max.X, MaxY: pr.Max.Y}
		path := root.ColumnPNG(seite, c.ID, rect)
		if workspace.Exists(path) {
			continue
		}
		jobs = append(jobs, job{col: c, path: path})
	}

	if len(jobs) == 0 {
		return cols, nil
	}

	img, err := loadPNG(rasterPath)
	if err != nil {
		return nil, err
	}

	masked, ok := img.(draw.Image)
	if !ok {
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		masked = rgba
	}
	maskNative(masked, texte, mmWidth, mmHeight, pxWidth, pxHeight)

	for _, j := range jobs {
		pr := PixelRect(j.col, mmWidth, mmHeight, pxWidth, pxHeight).Intersect(masked.Bounds())
		if pr.Empty() {
			return nil, errors.Errorf("crop: column %q rectangle is empty after clipping to page %d", j.col.ID, seite)
		}
		sub := image.NewRGBA(image.Rect(0, 0, pr.Dx(), pr.Dy()))
		draw.Draw(sub, sub.Bounds(), masked, pr.Min, draw.Src)

		if err := writePNG(j.path, sub); err != nil {
			return nil, err
		}
	}

	return cols, nil
}

func decodeDimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrapf(&model.IoError{Path: path, Cause: err}, "crop: open raster")
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrapf(&model.BildError{Path: path, Cause: err}, "crop: decode raster header")
	}
	return cfg.Width, cfg.Height, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(&model.IoError{Path: path, Cause: err}, "crop: open raster")
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(&model.BildError{Path: path, Cause: err}, "crop: decode raster")
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(&model.IoError{Path: path, Cause: err}, "crop: create column png")
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(&model.BildError{Path: path, Cause: err}, "crop: encode column png")
	}
	return nil
}
