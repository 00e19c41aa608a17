// Package rasterize implements §4.E: writing the input PDF to the
// workspace, deriving a painting-operator-stripped copy, and rendering
// both to PNG at 600 DPI through the external rasteriser.
package rasterize

import (
	"context"
	"image"
	_ "image/png"
	"os"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/pdfclean"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
	"github.com/projekt-gbx/gbx-digitalisierer/pkg/log"
)

// EnsureTempPDF writes pdfBytes to the workspace's temp.pdf, unless it
// already exists (§4.A cache rule).
func EnsureTempPDF(root workspace.Root, pdfBytes []byte) error {
	path := root.TempPDF()
	if workspace.Exists(path) {
		return nil
	}
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return errors.Wrapf(err, "rasterize: write %s", path)
	}
	return nil
}

// EnsureCleanPDF derives temp-clean.pdf from temp.pdf by stripping
// path-painting operators from every page's XObjects (§4.E), unless the
// clean copy already exists.
func EnsureCleanPDF(root workspace.Root) error {
	path := root.TempCleanPDF()
	if workspace.Exists(path) {
		return nil
	}

	raw, err := os.ReadFile(root.TempPDF())
	if err != nil {
		return errors.Wrap(err, "rasterize: read temp.pdf")
	}

	cleaned, err := pdfclean.Clean(raw)
	if err != nil {
		return errors.Wrap(err, "rasterize: clean content streams")
	}

	if err := os.WriteFile(path, cleaned, 0o644); err != nil {
		return errors.Wrapf(err, "rasterize: write %s", path)
	}
	return nil
}

// EnsurePagePNGs rasterises page seite from both temp.pdf and
// temp-clean.pdf at 600 DPI, unless the corresponding cache file already
// exists. The clean raster feeds OCR (§4.I); the raw raster is compared
// against it by the redaction (Rötung) detection.
func EnsurePagePNGs(ctx context.Context, runner *tool.Runner, root workspace.Root, seite int) error {
	rawOut := root.PagePNG(seite)
	if !workspace.Exists(rawOut) {
		if err := runner.Rasterize(ctx, root.TempPDF(), seite, rawOut); err != nil {
			return errors.Wrapf(err, "rasterize: page %d raw raster", seite)
		}
		log.Debug.Printf("rasterize: wrote %s", rawOut)
	}

	cleanOut := root.PageCleanPNG(seite)
	if !workspace.Exists(cleanOut) {
		if err := runner.Rasterize(ctx, root.TempCleanPDF(), seite, cleanOut); err != nil {
			return errors.Wrapf(err, "rasterize: page %d clean raster", seite)
		}
		log.Debug.Printf("rasterize: wrote %s", cleanOut)

		// The clean raster was re-rendered, so every crop and HOCR cut from
		// its previous incarnation is stale and must be re-derived (§8's
		// cache-narrowing property).
		if err := root.InvalidatePageDerived(seite); err != nil {
			return err
		}
	}

	return nil
}

// PageDimensions reads the cleaned raster's pixel width/height, used by
// §4.F's landscape test (width > height). Only the PNG header is decoded,
// via the stdlib image.DecodeConfig — justified over a third-party image
// library since this is a metadata-only read; the actual pixel
// manipulation (masking, cropping) is internal/crop's job and goes
// through golang.org/x/image there.
func PageDimensions(root workspace.Root, seite int) (width, height int, err error) {
	f, err := os.Open(root.PageCleanPNG(seite))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "rasterize: open page %d clean png", seite)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "rasterize: decode page %d png header", seite)
	}
	return cfg.Width, cfg.Height, nil
}
