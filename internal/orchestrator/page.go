package orchestrator

import (
	"context"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/assemble"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/classify"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/columns"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/config"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/crop"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/ocr"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/rasterize"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
)

// pageResult is one page's successful pipeline output: the assembled cell
// table plus the whole-page OCR text cached alongside it (§6's
// seiten_ocr_text field).
type pageResult struct {
	Seite   int
	Parsed  model.SeiteParsed
	OcrText string
}

// processPage drives one page through §4.E (raster)→§4.F (classify)→
// §4.G (columns)→§4.H (crop)→§4.I (OCR)→§4.J (assemble), honouring any
// user override/adjustment already recorded on the PdfFile. layout is the
// page's native-extractor result (missing entirely iff the page has no
// layout data, §7's FalscheSeitenZahlError).
func processPage(
	ctx context.Context,
	seite int,
	root workspace.Root,
	runner *tool.Runner,
	cfg *config.Config,
	layout model.PageLayout,
	hasLayout bool,
	override *model.SeitenTyp,
	anpassung *model.AnpassungSeite,
) (pageResult, error) {
	if !hasLayout {
		return pageResult{}, errors.WithStack(&model.FalscheSeitenZahlError{Seite: seite})
	}

	if err := rasterize.EnsurePagePNGs(ctx, runner, root, seite); err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d raster", seite)
	}

	pxWidth, pxHeight, err := rasterize.PageDimensions(root, seite)
	if err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d dimensions", seite)
	}
	landscape := classify.Landscape(pxWidth, pxHeight)

	ocrTxtPath := root.TesseractTXT(seite)
	if err := ocr.EnsureWholePage(ctx, runner, root.PageCleanPNG(seite), ocrTxtPath); err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d whole-page ocr", seite)
	}
	ocrText, err := ocr.ReadWholePage(ocrTxtPath)
	if err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d read ocr text", seite)
	}

	typ, err := classify.Seitentyp(cfg, seite, ocrText, landscape)
	if err != nil {
		return pageResult{}, err
	}
	typ = classify.ResolveOverride(typ, override)

	cols, err := columns.ForSeite(cfg, typ, anpassung)
	if err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d columns", seite)
	}

	cols, err = crop.Columns(root, seite, layout.BreiteMM, layout.HoeheMM, layout.Texte, cols)
	if err != nil {
		return pageResult{}, errors.Wrapf(err, "orchestrator: page %d crop", seite)
	}

	var zeilen []float64
	if anpassung != nil {
		zeilen = anpassung.Zeilen
	}

	texte := make([][]model.Textblock, len(cols))
	for i, col := range cols {
		rect := crop.PixelRect(col, layout.BreiteMM, layout.HoeheMM, pxWidth, pxHeight)
		wsRect := workspace.ColumnRect{MinX: rect.Min.X, MinY: rect.Min.Y, MaxX: rect.Max.X, MaxY: rect.Max.Y}
		pngPath := root.ColumnPNG(seite, col.ID, wsRect)
		hocrPath := root.ColumnHOCR(seite, col.ID, wsRect)

		if err := ocr.EnsureColumn(ctx, runner, pngPath, col.IsNumberColumn, hocrPath); err != nil {
			return pageResult{}, errors.Wrapf(err, "orchestrator: page %d column %s ocr", seite, col.ID)
		}
		hocrLines, err := ocr.ReadColumn(hocrPath)
		if err != nil {
			return pageResult{}, errors.Wrapf(err, "orchestrator: page %d column %s read hocr", seite, col.ID)
		}

		texte[i] = assemble.Column(col, hocrLines, rect.Dx(), rect.Dy(), layout.Texte, zeilen)
	}

	return pageResult{
		Seite:   seite,
		Parsed:  model.SeiteParsed{Typ: typ, Texte: texte},
		OcrText: ocrText,
	}, nil
}
