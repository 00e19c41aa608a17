package orchestrator

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/config"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/parse"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/pdfclean"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/pdftext"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/rasterize"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
	"github.com/projekt-gbx/gbx-digitalisierer/pkg/log"
)

// Options configures one Run invocation.
type Options struct {
	// WorkspaceBase roots the scratch tree (§4.A); os.TempDir() if empty.
	WorkspaceBase string
	// Runner invokes the three external tools (§4.B); required.
	Runner *tool.Runner
	// Config carries the classifier/column-schema tables (§4.F/§4.G);
	// config.Default() if nil.
	Config *config.Config
	// Concurrency bounds the per-page worker pool; PoolSize() if zero.
	Concurrency int
	// DiskPath is recorded on the resulting PdfFile for callers that want
	// to remember where the source PDF came from; purely informational.
	DiskPath string
	// KlassifikationNeu / AnpassungenSeite seed the per-page user overrides
	// (§4.F / §4.G), keyed by page number as string like the .gbx schema.
	// A resuming caller passes the previous run's maps here so the
	// overrides steer reprocessing instead of merely being carried along.
	KlassifikationNeu map[string]model.SeitenTyp
	AnpassungenSeite  map[string]model.AnpassungSeite
}

func (o Options) withDefaults() (Options, error) {
	if o.Runner == nil {
		return o, errors.New("orchestrator: Options.Runner is required")
	}
	if o.Config == nil {
		cfg, err := config.Default()
		if err != nil {
			return o, errors.Wrap(err, "orchestrator: load default config")
		}
		o.Config = cfg
	}
	if o.WorkspaceBase == "" {
		o.WorkspaceBase = os.TempDir()
	}
	if o.Concurrency <= 0 {
		o.Concurrency = PoolSize()
	}
	return o, nil
}

// Run implements §4.M end to end: read the page count, read the title
// page, build the workspace, derive the cleaned PDF, process every
// non-title page (§4.E→§4.J, bounded and resumable via the workspace
// cache), fold the result into a Grundbuch (§4.K) and apply the BV
// redaction pass. The returned PdfFile is ready for internal/persist but
// is not itself persisted — callers decide when and where to write it.
func Run(ctx context.Context, pdfBytes []byte, opts Options) (*model.PdfFile, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	pageCount, err := pdfclean.PageCount(pdfBytes)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: count pages")
	}
	if pageCount < 1 {
		return nil, errors.New("orchestrator: pdf has no pages")
	}

	titelblatt, err := readTitelblatt(ctx, opts, pdfBytes)
	if err != nil {
		return nil, err
	}

	root := workspace.New(opts.WorkspaceBase, titelblatt, pageCount)
	if err := root.Ensure(); err != nil {
		return nil, err
	}

	if err := rasterize.EnsureTempPDF(root, pdfBytes); err != nil {
		return nil, err
	}
	if err := rasterize.EnsureCleanPDF(root); err != nil {
		return nil, err
	}

	var seitenzahlen []int
	for p := 2; p <= pageCount; p++ {
		seitenzahlen = append(seitenzahlen, p)
	}

	pdf := model.NewPdfFile(opts.DiskPath, titelblatt, seitenzahlen)
	for k, v := range opts.KlassifikationNeu {
		pdf.KlassifikationNeu[k] = v
	}
	for k, v := range opts.AnpassungenSeite {
		pdf.AnpassungenSeite[k] = v
	}

	htmlPath := root.PdftotextHTML()
	if !workspace.Exists(htmlPath) {
		if err := opts.Runner.ExtractBBoxLayout(ctx, root.TempPDF(), htmlPath); err != nil {
			return nil, errors.Wrap(err, "orchestrator: extract bbox layout")
		}
	}
	layout, err := pdftext.ReadLayout(htmlPath, seitenzahlen)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: read bbox layout")
	}
	pdf.PdftotextLayout = layout

	processAllPages(ctx, root, opts, pdf, layout)

	pages := make([]parse.PageInput, 0, len(pdf.Geladen))
	mmHeights := make(map[int]float64, len(pdf.Geladen))
	for key, sp := range pdf.Geladen {
		seite, _ := strconv.Atoi(key)
		anp := pdf.AnpassungenSeite[key]
		pages = append(pages, parse.PageInput{
			Seite:     seite,
			Typ:       sp.Typ,
			Texte:     sp.Texte,
			HasZeilen: len(anp.Zeilen) > 0,
		})
		if pl, ok := layout[seite]; ok {
			mmHeights[seite] = pl.HoeheMM
		}
	}

	grundbuch, subtypeWarnungen := foldSections(pages)
	grundbuch.Titelblatt = titelblatt

	redEintraege, roetenWarnungen := applyRoeten(root, pages, mmHeights, grundbuch.Bestandsverzeichnis.Eintraege)
	grundbuch.Bestandsverzeichnis.Eintraege = redEintraege

	grundbuch.Warnungen = append(grundbuch.Warnungen, pdf.Analysiert.Warnungen...)
	grundbuch.Warnungen = append(grundbuch.Warnungen, subtypeWarnungen...)
	grundbuch.Warnungen = append(grundbuch.Warnungen, roetenWarnungen...)

	pdf.Analysiert = grundbuch

	return pdf, nil
}

// readTitelblatt implements the bootstrap step §4.C needs before the real
// workspace (keyed by the title page's own content) can even be named: the
// input bytes are written to a throwaway scratch file, the text extractor
// runs -layout over page 1 only, and the result is parsed into a
// Titelblatt. Title-page failures are booklet-scoped (§7): they fail Run
// outright rather than being localised to a page.
func readTitelblatt(ctx context.Context, opts Options, pdfBytes []byte) (model.Titelblatt, error) {
	tmp, err := os.CreateTemp(opts.WorkspaceBase, "gbx-bootstrap-*.pdf")
	if err != nil {
		return model.Titelblatt{}, errors.Wrap(err, "orchestrator: create bootstrap file")
	}
	bootstrapPath := tmp.Name()
	defer os.Remove(bootstrapPath)

	if _, err := tmp.Write(pdfBytes); err != nil {
		tmp.Close()
		return model.Titelblatt{}, errors.Wrap(err, "orchestrator: write bootstrap file")
	}
	if err := tmp.Close(); err != nil {
		return model.Titelblatt{}, errors.Wrap(err, "orchestrator: close bootstrap file")
	}

	titleTxtPath := bootstrapPath + ".titel.txt"
	defer os.Remove(titleTxtPath)

	if err := opts.Runner.ExtractLayout(ctx, bootstrapPath, 1, titleTxtPath); err != nil {
		return model.Titelblatt{}, errors.Wrap(err, "orchestrator: extract title page layout")
	}

	titelblatt, err := pdftext.ReadTitelblatt(titleTxtPath)
	if err != nil {
		return model.Titelblatt{}, err
	}
	return titelblatt, nil
}

// processAllPages runs §4.E→§4.J across every non-title page, bounded to
// opts.Concurrency concurrent pages via a weighted semaphore. Unlike
// golang.org/x/sync/errgroup, acquiring/releasing a semaphore slot never
// cancels a sibling goroutine, so per-page failures stay localised (§7):
// they are recorded in pdf.SeitenVersuchtGeladen and surfaced as a
// Warnung, never aborting the booklet. The aggregate of per-page errors is
// combined with multierr purely for a single diagnostic log line — it is
// never returned.
func processAllPages(ctx context.Context, root workspace.Root, opts Options, pdf *model.PdfFile, layout model.PdfToTextLayout) {
	sem := semaphore.NewWeighted(int64(opts.Concurrency))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var combined error

	for _, seite := range pdf.Seitenzahlen {
		seite := seite
		if err := sem.Acquire(ctx, 1); err != nil {
			// ctx was cancelled by the caller, not by a sibling page; record
			// it the same way a per-page failure is recorded and move on.
			mu.Lock()
			pdf.SeitenVersuchtGeladen[strconv.Itoa(seite)] = true
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			key := strconv.Itoa(seite)

			mu.Lock()
			var override *model.SeitenTyp
			if t, ok := pdf.KlassifikationNeu[key]; ok {
				override = &t
			}
			var anp *model.AnpassungSeite
			if a, ok := pdf.AnpassungenSeite[key]; ok {
				anp = &a
			}
			mu.Unlock()

			pageLayout, hasLayout := layout[seite]

			result, err := processPage(ctx, seite, root, opts.Runner, opts.Config, pageLayout, hasLayout, override, anp)

			mu.Lock()
			defer mu.Unlock()
			pdf.SeitenVersuchtGeladen[key] = true
			if err != nil {
				combined = multierr.Append(combined, err)
				s := seite
				pdf.Analysiert.Warnungen = append(pdf.Analysiert.Warnungen, model.Warnung{
					Stufe:  model.StufeFehler,
					Seite:  &s,
					Quelle: "orchestrator",
					Text:   err.Error(),
				})
				log.Info.Printf("orchestrator: page %d failed: %v", seite, err)
				return
			}
			pdf.Geladen[key] = result.Parsed
			pdf.SeitenOcrText[key] = result.OcrText
		}()
	}
	wg.Wait()

	if combined != nil {
		log.Debug.Printf("orchestrator: %d page(s) failed: %v", len(multierr.Errors(combined)), combined)
	}
}
