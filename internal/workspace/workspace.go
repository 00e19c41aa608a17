// Package workspace lays out the per-booklet scratch tree the pipeline
// reads and writes its intermediate artefacts to. Every stage downstream
// tests file existence before doing work, so the tree doubles as the
// pipeline's cache.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// Root is a booklet's scratch directory, rooted at the OS temporary
// directory: <tmp>/<grundbuch_von>/<blatt>/. It is a value type, not a
// singleton — two Titelblätter never resolve to overlapping paths, so
// booklets can be processed concurrently without a lock.
type Root struct {
	dir      string
	maxWidth int
}

// New returns the Root for titelblatt under base (normally os.TempDir()).
// maxSeite is the highest page number the booklet has, used to zero-pad
// page-indexed filenames to a stable width.
func New(base string, titelblatt model.Titelblatt, maxSeite int) Root {
	von := sanitize(titelblatt.GrundbuchVon)
	blatt := fmt.Sprintf("%d", titelblatt.Blatt)

	// Page filenames zero-pad to the page count's digit width — the same
	// width the rasteriser pads its own "-<NN>.png" output to, so §4.B's
	// output-presence check finds the file under exactly one name.
	width := len(fmt.Sprintf("%d", maxSeite))

	return Root{
		dir:      filepath.Join(base, von, blatt),
		maxWidth: width,
	}
}

// sanitize strips path separators out of a cadastral district name so it
// cannot escape the scratch tree or collide with OS-reserved names.
func sanitize(s string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return r.Replace(s)
}

// Ensure creates the scratch directory if it does not already exist.
func (r Root) Ensure() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Wrapf(err, "workspace: mkdir %s", r.dir)
	}
	return nil
}

// Dir returns the scratch directory path.
func (r Root) Dir() string { return r.dir }

func (r Root) path(name string) string { return filepath.Join(r.dir, name) }

// TempPDF is the unmodified input, written verbatim on ingest.
func (r Root) TempPDF() string { return r.path("temp.pdf") }

// TempCleanPDF is temp.pdf with path-painting operators stripped (§4.E).
func (r Root) TempCleanPDF() string { return r.path("temp-clean.pdf") }

// PagePNG is the raw raster of page seite at 600 DPI.
func (r Root) PagePNG(seite int) string {
	return r.path(fmt.Sprintf("page-%s.png", r.pad(seite)))
}

// PageCleanPNG is the raster of the cleaned PDF for page seite: the copy
// OCR reads from, so that rötet strikethrough ink does not confuse it.
func (r Root) PageCleanPNG(seite int) string {
	return r.path(fmt.Sprintf("page-clean-%s.png", r.pad(seite)))
}

// PdftotextHTML is the transient bbox-layout extraction result.
func (r Root) PdftotextHTML() string { return r.path("pdftotext.html") }

// TesseractTXT is the whole-page OCR text for page seite.
func (r Root) TesseractTXT(seite int) string {
	return r.path(fmt.Sprintf("tesseract-%s.txt", r.pad(seite)))
}

// ColumnRect is the integer pixel rectangle a cropped column cache
// filename encodes, so that any change to a column's bounds (a user
// resize, a schema edit) invalidates the cache by construction.
type ColumnRect struct {
	MinX, MinY, MaxX, MaxY int
}

// ColumnPNG is the cropped raster for one column of one page.
func (r Root) ColumnPNG(seite int, columnID string, rect ColumnRect) string {
	return r.path(fmt.Sprintf("page-%s-col-%s-%d-%d-%d-%d.png",
		r.pad(seite), columnID, rect.MinX, rect.MinY, rect.MaxX, rect.MaxY))
}

// ColumnHOCR is the per-column OCR HOCR result.
func (r Root) ColumnHOCR(seite int, columnID string, rect ColumnRect) string {
	return r.path(fmt.Sprintf("tesseract-%s-col-%s-%d-%d-%d-%d.hocr",
		r.pad(seite), columnID, rect.MinX, rect.MinY, rect.MaxX, rect.MaxY))
}

func (r Root) pad(seite int) string {
	return fmt.Sprintf("%0*d", r.maxWidth, seite)
}

// Exists reports whether path names an existing, regular file — the cache
// hit test every stage performs before doing work.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// InvalidateClean removes temp-clean.pdf and every page-clean-*.png,
// forcing §4.E to re-derive them on next run.
func (r Root) InvalidateClean() error {
	matches, err := filepath.Glob(r.path("page-clean-*.png"))
	if err != nil {
		return errors.Wrap(err, "workspace: glob page-clean")
	}
	matches = append(matches, r.TempCleanPDF())
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "workspace: remove %s", m)
		}
	}
	return nil
}

// InvalidatePageDerived removes every artefact derived from one page's
// cleaned raster: its column crops and their HOCRs. Called when the clean
// PNG had to be re-rendered, so stale crops cannot survive as cache hits.
func (r Root) InvalidatePageDerived(seite int) error {
	patterns := []string{
		fmt.Sprintf("page-%s-col-*.png", r.pad(seite)),
		fmt.Sprintf("tesseract-%s-col-*.hocr", r.pad(seite)),
	}
	for _, p := range patterns {
		matches, err := filepath.Glob(r.path(p))
		if err != nil {
			return errors.Wrapf(err, "workspace: glob %s", p)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "workspace: remove %s", m)
			}
		}
	}
	return nil
}

// InvalidateOCR removes every tesseract-*.hocr file, forcing OCR to
// re-run for all columns.
func (r Root) InvalidateOCR() error {
	matches, err := filepath.Glob(r.path("tesseract-*.hocr"))
	if err != nil {
		return errors.Wrap(err, "workspace: glob tesseract hocr")
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "workspace: remove %s", m)
		}
	}
	return nil
}
