// Package api lets you integrate the digitisation pipeline's operations
// into your Go backend.
//
// There are two api layers supporting every operation:
//  1. The file based layer (used by cmd/gbxdig)
//  2. The io.ReadSeeker based layer for backend integration
//
// For the pipeline's one command there is one function pair: the file
// based function reads its input into memory and calls the
// io.ReadSeeker based function.
//
//	func ProcessFile(ctx context.Context, inFile string, opts orchestrator.Options) (*model.PdfFile, error)
//	func Process(ctx context.Context, rs io.ReadSeeker, opts orchestrator.Options) (*model.PdfFile, error)
package api

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/orchestrator"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/persist"
)

// Process runs the full pipeline (§4.A–§4.M) over the PDF bytes readable
// from rs and returns the resulting booklet document. The document is
// not persisted; pass it to Save or SaveCache. ProcessFile is the
// file-based variant and does not persist either.
func Process(ctx context.Context, rs io.ReadSeeker, opts orchestrator.Options) (*model.PdfFile, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "api: seek input")
	}
	raw, err := io.ReadAll(rs)
	if err != nil {
		return nil, errors.Wrap(err, "api: read input")
	}
	return orchestrator.Run(ctx, raw, opts)
}

// ProcessFile runs the full pipeline over the PDF at inFile. opts.DiskPath
// defaults to inFile when empty, so the returned PdfFile records where it
// came from.
func ProcessFile(ctx context.Context, inFile string, opts orchestrator.Options) (*model.PdfFile, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, errors.Wrapf(err, "api: open %s", inFile)
	}
	defer f.Close()

	if opts.DiskPath == "" {
		opts.DiskPath = inFile
	}
	return Process(ctx, f, opts)
}

// Save writes pdf to outFile as the authoritative .gbx artefact (§6).
func Save(pdf *model.PdfFile, outFile string) error {
	return persist.WriteFile(outFile, pdf)
}

// SaveCache writes pdf to its best-effort .cache.gbx sidecar, derived from
// gbxPath via persist.CachePath.
func SaveCache(pdf *model.PdfFile, gbxPath string) error {
	return persist.WriteFile(persist.CachePath(gbxPath), pdf)
}

// Load reads a previously persisted .gbx/.cache.gbx document, e.g. to
// resume work on a booklet without re-running the external tools (§6,
// §4.A's resumability guarantee).
func Load(path string) (*model.PdfFile, error) {
	return persist.ReadFile(path)
}
