package ocr

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
)

// EnsureColumn runs OCR over the cropped column PNG at pngPath, writing
// HOCR to hocrPath, unless hocrPath already exists (§4.A: existing .hocr
// files are never regenerated).
func EnsureColumn(ctx context.Context, runner *tool.Runner, pngPath string, isNumberColumn bool, hocrPath string) error {
	if workspace.Exists(hocrPath) {
		return nil
	}
	opts := tool.OCRColumnOpts{IsNumberColumn: isNumberColumn}
	if err := runner.OCRColumn(ctx, pngPath, opts, hocrPath); err != nil {
		return errors.Wrapf(err, "ocr: column %s", pngPath)
	}
	return nil
}

// ReadColumn loads and parses a column's cached HOCR file.
func ReadColumn(hocrPath string) ([]Line, error) {
	raw, err := os.ReadFile(hocrPath)
	if err != nil {
		return nil, errors.Wrapf(&model.IoError{Path: hocrPath, Cause: err}, "ocr: read hocr")
	}
	return ParseHOCR(raw)
}

// EnsureWholePage runs whole-page full-language OCR (§4.B classification
// mode), used by §4.F's classifier input, unless the plain-text cache
// already exists.
func EnsureWholePage(ctx context.Context, runner *tool.Runner, pngPath, txtPath string) error {
	if workspace.Exists(txtPath) {
		return nil
	}
	if err := runner.OCRWholePage(ctx, pngPath, txtPath); err != nil {
		return errors.Wrapf(err, "ocr: whole page %s", pngPath)
	}
	return nil
}

// ReadWholePage loads the cached whole-page OCR text.
func ReadWholePage(txtPath string) (string, error) {
	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return "", errors.Wrapf(&model.IoError{Path: txtPath, Cause: err}, "ocr: read whole page text")
	}
	return string(raw), nil
}
