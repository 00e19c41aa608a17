// Package tool runs the three external command-line programs the
// digitisation pipeline depends on — a PDF rasteriser, a PDF-to-text
// extractor and an OCR engine — as opaque subprocesses. Their stdout and
// stderr are discarded; success is judged solely by the expected output
// file existing after the process returns (§4.B).
package tool

import (
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
	"github.com/projekt-gbx/gbx-digitalisierer/pkg/log"
)

// Binaries names the three external executables by their role. Callers
// resolve real paths (e.g. from PATH or a config override); Runner only
// ever sees the resolved strings.
type Binaries struct {
	Rasterizer    string
	TextExtractor string
	OCR           string
}

// Runner invokes the external tools. A nil Limiter means unbounded
// concurrent spawns, matching the original single-process behaviour; a
// non-nil one limits the rate of subprocess starts independently of the
// page-level worker pool (§4.B+). It does not bound how many subprocesses
// run at once.
type Runner struct {
	Bin     Binaries
	Limiter *rate.Limiter
}

// New returns a Runner with no rate limiting.
func New(bin Binaries) *Runner {
	return &Runner{Bin: bin}
}

// WithLimiter returns a copy of r that throttles subprocess starts through
// limiter.
func (r *Runner) WithLimiter(limiter *rate.Limiter) *Runner {
	cp := *r
	cp.Limiter = limiter
	return &cp
}

func (r *Runner) wait(ctx context.Context) error {
	if r.Limiter == nil {
		return nil
	}
	return r.Limiter.Wait(ctx)
}

// run executes name with args, discarding stdout/stderr, and reports
// expectedOutput's existence afterward as the verdict — matching §4.B's
// rule that exit codes are ignored and success is judged by output
// presence.
func (r *Runner) run(ctx context.Context, name string, args []string, expectedOutput string) error {
	if err := r.wait(ctx); err != nil {
		return errors.Wrap(err, "tool: rate limiter")
	}

	log.Trace.Printf("tool: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	_ = cmd.Run()

	if !workspace.Exists(expectedOutput) {
		log.Info.Printf("tool: %s did not produce %s", name, expectedOutput)
		return errors.Errorf("tool: %s did not produce expected output %s", name, expectedOutput)
	}
	return nil
}

// Rasterize renders page pageNo of inputPDF to outputPNG at 600 DPI. The
// rasteriser is handed a filename prefix and appends "-<NN>.png" itself,
// zero-padding NN to the width of the document's page count — the same
// width outputPNG's own name carries (§4.A), so the file it writes is
// exactly outputPNG.
func (r *Runner) Rasterize(ctx context.Context, inputPDF string, pageNo int, outputPNG string) error {
	args := []string{
		"-q", "-r", "600", "-png",
		"-f", itoa(pageNo), "-l", itoa(pageNo),
		inputPDF, trimPageSuffix(outputPNG),
	}
	return r.run(ctx, r.Bin.Rasterizer, args, outputPNG)
}

// ExtractLayout runs the text extractor in plain-layout mode over a single
// page, used by the title-page reader (§4.C).
func (r *Runner) ExtractLayout(ctx context.Context, inputPDF string, pageNo int, outputTXT string) error {
	args := []string{
		"-q", "-layout", "-enc", "UTF-8", "-eol", "unix", "-nopgbrk",
		"-f", itoa(pageNo), "-l", itoa(pageNo),
		inputPDF, outputTXT,
	}
	return r.run(ctx, r.Bin.TextExtractor, args, outputTXT)
}

// ExtractBBoxLayout runs the text extractor in bbox-layout mode across the
// whole document, producing the HTML §4.D parses.
func (r *Runner) ExtractBBoxLayout(ctx context.Context, inputPDF string, outputHTML string) error {
	args := []string{"-q", "-bbox-layout", inputPDF, outputHTML}
	return r.run(ctx, r.Bin.TextExtractor, args, outputHTML)
}

// OCRWholePage runs full-language whole-page OCR, the classifier's input
// (§4.F). The engine appends ".txt" to the output stem itself.
func (r *Runner) OCRWholePage(ctx context.Context, inputPNG string, outputTXT string) error {
	args := []string{
		inputPNG, trimExt(outputTXT),
		"-l", "deu", "--dpi", "600",
		"-c", "preserve_interword_spaces=1",
		"-c", "debug_file=/dev/null",
	}
	return r.run(ctx, r.Bin.OCR, args, outputTXT)
}

// OCRColumnOpts configures per-column OCR (§4.I): PSM 6 plus a character
// whitelist restricted to digits for number columns, extended German
// letters otherwise.
type OCRColumnOpts struct {
	IsNumberColumn bool
}

// The two §4.I whitelists. Number columns admit only digits plus the
// punctuation that appears in sizes, fractions and amounts; text columns
// additionally admit the full German alphabet and the section sign.
const (
	numberWhitelist = ",.-/%€0123456789 "
	textWhitelist   = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"äöüÄÖÜß,.-/%§()€0123456789 "
)

// OCRColumn runs per-column HOCR OCR with PSM 6 and the appropriate
// character whitelist. The engine appends ".hocr" to the output stem.
func (r *Runner) OCRColumn(ctx context.Context, inputPNG string, opts OCRColumnOpts, outputHOCR string) error {
	whitelist := textWhitelist
	if opts.IsNumberColumn {
		whitelist = numberWhitelist
	}
	args := []string{
		inputPNG, trimExt(outputHOCR),
		"-l", "deu", "--dpi", "600", "--psm", "6",
		"-c", "tessedit_char_whitelist=" + whitelist,
		"-c", "tessedit_create_hocr=1",
		"-c", "debug_file=/dev/null",
	}
	return r.run(ctx, r.Bin.OCR, args, outputHOCR)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// trimPageSuffix strips the "-<NN>.png" tail off a §4.A page filename,
// yielding the prefix the rasteriser expects.
func trimPageSuffix(path string) string {
	stem := trimExt(path)
	if i := strings.LastIndexByte(stem, '-'); i >= 0 {
		return stem[:i]
	}
	return stem
}
