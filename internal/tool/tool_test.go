package tool_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
)

// fakeRasterizer mimics pdftoppm: it receives a filename prefix as its
// last argument and appends "-<page>.png" itself, page taken from the -f
// flag.
func fakeRasterizer(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fakeppm.sh")
	script := `#!/bin/bash
page=1
prev=""
for a in "$@"; do
  if [ "$prev" = "-f" ]; then page="$a"; fi
  prev="$a"
done
echo ok > "${@: -1}-${page}.png"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// fakeToolAppendingExt mimics tesseract: it receives an extensionless
// output stem and appends ext itself.
func fakeToolAppendingExt(t *testing.T, ext string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "faketool.sh")
	script := "#!/bin/bash\necho ok > \"$2" + ext + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// fakeToolExactArg writes to its last argument verbatim.
func fakeToolExactArg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "faketool.sh")
	script := "#!/bin/bash\necho ok > \"${@: -1}\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRasterizeSucceedsWhenOutputAppears(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRasterizer(t)
	r := tool.New(tool.Binaries{Rasterizer: bin})

	out := filepath.Join(dir, "page-1.png")
	err := r.Rasterize(context.Background(), filepath.Join(dir, "in.pdf"), 1, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRasterizeCleanVariantKeepsPrefix(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRasterizer(t)
	r := tool.New(tool.Binaries{Rasterizer: bin})

	// "page-clean-3.png" must hand the rasteriser the prefix "page-clean",
	// not "page" — only the trailing page-number group is stripped.
	out := filepath.Join(dir, "page-clean-3.png")
	err := r.Rasterize(context.Background(), filepath.Join(dir, "in.pdf"), 3, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestExtractBBoxLayoutWritesExactOutputPath(t *testing.T) {
	dir := t.TempDir()
	bin := fakeToolExactArg(t)
	r := tool.New(tool.Binaries{TextExtractor: bin})

	out := filepath.Join(dir, "pdftotext.html")
	err := r.ExtractBBoxLayout(context.Background(), filepath.Join(dir, "in.pdf"), out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestOCRColumnAppendsHocrExtension(t *testing.T) {
	dir := t.TempDir()
	bin := fakeToolAppendingExt(t, ".hocr")
	r := tool.New(tool.Binaries{OCR: bin})

	out := filepath.Join(dir, "tesseract-1-col-x-0-0-1-1.hocr")
	err := r.OCRColumn(context.Background(), filepath.Join(dir, "col.png"), tool.OCRColumnOpts{IsNumberColumn: true}, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRunFailsWhenOutputMissing(t *testing.T) {
	dir := t.TempDir()
	r := tool.New(tool.Binaries{Rasterizer: "/bin/true"})

	out := filepath.Join(dir, "never-written.png")
	err := r.Rasterize(context.Background(), filepath.Join(dir, "in.pdf"), 1, out)
	assert.Error(t, err, "exit code is ignored; only output presence decides success")
}

func TestLimiterThrottlesSpawns(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRasterizer(t)
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	r := tool.New(tool.Binaries{Rasterizer: bin}).WithLimiter(limiter)

	start := time.Now()
	for i := 0; i < 3; i++ {
		out := filepath.Join(dir, "p-1.png")
		require.NoError(t, r.Rasterize(context.Background(), filepath.Join(dir, "in.pdf"), 1, out))
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond,
		"three spawns through a 1-per-50ms limiter take at least ~100ms")
}
