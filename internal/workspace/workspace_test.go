package workspace_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
)

func TestTwoBookletsNeverShareAPath(t *testing.T) {
	base := t.TempDir()

	a := workspace.New(base, model.Titelblatt{GrundbuchVon: "Fennpfuhl", Blatt: 42}, 9)
	b := workspace.New(base, model.Titelblatt{GrundbuchVon: "Karlshorst", Blatt: 42}, 9)
	c := workspace.New(base, model.Titelblatt{GrundbuchVon: "Fennpfuhl", Blatt: 43}, 9)

	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.NotEqual(t, a.Dir(), c.Dir())
	assert.NotEqual(t, b.Dir(), c.Dir())

	for _, r := range []workspace.Root{a, b, c} {
		assert.True(t, strings.HasPrefix(r.Dir(), base))
	}
}

func TestPageFilenamesZeroPadToMaxWidth(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "X", Blatt: 1}, 123)
	assert.Equal(t, "page-007.png", filepath.Base(r.PagePNG(7)))
	assert.Equal(t, "page-123.png", filepath.Base(r.PagePNG(123)))
}

func TestPageFilenamesSingleDigitBookletsDoNotPad(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "X", Blatt: 1}, 5)
	assert.Equal(t, "page-3.png", filepath.Base(r.PagePNG(3)))
}

func TestSanitizeStripsPathSeparators(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "../../etc", Blatt: 1}, 1)
	assert.NotContains(t, filepath.Base(filepath.Dir(r.Dir())), "..")
}

func TestColumnCacheNameEncodesTheQuery(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "X", Blatt: 1}, 12)
	p := r.ColumnPNG(3, "bv-lfd-nr", workspace.ColumnRect{MinX: 10, MinY: 20, MaxX: 30, MaxY: 40})
	assert.Equal(t, "page-03-col-bv-lfd-nr-10-20-30-40.png", filepath.Base(p))
}

func TestInvalidatePageDerivedRemovesOnlyThatPage(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "X", Blatt: 1}, 12)
	require.NoError(t, r.Ensure())

	rect := workspace.ColumnRect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	p3png := r.ColumnPNG(3, "lfd_nr", rect)
	p3hocr := r.ColumnHOCR(3, "lfd_nr", rect)
	p4png := r.ColumnPNG(4, "lfd_nr", rect)
	for _, p := range []string{p3png, p3hocr, p4png} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	require.NoError(t, r.InvalidatePageDerived(3))
	assert.False(t, workspace.Exists(p3png))
	assert.False(t, workspace.Exists(p3hocr))
	assert.True(t, workspace.Exists(p4png), "other pages' artefacts must survive")
}

func TestExistsAndInvalidateClean(t *testing.T) {
	r := workspace.New(t.TempDir(), model.Titelblatt{GrundbuchVon: "X", Blatt: 1}, 9)
	require.NoError(t, r.Ensure())

	assert.False(t, workspace.Exists(r.TempCleanPDF()))
	require.NoError(t, os.WriteFile(r.TempCleanPDF(), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(r.PageCleanPNG(1), []byte("x"), 0o644))
	assert.True(t, workspace.Exists(r.TempCleanPDF()))

	require.NoError(t, r.InvalidateClean())
	assert.False(t, workspace.Exists(r.TempCleanPDF()))
	assert.False(t, workspace.Exists(r.PageCleanPNG(1)))
}
