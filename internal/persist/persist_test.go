package persist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/persist"
)

func sampleFile() *model.PdfFile {
	f := model.NewPdfFile("/tmp/in.pdf", model.Titelblatt{
		Amtsgericht:  "Musterstadt",
		GrundbuchVon: "Musterdorf",
		Blatt:        17,
	}, []int{2, 3})
	f.SeitenVersuchtGeladen["2"] = true
	f.Analysiert.Titelblatt = f.Titelblatt
	return f
}

func TestMarshalUsesCRLF(t *testing.T) {
	raw, err := persist.Marshal(sampleFile())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\r\r\n")
	assert.Contains(t, string(raw), "\r\n")
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	f := sampleFile()
	first, err := persist.Marshal(f)
	require.NoError(t, err)

	decoded, err := persist.Unmarshal(first)
	require.NoError(t, err)

	second, err := persist.Marshal(decoded)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUnmarshalIgnoresUnknownFieldsAndDefaultsAbsentOnes(t *testing.T) {
	raw := []byte(`{"titelblatt":{"amtsgericht":"AG","grundbuchVon":"Dorf","blatt":3},"unknownField":"ignored"}`)
	f, err := persist.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, "AG", f.Titelblatt.Amtsgericht)
	assert.Nil(t, f.Geladen)
}

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Musterdorf-17.gbx")

	f := sampleFile()
	require.NoError(t, persist.WriteFile(path, f))

	loaded, err := persist.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Titelblatt, loaded.Titelblatt)

	cachePath := persist.CachePath(path)
	require.NoError(t, persist.WriteFile(cachePath, f))
	_, err = os.Stat(cachePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Musterdorf-17.cache.gbx"), cachePath)
}
