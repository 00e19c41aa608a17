package pdfclean_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/pdfclean"
)

func buildMinimalPDF(t *testing.T, xobjectContent string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	buf.WriteString("1 0 obj\n<</Type /Catalog /Pages 2 0 R>>\nendobj\n")
	buf.WriteString("2 0 obj\n<</Type /Pages /Kids [3 0 R] /Count 1>>\nendobj\n")
	buf.WriteString("3 0 obj\n<</Type /Page /Parent 2 0 R /Resources <</XObject <</Fm0 4 0 R>>>>>>\nendobj\n")
	buf.WriteString("4 0 obj\n<</Type /XObject /Subtype /Form /Length ")
	buf.WriteString(itoa(len(xobjectContent)))
	buf.WriteString(">>\nstream\n")
	buf.WriteString(xobjectContent)
	buf.WriteString("\nendstream\nendobj\n")
	buf.WriteString("trailer\n<</Root 1 0 R /Size 5>>\n")
	return buf.Bytes()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestParseFindsIndirectObjectsAndTrailer(t *testing.T) {
	raw := buildMinimalPDF(t, "1 0 0 1 0 0 cm\nq\n0 0 100 100 re\nf\nQ\n")
	f, err := pdfclean.Parse(raw)
	require.NoError(t, err)
	assert.Len(t, f.Objects, 4)
	assert.Contains(t, f.Trailer, "Root")
}

func TestCleanStripsPaintingOperatorsFromXObject(t *testing.T) {
	content := "q\n1 0 0 1 0 0 cm\n0 0 100 100 re\nf\nQ\n0 0 m 10 10 l\nS\n"
	raw := buildMinimalPDF(t, content)

	cleaned, err := pdfclean.Clean(raw)
	require.NoError(t, err)

	f, err := pdfclean.Parse(cleaned)
	require.NoError(t, err)

	var sd *pdfclean.StreamDict
	for _, obj := range f.Objects {
		if s, ok := obj.(pdfclean.StreamDict); ok {
			sd = &s
			break
		}
	}
	require.NotNil(t, sd, "cleaned output must still carry the xobject stream")

	data, err := pdfclean.Decode(*sd)
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "\nf\n", "fill operator must be stripped")
	assert.NotContains(t, text, "\nS\n", "stroke operator must be stripped")
	assert.Contains(t, text, "cm", "non-painting operators must survive")
	assert.Contains(t, text, "re", "path-construction operators must survive (only painting ops are stripped)")
}

// buildFilteredPDF is buildMinimalPDF with the xobject stream already
// encoded and carrying a /Filter entry, the shape real scans arrive in.
func buildFilteredPDF(t *testing.T, filterName string, encoded []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	buf.WriteString("1 0 obj\n<</Type /Catalog /Pages 2 0 R>>\nendobj\n")
	buf.WriteString("2 0 obj\n<</Type /Pages /Kids [3 0 R] /Count 1>>\nendobj\n")
	buf.WriteString("3 0 obj\n<</Type /Page /Parent 2 0 R /Resources <</XObject <</Fm0 4 0 R>>>>>>\nendobj\n")
	buf.WriteString("4 0 obj\n<</Type /XObject /Subtype /Form /Filter /" + filterName + " /Length ")
	buf.WriteString(itoa(len(encoded)))
	buf.WriteString(">>\nstream\n")
	buf.Write(encoded)
	buf.WriteString("\nendstream\nendobj\n")
	buf.WriteString("trailer\n<</Root 1 0 R /Size 5>>\n")
	return buf.Bytes()
}

func TestCleanStripsPaintingOperatorsFromFlateEncodedXObject(t *testing.T) {
	content := "q\n0 0 100 100 re\nf\nQ\n"
	encoded, err := pdfclean.Encode(pdfclean.StreamDict{
		Dict: pdfclean.Dict{"Filter": pdfclean.Name("FlateDecode")},
	}, []byte(content))
	require.NoError(t, err)

	cleaned, err := pdfclean.Clean(buildFilteredPDF(t, "FlateDecode", encoded))
	require.NoError(t, err)

	f, err := pdfclean.Parse(cleaned)
	require.NoError(t, err)
	var sd *pdfclean.StreamDict
	for _, obj := range f.Objects {
		if s, ok := obj.(pdfclean.StreamDict); ok {
			sd = &s
			break
		}
	}
	require.NotNil(t, sd)
	assert.Equal(t, pdfclean.Name("FlateDecode"), sd.Dict["Filter"],
		"the original filter chain is re-applied on re-encode")

	data, err := pdfclean.Decode(*sd)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "\nf\n")
	assert.Contains(t, text, "re")
}

func TestDecodeEncodeRoundTripsRunLength(t *testing.T) {
	sd := pdfclean.StreamDict{Dict: pdfclean.Dict{"Filter": pdfclean.Name("RunLengthDecode")}}
	content := []byte("q\n0 0 0 RG\n0 0 m 100 100 l\nS\nQ")
	encoded, err := pdfclean.Encode(sd, content)
	require.NoError(t, err)
	sd.Raw = encoded

	decoded, err := pdfclean.Decode(sd)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestDecodeEncodeRoundTripsFlate(t *testing.T) {
	sd := pdfclean.StreamDict{Dict: pdfclean.Dict{"Filter": pdfclean.Name("FlateDecode")}}
	encoded, err := pdfclean.Encode(sd, []byte("q 0 0 10 10 re f Q"))
	require.NoError(t, err)
	sd.Raw = encoded

	decoded, err := pdfclean.Decode(sd)
	require.NoError(t, err)
	assert.Equal(t, "q 0 0 10 10 re f Q", string(decoded))
}
