// Package persist implements §6's .gbx/.cache.gbx booklet persistence:
// UTF-8 JSON with CRLF line endings, unknown fields ignored on read,
// absent fields defaulted, stable key order on write so two rounds of
// unmarshal/marshal with no edits produce byte-identical output (§8's
// round-trip testable property).
package persist

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// Marshal encodes f as the .gbx JSON document: 2-space indent, then every
// bare "\n" rewritten to "\r\n" per §6's CRLF requirement. encoding/json
// already emits object keys in the struct's declared field order, which is
// stable across runs — the requirement behind §8's round-trip property.
func Marshal(f *model.PdfFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return nil, errors.Wrap(err, "persist: marshal PdfFile")
	}
	out := bytes.ReplaceAll(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"), []byte("\r\n"))
	return out, nil
}

// Unmarshal decodes a .gbx document. Unknown fields are silently ignored
// (encoding/json's default); fields absent from the document keep their
// Go zero value, matching §6's "absent fields default" rule.
func Unmarshal(raw []byte) (*model.PdfFile, error) {
	normalized := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	var f model.PdfFile
	if err := json.Unmarshal(normalized, &f); err != nil {
		return nil, errors.Wrap(err, "persist: unmarshal PdfFile")
	}
	return &f, nil
}

// WriteFile persists f to path, the authoritative .gbx artefact when path
// ends in .gbx, or the best-effort .cache.gbx sidecar snapshot otherwise —
// the schema is identical either way (§6).
func WriteFile(path string, f *model.PdfFile) error {
	raw, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(&model.IoError{Path: path, Cause: err}, "persist: write %s", path)
	}
	return nil
}

// ReadFile loads and decodes a .gbx/.cache.gbx document from path.
func ReadFile(path string) (*model.PdfFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(&model.IoError{Path: path, Cause: err}, "persist: read %s", path)
	}
	return Unmarshal(raw)
}

// CachePath derives the best-effort sidecar snapshot path from the
// authoritative .gbx path (§6: "Sidecar file .cache.gbx uses the same
// schema and is a best-effort snapshot during work").
func CachePath(gbxPath string) string {
	return strings.TrimSuffix(gbxPath, ".gbx") + ".cache.gbx"
}
