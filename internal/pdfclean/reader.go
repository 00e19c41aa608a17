package pdfclean

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// File is a minimally parsed PDF: every indirect object found in the
// byte stream, plus the trailer dictionary.
type File struct {
	Objects map[Reference]Object
	Trailer Dict
}

// objHeader matches "<num> <gen> obj" at a scan position.
var objHeader = regexp.MustCompile(`(?m)^\s*(\d+)\s+(\d+)\s+obj\b`)

var trailerKeyword = []byte("trailer")
var endobjKeyword = []byte("endobj")

// Parse brute-force scans raw for every "N G obj ... endobj" span and
// parses each as an object, then locates the trailer dictionary — either
// a literal "trailer" keyword or, failing that, the last object carrying
// a /Root entry (cross-reference-stream-only files). This mirrors
// pdfcpu's own repair fallback (pkg/pdfcpu/model/repair.go): rebuild from
// object bodies rather than trust a (possibly stale or absent)
// cross-reference table, which is what every real scanned-document PDF
// encountered by this pipeline needs anyway since §4.E rewrites the file
// from scratch and never round-trips an original xref table.
func Parse(raw []byte) (*File, error) {
	f := &File{Objects: map[Reference]Object{}}

	locs := objHeader.FindAllSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return nil, errors.New("pdfclean: no indirect objects found")
	}

	for i, loc := range locs {
		objNum, _ := strconv.Atoi(string(raw[loc[2]:loc[3]]))
		genNum, _ := strconv.Atoi(string(raw[loc[4]:loc[5]]))

		bodyStart := loc[1]
		bodyEnd := len(raw)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := raw[bodyStart:bodyEnd]
		if idx := bytes.Index(body, endobjKeyword); idx >= 0 {
			body = body[:idx]
		}

		obj, err := parseObjectBody(body)
		if err != nil {
			continue // best-effort: skip objects this narrow parser can't read
		}
		f.Objects[Reference{ObjectNumber: objNum, GenerationNumber: genNum}] = obj
	}

	if t := findTrailerDict(raw); t != nil {
		f.Trailer = t
	} else {
		f.Trailer = f.findTrailerByRoot()
	}
	if f.Trailer == nil {
		return nil, errors.New("pdfclean: no trailer or /Root found")
	}

	return f, nil
}

func findTrailerDict(raw []byte) Dict {
	idx := bytes.LastIndex(raw, trailerKeyword)
	if idx < 0 {
		return nil
	}
	p := newParser(raw[idx+len(trailerKeyword):])
	obj, err := p.parseObject()
	if err != nil {
		return nil
	}
	d, _ := obj.(Dict)
	return d
}

func (f *File) findTrailerByRoot() Dict {
	for ref, obj := range f.Objects {
		d, ok := obj.(Dict)
		if !ok {
			if sd, ok := obj.(StreamDict); ok {
				d = sd.Dict
			} else {
				continue
			}
		}
		if _, ok := d["Root"]; ok {
			return Dict{"Root": Reference{ObjectNumber: ref.ObjectNumber, GenerationNumber: ref.GenerationNumber}}
		}
		if t, ok := d["Type"].(Name); ok && t == "Catalog" {
			return Dict{"Root": Reference{ObjectNumber: ref.ObjectNumber, GenerationNumber: ref.GenerationNumber}}
		}
	}
	return nil
}

// parseObjectBody parses one object body (after "N G obj", before
// "endobj"), detecting a trailing stream and attaching its raw bytes.
func parseObjectBody(body []byte) (Object, error) {
	p := newParser(body)
	obj, err := p.parseObject()
	if err != nil {
		return nil, err
	}

	d, isDict := obj.(Dict)
	if !isDict {
		return obj, nil
	}

	rest := body[p.pos:]
	sIdx := bytes.Index(rest, []byte("stream"))
	if sIdx < 0 {
		return d, nil
	}
	dataStart := sIdx + len("stream")
	// Per spec, "stream" is followed by CRLF or LF before data begins.
	if dataStart < len(rest) && rest[dataStart] == '\r' {
		dataStart++
	}
	if dataStart < len(rest) && rest[dataStart] == '\n' {
		dataStart++
	}
	eIdx := bytes.Index(rest[dataStart:], []byte("endstream"))
	if eIdx < 0 {
		return d, nil
	}
	raw := rest[dataStart : dataStart+eIdx]
	return StreamDict{Dict: d, Raw: raw}, nil
}
