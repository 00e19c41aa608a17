// Package ocr runs the external OCR engine (§4.I) per column with the
// type-appropriate whitelist, and parses its HOCR output (§4.J's input)
// into ordered lines with pixel bounding boxes.
package ocr

import (
	"encoding/xml"
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// node is a generic HOCR/XHTML element: hOCR mixes <div>/<p>/<span> at
// varying nesting depth depending on the engine's page-segmentation mode,
// so the parser walks a generic tree rather than a fixed schema, the same
// shape internal/pdftext uses for poppler's bbox-layout dialect.
type node struct {
	XMLName  xml.Name
	Attr     []xml.Attr `xml:",any,attr"`
	Nodes    []node     `xml:",any"`
	Chardata string     `xml:",chardata"`
}

func (n node) class() string {
	for _, a := range n.Attr {
		if a.Name.Local == "class" {
			return a.Value
		}
	}
	return ""
}

func (n node) title() string {
	for _, a := range n.Attr {
		if a.Name.Local == "title" {
			return a.Value
		}
	}
	return ""
}

var bboxRe = regexp.MustCompile(`bbox (-?\d+) (-?\d+) (-?\d+) (-?\d+)`)

func parseBBox(title string) (image.Rectangle, bool) {
	m := bboxRe.FindStringSubmatch(title)
	if m == nil {
		return image.Rectangle{}, false
	}
	vals := make([]int, 4)
	for i, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return image.Rectangle{}, false
		}
		vals[i] = n
	}
	return image.Rect(vals[0], vals[1], vals[2], vals[3]), true
}

// Line is one HOCR `.ocr_line` element: its pixel bounding box plus its
// concatenated word text, in document order.
type Line struct {
	Rect image.Rectangle
	Text string
}

func collectText(n node) string {
	var b strings.Builder
	b.WriteString(n.Chardata)
	for _, c := range n.Nodes {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(collectText(c))
	}
	// NFC-normalise so umlauts compare equal no matter whether the engine
	// emitted them composed or decomposed.
	return norm.NFC.String(strings.Join(strings.Fields(b.String()), " "))
}

func collectLines(n node, out *[]Line) {
	if strings.Contains(n.class(), "ocr_line") {
		rect, ok := parseBBox(n.title())
		if ok {
			text := collectText(n)
			if text != "" {
				*out = append(*out, Line{Rect: rect, Text: text})
			}
		}
		// ocr_line never nests another ocr_line; no need to recurse further.
		return
	}
	for _, c := range n.Nodes {
		collectLines(c, out)
	}
}

// ParseHOCR parses a tesseract HOCR document into its ordered `.ocr_line`
// elements. A page with zero recognised lines parses successfully to an
// empty slice (§8: "Column OCR returning zero lines... is parseable; no
// exception").
func ParseHOCR(raw []byte) ([]Line, error) {
	var root node
	if err := xml.Unmarshal(raw, &root); err != nil {
		return nil, errors.Wrap(err, "ocr: parse hocr xml")
	}
	var lines []Line
	collectLines(root, &lines)
	return lines, nil
}
