package pdftext

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// bboxDoc mirrors poppler pdftotext -bbox-layout's XHTML structure:
// doc > page > flow > block > line > word, each word/page carrying the
// coordinate attributes §4.D reads.
type bboxDoc struct {
	XMLName xml.Name    `xml:"doc"`
	Pages   []bboxPage  `xml:"page"`
}

type bboxPage struct {
	Width  float64     `xml:"width,attr"`
	Height float64     `xml:"height,attr"`
	Flows  []bboxFlow  `xml:"flow"`
}

type bboxFlow struct {
	Blocks []bboxBlock `xml:"block"`
}

type bboxBlock struct {
	Lines []bboxLine `xml:"line"`
}

type bboxLine struct {
	Words []bboxWord `xml:"word"`
}

type bboxWord struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
	Text string  `xml:",chardata"`
}

// ReadLayout reads and parses path (the text-extractor's -bbox-layout
// output) for exactly the pages in seiten. Unreadable pages are silently
// dropped, per §4.D.
func ReadLayout(path string, seiten []int) (model.PdfToTextLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "pdftext: read bbox-layout file")
	}
	return ParseLayout(raw, seiten)
}

// ParseLayout implements §4.D against raw bbox-layout XHTML. Page
// selection is positional: the Nth <page> element in document order
// corresponds to seite N (poppler emits one <page> per physical page in
// order, with no separate page-number attribute in the dialect this
// pipeline targets).
func ParseLayout(raw []byte, seiten []int) (model.PdfToTextLayout, error) {
	var doc bboxDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "pdftext: parse bbox-layout xml")
	}

	wanted := make(map[int]bool, len(seiten))
	for _, s := range seiten {
		wanted[s] = true
	}

	out := model.PdfToTextLayout{}
	for i, page := range doc.Pages {
		seite := i + 1
		if !wanted[seite] {
			continue
		}

		var texte []model.Textblock
		for _, flow := range page.Flows {
			for _, block := range flow.Blocks {
				for _, line := range block.Lines {
					for _, w := range line.Words {
						texte = append(texte, model.Textblock{
							Text:   strings.TrimSpace(w.Text),
							StartX: w.XMin,
							EndX:   w.XMax,
							StartY: w.YMin,
							EndY:   w.YMax,
						})
					}
				}
			}
		}

		out[seite] = model.PageLayout{
			BreiteMM: page.Width,
			HoeheMM:  page.Height,
			Texte:    texte,
		}
	}

	return out, nil
}
