// Package pdftext reads the two native-text extraction modes the
// text-extractor tool produces: §4.C's plain-layout title page and §4.D's
// bbox-layout full-document word positions.
package pdftext

import (
	"os"
	"strings"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// titlePageBoilerplate lines are dropped before tokenising (§4.C).
var titlePageBoilerplate = []string{
	"zur Fortführung auf EDV",
	"dabei an die Stelle des bisherigen",
	"Blatt enthaltene Rötungen",
	"Freigegeben am",
	"Geändert am ",
}

func isBoilerplate(line string) bool {
	for _, b := range titlePageBoilerplate {
		if strings.Contains(line, b) {
			return true
		}
	}
	return false
}

// ReadTitelblatt parses the title-page layout text at path (produced by
// the text-extractor's -layout mode over page 1) into a Titelblatt.
func ReadTitelblatt(path string) (model.Titelblatt, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Titelblatt{}, err
	}
	return ParseTitelblatt(string(raw))
}

// ParseTitelblatt implements §4.C: drop boilerplate lines, join the rest
// with whitespace, skip a leading "Amtsgericht" label word, and take the
// first three remaining whitespace-separated tokens as {amtsgericht,
// grundbuch_von, blatt}.
func ParseTitelblatt(text string) (model.Titelblatt, error) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isBoilerplate(line) {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}

	tokens := strings.Fields(strings.Join(kept, " "))
	if len(tokens) > 0 && tokens[0] == "Amtsgericht" {
		tokens = tokens[1:]
	}

	if len(tokens) < 1 {
		return model.Titelblatt{}, model.NewTitelblattError(model.KeinAmtsgericht)
	}
	if len(tokens) < 2 {
		return model.Titelblatt{}, model.NewTitelblattError(model.KeinGbBezirk)
	}
	if len(tokens) < 3 {
		return model.Titelblatt{}, model.NewTitelblattError(model.KeinGbBlatt)
	}

	blatt, err := parseBlattNumber(tokens[2])
	if err != nil {
		return model.Titelblatt{}, model.NewTitelblattError(model.KeinGbBlatt)
	}

	return model.Titelblatt{
		Amtsgericht:  tokens[0],
		GrundbuchVon: tokens[1],
		Blatt:        blatt,
	}, nil
}

func parseBlattNumber(tok string) (uint, error) {
	digits := strings.TrimFunc(tok, func(r rune) bool { return r < '0' || r > '9' })
	var n uint
	if digits == "" {
		return 0, errNotANumber
	}
	for _, r := range digits {
		n = n*10 + uint(r-'0')
	}
	return n, nil
}

var errNotANumber = model.NewTitelblattError(model.KeinGbBlatt)
