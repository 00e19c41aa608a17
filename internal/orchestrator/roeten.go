package orchestrator

import (
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/parse"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
)

// bvAnchorColumn mirrors the anchor column ParseBvHorizontal/ParseBvVertical
// use internally: flurstueck (col 4) for BV-horz in line mode, lfd_nr
// (col 0) in cell mode and for every BV-vert variant.
func bvAnchorColumn(typ model.SeitenTyp, cellMode bool) int {
	if typ == model.BVHorizontal && !cellMode {
		return 4
	}
	return 0
}

// applyRoeten runs bv_eintraege_roeten (§4.K) once per booklet, over every
// BV main page in turn. Row bands are derived from the same anchor column
// the section parser walked to produce entries; since both iterate the
// identical unfiltered row set and only drop the rare JVA-Branden-artefact
// row, a length mismatch means this page's bands can't be trusted and
// redaction for it is skipped with a diagnostic rather than guessed at.
func applyRoeten(root workspace.Root, pages []parse.PageInput, mmHeights map[int]float64, eintraege []model.BvEintrag) ([]model.BvEintrag, []model.Warnung) {
	var warnungen []model.Warnung
	out := eintraege

	consumed := 0
	for _, p := range pages {
		switch p.Typ {
		case model.BVHorizontal, model.BVVertical, model.BVVerticalVariant2:
		default:
			continue
		}

		ankerCol := bvAnchorColumn(p.Typ, p.HasZeilen)
		if ankerCol >= len(p.Texte) {
			continue
		}

		var bands []parse.RowBand
		for _, tb := range p.Texte[ankerCol] {
			bands = append(bands, parse.RowBand{MinY: tb.StartY, MaxY: tb.EndY})
		}

		n := len(bands)
		if consumed+n > len(out) {
			n = len(out) - consumed
		}
		if n <= 0 {
			continue
		}
		slice := out[consumed : consumed+n]

		mmHeight := mmHeights[p.Seite]
		if mmHeight <= 0 {
			mmHeight = 297.0 // DIN A4 fallback, matching §4.G's default page layout
		}
		red, err := parse.BvEintraegeRoeten(root.PagePNG(p.Seite), root.PageCleanPNG(p.Seite), mmHeight, slice, bands[:n])
		if err != nil {
			seite := p.Seite
			warnungen = append(warnungen, model.Warnung{
				Stufe:  model.StufeHinweis,
				Seite:  &seite,
				Quelle: "orchestrator",
				Text:   "Rötungserkennung übersprungen: " + err.Error(),
			})
			consumed += n
			continue
		}
		copy(out[consumed:consumed+n], red)
		consumed += n
	}

	return out, warnungen
}
