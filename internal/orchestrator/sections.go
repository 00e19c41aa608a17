package orchestrator

import (
	"sort"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/parse"
)

// foldSections implements §4.K end to end: iterate every successfully
// loaded page in page-number order and fold its cell table into the
// Grundbuch section its SeitenTyp belongs to, per the column-index
// conventions internal/parse documents for each variant. warnings
// receives one entry for every page whose SeitenTyp carries an ambiguity
// the column schema can't resolve on its own (the Abt2/Abt3 combined
// Veränderungen/Löschungen variants — see DESIGN.md).
func foldSections(pages []parse.PageInput) (model.Grundbuch, []model.Warnung) {
	sort.Slice(pages, func(i, j int) bool { return pages[i].Seite < pages[j].Seite })

	var g model.Grundbuch
	var warnungen []model.Warnung

	for _, p := range pages {
		switch p.Typ {
		case model.BVHorizontal:
			g.Bestandsverzeichnis.Eintraege = append(g.Bestandsverzeichnis.Eintraege,
				parse.ParseBvHorizontal(p.Texte, p.HasZeilen)...)
		case model.BVVertical:
			g.Bestandsverzeichnis.Eintraege = append(g.Bestandsverzeichnis.Eintraege,
				parse.ParseBvVertical(p.Texte, false, p.HasZeilen)...)
		case model.BVVerticalVariant2:
			g.Bestandsverzeichnis.Eintraege = append(g.Bestandsverzeichnis.Eintraege,
				parse.ParseBvVertical(p.Texte, true, p.HasZeilen)...)
		case model.BVHorizontalZuAbschreibungen, model.BVVerticalZuAbschreibungen:
			g.Bestandsverzeichnis.Zuschreibungen = append(g.Bestandsverzeichnis.Zuschreibungen,
				parse.ParseBvZuschreibungen(p.Texte, p.HasZeilen)...)
			g.Bestandsverzeichnis.Abschreibungen = append(g.Bestandsverzeichnis.Abschreibungen,
				parse.ParseBvAbschreibungen(p.Texte, p.HasZeilen)...)

		case model.Abt1Horizontal, model.Abt1Vertical:
			g.Abt1.Eintraege = append(g.Abt1.Eintraege, parse.ParseAbt1(p.Texte, p.HasZeilen)...)

		case model.Abt2Horizontal, model.Abt2Vertical:
			g.Abt2.Eintraege = append(g.Abt2.Eintraege, parse.ParseAbt2(p.Texte, p.HasZeilen)...)
		case model.Abt2HorizontalVeraenderungen, model.Abt2VerticalVeraenderungen:
			// The classifier collapses Veränderungen and Löschungen into
			// one SeitenTyp for Abt2 (§4.F); both read the identical
			// column layout, so we route to Veraenderungen by convention
			// and flag the page for manual review, per DESIGN.md.
			g.Abt2.Veraenderungen = append(g.Abt2.Veraenderungen, parse.ParseAbt2Veraenderungen(p.Texte, p.HasZeilen)...)
			warnungen = append(warnungen, ambiguousSubtypeWarnung(p.Seite, "Abt2 Veränderungen/Löschungen"))

		case model.Abt3Horizontal, model.Abt3Vertical:
			g.Abt3.Eintraege = append(g.Abt3.Eintraege, parse.ParseAbt3(p.Texte, p.HasZeilen)...)
		case model.Abt3VerticalVeraenderungen:
			g.Abt3.Veraenderungen = append(g.Abt3.Veraenderungen, parse.ParseAbt3Veraenderungen(p.Texte, p.HasZeilen)...)
		case model.Abt3VerticalLoeschungen:
			g.Abt3.Loeschungen = append(g.Abt3.Loeschungen, parse.ParseAbt3Loeschungen(p.Texte, p.HasZeilen)...)
		case model.Abt3HorizontalVeraenderungenLoeschungen, model.Abt3VerticalVeraenderungenLoeschungen:
			// Same ambiguity as Abt2 above, but for the single landscape
			// variant and the combined vertical variant that carry both
			// Veränderungen- and Löschungen-marked text on one page with
			// no row-level marker to split them (§4.K, DESIGN.md).
			g.Abt3.Veraenderungen = append(g.Abt3.Veraenderungen, parse.ParseAbt3Veraenderungen(p.Texte, p.HasZeilen)...)
			warnungen = append(warnungen, ambiguousSubtypeWarnung(p.Seite, "Abt3 Veränderungen/Löschungen"))
		}
	}

	g.Bestandsverzeichnis.Eintraege = parse.RepairBv(g.Bestandsverzeichnis.Eintraege)

	return g, warnungen
}

func ambiguousSubtypeWarnung(seite int, what string) model.Warnung {
	s := seite
	return model.Warnung{
		Stufe:  model.StufeHinweis,
		Seite:  &s,
		Quelle: "orchestrator",
		Text:   what + " auf dieser Seite konnte nicht eindeutig getrennt werden; manuelle Prüfung empfohlen.",
	}
}
