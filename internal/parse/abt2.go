package parse

import "github.com/projekt-gbx/gbx-digitalisierer/internal/model"

// ParseAbt2 implements §4.K's Abteilung 2 main entry parser: columns
// 0=lfd_nr, 1=bv_nr, 2=text. RechteArt/Rechtsinhaber/Rangvermerk are left
// at their zero value here; they are filled later by the post-analysis
// scripts (§4.N) that read the raw Text.
func ParseAbt2(texte [][]model.Textblock, cellMode bool) []model.Abt2Eintrag {
	fields := parseMainEntries(texte, cellMode, 0, 1, -1, 2)
	out := make([]model.Abt2Eintrag, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt2Eintrag{
			LfdNr: f.lfdNr,
			BvNr:  f.bvNr,
			Text:  f.text,
		})
	}
	return out
}

// ParseAbt2Veraenderungen implements §4.K's Abteilung 2 Veränderungen
// shape: columns 0=lfd_nr, 1=betrag, 2=text, anchored on text.
func ParseAbt2Veraenderungen(texte [][]model.Textblock, cellMode bool) []model.Abt2Veraenderung {
	fields := parseMainEntries(texte, cellMode, 0, -1, 1, 2)
	out := make([]model.Abt2Veraenderung, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt2Veraenderung{
			LfdNr:  f.lfdNr,
			Betrag: f.betrag,
			Text:   f.text,
		})
	}
	return out
}

// ParseAbt2Loeschungen reads the same page layout as
// ParseAbt2Veraenderungen; the page-type classifier collapses
// Veränderungen and Löschungen into one SeitenTyp (§4.F), so the
// orchestrator decides which of the two result slices a given page's
// entries belong to.
func ParseAbt2Loeschungen(texte [][]model.Textblock, cellMode bool) []model.Abt2Loeschung {
	fields := parseMainEntries(texte, cellMode, 0, -1, 1, 2)
	out := make([]model.Abt2Loeschung, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt2Loeschung{
			LfdNr:  f.lfdNr,
			Betrag: f.betrag,
			Text:   f.text,
		})
	}
	return out
}
