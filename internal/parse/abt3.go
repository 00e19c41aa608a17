package parse

import "github.com/projekt-gbx/gbx-digitalisierer/internal/model"

// ParseAbt3 implements §4.K's Abteilung 3 main entry parser: columns
// 0=lfd_nr, 1=bv_nr, 2=betrag, 3=text. Betrag/SchuldenArt/Rechtsinhaber
// are left at their zero value; betrag_auslesen and
// klassifiziere_schuldenart_abt3 (§4.N) fill them from the raw Text.
func ParseAbt3(texte [][]model.Textblock, cellMode bool) []model.Abt3Eintrag {
	fields := parseMainEntries(texte, cellMode, 0, 1, 2, 3)
	out := make([]model.Abt3Eintrag, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt3Eintrag{
			LfdNr: f.lfdNr,
			BvNr:  f.bvNr,
			Text:  f.text,
		})
	}
	return out
}

// ParseAbt3Veraenderungen implements the Abteilung 3 Veränderungen shape:
// columns 0=lfd_nr, 1=betrag, 2=text, anchored on text.
func ParseAbt3Veraenderungen(texte [][]model.Textblock, cellMode bool) []model.Abt3Veraenderung {
	fields := parseMainEntries(texte, cellMode, 0, -1, 1, 2)
	out := make([]model.Abt3Veraenderung, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt3Veraenderung{
			LfdNr:  f.lfdNr,
			Betrag: f.betrag,
			Text:   f.text,
		})
	}
	return out
}

// ParseAbt3Loeschungen implements the Abteilung 3 Löschungen shape: the
// same {lfd_nr, betrag, text} layout as Veränderungen.
func ParseAbt3Loeschungen(texte [][]model.Textblock, cellMode bool) []model.Abt3Loeschung {
	fields := parseMainEntries(texte, cellMode, 0, -1, 1, 2)
	out := make([]model.Abt3Loeschung, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt3Loeschung{
			LfdNr:  f.lfdNr,
			Betrag: f.betrag,
			Text:   f.text,
		})
	}
	return out
}
