package parse

import "github.com/projekt-gbx/gbx-digitalisierer/internal/model"

// ParseAbt1 implements §4.K's Abteilung 1 main entry parser: columns
// 0=lfd_nr, 1=bv_nr, 2=text, anchored on the text column. Blocks of length
// ≤12 or with no whitespace are dropped as numeric lookalikes.
func ParseAbt1(texte [][]model.Textblock, cellMode bool) []model.Abt1Eintrag {
	fields := parseMainEntries(texte, cellMode, 0, 1, -1, 2)
	out := make([]model.Abt1Eintrag, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.Abt1Eintrag{
			LfdNr: f.lfdNr,
			BvNr:  f.bvNr,
			Text:  f.text,
		})
	}
	return out
}
