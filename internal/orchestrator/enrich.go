package orchestrator

import (
	"strconv"
	"strings"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/script"
)

// ScriptSources carries the user-overridable script body for each §4.N
// function. A field left empty falls back to that function's built-in
// Default* script.
type ScriptSources struct {
	TextSaubern                  string
	KlassifiziereRechteArtAbt2   string
	RechtsinhaberAuslesenAbt2    string
	RechtsinhaberAuslesenAbt3    string
	RangvermerkAuslesenAbt2      string
	TextKuerzenAbt2              string
	TextKuerzenAbt3              string
	BetragAuslesen               string
	KlassifiziereSchuldenArtAbt3 string
}

func (s ScriptSources) withDefaults() ScriptSources {
	if s.TextSaubern == "" {
		s.TextSaubern = script.DefaultTextSaubern
	}
	if s.KlassifiziereRechteArtAbt2 == "" {
		s.KlassifiziereRechteArtAbt2 = script.DefaultKlassifiziereRechteArtAbt2
	}
	if s.RechtsinhaberAuslesenAbt2 == "" {
		s.RechtsinhaberAuslesenAbt2 = script.DefaultRechtsinhaberAuslesenAbt2
	}
	if s.RechtsinhaberAuslesenAbt3 == "" {
		s.RechtsinhaberAuslesenAbt3 = script.DefaultRechtsinhaberAuslesenAbt3
	}
	if s.RangvermerkAuslesenAbt2 == "" {
		s.RangvermerkAuslesenAbt2 = script.DefaultRangvermerkAuslesenAbt2
	}
	if s.TextKuerzenAbt2 == "" {
		s.TextKuerzenAbt2 = script.DefaultTextKuerzenAbt2
	}
	if s.TextKuerzenAbt3 == "" {
		s.TextKuerzenAbt3 = script.DefaultTextKuerzenAbt3
	}
	if s.BetragAuslesen == "" {
		s.BetragAuslesen = script.DefaultBetragAuslesen
	}
	if s.KlassifiziereSchuldenArtAbt3 == "" {
		s.KlassifiziereSchuldenArtAbt3 = script.DefaultKlassifiziereSchuldenArtAbt3
	}
	return s
}

// Enrich runs §4.N's post-analysis scripts over g's Abteilung II/III
// entries, filling RechteArt/Rechtsinhaber/Rangvermerk/Betrag/SchuldenArt
// and a shortened Text from each entry's raw OCR text. It never fails the
// booklet outright: a script error is recorded as a Hinweis-level Warnung
// and that one field is left at its zero value, matching spec.md's framing
// of N as optional enrichment layered on top of L, not a precondition for
// it.
func Enrich(g *model.Grundbuch, sources ScriptSources, regexMap script.RegexMap) []model.Warnung {
	sources = sources.withDefaults()
	var warnungen []model.Warnung

	for i := range g.Abt2.Eintraege {
		e := &g.Abt2.Eintraege[i]
		saetze, err := saetze(sources.TextSaubern, e.Text, regexMap)
		if err != nil {
			warnungen = append(warnungen, scriptWarnung("abt2", e.LfdNr, "text_saubern", err))
			continue
		}

		if art, err := script.KlassifiziereRechteArtAbt2(sources.KlassifiziereRechteArtAbt2, saetze, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt2", e.LfdNr, "klassifiziere_rechteart_abt2", err))
		} else {
			e.RechteArt = art
		}

		if inh, err := script.RechtsinhaberAuslesenAbt2(sources.RechtsinhaberAuslesenAbt2, saetze, regexMap, int(e.LfdNr)); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt2", e.LfdNr, "rechtsinhaber_auslesen_abt2", err))
		} else {
			e.Rechtsinhaber = inh
		}

		if rang, err := script.RangvermerkAuslesenAbt2(sources.RangvermerkAuslesenAbt2, saetze, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt2", e.LfdNr, "rangvermerk_auslesen_abt2", err))
		} else {
			e.Rangvermerk = rang
		}

		if text, err := script.TextKuerzenAbt2(sources.TextKuerzenAbt2, saetze, e.Rechtsinhaber, e.Rangvermerk, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt2", e.LfdNr, "text_kuerzen_abt2", err))
		} else {
			e.Text = text
		}
	}

	for i := range g.Abt3.Eintraege {
		e := &g.Abt3.Eintraege[i]
		saetze, err := saetze(sources.TextSaubern, e.Text, regexMap)
		if err != nil {
			warnungen = append(warnungen, scriptWarnung("abt3", e.LfdNr, "text_saubern", err))
			continue
		}

		if art, err := script.KlassifiziereSchuldenArtAbt3(sources.KlassifiziereSchuldenArtAbt3, saetze, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt3", e.LfdNr, "klassifiziere_schuldenart_abt3", err))
		} else {
			e.SchuldenArt = art
		}

		if inh, err := script.RechtsinhaberAuslesenAbt3(sources.RechtsinhaberAuslesenAbt3, saetze, regexMap, int(e.LfdNr)); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt3", e.LfdNr, "rechtsinhaber_auslesen_abt3", err))
		} else {
			e.Rechtsinhaber = inh
		}

		if betrag, err := script.BetragAuslesen(sources.BetragAuslesen, saetze, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt3", e.LfdNr, "betrag_auslesen", err))
		} else {
			e.Betrag = betrag
		}

		if text, err := script.TextKuerzenAbt3(sources.TextKuerzenAbt3, saetze, e.Betrag, e.SchuldenArt, e.Rechtsinhaber, regexMap); err != nil {
			warnungen = append(warnungen, scriptWarnung("abt3", e.LfdNr, "text_kuerzen_abt3", err))
		} else {
			e.Text = text
		}
	}

	return warnungen
}

// saetze cleans text through text_saubern (§4.N) and splits the result
// into sentences on ". " boundaries — the simple tokenisation every
// built-in Default* script above is written against.
func saetze(source, text string, regexMap script.RegexMap) ([]string, error) {
	cleaned, err := script.TextSaubern(source, text, regexMap)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(cleaned, ". ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func scriptWarnung(quelle string, lfdNr uint, funktion string, err error) model.Warnung {
	return model.Warnung{
		Stufe:  model.StufeHinweis,
		Quelle: "script:" + quelle,
		Text:   funktion + " (lfd_nr " + strconv.FormatUint(uint64(lfdNr), 10) + "): " + err.Error(),
	}
}
