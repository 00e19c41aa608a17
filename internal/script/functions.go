package script

import (
	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// The Default* constants are the built-in fallback scripts used when a
// booklet carries no user override for that function — a reasonable
// literal translation of the corresponding original_source/src/python.rs
// default, re-expressed as a Go function body per SPEC_FULL.md §4.N+.

const DefaultTextSaubern = `
import "strings"
var Run = func(text string, regexMap gbxscript.RegexMap) string {
	return strings.Join(strings.Fields(text), " ")
}`

const DefaultAbkuerzungen = `
var Run = func(regexMap gbxscript.RegexMap) []string {
	return []string{"Str.", "Nr.", "geb.", "verh.", "Gem."}
}`

const DefaultFlurstueckeAuslesen = `
var Run = func(spalte1 []gbxscript.Spalte1Eintrag, text string, regexMap gbxscript.RegexMap) []gbxscript.Spalte1Eintrag {
	return spalte1
}`

const DefaultKlassifiziereRechteArtAbt2 = `
import "strings"
var Run = func(saetze []string, regexMap gbxscript.RegexMap) gbxscript.RechteArt {
	for _, s := range saetze {
		if strings.Contains(s, "Grunddienstbarkeit") {
			return gbxscript.RechteArt("Grunddienstbarkeit")
		}
	}
	return gbxscript.RechteArt("")
}`

const DefaultRechtsinhaberAuslesenAbt2 = `
var Run = func(saetze []string, regexMap gbxscript.RegexMap, rechtId int) string {
	if len(saetze) == 0 {
		return ""
	}
	return saetze[0]
}`

const DefaultRechtsinhaberAuslesenAbt3 = DefaultRechtsinhaberAuslesenAbt2

const DefaultRangvermerkAuslesenAbt2 = `
import "strings"
var Run = func(saetze []string, regexMap gbxscript.RegexMap) string {
	for _, s := range saetze {
		if strings.Contains(s, "gleichen Rang") || strings.Contains(s, "Rang nach") || strings.Contains(s, "Rang vor") {
			return s
		}
	}
	return ""
}`

const DefaultTextKuerzenAbt2 = `
var Run = func(saetze []string, rechtsinhaber string, rangvermerk string, regexMap gbxscript.RegexMap) string {
	out := ""
	for _, s := range saetze {
		if out != "" {
			out += " "
		}
		out += s
	}
	return out
}`

const DefaultTextKuerzenAbt3 = `
var Run = func(saetze []string, betrag gbxscript.Betrag, schuldenart gbxscript.SchuldenArt, rechtsinhaber string, regexMap gbxscript.RegexMap) string {
	out := ""
	for _, s := range saetze {
		if out != "" {
			out += " "
		}
		out += s
	}
	return out
}`

const DefaultBetragAuslesen = `
var Run = func(saetze []string, regexMap gbxscript.RegexMap) gbxscript.Betrag {
	return gbxscript.Betrag{}
}`

const DefaultKlassifiziereSchuldenArtAbt3 = `
import "strings"
var Run = func(saetze []string, regexMap gbxscript.RegexMap) gbxscript.SchuldenArt {
	for _, s := range saetze {
		if strings.Contains(s, "Grundschuld") {
			return gbxscript.SchuldenArt("Grundschuld")
		}
		if strings.Contains(s, "Hypothek") {
			return gbxscript.SchuldenArt("Hypothek")
		}
	}
	return gbxscript.SchuldenArt("")
}`

// TextSaubern runs text_saubern (§4.N): normalises an OCR'd text fragment
// before any other script sees it.
func TextSaubern(source, text string, regexMap RegexMap) (string, error) {
	const fn = "text_saubern"
	key := contentHash(fn, source, regexMap, text)
	if v, ok := cacheLoad(key); ok {
		return v.(string), nil
	}
	out, err := call(source, text, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	s, ok := out.Interface().(string)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a string"))
	}
	cacheStore(key, s)
	return s, nil
}

// Abkuerzungen runs abkuerzungen (§4.N): returns the abbreviation list used
// while splitting sentences for the other section scripts.
func Abkuerzungen(source string, regexMap RegexMap) ([]string, error) {
	const fn = "abkuerzungen"
	key := contentHash(fn, source, regexMap)
	if v, ok := cacheLoad(key); ok {
		return v.([]string), nil
	}
	out, err := call(source, regexMap)
	if err != nil {
		return nil, fehler(fn, err)
	}
	list, ok := out.Interface().([]string)
	if !ok {
		return nil, fehler(fn, errors.New("Run did not return []string"))
	}
	cacheStore(key, list)
	return list, nil
}

// FlurstueckeAuslesen runs flurstuecke_auslesen (§4.N): splits a BV free
// text cell that listed several parcels on one OCR line back into
// per-parcel rows.
func FlurstueckeAuslesen(source string, spalte1 []model.Spalte1Eintrag, text string, regexMap RegexMap) ([]model.Spalte1Eintrag, error) {
	const fn = "flurstuecke_auslesen"
	key := contentHash(fn, source, regexMap, spalte1, text)
	if v, ok := cacheLoad(key); ok {
		return v.([]model.Spalte1Eintrag), nil
	}
	out, err := call(source, spalte1, text, regexMap)
	if err != nil {
		return nil, fehler(fn, err)
	}
	list, ok := out.Interface().([]model.Spalte1Eintrag)
	if !ok {
		return nil, fehler(fn, errors.New("Run did not return []Spalte1Eintrag"))
	}
	cacheStore(key, list)
	return list, nil
}

// KlassifiziereRechteArtAbt2 runs klassifiziere_rechteart_abt2 (§4.N).
func KlassifiziereRechteArtAbt2(source string, saetze []string, regexMap RegexMap) (model.RechteArt, error) {
	const fn = "klassifiziere_rechteart_abt2"
	key := contentHash(fn, source, regexMap, saetze)
	if v, ok := cacheLoad(key); ok {
		return v.(model.RechteArt), nil
	}
	out, err := call(source, saetze, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	art, ok := out.Interface().(model.RechteArt)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a RechteArt"))
	}
	cacheStore(key, art)
	return art, nil
}

// RechtsinhaberAuslesenAbt2 runs rechtsinhaber_auslesen_abt2 (§4.N).
func RechtsinhaberAuslesenAbt2(source string, saetze []string, regexMap RegexMap, rechtID int) (string, error) {
	return rechtsinhaberAuslesen("rechtsinhaber_auslesen_abt2", source, saetze, regexMap, rechtID)
}

// RechtsinhaberAuslesenAbt3 runs rechtsinhaber_auslesen_abt3 (§4.N).
func RechtsinhaberAuslesenAbt3(source string, saetze []string, regexMap RegexMap, rechtID int) (string, error) {
	return rechtsinhaberAuslesen("rechtsinhaber_auslesen_abt3", source, saetze, regexMap, rechtID)
}

func rechtsinhaberAuslesen(fn, source string, saetze []string, regexMap RegexMap, rechtID int) (string, error) {
	key := contentHash(fn, source, regexMap, saetze, rechtID)
	if v, ok := cacheLoad(key); ok {
		return v.(string), nil
	}
	out, err := call(source, saetze, regexMap, rechtID)
	if err != nil {
		return "", fehler(fn, err)
	}
	s, ok := out.Interface().(string)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a string"))
	}
	cacheStore(key, s)
	return s, nil
}

// RangvermerkAuslesenAbt2 runs rangvermerk_auslesen_abt2 (§4.N).
func RangvermerkAuslesenAbt2(source string, saetze []string, regexMap RegexMap) (string, error) {
	const fn = "rangvermerk_auslesen_abt2"
	key := contentHash(fn, source, regexMap, saetze)
	if v, ok := cacheLoad(key); ok {
		return v.(string), nil
	}
	out, err := call(source, saetze, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	s, ok := out.Interface().(string)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a string"))
	}
	cacheStore(key, s)
	return s, nil
}

// TextKuerzenAbt2 runs text_kuerzen_abt2 (§4.N): collapses a verbose
// Abteilung 2 sentence list into a display-ready short text.
func TextKuerzenAbt2(source string, saetze []string, rechtsinhaber, rangvermerk string, regexMap RegexMap) (string, error) {
	const fn = "text_kuerzen_abt2"
	key := contentHash(fn, source, regexMap, saetze, rechtsinhaber, rangvermerk)
	if v, ok := cacheLoad(key); ok {
		return v.(string), nil
	}
	out, err := call(source, saetze, rechtsinhaber, rangvermerk, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	s, ok := out.Interface().(string)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a string"))
	}
	cacheStore(key, s)
	return s, nil
}

// TextKuerzenAbt3 runs text_kuerzen_abt3 (§4.N).
func TextKuerzenAbt3(source string, saetze []string, betrag model.Betrag, schuldenart model.SchuldenArt, rechtsinhaber string, regexMap RegexMap) (string, error) {
	const fn = "text_kuerzen_abt3"
	key := contentHash(fn, source, regexMap, saetze, betrag, schuldenart, rechtsinhaber)
	if v, ok := cacheLoad(key); ok {
		return v.(string), nil
	}
	out, err := call(source, saetze, betrag, schuldenart, rechtsinhaber, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	s, ok := out.Interface().(string)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a string"))
	}
	cacheStore(key, s)
	return s, nil
}

// BetragAuslesen runs betrag_auslesen (§4.N): parses a monetary amount out
// of an Abteilung 3 entry's free text.
func BetragAuslesen(source string, saetze []string, regexMap RegexMap) (model.Betrag, error) {
	const fn = "betrag_auslesen"
	key := contentHash(fn, source, regexMap, saetze)
	if v, ok := cacheLoad(key); ok {
		return v.(model.Betrag), nil
	}
	out, err := call(source, saetze, regexMap)
	if err != nil {
		return model.Betrag{}, fehler(fn, err)
	}
	b, ok := out.Interface().(model.Betrag)
	if !ok {
		return model.Betrag{}, fehler(fn, errors.New("Run did not return a Betrag"))
	}
	cacheStore(key, b)
	return b, nil
}

// KlassifiziereSchuldenArtAbt3 runs klassifiziere_schuldenart_abt3 (§4.N).
func KlassifiziereSchuldenArtAbt3(source string, saetze []string, regexMap RegexMap) (model.SchuldenArt, error) {
	const fn = "klassifiziere_schuldenart_abt3"
	key := contentHash(fn, source, regexMap, saetze)
	if v, ok := cacheLoad(key); ok {
		return v.(model.SchuldenArt), nil
	}
	out, err := call(source, saetze, regexMap)
	if err != nil {
		return "", fehler(fn, err)
	}
	art, ok := out.Interface().(model.SchuldenArt)
	if !ok {
		return "", fehler(fn, errors.New("Run did not return a SchuldenArt"))
	}
	cacheStore(key, art)
	return art, nil
}
