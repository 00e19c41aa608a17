package model

// RechteArt is the closed classification a post-analysis script (§4.N,
// klassifiziere_rechteart_abt2) assigns to an Abteilung 2 entry. The full
// original catalogue (original_source/src/python.rs) carries roughly 100
// variants; the long tail collapses into NichtDefiniert here (see
// DESIGN.md "Open questions resolved").
type RechteArt string

const (
	RechteArtGrunddienstbarkeit                    RechteArt = "Grunddienstbarkeit"
	RechteArtBeschraenktePersoenlicheDienstbarkeit  RechteArt = "BeschraenktePersoenlicheDienstbarkeit"
	RechteArtNutzungsrecht                         RechteArt = "Nutzungsrecht"
	RechteArtReallast                              RechteArt = "Reallast"
	RechteArtVorkaufsrecht                         RechteArt = "Vorkaufsrecht"
	RechteArtAuflassungsvormerkung                 RechteArt = "Auflassungsvormerkung"
	RechteArtErbbaurecht                           RechteArt = "Erbbaurecht"
	RechteArtWohnrecht                             RechteArt = "Wohnrecht"
	RechteArtWiderspruch                           RechteArt = "Widerspruch"
	RechteArtNacherbenvermerk                      RechteArt = "Nacherbenvermerk"
	RechteArtTestamentsvollstreckervermerk          RechteArt = "Testamentsvollstreckervermerk"
	RechteArtZwangsversteigerungsvermerk           RechteArt = "Zwangsversteigerungsvermerk"
	RechteArtZwangsverwaltungsvermerk              RechteArt = "Zwangsverwaltungsvermerk"
	RechteArtInsolvenzvermerk                      RechteArt = "Insolvenzvermerk"
	RechteArtNiessbrauchrecht                      RechteArt = "Niessbrauchrecht"
	RechteArtUeberbaurecht                         RechteArt = "Ueberbaurecht"
	RechteArtDurchleitungsrecht                    RechteArt = "Durchleitungsrecht"
	RechteArtGehWegeFahrrecht                      RechteArt = "GehWegeFahrrecht"
	RechteArtLeitungsrecht                         RechteArt = "Leitungsrecht"
	RechteArtBebauungsverbot                       RechteArt = "Bebauungsverbot"
	RechteArtVeraeusserungsBelastungsverbot        RechteArt = "VeraeusserungsBelastungsverbot"
	RechteArtUmlegungsvermerk                      RechteArt = "Umlegungsvermerk"
	RechteArtSanierungsvermerk                     RechteArt = "Sanierungsvermerk"
	RechteArtErwerbsvormerkung                     RechteArt = "Erwerbsvormerkung"
	RechteArtRueckauflassungsvormerkung            RechteArt = "Rueckauflassungsvormerkung"
	RechteArtSonstigeRechte                        RechteArt = "SonstigeRechte"
	RechteArtNichtDefiniert                        RechteArt = ""
)

// SchuldenArt is the closed classification klassifiziere_schuldenart_abt3
// assigns to an Abteilung 3 entry; all 11 original_source variants are
// kept.
type SchuldenArt string

const (
	SchuldenArtGrundschuld                    SchuldenArt = "Grundschuld"
	SchuldenArtHypothek                       SchuldenArt = "Hypothek"
	SchuldenArtRentenschuld                   SchuldenArt = "Rentenschuld"
	SchuldenArtAufbauhypothek                 SchuldenArt = "Aufbauhypothek"
	SchuldenArtSicherungshypothek             SchuldenArt = "Sicherungshypothek"
	SchuldenArtWiderspruch                    SchuldenArt = "Widerspruch"
	SchuldenArtArresthypothek                 SchuldenArt = "Arresthypothek"
	SchuldenArtSicherungshypothekGem128ZVG    SchuldenArt = "SicherungshypothekGem128ZVG"
	SchuldenArtHoechstbetragshypothek         SchuldenArt = "Hoechstbetragshypothek"
	SchuldenArtSicherungsgrundschuld          SchuldenArt = "Sicherungsgrundschuld"
	SchuldenArtZwangssicherungshypothek       SchuldenArt = "Zwangssicherungshypothek"
	SchuldenArtNichtDefiniert                 SchuldenArt = ""
)

// Waehrung is a closed currency enum; String returns the display form used
// in reconstructed free text, grounded verbatim in python.rs's
// Waehrung::to_string.
type Waehrung int

const (
	WaehrungEuro Waehrung = iota
	WaehrungDMark
	WaehrungMarkDDR
	WaehrungGoldmark
	WaehrungRentenmark
	WaehrungReichsmark
	WaehrungGrammFeingold
)

func (w Waehrung) String() string {
	switch w {
	case WaehrungEuro:
		return "€"
	case WaehrungDMark:
		return "DM"
	case WaehrungMarkDDR:
		return "M"
	case WaehrungGoldmark:
		return "Goldmark"
	case WaehrungRentenmark:
		return "Rentenmark"
	case WaehrungReichsmark:
		return "Reichsmark"
	case WaehrungGrammFeingold:
		return "Gr. Feingold"
	default:
		return ""
	}
}

// Betrag is a monetary amount as parsed by betrag_auslesen (§4.N):
// wert.nachkomma in the given currency, e.g. wert=50000, nachkomma=0,
// waehrung=Euro for "50.000,00 €".
type Betrag struct {
	Wert      uint64   `json:"wert"`
	Nachkomma uint8    `json:"nachkomma"`
	Waehrung  Waehrung `json:"waehrung"`
}

// Spalte1Eintrag is one row flurstuecke_auslesen (§4.N) splits out of a BV
// free-text cell that listed several parcels on one OCR line.
type Spalte1Eintrag struct {
	LfdNr uint   `json:"lfdNr"`
	Text  string `json:"text"`
}
