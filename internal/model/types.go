// Package model defines the typed booklet document produced by the
// digitisation pipeline: the Grundbuch entity graph, the page-level
// geometry/classification overrides a user can apply, and the edit
// primitives the orchestrator and any caller speak against it.
package model

// Titelblatt identifies a booklet: the court, the cadastral district and
// the booklet number. It is the cache-directory key and is immutable once
// parsed from the title page (§4.C).
type Titelblatt struct {
	Amtsgericht  string `json:"amtsgericht"`
	GrundbuchVon string `json:"grundbuchVon"`
	Blatt        uint   `json:"blatt"`
}

// FlurstueckGroesse is the tagged area of a Flurstück, either expressed as
// plain square metres or as hectare/are/square-metre components.
type FlurstueckGroesse struct {
	Metric  *MetricGroesse  `json:"metric,omitempty"`
	Hektar  *HektarGroesse  `json:"hektar,omitempty"`
}

// MetricGroesse is a parcel size given only in square metres.
type MetricGroesse struct {
	QuadratMeter *uint64 `json:"m2,omitempty"`
}

// HektarGroesse is a parcel size given in hectare/are/square-metre parts.
type HektarGroesse struct {
	Hektar       *uint64 `json:"ha,omitempty"`
	Ar           *uint64 `json:"a,omitempty"`
	QuadratMeter *uint64 `json:"m2,omitempty"`
}

// BvEintragTyp tags which variant a BvEintrag carries.
type BvEintragTyp int

const (
	BvTypFlurstueck BvEintragTyp = iota
	BvTypRecht
)

// BvEintrag is a Bestandsverzeichnis row: either a cadastral parcel
// (Flurstück) or a parcel-like right (Recht) referencing one.
type BvEintrag struct {
	Typ BvEintragTyp `json:"typ"`

	LfdNr           uint  `json:"lfdNr"`
	BisherigeLfdNr  *uint `json:"bisherigeLfdNr,omitempty"`

	// Flurstück fields.
	Flur        uint               `json:"flur,omitempty"`
	Flurstueck  string             `json:"flurstueck,omitempty"`
	Gemarkung   *string            `json:"gemarkung,omitempty"`
	Bezeichnung *string            `json:"bezeichnung,omitempty"`
	Groesse     *FlurstueckGroesse `json:"groesse,omitempty"`

	// Recht fields.
	ZuNr uint   `json:"zuNr,omitempty"`
	Text string `json:"text,omitempty"`

	AutomatischGeroetet bool  `json:"automatischGeroetet"`
	ManuellGeroetet     *bool `json:"manuellGeroetet,omitempty"`
}

// IsRedacted applies the manuell-overrides-automatisch rule that holds
// everywhere in this model: see spec.md §3's invariant list.
func (e BvEintrag) IsRedacted() bool {
	if e.ManuellGeroetet != nil {
		return *e.ManuellGeroetet
	}
	return e.AutomatischGeroetet
}

// BvZuAbschreibung is one Zuschreibung or Abschreibung row: a reference to
// another booklet/Flurstück plus free text.
type BvZuAbschreibung struct {
	BvNr string `json:"bvNr"`
	Text string `json:"text"`
}

// Bestandsverzeichnis is the BV section: parcels/rights plus the two
// accretion/write-off sibling lists.
type Bestandsverzeichnis struct {
	Eintraege      []BvEintrag        `json:"eintraege"`
	Zuschreibungen []BvZuAbschreibung `json:"zuschreibungen"`
	Abschreibungen []BvZuAbschreibung `json:"abschreibungen"`
}

// Abt1Eintrag is an Abteilung 1 (Eigentümer) entry.
type Abt1Eintrag struct {
	LfdNr uint   `json:"lfdNr"`
	BvNr  string `json:"bvNr"`
	Text  string `json:"text"`

	AutomatischGeroetet bool  `json:"automatischGeroetet"`
	ManuellGeroetet     *bool `json:"manuellGeroetet,omitempty"`
}

func (e Abt1Eintrag) IsRedacted() bool {
	if e.ManuellGeroetet != nil {
		return *e.ManuellGeroetet
	}
	return e.AutomatischGeroetet
}

// Abt1 is the Eigentümer section: entries, Veränderungen and Löschungen.
type Abt1 struct {
	Eintraege      []Abt1Eintrag    `json:"eintraege"`
	Veraenderungen []Abt1Veraenderung `json:"veraenderungen"`
	Loeschungen    []Abt1Loeschung    `json:"loeschungen"`
}

type Abt1Veraenderung struct {
	LfdNr uint   `json:"lfdNr"`
	Text  string `json:"text"`
}

type Abt1Loeschung struct {
	LfdNr uint   `json:"lfdNr"`
	Text  string `json:"text"`
}

// Abt2Eintrag is an Abteilung 2 (Lasten und Beschränkungen) entry.
type Abt2Eintrag struct {
	LfdNr uint   `json:"lfdNr"`
	BvNr  string `json:"bvNr"`
	Text  string `json:"text"`

	RechteArt     RechteArt `json:"rechteArt,omitempty"`
	Rechtsinhaber string    `json:"rechtsinhaber,omitempty"`
	Rangvermerk   string    `json:"rangvermerk,omitempty"`

	AutomatischGeroetet bool  `json:"automatischGeroetet"`
	ManuellGeroetet     *bool `json:"manuellGeroetet,omitempty"`
}

func (e Abt2Eintrag) IsRedacted() bool {
	if e.ManuellGeroetet != nil {
		return *e.ManuellGeroetet
	}
	return e.AutomatischGeroetet
}

type Abt2Veraenderung struct {
	LfdNr  uint   `json:"lfdNr"`
	Betrag string `json:"betrag,omitempty"`
	Text   string `json:"text"`
}

type Abt2Loeschung struct {
	LfdNr  uint   `json:"lfdNr"`
	Betrag string `json:"betrag,omitempty"`
	Text   string `json:"text"`
}

// Abt2 is the Lasten-und-Beschränkungen section.
type Abt2 struct {
	Eintraege      []Abt2Eintrag      `json:"eintraege"`
	Veraenderungen []Abt2Veraenderung `json:"veraenderungen"`
	Loeschungen    []Abt2Loeschung    `json:"loeschungen"`
}

// Abt3Eintrag is an Abteilung 3 (Hypotheken/Grundschulden/Rentenschulden)
// entry.
type Abt3Eintrag struct {
	LfdNr  uint   `json:"lfdNr"`
	BvNr   string `json:"bvNr"`
	Betrag Betrag `json:"betrag"`
	Text   string `json:"text"`

	SchuldenArt   SchuldenArt `json:"schuldenArt,omitempty"`
	Rechtsinhaber string      `json:"rechtsinhaber,omitempty"`

	AutomatischGeroetet bool  `json:"automatischGeroetet"`
	ManuellGeroetet     *bool `json:"manuellGeroetet,omitempty"`
}

func (e Abt3Eintrag) IsRedacted() bool {
	if e.ManuellGeroetet != nil {
		return *e.ManuellGeroetet
	}
	return e.AutomatischGeroetet
}

type Abt3Veraenderung struct {
	LfdNr  uint   `json:"lfdNr"`
	Betrag string `json:"betrag,omitempty"`
	Text   string `json:"text"`
}

type Abt3Loeschung struct {
	LfdNr  uint   `json:"lfdNr"`
	Betrag string `json:"betrag,omitempty"`
	Text   string `json:"text"`
}

// Abt3 is the Hypotheken/Grundschulden/Rentenschulden section.
type Abt3 struct {
	Eintraege      []Abt3Eintrag      `json:"eintraege"`
	Veraenderungen []Abt3Veraenderung `json:"veraenderungen"`
	Loeschungen    []Abt3Loeschung    `json:"loeschungen"`
}

// Grundbuch is the fully parsed booklet: title plus its four sections.
type Grundbuch struct {
	Titelblatt          Titelblatt          `json:"titelblatt"`
	Bestandsverzeichnis Bestandsverzeichnis `json:"bestandsverzeichnis"`
	Abt1                Abt1                `json:"abt1"`
	Abt2                Abt2                `json:"abt2"`
	Abt3                Abt3                `json:"abt3"`

	Nebenbeteiligte []Nebenbeteiligter `json:"nebenbeteiligte,omitempty"`
	Warnungen       []Warnung          `json:"warnungen,omitempty"`
}

// NebenbeteiligterTyp tags the side-party category a Nebenbeteiligter
// belongs to; each carries a fixed Ordnungsnummer allocation range (see
// SPEC_FULL.md §4.K+ and NextOrdnungsnummer).
type NebenbeteiligterTyp int

const (
	TypOeffentlich NebenbeteiligterTyp = iota
	TypBank
	TypAgrar
	TypPrivat
	TypPrivatM
	TypPrivatF
	TypJewEigent
	TypLeitung
	TypGmbH
)

// NebenbeteiligterExtra carries the optional natural-person fields.
type NebenbeteiligterExtra struct {
	Anrede              *string `json:"anrede,omitempty"`
	Titel               *string `json:"titel,omitempty"`
	Vorname             *string `json:"vorname,omitempty"`
	NachnameOderFirma   *string `json:"nachnameOderFirma,omitempty"`
	Geburtsname         *string `json:"geburtsname,omitempty"`
	Geburtsdatum        *string `json:"geburtsdatum,omitempty"`
	Wohnort             *string `json:"wohnort,omitempty"`
}

// Nebenbeteiligter is a side-party to a right: a creditor, beneficiary or
// owner referenced from Abt1/2/3 free text.
type Nebenbeteiligter struct {
	Ordnungsnummer *int                   `json:"ordnungsnummer,omitempty"`
	Typ            *NebenbeteiligterTyp   `json:"typ,omitempty"`
	Name           string                 `json:"name"`
	Extra          *NebenbeteiligterExtra `json:"extra,omitempty"`
}

// WarnungStufe is the severity of a Warnung.
type WarnungStufe int

const (
	StufeHinweis WarnungStufe = iota
	StufeFehler
)

// Warnung is a diagnostic accumulated during parsing, orchestration or
// post-analysis; see SPEC_FULL.md §3's Warnung addition.
type Warnung struct {
	Stufe  WarnungStufe `json:"stufe"`
	Seite  *int         `json:"seite,omitempty"`
	Quelle string       `json:"quelle"`
	Text   string       `json:"text"`
}

// BookletStatus is the red/amber/green icon spec.md §7 describes.
type BookletStatus int

const (
	StatusOK BookletStatus = iota
	StatusKeineOrdnungsnummern
	StatusFehler
)

// Status computes the booklet's icon: StatusFehler if any Warnung is a
// Fehler, else StatusKeineOrdnungsnummern if any Nebenbeteiligter lacks an
// Ordnungsnummer, else StatusOK.
func (g *Grundbuch) Status() BookletStatus {
	for _, w := range g.Warnungen {
		if w.Stufe == StufeFehler {
			return StatusFehler
		}
	}
	for _, n := range g.Nebenbeteiligte {
		if n.Ordnungsnummer == nil {
			return StatusKeineOrdnungsnummern
		}
	}
	return StatusOK
}
