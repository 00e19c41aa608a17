package model

// Textblock is one word, line or paragraph fragment positioned in a
// page's millimetre coordinate space (§3). Ordering within a column is by
// StartY ascending.
type Textblock struct {
	Text   string  `json:"text"`
	StartX float64 `json:"startX"`
	EndX   float64 `json:"endX"`
	StartY float64 `json:"startY"`
	EndY   float64 `json:"endY"`
}

// PageLayout is one page's native-text-layout extraction result (§4.D):
// its physical size in millimetres plus the ordered Textblocks poppler's
// bbox-layout reported for it.
type PageLayout struct {
	BreiteMM float64     `json:"breiteMm"`
	HoeheMM  float64     `json:"hoeheMm"`
	Texte    []Textblock `json:"texte"`
}

// PdfToTextLayout maps page number to PageLayout (§3).
type PdfToTextLayout map[int]PageLayout

// SeitenTyp is the closed set of page-form variants the classifier (§4.F)
// assigns. The zero value is never a valid classification result — callers
// must always receive an explicit variant or an error.
type SeitenTyp string

const (
	BVHorizontal                      SeitenTyp = "bv_horz"
	BVHorizontalZuAbschreibungen      SeitenTyp = "bv_horz_zu_abschreibungen"
	BVVertical                        SeitenTyp = "bv_vert"
	BVVerticalVariant2                SeitenTyp = "bv_vert_variant2"
	BVVerticalZuAbschreibungen        SeitenTyp = "bv_vert_zu_abschreibungen"
	Abt1Horizontal                    SeitenTyp = "abt1_horz"
	Abt1Vertical                      SeitenTyp = "abt1_vert"
	Abt2Horizontal                    SeitenTyp = "abt2_horz"
	Abt2HorizontalVeraenderungen      SeitenTyp = "abt2_horz_veraenderungen"
	Abt2Vertical                      SeitenTyp = "abt2_vert"
	Abt2VerticalVeraenderungen        SeitenTyp = "abt2_vert_veraenderungen"
	Abt3Horizontal                    SeitenTyp = "abt3_horz"
	Abt3HorizontalVeraenderungenLoeschungen SeitenTyp = "abt3_horz_veraenderungen_loeschungen"
	Abt3Vertical                      SeitenTyp = "abt3_vert"
	Abt3VerticalVeraenderungen        SeitenTyp = "abt3_vert_veraenderungen"
	Abt3VerticalLoeschungen           SeitenTyp = "abt3_vert_loeschungen"
	Abt3VerticalVeraenderungenLoeschungen SeitenTyp = "abt3_vert_veraenderungen_loeschungen"
)

// Landscape reports whether the SeitenTyp is one of the "_horz" variants.
// (Named Landscape, not Horizontal, because spec.md §4.F's orientation
// axis maps "horizontal"/landscape page format to the "_horz" id suffix.)
func (t SeitenTyp) Landscape() bool {
	switch t {
	case BVHorizontal, BVHorizontalZuAbschreibungen,
		Abt1Horizontal, Abt2Horizontal, Abt2HorizontalVeraenderungen,
		Abt3Horizontal, Abt3HorizontalVeraenderungenLoeschungen:
		return true
	default:
		return false
	}
}

// Column is one rectangular field of a SeitenTyp's schema (§4.G).
type Column struct {
	ID               string  `json:"id" yaml:"id"`
	MinX             float64 `json:"minX" yaml:"minX"`
	MaxX             float64 `json:"maxX" yaml:"maxX"`
	MinY             float64 `json:"minY" yaml:"minY"`
	MaxY             float64 `json:"maxY" yaml:"maxY"`
	IsNumberColumn   bool    `json:"isNumberColumn" yaml:"isNumberColumn"`
	LineBreakAfterPx float64 `json:"lineBreakAfterPx" yaml:"lineBreakAfterPx"`
}

// AnpassungSeite carries per-page user overrides: replacement column
// rectangles and, optionally, explicit horizontal rule positions that
// switch the line/cell assembler (§4.J) into cell mode.
type AnpassungSeite struct {
	Spalten map[string]ColumnRect `json:"spalten,omitempty"`
	Zeilen  []float64             `json:"zeilen,omitempty"`
}

// ColumnRect is the 4 mm coordinates of a column override.
type ColumnRect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// SeiteParsed is one page's assembled-text result (§3): outer index is the
// column index as produced by the page type's column schema order.
type SeiteParsed struct {
	Typ   SeitenTyp     `json:"typ"`
	Texte [][]Textblock `json:"texte"`
}
