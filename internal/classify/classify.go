// Package classify implements §4.F: assigning each non-title page one of
// the ~17 SeitenTyp form variants from its OCR text and raster
// orientation, with a per-page user override unconditionally winning.
package classify

import (
	"strings"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/config"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// Landscape reports whether a raster of the given pixel dimensions is
// landscape (width > height), the orientation test §4.F's decision tree
// feeds into every section's horz/vert variant choice.
func Landscape(width, height int) bool {
	return width > height
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func containsAll(text string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(text, k) {
			return false
		}
	}
	return len(keywords) > 0
}

// Seitentyp implements the §4.F decision tree: first match wins across
// Abt3, Abt2, Abt1, BV, in that order, failing with UnbekannterSeitentypError
// when nothing matches. cfg carries the keyword tables (§4.G's sibling
// open question); landscape selects the horz/vert branch within a section.
func Seitentyp(cfg *config.Config, seite int, ocrText string, landscape bool) (model.SeitenTyp, error) {
	abt3Keywords := ruleKeywords(cfg, "abt3")
	if containsAny(ocrText, abt3Keywords) {
		return abt3Subtyp(cfg, ocrText, landscape), nil
	}

	abt2Keywords := ruleKeywords(cfg, "abt2")
	if containsAny(ocrText, abt2Keywords) {
		return abt2Subtyp(cfg, ocrText, landscape), nil
	}

	abt1Keywords := ruleKeywords(cfg, "abt1")
	if containsAny(ocrText, abt1Keywords) || containsAll(ocrText, cfg.Abt1BeideKeywords) {
		if landscape {
			return model.Abt1Horizontal, nil
		}
		return model.Abt1Vertical, nil
	}

	bvKeywords := ruleKeywords(cfg, "bv")
	if containsAny(ocrText, bvKeywords) {
		return bvSubtyp(cfg, ocrText, landscape), nil
	}

	return "", &model.UnbekannterSeitentypError{Seite: seite}
}

func ruleKeywords(cfg *config.Config, name string) []string {
	for _, r := range cfg.ClassifierRules {
		if r.Name == name {
			return r.Keywords
		}
	}
	return nil
}

func abt3Subtyp(cfg *config.Config, text string, landscape bool) model.SeitenTyp {
	veraenderungen := containsAny(text, cfg.SubtypeMarkers.Veraenderungen)
	loeschungen := containsAny(text, cfg.SubtypeMarkers.Loeschungen)

	if landscape {
		if veraenderungen || loeschungen {
			return model.Abt3HorizontalVeraenderungenLoeschungen
		}
		return model.Abt3Horizontal
	}

	switch {
	case veraenderungen && loeschungen:
		return model.Abt3VerticalVeraenderungenLoeschungen
	case veraenderungen:
		return model.Abt3VerticalVeraenderungen
	case loeschungen:
		return model.Abt3VerticalLoeschungen
	default:
		return model.Abt3Vertical
	}
}

func abt2Subtyp(cfg *config.Config, text string, landscape bool) model.SeitenTyp {
	markiert := containsAny(text, cfg.SubtypeMarkers.Veraenderungen) || containsAny(text, cfg.SubtypeMarkers.Loeschungen)

	if landscape {
		if markiert {
			return model.Abt2HorizontalVeraenderungen
		}
		return model.Abt2Horizontal
	}
	if markiert {
		return model.Abt2VerticalVeraenderungen
	}
	return model.Abt2Vertical
}

// bvZweiteSpalteMarker selects the alternate vertical column ordering
// (BVVerticalVariant2): pages whose OCR text carries the
// "Bestand und Zuschreibungen" heading instead of the usual
// "Wirtschaftsart und Lage" one use a differently ordered vertical
// schema.
const bvZweiteSpalteMarker = "Bestand und Zuschreibungen"

func bvSubtyp(cfg *config.Config, text string, landscape bool) model.SeitenTyp {
	abschreibungen := containsAny(text, cfg.SubtypeMarkers.Abschreibungen)

	if landscape {
		if abschreibungen {
			return model.BVHorizontalZuAbschreibungen
		}
		return model.BVHorizontal
	}

	if abschreibungen {
		return model.BVVerticalZuAbschreibungen
	}
	if strings.Contains(text, bvZweiteSpalteMarker) {
		return model.BVVerticalVariant2
	}
	return model.BVVertical
}

// ResolveOverride applies §4.F's final rule: a per-page user override
// (klassifikation_neu) unconditionally replaces the classifier's result.
func ResolveOverride(klassifiziert model.SeitenTyp, override *model.SeitenTyp) model.SeitenTyp {
	if override != nil {
		return *override
	}
	return klassifiziert
}
