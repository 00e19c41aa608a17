// Package columns implements §4.G: delivering a SeitenTyp's default
// column rectangle set and merging in any per-page AnpassungSeite
// overrides, which entirely replace the four coordinates of the columns
// they name.
package columns

import (
	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/config"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// ForSeite returns typ's column set from cfg, with any override in
// anpassung applied. Column order is always the schema's default order;
// overrides only ever replace a named column's rectangle, never add or
// remove columns. Returns an error if anpassung names a column id typ's
// schema does not have (the §8 testable property: "the overridden id is
// present in t.columns").
func ForSeite(cfg *config.Config, typ model.SeitenTyp, anpassung *model.AnpassungSeite) ([]model.Column, error) {
	defaults, ok := cfg.ColumnSchemas[typ]
	if !ok {
		return nil, errors.Errorf("columns: no schema for SeitenTyp %q", typ)
	}

	out := make([]model.Column, len(defaults))
	copy(out, defaults)

	if anpassung == nil || len(anpassung.Spalten) == 0 {
		return out, nil
	}

	known := make(map[string]bool, len(out))
	for _, c := range out {
		known[c.ID] = true
	}
	for id := range anpassung.Spalten {
		if !known[id] {
			return nil, errors.Errorf("columns: override names unknown column id %q for SeitenTyp %q", id, typ)
		}
	}

	for i, c := range out {
		if rect, ok := anpassung.Spalten[c.ID]; ok {
			out[i].MinX = rect.MinX
			out[i].MinY = rect.MinY
			out[i].MaxX = rect.MaxX
			out[i].MaxY = rect.MaxY
		}
	}
	return out, nil
}

// IDsUnique reports whether every column in cols carries a distinct id,
// the §3 invariant "Column ids are unique within a SeitenTyp".
func IDsUnique(cols []model.Column) bool {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.ID] {
			return false
		}
		seen[c.ID] = true
	}
	return true
}
