// Package config loads the classifier keyword table and the default
// column-schema geometries from an embedded YAML document, rather than
// hard-coding them as Go literals. This directly answers spec.md §9's
// open question: "the classifier substring set is hand-tuned to a
// specific OCR engine's misreadings of Roman numerals. A general rewrite
// should preserve this set verbatim and expose it as configuration."
package config

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

//go:embed defaults.yml
var defaultsYAML []byte

// ClassifierRule is one decision-tree branch of §4.F: a set of keywords
// that, if any is found in the page's OCR text, selects the rule's
// section. The classifier looks rules up by Name in its own fixed order
// (abt3, abt2, abt1, bv), not in document order, and picks the concrete
// SeitenTyp itself; Haupttyp is carried but not read by the classifier.
type ClassifierRule struct {
	Name     string          `yaml:"name"`
	Keywords []string        `yaml:"keywords"`
	Haupttyp model.SeitenTyp `yaml:"haupttyp"`
}

// SubtypeMarkers carries the marker keyword lists §4.F tests for within
// an already-chosen section to pick its Veränderungen/Löschungen/
// Abschreibungen subtype.
type SubtypeMarkers struct {
	Veraenderungen []string `yaml:"veraenderungen"`
	Loeschungen    []string `yaml:"loeschungen"`
	Abschreibungen []string `yaml:"abschreibungen"`
}

// ColumnDefaults is one SeitenTyp's default column geometry, in schema
// order (§4.G).
type ColumnDefaults struct {
	Typ     model.SeitenTyp `yaml:"typ"`
	Columns []model.Column  `yaml:"columns"`
}

// raw mirrors defaults.yml's top-level shape.
type raw struct {
	ClassifierRules  []ClassifierRule `yaml:"classifierRules"`
	SubtypeMarkers   SubtypeMarkers   `yaml:"subtypeMarkers"`
	Abt1BeideKeywords []string        `yaml:"abt1BeideKeywords"`
	ColumnSchemas    []ColumnDefaults `yaml:"columnSchemas"`
}

// Config is the fully parsed configuration: the classifier rules and
// subtype markers (§4.F) and the column schema
// defaults (§4.G, one entry per SeitenTyp).
type Config struct {
	ClassifierRules   []ClassifierRule
	SubtypeMarkers    SubtypeMarkers
	Abt1BeideKeywords []string
	ColumnSchemas     map[model.SeitenTyp][]model.Column
}

// Default returns the configuration embedded at build time (defaults.yml).
func Default() (*Config, error) {
	return Parse(defaultsYAML)
}

// Parse decodes a YAML document shaped like defaults.yml.
func Parse(raw_ []byte) (*Config, error) {
	var r raw
	if err := yaml.Unmarshal(raw_, &r); err != nil {
		return nil, errors.Wrap(err, "config: parse yaml")
	}

	schemas := make(map[model.SeitenTyp][]model.Column, len(r.ColumnSchemas))
	for _, s := range r.ColumnSchemas {
		schemas[s.Typ] = s.Columns
	}

	return &Config{
		ClassifierRules:   r.ClassifierRules,
		SubtypeMarkers:    r.SubtypeMarkers,
		Abt1BeideKeywords: r.Abt1BeideKeywords,
		ColumnSchemas:     schemas,
	}, nil
}
