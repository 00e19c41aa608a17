package model

import "github.com/pkg/errors"

// ErrOrdnungsnummerErschoepft signals that a Nebenbeteiligter type's
// allocation block has no number left; the allocator never wraps into the
// next type's block.
var ErrOrdnungsnummerErschoepft = errors.New("ordnungsnummer: allocation exhausted for type")

// ordnungsnummerStart is the lowest number each type's block begins at,
// grounded verbatim in original_source/src/digitalisiere.rs's
// ordnungsnummern_automatisch_vergeben. A block ends where the next one
// begins (exclusive); see ordnungsnummerEnde.
var ordnungsnummerStart = map[NebenbeteiligterTyp]int{
	TypOeffentlich: 810000,
	TypBank:        812000,
	TypAgrar:       813000,
	TypPrivat:      814000,
	TypPrivatM:     814000,
	TypPrivatF:     814000,
	TypJewEigent:   815000,
	TypLeitung:     817000,
	TypGmbH:        819000,
}

// ordnungsnummerEnde is each block's exclusive upper bound: the start of
// the next type's block, and one further thousand-block for GmbH, the
// highest range.
var ordnungsnummerEnde = map[NebenbeteiligterTyp]int{
	TypOeffentlich: 812000,
	TypBank:        813000,
	TypAgrar:       814000,
	TypPrivat:      815000,
	TypPrivatM:     815000,
	TypPrivatF:     815000,
	TypJewEigent:   817000,
	TypLeitung:     819000,
	TypGmbH:        820000,
}

// NextOrdnungsnummer returns the next Ordnungsnummer to assign to a fresh
// Nebenbeteiligter of the given type, given the numbers already assigned
// to existing Nebenbeteiligte of that same type: the type's starting
// constant, or one past the current maximum inside that block, whichever
// is higher. Numbers outside the block are ignored. Returns
// ErrOrdnungsnummerErschoepft once the block is full.
func NextOrdnungsnummer(typ NebenbeteiligterTyp, existing []int) (int, error) {
	start, ok := ordnungsnummerStart[typ]
	if !ok {
		return 0, errors.Errorf("ordnungsnummer: unknown Nebenbeteiligter type %v", typ)
	}
	ende := ordnungsnummerEnde[typ]

	next := start
	for _, n := range existing {
		if n >= start && n < ende && n >= next {
			next = n + 1
		}
	}
	if next >= ende {
		return 0, errors.Wrapf(ErrOrdnungsnummerErschoepft, "typ %v (%d-%d)", typ, start, ende-1)
	}
	return next, nil
}

// OrdnungsnummernAutomatischVergeben assigns an Ordnungsnummer to every
// Nebenbeteiligter in v that does not already carry one, grouped by type,
// in the order they appear.
func OrdnungsnummernAutomatischVergeben(v []Nebenbeteiligter) error {
	existing := map[NebenbeteiligterTyp][]int{}
	for _, n := range v {
		if n.Typ != nil && n.Ordnungsnummer != nil {
			existing[*n.Typ] = append(existing[*n.Typ], *n.Ordnungsnummer)
		}
	}

	for i := range v {
		if v[i].Ordnungsnummer != nil || v[i].Typ == nil {
			continue
		}
		onr, err := NextOrdnungsnummer(*v[i].Typ, existing[*v[i].Typ])
		if err != nil {
			return err
		}
		v[i].Ordnungsnummer = &onr
		existing[*v[i].Typ] = append(existing[*v[i].Typ], onr)
	}
	return nil
}
