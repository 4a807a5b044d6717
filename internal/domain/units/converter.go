// Package units holds the measurement-unit conversion table and the
// conversion rules used when comparing pantry stock against recipe
// requirements. Units are grouped into families (mass, volume, count);
// every unit in a family carries a factor relative to that family's
// implicit base unit, and only units within one family are comparable.
package units

import "strings"

// Family is an ordered set of mutually convertible units.
type Family struct {
	Name    string
	factors map[string]float64
}

// Factor returns the to-base factor for a unit, case-insensitively.
func (f *Family) Factor(unit string) (float64, bool) {
	v, ok := f.factors[normalize(unit)]
	return v, ok
}

// Contains reports whether the family knows the unit.
func (f *Family) Contains(unit string) bool {
	_, ok := f.factors[normalize(unit)]
	return ok
}

// Table is a conversion table. Family order is insertion order; when a
// unit pair happens to appear in more than one family, the first family
// wins. That is a data-quality anomaly, not an error, and DuplicateUnits
// exposes it so the caller can log it.
type Table struct {
	families []*Family
	index    map[string]*Family
}

// NewTable creates an empty conversion table.
func NewTable() *Table {
	return &Table{index: make(map[string]*Family)}
}

// Add registers a (family, unit, factor) triple. Malformed rows (empty
// names, non-positive factors) are dropped, matching the fail-open
// loading policy: a bad row never poisons the rest of the table.
func (t *Table) Add(family, unit string, factor float64) {
	family = strings.TrimSpace(family)
	unit = normalize(unit)
	if family == "" || unit == "" || factor <= 0 {
		return
	}

	fam, ok := t.index[family]
	if !ok {
		fam = &Family{Name: family, factors: make(map[string]float64)}
		t.families = append(t.families, fam)
		t.index[family] = fam
	}
	fam.factors[unit] = factor
}

// Len returns the number of families in the table.
func (t *Table) Len() int {
	return len(t.families)
}

// Convert converts a quantity from one unit to another. The second
// return value is false when the conversion is not possible: a missing
// unit on either side, or no single family containing both units.
// Identical unit strings (case-insensitive) convert as identity without
// consulting the table.
func (t *Table) Convert(qty float64, from, to string) (float64, bool) {
	u1, u2 := normalize(from), normalize(to)
	if u1 == "" || u2 == "" {
		return 0, false
	}
	if u1 == u2 {
		return qty, true
	}

	for _, fam := range t.families {
		f1, ok1 := fam.factors[u1]
		f2, ok2 := fam.factors[u2]
		if ok1 && ok2 {
			return qty * f1 / f2, true
		}
	}
	return 0, false
}

// DuplicateUnits returns the units that appear in more than one family.
// Conversions involving them resolve against the first family in table
// order; callers should surface the list as a data-quality warning.
func (t *Table) DuplicateUnits() []string {
	seen := make(map[string]int)
	for _, fam := range t.families {
		for unit := range fam.factors {
			seen[unit]++
		}
	}

	var dups []string
	for _, fam := range t.families {
		for unit := range fam.factors {
			if seen[unit] > 1 {
				dups = append(dups, unit)
				seen[unit] = 0 // report once
			}
		}
	}
	return dups
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
