// Package match computes how well a user's pantry covers a recipe's
// ingredient list. The computation is pure: it takes the requirements,
// a stock snapshot, and a conversion table, and never errors. Missing
// conversion data simply leaves quantities uncounted.
package match

import (
	"math"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/domain/units"
)

// Requirement is one recipe ingredient line.
type Requirement struct {
	Name string
	Need float64
	Unit *string
}

// StockEntry is one pantry row as seen by the matcher.
type StockEntry struct {
	Name     string
	Quantity float64
	Unit     *string
}

// IngredientStatus is the per-ingredient outcome. Have and Shortfall are
// expressed in the requirement's unit and rounded to two decimals.
type IngredientStatus struct {
	Name      string  `json:"name"`
	Need      float64 `json:"need"`
	Unit      *string `json:"unit"`
	Have      float64 `json:"have"`
	Shortfall float64 `json:"shortfall"`
}

// Result is the full match breakdown for one recipe. Have and Missing
// together preserve the input order of the requirements.
type Result struct {
	Have             []IngredientStatus `json:"have"`
	Missing          []IngredientStatus `json:"missing"`
	MatchPercent     float64            `json:"match_percent"`
	TotalIngredients int                `json:"total_ingredients"`
	SatisfiedCount   int                `json:"satisfied_count"`
}

// Compute evaluates the pantry against a requirement list. Stock is
// bucketed by lowercased name; for each requirement the available amount
// is the sum of same-unit stock plus stock convertible into the
// requirement's unit. A requirement with no unit only counts unit-less
// stock. TotalIngredients is forced to 1 for an empty recipe so the
// percentage stays well-defined (and reads 0%).
func Compute(reqs []Requirement, stock []StockEntry, table *units.Table) Result {
	byName := make(map[string][]StockEntry, len(stock))
	for _, s := range stock {
		key := pantry.NameKey(s.Name)
		byName[key] = append(byName[key], s)
	}

	res := Result{
		Have:    []IngredientStatus{},
		Missing: []IngredientStatus{},
	}

	for _, req := range reqs {
		have := availableFor(req, byName[pantry.NameKey(req.Name)], table)

		status := IngredientStatus{
			Name: req.Name,
			Need: req.Need,
			Unit: req.Unit,
			Have: round2(have),
		}

		if have >= req.Need {
			res.SatisfiedCount++
			res.Have = append(res.Have, status)
		} else {
			status.Shortfall = round2(req.Need - have)
			res.Missing = append(res.Missing, status)
		}
	}

	res.TotalIngredients = len(reqs)
	if res.TotalIngredients == 0 {
		res.TotalIngredients = 1
	}
	res.MatchPercent = round2(100 * float64(res.SatisfiedCount) / float64(res.TotalIngredients))

	return res
}

// availableFor sums the stock usable toward one requirement, in the
// requirement's unit.
func availableFor(req Requirement, entries []StockEntry, table *units.Table) float64 {
	var total float64
	for _, e := range entries {
		if pantry.SameUnit(e.Unit, req.Unit) {
			total += e.Quantity
			continue
		}
		if e.Unit == nil || req.Unit == nil {
			continue
		}
		if table == nil {
			continue
		}
		if converted, ok := table.Convert(e.Quantity, *e.Unit, *req.Unit); ok {
			total += converted
		}
	}
	return total
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
