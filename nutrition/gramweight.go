package nutrition

import (
	"strings"

	"github.com/nemocake/pantry-planner/units"
)

// gramWeights assigns an approximate gram weight to one of each cooking
// unit. This is deliberately a separate, heuristic system from the exact
// unit converter: units like "piece" or "clove" have no universal mass, so
// the values here are typical-case estimates good enough for macro totals.
var gramWeights = map[string]float64{
	// exact mass
	"mg": 0.001,
	"g":  1,
	"kg": 1000,
	"oz": 28.35,
	"lb": 453.6,

	// volume treated as water-density
	"ml":    1,
	"l":     1000,
	"tsp":   5,
	"tbsp":  15,
	"cup":   240,
	"fl-oz": 30,

	// countable cooking units, typical weights
	"piece":   100,
	"dozen":   600,
	"clove":   5,
	"can":     400,
	"slice":   25,
	"stick":   113,
	"bunch":   150,
	"head":    500,
	"stalk":   40,
	"sprig":   2,
	"leaf":    1,
	"pinch":   0.3,
	"dash":    0.6,
	"handful": 40,
}

// DefaultGramWeight is used for any unit the table does not know.
const DefaultGramWeight = 100

// toGrams converts a recipe quantity to grams through the heuristic table.
// Unit names are folded through the exact converter's normalizer first so
// "tablespoons" and "tbsp" land on the same row.
func toGrams(quantity float64, unit string) float64 {
	u := units.Normalize(unit)
	if w, ok := gramWeights[u]; ok {
		return quantity * w
	}
	// the exact converter only folds plurals it knows; retry singular here
	if trimmed := strings.TrimSuffix(u, "s"); trimmed != u {
		if w, ok := gramWeights[trimmed]; ok {
			return quantity * w
		}
	}
	return quantity * DefaultGramWeight
}
