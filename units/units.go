// Package units provides exact conversion between cooking units within three
// disjoint groups (mass, volume, count). Cross-group conversion is an error by
// contract; sufficiency checks fall back to permissive on incompatibility.
package units

import (
	"errors"
	"strings"
)

// UnitType is the group a unit belongs to.
type UnitType int

const (
	TypeUnknown UnitType = iota
	TypeMass             // base: g
	TypeVolume           // base: ml
	TypeCount            // base: piece
)

func (t UnitType) String() string {
	switch t {
	case TypeMass:
		return "mass"
	case TypeVolume:
		return "volume"
	case TypeCount:
		return "count"
	}
	return "unknown"
}

// ErrIncompatible is returned by Convert when the units belong to different
// groups or either one is unrecognized.
var ErrIncompatible = errors.New("units: incompatible unit types")

type unitDef struct {
	typ    UnitType
	toBase float64
}

var table = map[string]unitDef{
	// mass (base = g)
	"mg": {TypeMass, 0.001},
	"g":  {TypeMass, 1},
	"kg": {TypeMass, 1000},
	"oz": {TypeMass, 28.35},
	"lb": {TypeMass, 453.6},

	// volume (base = ml); kitchen-metric ratios so 1 cup = 16 tbsp exactly
	"ml":    {TypeVolume, 1},
	"l":     {TypeVolume, 1000},
	"tsp":   {TypeVolume, 5},
	"tbsp":  {TypeVolume, 15},
	"cup":   {TypeVolume, 240},
	"fl-oz": {TypeVolume, 30},
	"pint":  {TypeVolume, 480},
	"quart": {TypeVolume, 960},

	// count (base = piece)
	"piece": {TypeCount, 1},
	"dozen": {TypeCount, 12},
	"pair":  {TypeCount, 2},
}

// aliases folds common spellings and plurals onto table keys.
var aliases = map[string]string{
	"gram":        "g",
	"grams":       "g",
	"gr":          "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kgs":         "kg",
	"milligram":   "mg",
	"milligrams":  "mg",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbs":         "tbsp",
	"cups":        "cup",
	"fl oz":       "fl-oz",
	"floz":        "fl-oz",
	"fluid ounce": "fl-oz",
	"pints":       "pint",
	"pt":          "pint",
	"quarts":      "quart",
	"qt":          "quart",
	"pieces":      "piece",
	"pc":          "piece",
	"pcs":         "piece",
	"unit":        "piece",
	"units":       "piece",
	"count":       "piece",
	"each":        "piece",
	"ea":          "piece",
	"whole":       "piece",
	"item":        "piece",
	"items":       "piece",
	"dozens":      "dozen",
	"doz":         "dozen",
	"pairs":       "pair",
}

// Normalize lower-cases, trims and folds aliases/plurals onto canonical
// unit names. Unrecognized input comes back lower-cased but otherwise intact.
func Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if alias, ok := aliases[u]; ok {
		return alias
	}
	if _, ok := table[u]; ok {
		return u
	}
	// last resort: strip a trailing plural "s" and retry
	if trimmed := strings.TrimSuffix(u, "s"); trimmed != u {
		if alias, ok := aliases[trimmed]; ok {
			return alias
		}
		if _, ok := table[trimmed]; ok {
			return trimmed
		}
	}
	return u
}

// Type returns the unit's group, or TypeUnknown.
func Type(unit string) UnitType {
	if def, ok := table[Normalize(unit)]; ok {
		return def.typ
	}
	return TypeUnknown
}

// AreCompatible reports whether both units resolve to the same non-unknown group.
func AreCompatible(a, b string) bool {
	ta := Type(a)
	return ta != TypeUnknown && ta == Type(b)
}

// Convert converts quantity between units via the group's base unit.
// Cross-group or unrecognized units return ErrIncompatible.
func Convert(quantity float64, from, to string) (float64, error) {
	fromDef, ok := table[Normalize(from)]
	if !ok {
		return 0, ErrIncompatible
	}
	toDef, ok := table[Normalize(to)]
	if !ok || fromDef.typ != toDef.typ {
		return 0, ErrIncompatible
	}
	return quantity * fromDef.toBase / toDef.toBase, nil
}

// IsSufficient reports whether haveQty of haveUnit covers needQty of needUnit.
// When the units cannot be compared the answer is true: an unmappable unit
// must not block availability, at the cost of the occasional false positive.
func IsSufficient(haveQty float64, haveUnit string, needQty float64, needUnit string) bool {
	have, err := Convert(haveQty, haveUnit, needUnit)
	if err != nil {
		return true
	}
	return have >= needQty
}
