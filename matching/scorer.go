// Package matching scores recipes against the pantry by ingredient presence
// alone. It deliberately ignores quantities and units: it answers "do I have
// this at all" for discovery and browsing, while the reservation engine
// answers the quantity-aware "can I actually make it".
package matching

import (
	"sort"

	"github.com/nemocake/pantry-planner/models"
)

// MatchType buckets a recipe by required-ingredient coverage.
type MatchType string

const (
	MatchFull    MatchType = "full"    // every required ingredient present
	MatchPartial MatchType = "partial" // >= 70% required coverage
	MatchMinimal MatchType = "minimal" // >= 50% required coverage
	MatchNone    MatchType = "none"
)

// rank orders match types best-first for sorting.
func (t MatchType) rank() int {
	switch t {
	case MatchFull:
		return 0
	case MatchPartial:
		return 1
	case MatchMinimal:
		return 2
	}
	return 3
}

// scoring weights: a required match is worth 10 points, an optional one 3.
const (
	requiredWeight = 10
	optionalWeight = 3
)

// Result is one recipe's pantry-fit assessment.
type Result struct {
	Recipe          *models.RecipeRecord `json:"recipe"`
	MatchType       MatchType            `json:"match_type"`
	Score           float64              `json:"score"`            // 0-100, weighted
	RequiredPercent float64              `json:"required_percent"` // 0-100, unweighted coverage
	RequiredHave    int                  `json:"required_have"`
	RequiredCount   int                  `json:"required_count"`
	OptionalHave    int                  `json:"optional_have"`
	OptionalCount   int                  `json:"optional_count"`
	MissingRequired []string             `json:"missing_required"`
}

// Score assesses one recipe against the pantry presence set. An ingredient
// counts as present when the pantry holds any positive quantity of it.
func Score(recipe *models.RecipeRecord, pantryIDs map[string]struct{}) Result {
	result := Result{Recipe: recipe, MissingRequired: []string{}}

	for _, ing := range recipe.Ingredients {
		_, have := pantryIDs[ing.IngredientID]
		if ing.Optional {
			result.OptionalCount++
			if have {
				result.OptionalHave++
			}
			continue
		}
		result.RequiredCount++
		if have {
			result.RequiredHave++
		} else {
			result.MissingRequired = append(result.MissingRequired, ing.IngredientID)
		}
	}

	if result.RequiredCount == 0 {
		result.RequiredPercent = 100
	} else {
		result.RequiredPercent = 100 * float64(result.RequiredHave) / float64(result.RequiredCount)
	}

	maxPoints := requiredWeight*result.RequiredCount + optionalWeight*result.OptionalCount
	if maxPoints == 0 {
		result.Score = 100
	} else {
		points := requiredWeight*result.RequiredHave + optionalWeight*result.OptionalHave
		result.Score = 100 * float64(points) / float64(maxPoints)
	}

	switch {
	case result.RequiredPercent == 100:
		result.MatchType = MatchFull
	case result.RequiredPercent >= 70:
		result.MatchType = MatchPartial
	case result.RequiredPercent >= 50:
		result.MatchType = MatchMinimal
	default:
		result.MatchType = MatchNone
	}
	return result
}

// RankRecipes scores every recipe and sorts best-first: by match type, then
// descending weighted score. Equal type+score keeps input order.
func RankRecipes(recipes []*models.RecipeRecord, pantryIDs map[string]struct{}) []Result {
	results := make([]Result, 0, len(recipes))
	for _, r := range recipes {
		results = append(results, Score(r, pantryIDs))
	}
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].MatchType.rank(), results[j].MatchType.rank()
		if ri != rj {
			return ri < rj
		}
		return results[i].Score > results[j].Score
	})
	return results
}
