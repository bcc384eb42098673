// Package catalog holds the read-only ingredient and recipe reference data
// and an in-memory search index over ingredient names and aliases.
package catalog

import (
	"sort"
	"strings"

	"github.com/nemocake/pantry-planner/models"
)

// Search scoring tiers. A canonical-name hit outranks an alias hit at the
// same tier through the bonus.
const (
	scoreExact     = 100
	scorePrefix    = 75
	scoreSubstring = 50
	canonicalBonus = 10
)

type termEntry struct {
	term      string
	id        string
	canonical bool
}

// Index is the id-lookup and text-search view over the ingredient catalog.
// Built once at load time; all methods are read-only.
type Index struct {
	byID       map[string]*models.IngredientRecord
	byCategory map[string][]*models.IngredientRecord
	ordered    []*models.IngredientRecord
	terms      []termEntry
	categories []models.Category
}

// NewIndex builds the index from provider payload records.
func NewIndex(categories []models.Category, ingredients []models.IngredientRecord) *Index {
	ix := &Index{
		byID:       make(map[string]*models.IngredientRecord, len(ingredients)),
		byCategory: make(map[string][]*models.IngredientRecord),
		categories: categories,
	}
	for i := range ingredients {
		rec := &ingredients[i]
		ix.byID[rec.ID] = rec
		ix.byCategory[rec.Category] = append(ix.byCategory[rec.Category], rec)
		ix.ordered = append(ix.ordered, rec)

		ix.addTerm(rec.Name, rec.ID, true)
		for _, alias := range rec.Aliases {
			ix.addTerm(alias, rec.ID, false)
		}
		for _, term := range rec.SearchTerms {
			ix.addTerm(term, rec.ID, false)
		}
	}
	return ix
}

func (ix *Index) addTerm(term, id string, canonical bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return
	}
	ix.terms = append(ix.terms, termEntry{term: term, id: id, canonical: canonical})
}

// Get returns the record for id, or nil when unknown.
func (ix *Index) Get(id string) *models.IngredientRecord {
	return ix.byID[id]
}

// Has reports whether id exists in the catalog.
func (ix *Index) Has(id string) bool {
	_, ok := ix.byID[id]
	return ok
}

// All returns every ingredient in load order.
func (ix *Index) All() []*models.IngredientRecord {
	return ix.ordered
}

// Len returns the number of ingredients.
func (ix *Index) Len() int {
	return len(ix.ordered)
}

// Categories returns the provider's category list.
func (ix *Index) Categories() []models.Category {
	return ix.categories
}

// ByCategory lists ingredients in one category, sorted by name.
func (ix *Index) ByCategory(category string) []*models.IngredientRecord {
	recs := append([]*models.IngredientRecord(nil), ix.byCategory[category]...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs
}

// SearchResult pairs an ingredient with its match score.
type SearchResult struct {
	Ingredient *models.IngredientRecord `json:"ingredient"`
	Score      int                      `json:"score"`
}

// Search substring-matches query against every indexed term. Exact term
// matches score 100, prefix matches 75, substring matches 50, plus 10 when
// the matched term is the canonical name. Results are deduplicated by
// ingredient keeping the best score and truncated to limit.
func (ix *Index) Search(query string, limit int) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit == 0 {
		return nil
	}

	best := make(map[string]int)
	for _, te := range ix.terms {
		var score int
		switch {
		case te.term == q:
			score = scoreExact
		case strings.HasPrefix(te.term, q):
			score = scorePrefix
		case strings.Contains(te.term, q):
			score = scoreSubstring
		default:
			continue
		}
		if te.canonical {
			score += canonicalBonus
		}
		if score > best[te.id] {
			best[te.id] = score
		}
	}

	results := make([]SearchResult, 0, len(best))
	for id, score := range best {
		results = append(results, SearchResult{Ingredient: ix.byID[id], Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Ingredient.Name < results[j].Ingredient.Name
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// descriptor suffixes stripped by FuzzyFind before retrying the search.
var descriptorSuffixes = []string{
	"fresh", "frozen", "dried", "chopped", "sliced", "diced", "ground",
	"large", "small", "medium", "raw", "cooked", "whole", "organic",
}

// FuzzyFind resolves free text (e.g. "chopped onions") to a single catalog
// record: normalize plural/descriptor noise, then reuse Search with limit 1.
// Returns nil when nothing matches.
func (ix *Index) FuzzyFind(text string) *models.IngredientRecord {
	normalized := strings.ToLower(strings.TrimSpace(text))
	fields := strings.Fields(normalized)
	kept := fields[:0]
	for _, f := range fields {
		skip := false
		for _, d := range descriptorSuffixes {
			if f == d {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, f)
		}
	}
	normalized = strings.Join(kept, " ")
	singular := strings.TrimSuffix(normalized, "s")
	if strings.HasSuffix(normalized, "es") {
		singular = strings.TrimSuffix(normalized, "es")
	}

	for _, candidate := range []string{singular, normalized, strings.ToLower(strings.TrimSpace(text))} {
		if candidate == "" {
			continue
		}
		if hits := ix.Search(candidate, 1); len(hits) > 0 {
			return hits[0].Ingredient
		}
	}
	return nil
}
