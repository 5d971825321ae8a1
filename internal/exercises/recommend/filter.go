package recommend

import (
	"sort"

	"github.com/2beens/gymcore/internal/exercises/catalog"
)

type Criteria struct {
	Type      string  `json:"type"`
	BodyPart  string  `json:"body_part"`
	Equipment string  `json:"equipment"`
	Level     string  `json:"level"`
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=10"`
}

type Categories struct {
	Types     []string `json:"types"`
	BodyParts []string `json:"body_parts"`
	Equipment []string `json:"equipment"`
	Levels    []string `json:"levels"`
}

// FilterExercises returns the catalog exercises matching every non-empty
// criterion, best rated first.
func (e *Engine) FilterExercises(criteria Criteria) []Recommendation {
	defaults := Profile{}.Normalize()

	matching := where(e.catalog.All(), func(x catalog.Exercise) bool {
		return (criteria.Type == "" || x.Type == criteria.Type) &&
			(criteria.BodyPart == "" || x.BodyPart == criteria.BodyPart) &&
			(criteria.Equipment == "" || x.Equipment == criteria.Equipment) &&
			(criteria.Level == "" || x.Level == criteria.Level) &&
			x.Rating >= criteria.MinRating
	})
	sortByRating(matching)

	recs := make([]Recommendation, 0, len(matching))
	for _, x := range matching {
		recs = append(recs, Recommendation{
			Exercise:        x,
			CaloriesBurned:  estimateCalories(x, defaults),
			DurationMinutes: estimateDuration(x, defaults),
			SimilarityScore: 0.5,
		})
	}

	return recs
}

func (e *Engine) Categories() Categories {
	var types, bodyParts, equipment, levels []string
	for _, x := range e.catalog.All() {
		types = append(types, x.Type)
		bodyParts = append(bodyParts, x.BodyPart)
		equipment = append(equipment, x.Equipment)
		levels = append(levels, x.Level)
	}

	return Categories{
		Types:     sortedUnique(types),
		BodyParts: sortedUnique(bodyParts),
		Equipment: sortedUnique(equipment),
		Levels:    sortedUnique(levels),
	}
}

func sortedUnique(values []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
