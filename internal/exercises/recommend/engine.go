package recommend

import (
	"sort"
	"strings"

	"github.com/2beens/gymcore/internal/exercises/catalog"
	"github.com/2beens/gymcore/internal/exercises/similarity"

	log "github.com/sirupsen/logrus"
)

const minPreferredPool = 10

type Recommendation struct {
	catalog.Exercise
	CaloriesBurned  int     `json:"calories_burned"`
	DurationMinutes int     `json:"duration_minutes"`
	SimilarityScore float64 `json:"similarity_score"`
	RecommendedFor  string  `json:"recommended_for,omitempty"`
	Difficulty      string  `json:"difficulty,omitempty"`
	TargetMuscles   string  `json:"target_muscles,omitempty"`
	Benefits        string  `json:"benefits,omitempty"`
	Instructions    string  `json:"instructions,omitempty"`
}

type SimilarExercise struct {
	catalog.Exercise
	SimilarityScore float64 `json:"similarity_score"`
}

// Engine recommends exercises from an immutable catalog. It is safe for
// concurrent use; to pick up a new catalog, build a new Engine.
type Engine struct {
	catalog  *catalog.Catalog
	index    *similarity.Index
	pipeline func(p Profile, count int) []Recommendation
}

// NewEngine creates the engine. idx may be nil, in which case similar
// exercise lookups come back empty.
func NewEngine(cat *catalog.Catalog, idx *similarity.Index) *Engine {
	e := &Engine{
		catalog: cat,
		index:   idx,
	}
	e.pipeline = e.personalized
	return e
}

// Recommend returns up to count exercises for the profile. It never fails:
// when personalization yields nothing, the best rated exercises are returned.
func (e *Engine) Recommend(profile Profile, count int) []Recommendation {
	recs, _ := e.RecommendWithOutcome(profile, count)
	return recs
}

// RecommendWithOutcome is Recommend, also reporting whether the degraded
// fallback was used.
func (e *Engine) RecommendWithOutcome(profile Profile, count int) (recs []Recommendation, degraded bool) {
	profile = profile.Normalize()
	if count <= 0 {
		count = DefaultCount
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recommend: personalization panicked: %v", r)
			recs, degraded = e.basic(profile, count), true
		}
	}()

	recs = e.pipeline(profile, count)
	if len(recs) == 0 {
		return e.basic(profile, count), true
	}

	return recs, false
}

func (e *Engine) personalized(p Profile, count int) []Recommendation {
	all := e.catalog.All()

	candidates := agePool(all, p.Age)
	if len(candidates) == 0 {
		candidates = all
	}
	candidates = filterByExperience(candidates, p.Experience)
	candidates = filterByAgeSafety(candidates, p.Age)
	candidates = preferByGender(candidates, p.Gender)
	if len(candidates) == 0 {
		candidates = all
	}

	picked := diversify(candidates, count)
	recs := make([]Recommendation, 0, len(picked))
	for _, exercise := range picked {
		recs = append(recs, enrich(exercise, p))
	}

	return recs
}

// basic is the degraded answer: best rated catalog entries with minimal enrichment.
func (e *Engine) basic(p Profile, count int) []Recommendation {
	all := e.catalog.All()
	sortByRating(all)
	if len(all) > count {
		all = all[:count]
	}

	recs := make([]Recommendation, 0, len(all))
	for _, exercise := range all {
		recs = append(recs, Recommendation{
			Exercise:        exercise,
			CaloriesBurned:  10,
			DurationMinutes: 15,
			SimilarityScore: 0.5,
			RecommendedFor:  "Basic recommendation for " + string(p.Experience) + " level",
			Difficulty:      DifficultyModerate,
			TargetMuscles:   exercise.BodyPart,
			Benefits:        "General fitness improvement",
			Instructions:    instructions(exercise),
		})
	}

	return recs
}

// SimilarExercises returns up to k exercises closest to the one titled title.
func (e *Engine) SimilarExercises(title string, k int) []SimilarExercise {
	matches := e.index.Nearest(title, k)
	similar := make([]SimilarExercise, 0, len(matches))
	for _, m := range matches {
		similar = append(similar, SimilarExercise{
			Exercise:        m.Exercise,
			SimilarityScore: m.Score,
		})
	}
	return similar
}

func (e *Engine) TotalExercises() int {
	return e.catalog.Len()
}

func (e *Engine) UsingFallbackCatalog() bool {
	return e.catalog.UsingFallback()
}

func agePool(exercises []catalog.Exercise, age int) []catalog.Exercise {
	switch {
	case age < 18:
		return where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.Type, "Cardio", "Strength", "Plyometrics") || oneOf(x.Equipment, "Body Only", "Dumbbell")
		})
	case age < 25:
		return exercises
	case age < 40:
		return where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.Type, "Strength", "Cardio", "Stretching")
		})
	case age < 60:
		return where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.Equipment, "Body Only", "Cable", "Dumbbell") && oneOf(x.Type, "Strength", "Cardio", "Stretching")
		})
	default:
		return where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.Equipment, "Body Only", "Cable") && oneOf(x.Type, "Strength", "Stretching", "Cardio")
		})
	}
}

func filterByExperience(exercises []catalog.Exercise, experience Experience) []catalog.Exercise {
	switch experience {
	case ExperienceBeginner:
		return where(exercises, func(x catalog.Exercise) bool {
			return levelIs(x, "beginner")
		})
	case ExperienceIntermediate:
		return where(exercises, func(x catalog.Exercise) bool {
			return levelIs(x, "beginner") || levelIs(x, "intermediate")
		})
	default:
		return exercises
	}
}

func filterByAgeSafety(exercises []catalog.Exercise, age int) []catalog.Exercise {
	switch {
	case age < 18:
		return where(exercises, func(x catalog.Exercise) bool {
			return x.Equipment != "Barbell"
		})
	case age > 50:
		return where(exercises, func(x catalog.Exercise) bool {
			return x.Type != "Plyometrics"
		})
	default:
		return exercises
	}
}

// preferByGender narrows to the preferred subset only when it is large enough.
func preferByGender(exercises []catalog.Exercise, gender Gender) []catalog.Exercise {
	var preferred []catalog.Exercise
	if gender == GenderFemale {
		preferred = where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.BodyPart, "Abdominals", "Glutes", "Quadriceps", "Calves", "Hamstrings") ||
				oneOf(x.Type, "Cardio", "Strength", "Stretching")
		})
	} else {
		preferred = where(exercises, func(x catalog.Exercise) bool {
			return oneOf(x.BodyPart, "Chest", "Biceps", "Triceps", "Shoulders", "Lats") ||
				oneOf(x.Type, "Strength", "Powerlifting", "Olympic Weightlifting")
		})
	}

	if len(preferred) >= minPreferredPool {
		return preferred
	}
	return exercises
}

// diversify keeps the two best rated exercises of every body part and of
// every type, then returns the best rated count of those.
func diversify(exercises []catalog.Exercise, count int) []catalog.Exercise {
	sorted := make([]catalog.Exercise, len(exercises))
	copy(sorted, exercises)
	sortByRating(sorted)
	if len(sorted) <= count {
		return sorted
	}

	var (
		picked    []catalog.Exercise
		bodyParts []string
		types     []string
		seenPart  = map[string]bool{}
		seenType  = map[string]bool{}
	)
	for _, x := range sorted {
		if !seenPart[x.BodyPart] {
			seenPart[x.BodyPart] = true
			bodyParts = append(bodyParts, x.BodyPart)
		}
		if !seenType[x.Type] {
			seenType[x.Type] = true
			types = append(types, x.Type)
		}
	}
	for _, bodyPart := range bodyParts {
		picked = append(picked, firstN(sorted, 2, func(x catalog.Exercise) bool { return x.BodyPart == bodyPart })...)
	}
	for _, exerciseType := range types {
		picked = append(picked, firstN(sorted, 2, func(x catalog.Exercise) bool { return x.Type == exerciseType })...)
	}

	seenTitle := map[string]bool{}
	unique := picked[:0]
	for _, x := range picked {
		if seenTitle[x.Title] {
			continue
		}
		seenTitle[x.Title] = true
		unique = append(unique, x)
	}

	sortByRating(unique)
	if len(unique) > count {
		unique = unique[:count]
	}
	return unique
}

func sortByRating(exercises []catalog.Exercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].Rating > exercises[j].Rating
	})
}

func where(exercises []catalog.Exercise, keep func(catalog.Exercise) bool) []catalog.Exercise {
	var out []catalog.Exercise
	for _, x := range exercises {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func firstN(exercises []catalog.Exercise, n int, keep func(catalog.Exercise) bool) []catalog.Exercise {
	var out []catalog.Exercise
	for _, x := range exercises {
		if len(out) == n {
			break
		}
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func levelIs(x catalog.Exercise, level string) bool {
	return strings.EqualFold(x.Level, level)
}
