package recommend

import (
	"math"
	"strings"

	"github.com/2beens/gymcore/internal/exercises/catalog"
)

const (
	DifficultyEasy        = "Easy"
	DifficultyModerate    = "Moderate"
	DifficultyChallenging = "Challenging"
)

var (
	baseCalories = map[string]int{
		"Strength":              8,
		"Cardio":                15,
		"Plyometrics":           12,
		"Stretching":            3,
		"Powerlifting":          10,
		"Olympic Weightlifting": 12,
		"Strongman":             14,
	}
	baseDuration = map[string]int{
		"Strength":              12,
		"Cardio":                25,
		"Plyometrics":           15,
		"Stretching":            8,
		"Powerlifting":          15,
		"Olympic Weightlifting": 18,
		"Strongman":             20,
	}
	targetMuscles = map[string]string{
		"Chest":       "Pectoralis Major, Anterior Deltoids",
		"Biceps":      "Biceps Brachii, Brachialis",
		"Triceps":     "Triceps Brachii",
		"Shoulders":   "Deltoids (Anterior, Lateral, Posterior)",
		"Lats":        "Latissimus Dorsi",
		"Abdominals":  "Rectus Abdominis, Obliques, Transverse Abdominis",
		"Quadriceps":  "Rectus Femoris, Vastus Lateralis, Vastus Medialis, Vastus Intermedius",
		"Hamstrings":  "Biceps Femoris, Semitendinosus, Semimembranosus",
		"Glutes":      "Gluteus Maximus, Gluteus Medius, Gluteus Minimus",
		"Calves":      "Gastrocnemius, Soleus",
		"Lower Back":  "Erector Spinae",
		"Middle Back": "Rhomboids, Trapezius",
		"Traps":       "Trapezius",
		"Forearms":    "Flexors, Extensors",
		"Adductors":   "Adductor Magnus, Adductor Longus, Adductor Brevis",
		"Abductors":   "Gluteus Medius, Tensor Fasciae Latae",
	}
	typeBenefits = map[string][]string{
		"Strength":   {"Builds muscle strength", "Improves bone density"},
		"Cardio":     {"Improves cardiovascular health", "Burns calories"},
		"Stretching": {"Improves flexibility", "Reduces muscle tension"},
	}
)

func enrich(e catalog.Exercise, p Profile) Recommendation {
	return Recommendation{
		Exercise:        e,
		CaloriesBurned:  estimateCalories(e, p),
		DurationMinutes: estimateDuration(e, p),
		SimilarityScore: personalizedScore(e, p),
		RecommendedFor:  recommendedFor(e, p),
		Difficulty:      difficulty(e, p),
		TargetMuscles:   muscles(e.BodyPart),
		Benefits:        benefits(e, p),
		Instructions:    instructions(e),
	}
}

func personalizedScore(e catalog.Exercise, p Profile) float64 {
	score := 0.5

	userLevel := string(p.Experience)
	exerciseLevel := strings.ToLower(e.Level)
	switch {
	case userLevel == exerciseLevel:
		score += 0.3
	case p.Experience == ExperienceIntermediate && exerciseLevel == "beginner":
		score += 0.2
	case p.Experience == ExperienceAdvanced:
		score += 0.2
	}

	switch {
	case p.Age < 18 && e.Equipment == "Body Only":
		score += 0.1
	case p.Age > 50 && (e.Equipment == "Body Only" || e.Equipment == "Cable"):
		score += 0.1
	}

	if p.Gender == GenderFemale {
		if oneOf(e.BodyPart, "Abdominals", "Glutes", "Quadriceps") {
			score += 0.1
		}
	} else if oneOf(e.BodyPart, "Chest", "Biceps", "Triceps") {
		score += 0.1
	}

	if e.Rating > 8.0 {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

func estimateCalories(e catalog.Exercise, p Profile) int {
	calories, ok := baseCalories[e.Type]
	if !ok {
		calories = 10
	}

	if p.WeightKg > 80 {
		calories += 3
	} else if p.WeightKg < 60 {
		calories -= 2
	}

	if p.Age > 50 {
		calories = int(float64(calories) * 0.8)
	}

	return max(calories, 3)
}

func estimateDuration(e catalog.Exercise, p Profile) int {
	duration, ok := baseDuration[e.Type]
	if !ok {
		duration = 15
	}

	switch p.Experience {
	case ExperienceBeginner:
		duration += 5
	case ExperienceAdvanced:
		duration -= 3
	}

	if p.Age > 50 {
		duration += 3
	}

	return max(duration, 5)
}

func instructions(e catalog.Exercise) string {
	switch e.Type {
	case "Strength":
		return "Perform 3 sets of 8-12 reps for " + e.BodyPart + " strength. Focus on proper form and controlled movement."
	case "Cardio":
		return "Perform for 20-30 minutes at moderate intensity. Maintain steady pace throughout."
	case "Plyometrics":
		return "Perform 3 sets of 10-15 reps with explosive movement. Rest 60-90 seconds between sets."
	case "Stretching":
		return "Hold each stretch for 20-30 seconds. Breathe deeply and don't bounce."
	default:
		return "Follow the exercise description and maintain proper form throughout the movement."
	}
}

func muscles(bodyPart string) string {
	if m, ok := targetMuscles[bodyPart]; ok {
		return m
	}
	return bodyPart
}

func benefits(e catalog.Exercise, p Profile) string {
	var b []string
	b = append(b, typeBenefits[e.Type]...)

	switch {
	case p.Age < 25:
		b = append(b, "Builds foundation for lifelong fitness")
	case p.Age < 40:
		b = append(b, "Maintains muscle mass and metabolism")
	case p.Age < 60:
		b = append(b, "Supports healthy aging")
	default:
		b = append(b, "Maintains independence and mobility")
	}

	return strings.Join(b, ", ")
}

func recommendedFor(e catalog.Exercise, p Profile) string {
	var reasons []string

	switch {
	case p.Age < 18:
		reasons = append(reasons, "Great for developing fitness foundation")
	case p.Age < 25:
		reasons = append(reasons, "Perfect for building strength and endurance")
	case p.Age < 40:
		reasons = append(reasons, "Excellent for maintaining fitness and health")
	case p.Age < 60:
		reasons = append(reasons, "Joint-friendly and effective for your age group")
	default:
		reasons = append(reasons, "Safe and effective for senior fitness")
	}

	if p.Gender == GenderFemale {
		if oneOf(e.BodyPart, "Abdominals", "Glutes") {
			reasons = append(reasons, "Targets areas commonly focused on by women")
		}
	} else if oneOf(e.BodyPart, "Chest", "Biceps") {
		reasons = append(reasons, "Builds upper body strength")
	}

	switch p.Experience {
	case ExperienceBeginner:
		reasons = append(reasons, "Perfect for beginners")
	case ExperienceIntermediate:
		reasons = append(reasons, "Challenging but achievable")
	default:
		reasons = append(reasons, "Advanced exercise for experienced users")
	}

	return strings.Join(reasons, " • ")
}

func difficulty(e catalog.Exercise, p Profile) string {
	exerciseLevel := strings.ToLower(e.Level)
	switch {
	case p.Experience == ExperienceAdvanced:
		return DifficultyChallenging
	case exerciseLevel == "beginner" && (p.Experience == ExperienceBeginner || p.Experience == ExperienceIntermediate):
		return DifficultyEasy
	default:
		return DifficultyModerate
	}
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
