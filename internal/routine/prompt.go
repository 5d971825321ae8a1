package routine

import (
	"fmt"
	"strings"

	"github.com/2beens/gymcore/internal/exercises/recommend"
)

const promptSuggestions = 8

func buildPrompt(profile recommend.Profile, suggestions []recommend.Recommendation) string {
	var sb strings.Builder

	sb.WriteString("Create a personalized weekly exercise routine.\n")
	fmt.Fprintf(&sb, "Age: %d\n", profile.Age)
	fmt.Fprintf(&sb, "Weight: %.1f kg\n", profile.WeightKg)
	fmt.Fprintf(&sb, "Height: %.1f cm\n", profile.HeightCm)
	fmt.Fprintf(&sb, "Gender: %s\n", profile.Gender)
	fmt.Fprintf(&sb, "Experience level: %s\n", profile.Experience)

	if len(suggestions) > 0 {
		sb.WriteString("Prefer these exercises where they fit:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "- %s (%s, %s, %s)\n", s.Title, s.Type, s.BodyPart, s.Equipment)
		}
	}

	sb.WriteString(`Respond only with JSON of the form:
{"summary": "...",
 "weekly_routine": {"monday": {"day": "Monday", "focus": "...", "warmup": ["..."],
   "main_workout": [{"exercise": "...", "sets": "3", "reps": "10", "rest": "60s", "notes": "..."}],
   "cooldown": ["..."], "total_duration": "45 minutes"}},
 "safety_tips": ["..."],
 "modifications": {"beginner": "...", "advanced": "..."}}
`)

	return sb.String()
}
