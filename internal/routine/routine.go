package routine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymcore/internal/exercises/recommend"
)

var (
	ErrRoutineDisabled    = errors.New("routine generation not configured")
	ErrRoutineTimeout     = errors.New("routine generation timed out")
	ErrRoutineUpstream    = errors.New("routine generation upstream error")
	ErrRoutineUnavailable = errors.New("routine generation temporarily unavailable")
)

// GenerationError is returned when no routine could be generated. Err wraps
// one of ErrRoutineTimeout, ErrRoutineUpstream or ErrRoutineUnavailable.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate routine (attempts: %d): %s", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type Generator interface {
	GenerateRoutine(ctx context.Context, profile recommend.Profile) (*Routine, error)
}

type Routine struct {
	ID            string             `json:"id"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Summary       string             `json:"summary,omitempty"`
	WeeklyRoutine map[string]DayPlan `json:"weekly_routine,omitempty"`
	SafetyTips    []string           `json:"safety_tips,omitempty"`
	Modifications *Modifications     `json:"modifications,omitempty"`
	RawResponse   string             `json:"raw_response,omitempty"`
}

type DayPlan struct {
	Day           string        `json:"day"`
	Focus         string        `json:"focus"`
	Warmup        []string      `json:"warmup"`
	MainWorkout   []WorkoutItem `json:"main_workout"`
	Cooldown      []string      `json:"cooldown"`
	TotalDuration string        `json:"total_duration"`
}

type WorkoutItem struct {
	Exercise string `json:"exercise"`
	Sets     string `json:"sets"`
	Reps     string `json:"reps"`
	Rest     string `json:"rest"`
	Notes    string `json:"notes,omitempty"`
}

type Modifications struct {
	Beginner string `json:"beginner"`
	Advanced string `json:"advanced"`
}

type routinePayload struct {
	Summary       string             `json:"summary"`
	WeeklyRoutine map[string]DayPlan `json:"weekly_routine"`
	SafetyTips    []string           `json:"safety_tips"`
	Modifications *Modifications     `json:"modifications"`
}

// parseOutput fills the routine from the model output. Output that is not a
// JSON routine is kept as is in RawResponse.
func parseOutput(output string, routine *Routine) {
	trimmed := strings.TrimSpace(output)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var payload routinePayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil || len(payload.WeeklyRoutine) == 0 {
		routine.RawResponse = output
		return
	}

	routine.Summary = payload.Summary
	routine.WeeklyRoutine = payload.WeeklyRoutine
	routine.SafetyTips = payload.SafetyTips
	routine.Modifications = payload.Modifications
}
