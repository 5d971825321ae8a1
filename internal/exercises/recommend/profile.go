package recommend

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

const (
	DefaultAge        = 25
	DefaultWeightKg   = 70.0
	DefaultHeightCm   = 170.0
	DefaultGender     = GenderMale
	DefaultExperience = ExperienceBeginner
	DefaultCount      = 5
)

// Profile describes the user a recommendation is made for.
type Profile struct {
	Age        int        `json:"age"`
	WeightKg   float64    `json:"weight"`
	HeightCm   float64    `json:"height"`
	Gender     Gender     `json:"gender"`
	Experience Experience `json:"experience_level"`
}

func ParseGender(s string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale:
		return g, true
	default:
		return DefaultGender, false
	}
}

func ParseExperience(s string) (Experience, bool) {
	switch e := Experience(strings.ToLower(strings.TrimSpace(s))); e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return e, true
	default:
		return DefaultExperience, false
	}
}

// Normalize replaces zero, negative or unknown fields with their defaults.
func (p Profile) Normalize() Profile {
	if p.Age <= 0 {
		p.Age = DefaultAge
	}
	if p.WeightKg <= 0 {
		p.WeightKg = DefaultWeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = DefaultHeightCm
	}
	p.Gender, _ = ParseGender(string(p.Gender))
	p.Experience, _ = ParseExperience(string(p.Experience))
	return p
}
