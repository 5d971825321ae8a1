package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultRating    = 7.0
	MaxRating        = 10.0
	DefaultLevel     = "Intermediate"
	DefaultEquipment = "Body Only"
)

var ErrNoExercises = errors.New("no valid exercises")

type Exercise struct {
	Title       string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	BodyPart    string  `json:"body_part"`
	Equipment   string  `json:"equipment"`
	Level       string  `json:"level"`
	Rating      float64 `json:"rating"`
}

// Catalog is read-only once constructed.
type Catalog struct {
	exercises     []Exercise
	usingFallback bool
}

// New loads the catalog CSV at path. It never fails: when the file is missing,
// unreadable or holds no valid rows, the built-in fallback exercises are used.
func New(path string) *Catalog {
	if path == "" {
		log.Warnln("exercise catalog path not set, using fallback exercises")
		return NewFromExercises(nil)
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warnf("open exercise catalog [%s]: %s, using fallback exercises", path, err)
		return NewFromExercises(nil)
	}
	defer f.Close()

	exercises, err := Load(f)
	if err != nil {
		log.Warnf("load exercise catalog [%s]: %s, using fallback exercises", path, err)
		return NewFromExercises(nil)
	}

	log.Printf("exercise catalog loaded %d exercises", len(exercises))
	return NewFromExercises(exercises)
}

// NewFromExercises wraps already loaded exercises, falling back when there are none.
func NewFromExercises(exercises []Exercise) *Catalog {
	if len(exercises) == 0 {
		return &Catalog{
			exercises:     Fallback(),
			usingFallback: true,
		}
	}

	c := &Catalog{
		exercises: make([]Exercise, len(exercises)),
	}
	copy(c.exercises, exercises)
	return c
}

// Load reads the exercises CSV. Columns are matched by the header names
// Title, Desc, Type, BodyPart, Equipment, Level and Rating, others are ignored.
// Rows without a title, description, type or body part are dropped.
func Load(r io.Reader) ([]Exercise, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoExercises
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Title", "Desc", "Type", "BodyPart"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column: %s", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var exercises []Exercise
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		exercise := Exercise{
			Title:       field(record, "Title"),
			Description: field(record, "Desc"),
			Type:        field(record, "Type"),
			BodyPart:    field(record, "BodyPart"),
			Equipment:   field(record, "Equipment"),
			Level:       field(record, "Level"),
			Rating:      DefaultRating,
		}
		if exercise.Title == "" || exercise.Description == "" || exercise.Type == "" || exercise.BodyPart == "" {
			continue
		}
		if exercise.Equipment == "" {
			exercise.Equipment = DefaultEquipment
		}
		if exercise.Level == "" {
			exercise.Level = DefaultLevel
		}
		exercise.Rating = parseRating(field(record, "Rating"))

		exercises = append(exercises, exercise)
	}

	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	return exercises, nil
}

// parseRating keeps ratings in [0, MaxRating]. NaN, infinities and out of
// range values fall back to DefaultRating, like unparseable ones.
func parseRating(s string) float64 {
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(rating) || rating < 0 || rating > MaxRating {
		return DefaultRating
	}
	return rating
}

// All returns a copy of the catalog exercises, in load order.
func (c *Catalog) All() []Exercise {
	all := make([]Exercise, len(c.exercises))
	copy(all, c.exercises)
	return all
}

func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Index returns the position of the first exercise with the given title, or -1.
func (c *Catalog) Index(title string) int {
	for i, e := range c.exercises {
		if e.Title == title {
			return i
		}
	}
	return -1
}

func (c *Catalog) UsingFallback() bool {
	return c.usingFallback
}
