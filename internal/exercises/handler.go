package exercises

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/gymcore/internal/exercises/recommend"
	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"
	"github.com/2beens/gymcore/pkg"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxResults = 50

type RecommendationsRequest struct {
	recommend.Profile
	NumRecommendations int `json:"num_recommendations" validate:"gte=0,lte=50"`
}

type RecommendationsResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	TotalFound      int                        `json:"total_found"`
	UserProfile     recommend.Profile          `json:"user_profile"`
}

type FilterResponse struct {
	Exercises      []recommend.Recommendation `json:"exercises"`
	TotalFound     int                        `json:"total_found"`
	FiltersApplied recommend.Criteria         `json:"filters_applied"`
}

type SimilarResponse struct {
	SimilarExercises []recommend.SimilarExercise `json:"similar_exercises"`
	TotalFound       int                         `json:"total_found"`
	BaseExercise     string                      `json:"base_exercise"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	TotalExercises  int    `json:"total_exercises"`
	Service         string `json:"service"`
	FallbackCatalog bool   `json:"fallback_catalog"`
}

type Handler struct {
	engine         *recommend.Engine
	metricsManager *metrics.Manager
	validate       *validator.Validate
}

func NewHandler(engine *recommend.Engine, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		engine:         engine,
		metricsManager: metricsManager,
		validate:       validator.New(),
	}
}

func (handler *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.recommendations")
	defer span.End()

	if !handler.available(w) {
		return
	}

	var req RecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("recommendations, unmarshal json params: %s", err)
		http.Error(w, "error, user profile data is required", http.StatusBadRequest)
		return
	}
	if err := handler.validate.Struct(req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	profile := req.Profile.Normalize()
	recs, degraded := handler.engine.RecommendWithOutcome(profile, req.NumRecommendations)

	outcome := "personalized"
	if degraded {
		outcome = "degraded"
	}
	span.SetAttributes(
		attribute.String("recommend.outcome", outcome),
		attribute.Int("recommend.count", len(recs)),
	)
	if handler.metricsManager != nil {
		handler.metricsManager.CounterRecommendations.WithLabelValues(outcome).Inc()
	}

	pkg.WriteJSON(w, RecommendationsResponse{
		Recommendations: recs,
		TotalFound:      len(recs),
		UserProfile:     profile,
	}, http.StatusOK)
}

func (handler *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.categories")
	defer span.End()

	if !handler.available(w) {
		return
	}

	pkg.WriteJSON(w, handler.engine.Categories(), http.StatusOK)
}

func (handler *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.filter")
	defer span.End()

	if !handler.available(w) {
		return
	}

	q := r.URL.Query()
	criteria := recommend.Criteria{
		Type:      q.Get("type"),
		BodyPart:  q.Get("body_part"),
		Equipment: q.Get("equipment"),
		Level:     q.Get("level"),
	}
	if minRatingStr := q.Get("min_rating"); minRatingStr != "" {
		minRating, err := strconv.ParseFloat(minRatingStr, 64)
		if err != nil {
			http.Error(w, "error, min_rating NaN", http.StatusBadRequest)
			return
		}
		criteria.MinRating = minRating
	}
	if err := handler.validate.Struct(criteria); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	filtered := handler.engine.FilterExercises(criteria)
	pkg.WriteJSON(w, FilterResponse{
		Exercises:      filtered,
		TotalFound:     len(filtered),
		FiltersApplied: criteria,
	}, http.StatusOK)
}

func (handler *Handler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.similar")
	defer span.End()

	if !handler.available(w) {
		return
	}

	exerciseName := r.URL.Query().Get("exercise_name")
	if exerciseName == "" {
		http.Error(w, "error, exercise name is required", http.StatusBadRequest)
		return
	}

	k := recommend.DefaultCount
	if kStr := r.URL.Query().Get("num_recommendations"); kStr != "" {
		var err error
		k, err = strconv.Atoi(kStr)
		if err != nil || k <= 0 || k > maxResults {
			http.Error(w, "error, invalid num_recommendations", http.StatusBadRequest)
			return
		}
	}

	similar := handler.engine.SimilarExercises(exerciseName, k)
	pkg.WriteJSON(w, SimilarResponse{
		SimilarExercises: similar,
		TotalFound:       len(similar),
		BaseExercise:     exerciseName,
	}, http.StatusOK)
}

func (handler *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if handler.engine == nil {
		pkg.WriteJSON(w, map[string]string{
			"status": "unhealthy",
			"error":  "recommender not initialized",
		}, http.StatusServiceUnavailable)
		return
	}

	pkg.WriteJSON(w, HealthResponse{
		Status:          "healthy",
		TotalExercises:  handler.engine.TotalExercises(),
		Service:         "exercise_recommender",
		FallbackCatalog: handler.engine.UsingFallbackCatalog(),
	}, http.StatusOK)
}

func (handler *Handler) available(w http.ResponseWriter) bool {
	if handler.engine == nil {
		http.Error(w, "recommendation service unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}
