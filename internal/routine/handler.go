package routine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymcore/internal/exercises/recommend"
	"github.com/2beens/gymcore/internal/telemetry/tracing"
	"github.com/2beens/gymcore/pkg"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type GenerateRequest struct {
	Age        int     `json:"age" validate:"gte=0,lte=120"`
	WeightKg   float64 `json:"weight" validate:"gte=0,lte=500"`
	HeightCm   float64 `json:"height" validate:"gte=0,lte=300"`
	Gender     string  `json:"gender"`
	Experience string  `json:"experience_level"`
}

func (r GenerateRequest) profile() recommend.Profile {
	return recommend.Profile{
		Age:        r.Age,
		WeightKg:   r.WeightKg,
		HeightCm:   r.HeightCm,
		Gender:     recommend.Gender(r.Gender),
		Experience: recommend.Experience(r.Experience),
	}.Normalize()
}

type Handler struct {
	generator Generator
	validate  *validator.Validate
}

func NewHandler(generator Generator) *Handler {
	return &Handler{
		generator: generator,
		validate:  validator.New(),
	}
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine.generate")
	defer span.End()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate routine, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := handler.validate.Struct(req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	routine, err := handler.generator.GenerateRoutine(ctx, req.profile())
	if err != nil {
		status, msg := errorStatus(err)
		log.Errorf("generate routine: %s", err)
		http.Error(w, msg, status)
		return
	}

	routineJson, err := json.Marshal(routine)
	if err != nil {
		log.Errorf("marshal routine: %s", err)
		http.Error(w, "error, failed to marshal routine", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, routineJson)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRoutineDisabled):
		return http.StatusServiceUnavailable, "error, routine generation is not enabled"
	case errors.Is(err, ErrRoutineUnavailable):
		return http.StatusServiceUnavailable, "error, routine generation temporarily unavailable, try again later"
	case errors.Is(err, ErrRoutineTimeout):
		return http.StatusGatewayTimeout, "error, routine generation timed out"
	case errors.Is(err, ErrRoutineUpstream):
		return http.StatusBadGateway, "error, routine generation failed"
	default:
		return http.StatusInternalServerError, "error, routine generation failed"
	}
}
