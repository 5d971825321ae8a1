package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymcore/internal/attendance/leaderboard"
	"github.com/2beens/gymcore/internal/auth"
	"github.com/2beens/gymcore/internal/telemetry/tracing"
	"github.com/2beens/gymcore/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=attendance_test

type attendanceService interface {
	CheckIn(ctx context.Context, gymID, memberID int, date *time.Time) (*CheckInResult, error)
	MemberStreak(ctx context.Context, gymID, memberID int) (*MemberStreak, error)
	Leaderboard(ctx context.Context, gymID, size int) ([]leaderboard.RankedEntry, error)
	Analytics(ctx context.Context, gymID int) (*leaderboard.Analytics, error)
	RebuildCounters(ctx context.Context, gymID int) (int, error)
}

type BackfillRequest struct {
	MemberID int    `json:"member_id" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}

type RebuildResponse struct {
	Rebuilt int      `json:"rebuilt"`
	Errors  []string `json:"errors"`
}

type Handler struct {
	service  attendanceService
	validate *validator.Validate
}

func NewHandler(service attendanceService) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (handler *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.checkin")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	if session == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}

	handler.checkIn(ctx, w, gymID, session.UserID, nil)
}

// HandleBackfill records a past check-in on behalf of a member.
func (handler *Handler) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.backfill")
	defer span.End()

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}

	var req BackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("backfill, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := handler.validate.Struct(req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	// validated above
	date, _ := time.Parse(time.DateOnly, req.Date)
	handler.checkIn(ctx, w, gymID, req.MemberID, &date)
}

func (handler *Handler) checkIn(ctx context.Context, w http.ResponseWriter, gymID, memberID int, date *time.Time) {
	res, err := handler.service.CheckIn(ctx, gymID, memberID, date)
	switch {
	case errors.Is(err, ErrMemberNotFound):
		http.Error(w, "error, member not found in gym", http.StatusNotFound)
		return
	case errors.Is(err, ErrAlreadyCheckedIn):
		http.Error(w, "error, attendance already marked for this day", http.StatusConflict)
		return
	case errors.Is(err, ErrFutureCheckIn):
		http.Error(w, "error, check-in date is in the future", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("check-in [gym %d, member %d]: %s", gymID, memberID, err)
		http.Error(w, "error, failed to check in", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, res, http.StatusCreated)
}

func (handler *Handler) HandleMemberStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.member_streak")
	defer span.End()

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}
	memberID, ok := intVar(w, r, "memberId")
	if !ok {
		return
	}

	// members can only see their own streak
	session := auth.SessionFromContext(ctx)
	if session == nil || (!session.Role.Can(auth.CapViewAnalytics) && session.UserID != memberID) {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	memberStreak, err := handler.service.MemberStreak(ctx, gymID, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		http.Error(w, "error, member not found in gym", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get member streak [gym %d, member %d]: %s", gymID, memberID, err)
		http.Error(w, "error, failed to get streak", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, memberStreak, http.StatusOK)
}

func (handler *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.leaderboard")
	defer span.End()

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}

	size := DefaultLeaderboardSize
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		var err error
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			http.Error(w, "error, invalid size", http.StatusBadRequest)
			return
		}
	}

	entries, err := handler.service.Leaderboard(ctx, gymID, size)
	if err != nil {
		log.Errorf("get leaderboard [gym %d]: %s", gymID, err)
		http.Error(w, "error, failed to get leaderboard", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []leaderboard.RankedEntry{}
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (handler *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.analytics")
	defer span.End()

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}

	analytics, err := handler.service.Analytics(ctx, gymID)
	if err != nil {
		log.Errorf("get analytics [gym %d]: %s", gymID, err)
		http.Error(w, "error, failed to get analytics", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, analytics, http.StatusOK)
}

func (handler *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.attendance.rebuild")
	defer span.End()

	gymID, ok := intVar(w, r, "gymId")
	if !ok {
		return
	}

	rebuilt, err := handler.service.RebuildCounters(ctx, gymID)
	resp := RebuildResponse{
		Rebuilt: rebuilt,
		Errors:  []string{},
	}
	for _, e := range multierr.Errors(err) {
		resp.Errors = append(resp.Errors, e.Error())
	}
	if err != nil {
		log.Errorf("rebuild streak counters [gym %d]: %s", gymID, err)
	}

	status := http.StatusOK
	if err != nil && rebuilt == 0 {
		status = http.StatusInternalServerError
	}

	pkg.WriteJSON(w, resp, status)
}

func intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := mux.Vars(r)[name]
	if v == "" {
		http.Error(w, "error, "+name+" empty", http.StatusBadRequest)
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		http.Error(w, "error, "+name+" NaN", http.StatusBadRequest)
		return 0, false
	}
	return i, true
}
