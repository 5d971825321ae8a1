package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcore/internal/attendance/leaderboard"
	"github.com/2beens/gymcore/internal/telemetry/tracing"
	"github.com/2beens/gymcore/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrAlreadyCheckedIn = errors.New("attendance already recorded for this day")
	ErrMemberNotFound   = errors.New("member not found")
	ErrFutureCheckIn    = errors.New("check-in date is in the future")
)

type Record struct {
	ID        int       `json:"id"`
	MemberID  int       `json:"member_id"`
	GymID     int       `json:"gym_id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add appends a record to the attendance log. A second record for the same
// member, gym and day is rejected with ErrAlreadyCheckedIn.
func (r *Repo) Add(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO attendance
				(member_id, gym_id, date, created_at)
				VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		record.MemberID, record.GymID, record.Date, record.CreatedAt,
	).Scan(&id)
	if pkg.IsUniqueViolationError(err) {
		return nil, ErrAlreadyCheckedIn
	}
	if pkg.IsForeignKeyViolationError(err) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	span.SetAttributes(attribute.Int("attendance.id", id))

	record.ID = id
	return &record, nil
}

// AttendanceDates returns the attendance days of a member at a gym, ascending.
func (r *Repo) AttendanceDates(ctx context.Context, memberID, gymID int) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.dates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("member.id", memberID),
		attribute.Int("gym.id", gymID),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT date FROM attendance WHERE member_id = $1 AND gym_id = $2 ORDER BY date ASC;`,
		memberID, gymID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// Roster lists the active members of a gym, in membership order.
func (r *Repo) Roster(ctx context.Context, gymID int) (_ []leaderboard.Member, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.roster")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("gym.id", gymID))

	rows, err := r.db.Query(
		ctx,
		`SELECT member_id, name, start_date FROM gym_member
			WHERE gym_id = $1 AND active = true
			ORDER BY id ASC;`,
		gymID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2members(rows)
}

func (r *Repo) Member(ctx context.Context, gymID, memberID int) (_ *leaderboard.Member, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.member")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT member_id, name, start_date FROM gym_member
			WHERE gym_id = $1 AND member_id = $2 AND active = true;`,
		gymID, memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members, err := rows2members(rows)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrMemberNotFound
	}

	return &members[0], nil
}

func (r *Repo) RecentAttendance(ctx context.Context, gymID, limit int) (_ []leaderboard.RecentAttendance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT a.member_id, m.name, a.date FROM attendance a
			JOIN gym_member m ON m.gym_id = a.gym_id AND m.member_id = a.member_id
			WHERE a.gym_id = $1
			ORDER BY a.date DESC, a.created_at DESC
			LIMIT $2;`,
		gymID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []leaderboard.RecentAttendance
	for rows.Next() {
		var ra leaderboard.RecentAttendance
		if err := rows.Scan(&ra.MemberID, &ra.MemberName, &ra.Date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		recent = append(recent, ra)
	}

	return recent, rows.Err()
}

func rows2members(rows pgx.Rows) ([]leaderboard.Member, error) {
	var members []leaderboard.Member
	for rows.Next() {
		var (
			m         leaderboard.Member
			startDate *time.Time
		)
		if err := rows.Scan(&m.MemberID, &m.Name, &startDate); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		m.MembershipStart = startDate
		members = append(members, m)
	}

	return members, rows.Err()
}
