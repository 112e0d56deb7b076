package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// OrderingFields are the fields schedules can be ordered by.
var OrderingFields = []string{"title", "date", "start_time", "venue", "status", "created_at", "updated_at"}

// Schedule is one training session occurrence.
type Schedule struct {
	ID         string    `json:"id" bson:"_id"`
	ProgramID  string    `json:"program_id" bson:"program_id"`
	Title      string    `json:"title" bson:"title"`
	Date       time.Time `json:"date" bson:"date"`             // session day, midnight in the club time zone
	StartTime  string    `json:"start_time" bson:"start_time"` // HH:MM
	EndTime    string    `json:"end_time" bson:"end_time"`     // HH:MM
	Venue      string    `json:"venue" bson:"venue"`
	CoachID    string    `json:"coach_id" bson:"coach_id"`
	AthleteIDs []string  `json:"athlete_ids" bson:"athlete_ids"`
	Status     Status    `json:"status" bson:"status"`
	Notes      string    `json:"notes" bson:"notes"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// HasAthlete reports whether the athlete is assigned to the session.
func (s Schedule) HasAthlete(athleteID string) bool {
	return core.ContainsString(s.AthleteIDs, athleteID)
}

// NewSchedule contains information needed to create or replace a Schedule.
type NewSchedule struct {
	ProgramID  string    `json:"program_id" validate:"omitempty,id"`
	Title      string    `json:"title" validate:"required,notblank,max=150"`
	Date       time.Time `json:"date" validate:"required"`
	StartTime  string    `json:"start_time" validate:"required,clock"`
	EndTime    string    `json:"end_time" validate:"required,clock"`
	Venue      string    `json:"venue" validate:"omitempty,max=150"`
	CoachID    string    `json:"coach_id" validate:"omitempty,id"`
	AthleteIDs []string  `json:"athlete_ids" validate:"omitempty,dive,id"`
	Status     Status    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes      string    `json:"notes"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.Title = core.CleanString(ns.Title)
	ns.Venue = core.CleanString(ns.Venue)
	ns.StartTime = core.CleanString(ns.StartTime)
	ns.EndTime = core.CleanString(ns.EndTime)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	// HH:MM strings compare chronologically
	if ns.EndTime <= ns.StartTime {
		return core.NewValidationError(nil, core.FieldError{Field: "end_time", Error: "end_time must be after start_time"})
	}
	return nil
}

type QueryFilter struct {
	DateFrom  time.Time `query:"date_from"`
	DateTo    time.Time `query:"date_to"`
	ProgramID string    `query:"program_id"`
	CoachID   string    `query:"coach_id"`
	AthleteID string    `query:"athlete_id"`
	Status    Status    `query:"status"`
}

// Match applies the AND operation on the available filter fields. Date bounds are inclusive.
func (qf *QueryFilter) Match(s Schedule) bool {
	if qf == nil {
		return true
	}
	if !core.InDateRange(s.Date, qf.DateFrom, qf.DateTo) {
		return false
	}
	if qf.ProgramID != "" && s.ProgramID != qf.ProgramID {
		return false
	}
	if qf.CoachID != "" && s.CoachID != qf.CoachID {
		return false
	}
	if qf.AthleteID != "" && !s.HasAthlete(qf.AthleteID) {
		return false
	}
	if qf.Status != "" && s.Status != qf.Status {
		return false
	}
	return true
}
