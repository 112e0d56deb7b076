package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

type Status string

const (
	Present Status = "present"
	Excused Status = "excused"
	Absent  Status = "absent"
)

// OrderingFields are the fields attendance records can be ordered by.
var OrderingFields = []string{"date", "status", "created_at", "updated_at"}

// Record is the attendance of one athlete to one session. There is at most one Record per (schedule, athlete).
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	ScheduleID string    `json:"schedule_id" bson:"schedule_id"`
	AthleteID  string    `json:"athlete_id" bson:"athlete_id"`
	Date       time.Time `json:"date" bson:"date"` // session day, copied from the schedule
	Status     Status    `json:"status" bson:"status"`
	Notes      string    `json:"notes" bson:"notes"`
	RecordedBy string    `json:"recorded_by" bson:"recorded_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewRecord contains information needed to record the attendance of one athlete.
type NewRecord struct {
	ScheduleID string `json:"schedule_id" validate:"required,id"`
	AthleteID  string `json:"athlete_id" validate:"required,id"`
	Status     Status `json:"status" validate:"required,oneof=present excused absent"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Notes = core.CleanString(nr.Notes)
	return validate.Struct(nr)
}

type RollCallEntry struct {
	AthleteID string `json:"athlete_id" validate:"required,id"`
	Status    Status `json:"status" validate:"required,oneof=present excused absent"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// RollCall is the attendance of a whole session.
type RollCall struct {
	Entries []RollCallEntry `json:"entries" validate:"required,min=1,dive"`
}

func (rc *RollCall) Validate(validate *validator.Validate) error {
	for i := range rc.Entries {
		rc.Entries[i].Notes = core.CleanString(rc.Entries[i].Notes)
	}
	if err := validate.Struct(rc); err != nil {
		return err
	}
	seen := make(map[string]bool, len(rc.Entries))
	for _, entry := range rc.Entries {
		if seen[entry.AthleteID] {
			return core.NewValidationError(nil, core.FieldError{Field: "entries", Error: "duplicate athlete " + entry.AthleteID})
		}
		seen[entry.AthleteID] = true
	}
	return nil
}

type QueryFilter struct {
	ScheduleID string    `query:"schedule_id"`
	AthleteID  string    `query:"athlete_id"`
	DateFrom   time.Time `query:"date_from"`
	DateTo     time.Time `query:"date_to"`
	Status     Status    `query:"status"`
}

// Match applies the AND operation on the available filter fields. Date bounds are inclusive.
func (qf *QueryFilter) Match(rec Record) bool {
	if qf == nil {
		return true
	}
	if qf.ScheduleID != "" && rec.ScheduleID != qf.ScheduleID {
		return false
	}
	if qf.AthleteID != "" && rec.AthleteID != qf.AthleteID {
		return false
	}
	if qf.Status != "" && rec.Status != qf.Status {
		return false
	}
	return core.InDateRange(rec.Date, qf.DateFrom, qf.DateTo)
}
