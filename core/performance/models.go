package performance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

// OrderingFields are the fields performance records can be ordered by.
var OrderingFields = []string{"date", "score", "created_at", "updated_at"}

// Stats are the skill ratings of a session, each between 0 and 100.
type Stats struct {
	Smash     int `json:"smash" bson:"smash" validate:"gte=0,lte=100"`
	Defense   int `json:"defense" bson:"defense" validate:"gte=0,lte=100"`
	Footwork  int `json:"footwork" bson:"footwork" validate:"gte=0,lte=100"`
	Stamina   int `json:"stamina" bson:"stamina" validate:"gte=0,lte=100"`
	Technique int `json:"technique" bson:"technique" validate:"gte=0,lte=100"`
}

type Recovery struct {
	SleepHours       float64 `json:"sleep_hours" bson:"sleep_hours" validate:"gte=0,lte=24"`
	Fatigue          int     `json:"fatigue" bson:"fatigue" validate:"omitempty,gte=1,lte=10"`
	Soreness         int     `json:"soreness" bson:"soreness" validate:"omitempty,gte=1,lte=10"`
	RestingHeartRate int     `json:"resting_heart_rate" bson:"resting_heart_rate" validate:"gte=0,lte=250"`
}

type Record struct {
	ID         string    `json:"id" bson:"_id"`
	AthleteID  string    `json:"athlete_id" bson:"athlete_id"`
	ScheduleID string    `json:"schedule_id" bson:"schedule_id"`
	Date       time.Time `json:"date" bson:"date"`
	Score      float64   `json:"score" bson:"score"`
	Stats      Stats     `json:"stats" bson:"stats"`
	Recovery   Recovery  `json:"recovery" bson:"recovery"`
	Notes      string    `json:"notes" bson:"notes"`
	RecordedBy string    `json:"recorded_by" bson:"recorded_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewRecord contains information needed to create or replace a performance Record.
type NewRecord struct {
	AthleteID  string    `json:"athlete_id" validate:"required,id"`
	ScheduleID string    `json:"schedule_id" validate:"omitempty,id"`
	Date       time.Time `json:"date" validate:"required"`
	Score      float64   `json:"score" validate:"gte=0,lte=100"`
	Stats      Stats     `json:"stats"`
	Recovery   Recovery  `json:"recovery"`
	Notes      string    `json:"notes" validate:"omitempty,max=1000"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Notes = core.CleanString(nr.Notes)
	return validate.Struct(nr)
}

type QueryFilter struct {
	AthleteID  string    `query:"athlete_id"`
	ScheduleID string    `query:"schedule_id"`
	DateFrom   time.Time `query:"date_from"`
	DateTo     time.Time `query:"date_to"`
}

// Match applies the AND operation on the available filter fields. Date bounds are inclusive.
func (qf *QueryFilter) Match(rec Record) bool {
	if qf == nil {
		return true
	}
	if qf.AthleteID != "" && rec.AthleteID != qf.AthleteID {
		return false
	}
	if qf.ScheduleID != "" && rec.ScheduleID != qf.ScheduleID {
		return false
	}
	return core.InDateRange(rec.Date, qf.DateFrom, qf.DateTo)
}

// Scores returns the score of each record.
func Scores(recs []Record) []float64 {
	scores := make([]float64, len(recs))
	for i, rec := range recs {
		scores[i] = rec.Score
	}
	return scores
}
