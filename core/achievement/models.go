package achievement

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

type (
	Level string
	Medal string
)

const (
	LevelClub          Level = "club"
	LevelRegional      Level = "regional"
	LevelNational      Level = "national"
	LevelInternational Level = "international"

	Gold        Medal = "gold"
	Silver      Medal = "silver"
	Bronze      Medal = "bronze"
	Participant Medal = "participant"
)

// OrderingFields are the fields achievements can be ordered by.
var OrderingFields = []string{"title", "event", "level", "medal", "date", "created_at", "updated_at"}

type Achievement struct {
	ID        string    `json:"id" bson:"_id"`
	AthleteID string    `json:"athlete_id" bson:"athlete_id"`
	Title     string    `json:"title" bson:"title"`
	Event     string    `json:"event" bson:"event"`
	Level     Level     `json:"level" bson:"level"`
	Medal     Medal     `json:"medal" bson:"medal"`
	Date      time.Time `json:"date" bson:"date"`
	Notes     string    `json:"notes" bson:"notes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

type NewAchievement struct {
	AthleteID string    `json:"athlete_id" validate:"required,id"`
	Title     string    `json:"title" validate:"required,notblank,max=200"`
	Event     string    `json:"event" validate:"omitempty,max=200"`
	Level     Level     `json:"level" validate:"required,oneof=club regional national international"`
	Medal     Medal     `json:"medal" validate:"required,oneof=gold silver bronze participant"`
	Date      time.Time `json:"date" validate:"required"`
	Notes     string    `json:"notes"`
}

func (na *NewAchievement) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Event = core.CleanString(na.Event)
	na.Notes = core.CleanString(na.Notes)
	return validate.Struct(na)
}

type QueryFilter struct {
	AthleteID string    `query:"athlete_id"`
	Level     Level     `query:"level"`
	DateFrom  time.Time `query:"date_from"`
	DateTo    time.Time `query:"date_to"`
}

func (qf *QueryFilter) Match(a Achievement) bool {
	if qf == nil {
		return true
	}
	if qf.AthleteID != "" && a.AthleteID != qf.AthleteID {
		return false
	}
	if qf.Level != "" && a.Level != qf.Level {
		return false
	}
	return core.InDateRange(a.Date, qf.DateFrom, qf.DateTo)
}
