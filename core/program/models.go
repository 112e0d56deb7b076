package program

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// OrderingFields are the fields programs can be ordered by.
var OrderingFields = []string{"name", "level", "category", "duration_weeks", "created_at", "updated_at"}

type Drill struct {
	Name            string `json:"name" bson:"name" validate:"required,notblank"`
	DurationMinutes int    `json:"duration_minutes" bson:"duration_minutes" validate:"gte=0,lte=600"`
	Reps            int    `json:"reps" bson:"reps" validate:"gte=0"`
	Notes           string `json:"notes" bson:"notes"`
}

type Program struct {
	ID            string           `json:"id" bson:"_id"`
	Name          string           `json:"name" bson:"name"`
	Description   string           `json:"description" bson:"description"`
	Category      athlete.Category `json:"category" bson:"category"` // target age group, empty for all
	Level         Level            `json:"level" bson:"level"`
	DurationWeeks int              `json:"duration_weeks" bson:"duration_weeks"`
	CoachID       string           `json:"coach_id" bson:"coach_id"`
	Drills        []Drill          `json:"drills" bson:"drills"`
	CreatedAt     time.Time        `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt     time.Time        `json:"updated_at" bson:"updated_at"` // UTC
}

// TotalMinutes is the duration of one session of the program.
func (p Program) TotalMinutes() int {
	var total int
	for _, d := range p.Drills {
		total += d.DurationMinutes
	}
	return total
}

// NewProgram contains information needed to create or replace a Program.
type NewProgram struct {
	Name          string           `json:"name" validate:"required,notblank,max=150"`
	Description   string           `json:"description"`
	Category      athlete.Category `json:"category" validate:"omitempty,oneof=U-11 U-13 U-15 U-17 U-19 Senior"`
	Level         Level            `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	DurationWeeks int              `json:"duration_weeks" validate:"gte=0,lte=104"`
	CoachID       string           `json:"coach_id" validate:"omitempty,id"`
	Drills        []Drill          `json:"drills" validate:"omitempty,dive"`
}

func (np *NewProgram) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Description = core.CleanString(np.Description)
	for i := range np.Drills {
		np.Drills[i].Name = core.CleanString(np.Drills[i].Name)
	}
	return validate.Struct(np)
}

type QueryFilter struct {
	Search   string           `query:"search"`
	Level    Level            `query:"level"`
	Category athlete.Category `query:"category"`
	CoachID  string           `query:"coach_id"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Category == "all" {
		qf.Category = ""
	}
}

// Match applies the AND operation on the available filter fields.
// Search does a case-insensitive match on Name or Description.
func (qf *QueryFilter) Match(p Program) bool {
	if qf == nil {
		return true
	}
	if qf.Search != "" && !(core.ContainsFold(p.Name, qf.Search) || core.ContainsFold(p.Description, qf.Search)) {
		return false
	}
	if qf.Level != "" && p.Level != qf.Level {
		return false
	}
	if qf.Category != "" && p.Category != qf.Category {
		return false
	}
	if qf.CoachID != "" && p.CoachID != qf.CoachID {
		return false
	}
	return true
}
