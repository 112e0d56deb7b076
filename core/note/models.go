package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

type Visibility string

const (
	// VisibilityStaff notes are only shown to admins and coaches.
	VisibilityStaff   Visibility = "staff"
	VisibilityAthlete Visibility = "athlete"
)

// OrderingFields are the fields notes can be ordered by.
var OrderingFields = []string{"title", "created_at", "updated_at"}

// Note is a coach note about an athlete. Body is markdown.
type Note struct {
	ID         string     `json:"id" bson:"_id"`
	AthleteID  string     `json:"athlete_id" bson:"athlete_id"`
	AuthorID   string     `json:"author_id" bson:"author_id"`
	Title      string     `json:"title" bson:"title"`
	Body       string     `json:"body" bson:"body"`
	BodyHTML   string     `json:"body_html" bson:"body_html"`
	Visibility Visibility `json:"visibility" bson:"visibility"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"` // UTC
}

type NewNote struct {
	AthleteID  string     `json:"athlete_id" validate:"required,id"`
	Title      string     `json:"title" validate:"required,notblank,max=200"`
	Body       string     `json:"body" validate:"required,notblank"`
	Visibility Visibility `json:"visibility" validate:"omitempty,oneof=staff athlete"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Body = core.CleanString(nn.Body)
	return validate.Struct(nn)
}

type QueryFilter struct {
	AthleteID  string     `query:"athlete_id"`
	AuthorID   string     `query:"author_id"`
	Visibility Visibility `query:"visibility"`
}

func (qf *QueryFilter) Match(n Note) bool {
	if qf == nil {
		return true
	}
	if qf.AthleteID != "" && n.AthleteID != qf.AthleteID {
		return false
	}
	if qf.AuthorID != "" && n.AuthorID != qf.AuthorID {
		return false
	}
	if qf.Visibility != "" && n.Visibility != qf.Visibility {
		return false
	}
	return true
}
