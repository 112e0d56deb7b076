package settings

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

// ID is the key of the singleton settings document.
const ID = "club"

// Settings holds the club information. There is a single Settings document.
type Settings struct {
	ID               string    `json:"-" bson:"_id"`
	ClubName         string    `json:"club_name" bson:"club_name"`
	Tagline          string    `json:"tagline" bson:"tagline"`
	About            string    `json:"about" bson:"about"` // markdown
	AboutHTML        string    `json:"about_html" bson:"about_html"`
	Address          string    `json:"address" bson:"address"`
	Phone            string    `json:"phone" bson:"phone"`
	Email            string    `json:"email" bson:"email"`
	Venues           []string  `json:"venues" bson:"venues"`
	ReportRecipients []string  `json:"report_recipients" bson:"report_recipients"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// Public returns the settings without the staff only fields.
func (s Settings) Public() Settings {
	s.ReportRecipients = nil
	return s
}

type UpdateSettings struct {
	ClubName         string   `json:"club_name" validate:"required,notblank,max=150"`
	Tagline          string   `json:"tagline" validate:"omitempty,max=250"`
	About            string   `json:"about"`
	Address          string   `json:"address" validate:"omitempty,max=500"`
	Phone            string   `json:"phone" validate:"omitempty,max=30"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Venues           []string `json:"venues" validate:"omitempty,dive,notblank"`
	ReportRecipients []string `json:"report_recipients" validate:"omitempty,dive,email"`
}

func (us *UpdateSettings) Validate(validate *validator.Validate) error {
	us.ClubName = core.CleanString(us.ClubName)
	us.Tagline = core.CleanString(us.Tagline)
	us.Email = core.CleanString(us.Email, true /* lower */)
	for i := range us.ReportRecipients {
		us.ReportRecipients[i] = core.CleanString(us.ReportRecipients[i], true /* lower */)
	}
	return validate.Struct(us)
}
