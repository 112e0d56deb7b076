package athlete

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smashclub/backend/core"
)

type (
	Gender   string
	Category string
	Hand     string
	Status   string
	Severity string
)

const (
	Male   Gender = "male"
	Female Gender = "female"

	CategoryU11    Category = "U-11"
	CategoryU13    Category = "U-13"
	CategoryU15    Category = "U-15"
	CategoryU17    Category = "U-17"
	CategoryU19    Category = "U-19"
	CategorySenior Category = "Senior"

	RightHanded Hand = "right"
	LeftHanded  Hand = "left"

	// membership status
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"

	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

var (
	Categories = []Category{CategoryU11, CategoryU13, CategoryU15, CategoryU17, CategoryU19, CategorySenior}
	Statuses   = []Status{StatusActive, StatusInactive, StatusOnLeave}

	// OrderingFields are the fields athletes can be ordered by.
	OrderingFields = []string{"name", "gender", "birth_date", "category", "status", "join_date", "created_at", "updated_at"}
)

// CategoryForAge returns the age group of an athlete born on birthDate.
// Groups are based on the age reached during the year of `at`.
func CategoryForAge(birthDate, at time.Time) Category {
	age := at.Year() - birthDate.Year()
	switch {
	case age < 11:
		return CategoryU11
	case age < 13:
		return CategoryU13
	case age < 15:
		return CategoryU15
	case age < 17:
		return CategoryU17
	case age < 19:
		return CategoryU19
	default:
		return CategorySenior
	}
}

type Injury struct {
	Description string    `json:"description" bson:"description" validate:"required,notblank"`
	Date        time.Time `json:"date" bson:"date" validate:"required"`
	Severity    Severity  `json:"severity" bson:"severity" validate:"required,oneof=minor moderate severe"`
	Recovered   bool      `json:"recovered" bson:"recovered"`
}

type Sponsor struct {
	Name  string    `json:"name" bson:"name" validate:"required,notblank"`
	Since time.Time `json:"since" bson:"since"`
}

type Athlete struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Gender       Gender    `json:"gender" bson:"gender"`
	BirthDate    time.Time `json:"birth_date" bson:"birth_date"`
	Category     Category  `json:"category" bson:"category"`
	DominantHand Hand      `json:"dominant_hand" bson:"dominant_hand"`
	HeightCM     float64   `json:"height_cm" bson:"height_cm"`
	WeightKG     float64   `json:"weight_kg" bson:"weight_kg"`
	Phone        string    `json:"phone" bson:"phone"`
	Email        string    `json:"email" bson:"email"`
	Address      string    `json:"address" bson:"address"`
	Photo        string    `json:"photo" bson:"photo"`
	Status       Status    `json:"status" bson:"status"`
	JoinDate     time.Time `json:"join_date" bson:"join_date"`
	Injuries     []Injury  `json:"injuries" bson:"injuries"`
	Sponsors     []Sponsor `json:"sponsors" bson:"sponsors"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// ActiveInjuries returns the injuries the athlete has not recovered from yet.
func (a Athlete) ActiveInjuries() []Injury {
	var injuries []Injury
	for _, inj := range a.Injuries {
		if !inj.Recovered {
			injuries = append(injuries, inj)
		}
	}
	return injuries
}

// NewAthlete contains information needed to create or replace an Athlete.
type NewAthlete struct {
	Name         string    `json:"name" validate:"required,notblank,max=150"`
	Gender       Gender    `json:"gender" validate:"required,oneof=male female"`
	BirthDate    time.Time `json:"birth_date" validate:"required"`
	Category     Category  `json:"category" validate:"omitempty,oneof=U-11 U-13 U-15 U-17 U-19 Senior"`
	DominantHand Hand      `json:"dominant_hand" validate:"omitempty,oneof=right left"`
	HeightCM     float64   `json:"height_cm" validate:"gte=0,lte=250"`
	WeightKG     float64   `json:"weight_kg" validate:"gte=0,lte=250"`
	Phone        string    `json:"phone" validate:"omitempty,max=30"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Address      string    `json:"address" validate:"omitempty,max=500"`
	Photo        string    `json:"photo" validate:"omitempty,max=500"`
	Status       Status    `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	JoinDate     time.Time `json:"join_date"`
	Injuries     []Injury  `json:"injuries" validate:"omitempty,dive"`
	Sponsors     []Sponsor `json:"sponsors" validate:"omitempty,dive"`
}

func (na *NewAthlete) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Phone = core.CleanString(na.Phone)
	na.Photo = core.CleanString(na.Photo)
	for i := range na.Injuries {
		na.Injuries[i].Description = core.CleanString(na.Injuries[i].Description)
	}
	for i := range na.Sponsors {
		na.Sponsors[i].Name = core.CleanString(na.Sponsors[i].Name)
	}
	return validate.Struct(na)
}

type QueryFilter struct {
	Search   string   `query:"search"`
	Category Category `query:"category"`
	Status   Status   `query:"status"`
	Gender   Gender   `query:"gender"`
	IDs      []string `query:"id"`
}

// Clean normalises the filter; the "all" category means no category filter.
func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = Category(core.CleanString(string(qf.Category)))
	if qf.Category == "all" {
		qf.Category = ""
	}
}

// Match applies the AND operation on the available filter fields.
// Search does a case-insensitive match on Name.
func (qf *QueryFilter) Match(ath Athlete) bool {
	if qf == nil {
		return true
	}
	if qf.Search != "" && !core.ContainsFold(ath.Name, qf.Search) {
		return false
	}
	if qf.Category != "" && ath.Category != qf.Category {
		return false
	}
	if qf.Status != "" && ath.Status != qf.Status {
		return false
	}
	if qf.Gender != "" && ath.Gender != qf.Gender {
		return false
	}
	if len(qf.IDs) > 0 && !core.ContainsString(qf.IDs, ath.ID) {
		return false
	}
	return true
}
