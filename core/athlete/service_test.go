package athlete

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForAge(t *testing.T) {
	at := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	born := func(year int) time.Time { return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		birthYear int
		want      Category
	}{
		{birthYear: 2016, want: CategoryU11},
		{birthYear: 2014, want: CategoryU11},
		{birthYear: 2013, want: CategoryU13},
		{birthYear: 2011, want: CategoryU15},
		{birthYear: 2009, want: CategoryU17},
		{birthYear: 2007, want: CategoryU19},
		{birthYear: 2006, want: CategoryU19},
		{birthYear: 2005, want: CategorySenior},
		{birthYear: 1990, want: CategorySenior},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryForAge(born(tt.birthYear), at))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	var ath Athlete
	apply(&ath, NewAthlete{Name: "Taufik", Gender: Male, BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}, now)

	assert.Equal(t, CategorySenior, ath.Category)
	assert.Equal(t, RightHanded, ath.DominantHand)
	assert.Equal(t, StatusActive, ath.Status)
	assert.Equal(t, now, ath.JoinDate)
	assert.NotNil(t, ath.Injuries)
	assert.NotNil(t, ath.Sponsors)
}

func TestQueryFilter_Match(t *testing.T) {
	ath := Athlete{ID: "a1", Name: "Susi Susanti", Gender: Female, Category: CategorySenior, Status: StatusActive}

	tests := []struct {
		name   string
		filter *QueryFilter
		want   bool
	}{
		{name: "nil filter", want: true},
		{name: "empty filter", filter: &QueryFilter{}, want: true},
		{name: "search (case-insensitive)", filter: &QueryFilter{Search: "susI"}, want: true},
		{name: "search (unknown)", filter: &QueryFilter{Search: "lol"}},
		{name: "category", filter: &QueryFilter{Category: CategorySenior}, want: true},
		{name: "other category", filter: &QueryFilter{Category: CategoryU19}},
		{name: "status & gender", filter: &QueryFilter{Status: StatusActive, Gender: Female}, want: true},
		{name: "other gender", filter: &QueryFilter{Gender: Male}},
		{name: "ids", filter: &QueryFilter{IDs: []string{"a0", "a1"}}, want: true},
		{name: "other ids", filter: &QueryFilter{IDs: []string{"a0"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(ath))
		})
	}
}

func TestQueryFilter_Clean(t *testing.T) {
	qf := QueryFilter{Search: "  susi ", Category: "all"}
	qf.Clean()
	assert.Equal(t, "susi", qf.Search)
	assert.Equal(t, Category(""), qf.Category)
}

func TestService_QRCode(t *testing.T) {
	svc := NewService(nil)
	png, err := svc.QRCode(Athlete{ID: "3b241101-e2bb-4255-8caf-4136c566a962"}, 10)
	assert.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
