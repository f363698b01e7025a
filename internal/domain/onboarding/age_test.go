package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMinorOn(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  Date
		want bool
	}{
		{"turns 18 tomorrow", NewDate(now.AddDate(-18, 0, 1)), true},
		{"turns 18 today", NewDate(now.AddDate(-18, 0, 0)), false},
		{"turned 18 yesterday", NewDate(now.AddDate(-18, 0, -1)), false},
		{"birthday later this month", NewDate(time.Date(2008, time.March, 20, 0, 0, 0, 0, time.UTC)), true},
		{"birthday earlier this year", NewDate(time.Date(2008, time.January, 2, 0, 0, 0, 0, time.UTC)), false},
		{"adult", NewDate(time.Date(1980, time.June, 1, 0, 0, 0, 0, time.UTC)), false},
		{"unset", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMinorOn(tt.dob, now))
		})
	}
}

func TestAgeOn_LeapDay(t *testing.T) {
	dob := NewDate(time.Date(2008, time.February, 29, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 17, AgeOn(dob, time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, AgeOn(dob, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMemberDraft_SetDateOfBirth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	d := NewMemberDraft()

	d.SetDateOfBirth(NewDate(now.AddDate(-10, 0, 0)), now)
	assert.True(t, d.IsMinor)

	d.SetDateOfBirth(NewDate(now.AddDate(-30, 0, 0)), now)
	assert.False(t, d.IsMinor)
}
