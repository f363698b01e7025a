package onboarding

import "time"

// MajorityAge is the age from which a member needs no guardian
const MajorityAge = 18

// AgeOn returns the whole years elapsed from dob to the calendar date of now.
// A birthday not yet reached this year does not count.
func AgeOn(dob Date, now time.Time) int {
	by, bm, bd := dob.Date()
	ny, nm, nd := now.Date()

	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// IsMinorOn reports whether someone born on dob is under MajorityAge on now.
// An unset dob is not a minor.
func IsMinorOn(dob Date, now time.Time) bool {
	if !dob.IsSet() {
		return false
	}
	return AgeOn(dob, now) < MajorityAge
}
