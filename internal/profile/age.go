package profile

import "time"

// MinDisplayAge is the defensive floor applied to every computed age.
const MinDisplayAge = 18

// ComputeAge converts a birth instant to whole years at the given time.
// A nil birthdate yields 0 and callers must treat 0 as "unknown", not a
// valid age. Any computed value below 18 is clamped up to 18: this silently
// masks malformed or future birthdates instead of rejecting them, a known
// permissiveness kept for compatibility with existing profile data.
func ComputeAge(birthdate *time.Time, now time.Time) int {
	if birthdate == nil {
		return 0
	}

	years := now.Year() - birthdate.Year()
	anniversary := birthdate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}

	if years < MinDisplayAge {
		return MinDisplayAge
	}
	return years
}
