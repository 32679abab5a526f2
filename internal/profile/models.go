// internal/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nivkoren/levmatch-backend/internal/geo"
)

// User is the stored profile document. It is owned by the user and mutated
// only through profile-update operations.
type User struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Bio         string     `json:"bio" db:"bio"`
	Birthdate   *time.Time `json:"birthdate,omitempty" db:"birthdate"`
	Gender      string     `json:"gender" db:"gender"`
	Seeking     string     `json:"seeking" db:"seeking"`
	LocationLat *float64   `json:"location_lat,omitempty" db:"location_lat"`
	LocationLng *float64   `json:"location_lng,omitempty" db:"location_lng"`
	City        string     `json:"city" db:"city"`
	Interests   StringList `json:"interests" db:"interests"`
	AgeMin      int        `json:"age_min" db:"age_min"`
	AgeMax      int        `json:"age_max" db:"age_max"`
	MaxDistance int        `json:"max_distance_km" db:"max_distance_km"`
	Plan        string     `json:"plan" db:"plan"`
	Photos      PhotoList  `json:"photos" db:"photos"`
	Embedding   Vector     `json:"embedding,omitempty" db:"embedding"`
	Active      bool       `json:"active" db:"active"`
	Suspended   bool       `json:"suspended" db:"suspended"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Location returns the user's coordinates, or nil when not set.
func (u *User) Location() *geo.Point {
	if u == nil || u.LocationLat == nil || u.LocationLng == nil {
		return nil
	}
	return &geo.Point{Lat: *u.LocationLat, Lng: *u.LocationLng}
}

// Age returns the user's age at evaluation time.
func (u *User) Age(now time.Time) int {
	return ComputeAge(u.Birthdate, now)
}

// Photo is one profile photo entry. At most 6 per user.
type Photo struct {
	URL      string `json:"url"`
	Order    int    `json:"order"`
	Approved bool   `json:"approved"`
}

// SanitizedUser is the public view returned by profile reads. It carries the
// derived age instead of the raw birthdate and omits device tokens.
type SanitizedUser struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Age       int         `json:"age"`
	Gender    string      `json:"gender"`
	Seeking   string      `json:"seeking"`
	Location  *geo.Point  `json:"location,omitempty"`
	City      string      `json:"city"`
	Bio       string      `json:"bio"`
	Interests []string    `json:"interests"`
	Prefs     Preferences `json:"prefs"`
	Plan      string      `json:"plan"`
}

// Preferences are the candidate-filter defaults a user carries.
type Preferences struct {
	AgeMin        int `json:"ageMin"`
	AgeMax        int `json:"ageMax"`
	MaxDistanceKm int `json:"maxDistanceKm"`
}

// JSONB column helpers

// StringList stores a []string as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// PhotoList stores []Photo as a JSONB column.
type PhotoList []Photo

func (l PhotoList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *PhotoList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Vector stores an embedding as a JSONB column. Nil means no embedding.
type Vector []float64

func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (v *Vector) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	return scanJSON(src, v)
}

func scanJSON(src, dst interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}
