// internal/profile/dto.go
package profile

import "time"

// UpdateProfileDTO carries an owner's profile edit. Every field is optional;
// the ageMin<=ageMax invariant is checked in the service after the edit is
// merged onto the stored user, where both sides are concrete.
type UpdateProfileDTO struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Bio         *string   `json:"bio,omitempty"`
	Birthdate   *string   `json:"birthdate,omitempty"`
	Gender      *string   `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Seeking     *string   `json:"seeking,omitempty" validate:"omitempty,oneof=male female other"`
	LocationLat *float64  `json:"location_lat,omitempty" validate:"omitempty,latitude"`
	LocationLng *float64  `json:"location_lng,omitempty" validate:"omitempty,longitude"`
	City        *string   `json:"city,omitempty"`
	Interests   *[]string `json:"interests,omitempty"`
	AgeMin      *int      `json:"age_min,omitempty" validate:"omitempty,min=18"`
	AgeMax      *int      `json:"age_max,omitempty" validate:"omitempty,min=18"`
	MaxDistance *int      `json:"max_distance_km,omitempty" validate:"omitempty,min=1"`
	Photos      []Photo   `json:"photos,omitempty"`
}

// Convenience accessors used by validation in the service layer.
func (d *UpdateProfileDTO) bio() string {
	if d.Bio == nil {
		return ""
	}
	return *d.Bio
}

// apply copies the set fields onto the stored user.
func (d *UpdateProfileDTO) apply(user *User) {
	if d.Name != nil {
		user.Name = *d.Name
	}
	if d.Bio != nil {
		user.Bio = *d.Bio
	}
	if d.Birthdate != nil {
		if t, err := time.Parse(time.RFC3339, *d.Birthdate); err == nil {
			user.Birthdate = &t
		}
	}
	if d.Gender != nil {
		user.Gender = *d.Gender
	}
	if d.Seeking != nil {
		user.Seeking = *d.Seeking
	}
	if d.LocationLat != nil {
		user.LocationLat = d.LocationLat
	}
	if d.LocationLng != nil {
		user.LocationLng = d.LocationLng
	}
	if d.City != nil {
		user.City = *d.City
	}
	if d.Interests != nil {
		user.Interests = StringList(*d.Interests)
	}
	if d.AgeMin != nil {
		user.AgeMin = *d.AgeMin
	}
	if d.AgeMax != nil {
		user.AgeMax = *d.AgeMax
	}
	if d.MaxDistance != nil {
		user.MaxDistance = *d.MaxDistance
	}
	if d.Photos != nil {
		user.Photos = PhotoList(d.Photos)
	}
}
