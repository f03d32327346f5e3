package models

import "time"

// Profile holds the fields a student fills in at registration.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	University     string `json:"university"`
	Major          string `json:"major"`
	GraduationYear string `json:"graduationYear"`
}

// User is an identity-provider account joined with its stored profile.
type User struct {
	ID string `json:"uid"`
	Profile
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
