package models

import (
	"strings"
	"time"
)

// RawApplication is one row of the candidates file, type-checked
// during extraction. It has no identity beyond file order.
type RawApplication struct {
	FirstName               string
	LastName                string
	Email                   string
	ApplicationDate         time.Time
	Country                 string
	YearsOfExperience       int
	Seniority               string
	Technology              string
	CodeChallengeScore      int
	TechnicalInterviewScore int
}

// Normalize trims surrounding whitespace on every text field. The
// trimmed form is the identity used for dimension deduplication, so
// this must run before any key is assigned.
func (r *RawApplication) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Country = strings.TrimSpace(r.Country)
	r.Seniority = strings.TrimSpace(r.Seniority)
	r.Technology = strings.TrimSpace(r.Technology)
}
