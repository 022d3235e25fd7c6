// Package models defines the raw input record and the star-schema
// row types shared by the ETL stages.
package models

// DateLayout is the storage format for dim_date.full_date.
const DateLayout = "2006-01-02"

// Candidate is a dim_candidate row. Identity is the
// (first name, last name, email) triple; a candidate with several
// applications still gets a single row here.
type Candidate struct {
	Key       int
	FirstName string
	LastName  string
	Email     string
}

// Date is a dim_date row. Year, month and quarter are derived from
// the calendar date when the row is created.
type Date struct {
	Key      int
	FullDate string
	Year     int
	Month    int
	Quarter  int
}

// Country is a dim_country row.
type Country struct {
	Key  int
	Name string
}

// Seniority is a dim_seniority row.
type Seniority struct {
	Key   int
	Level string
}

// Technology is a dim_technology row.
type Technology struct {
	Key  int
	Name string
}

// Application is a fact_applications row: one per source record,
// never deduplicated. All five foreign keys must resolve to an
// existing dimension row.
type Application struct {
	ID                      int
	CandidateKey            int
	DateKey                 int
	CountryKey              int
	SeniorityKey            int
	TechnologyKey           int
	CodeChallengeScore      int
	TechnicalInterviewScore int
	IsHired                 bool
}

// Star holds the full output of one transform run: five dimension
// collections plus the fact collection, owned by the run that built
// them.
type Star struct {
	Candidates   []Candidate
	Dates        []Date
	Countries    []Country
	Seniorities  []Seniority
	Technologies []Technology
	Facts        []Application
}

// HiredCount returns the number of fact rows flagged as hired.
func (s *Star) HiredCount() int {
	n := 0
	for _, f := range s.Facts {
		if f.IsHired {
			n++
		}
	}
	return n
}
