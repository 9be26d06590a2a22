package model

import "time"

// Job is a row of the jobs table.
type Job struct {
	ID               int64      `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Location         string     `db:"location" json:"location"`
	RoleOverview     string     `db:"role_overview" json:"roleOverview"`
	Responsibilities string     `db:"responsibilities" json:"responsibilities"`
	Requirements     string     `db:"requirements" json:"requirements"`
	NiceToHaves      *string    `db:"nice_to_haves" json:"niceToHaves"`
	Benefits         *string    `db:"benefits" json:"benefits"`
	PayRange         *string    `db:"pay_range" json:"payRange"`
	PostedDate       time.Time  `db:"posted_date" json:"postedDate"`
	ClosingDate      *time.Time `db:"closing_date" json:"closingDate"`
	CompanyID        int64      `db:"company_id" json:"companyId"`
}

// NewJob is a job posting as submitted by its company. EmploymentType and
// Department are reference-table labels, e.g. "Full-time" and "Engineering".
type NewJob struct {
	Title            string
	Location         string
	RoleOverview     string
	Responsibilities string
	Requirements     string
	NiceToHaves      *string
	Benefits         *string
	PayRange         *string
	ClosingDate      *time.Time
	CompanyID        int64
	EmploymentType   string
	Department       string
}

// JobListing is a job joined with its company and reference labels.
type JobListing struct {
	Job
	CompanyName     string   `db:"company_name" json:"companyName"`
	EmploymentTypes []string `db:"employment_types" json:"employmentTypes"`
	Departments     []string `db:"departments" json:"departments"`
}

// EmploymentType is a row of the employment_types reference table.
type EmploymentType struct {
	ID    int64  `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}

// Department is a row of the departments reference table.
type Department struct {
	ID    int64  `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}
