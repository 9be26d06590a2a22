// Package model defines the records stored in the database and the inputs
// used to create or change them.
package model

// Company is a row of the companies table.
type Company struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Location    string  `db:"location" json:"location"`
	Email       string  `db:"email" json:"email"`
	Password    string  `db:"password" json:"-"` // bcrypt hash
	Description string  `db:"description" json:"description"`
	Logo        *string `db:"logo" json:"logo"` // stored file name, nil until uploaded
}

// NewCompany holds the columns supplied at signup.
type NewCompany struct {
	Name         string
	Location     string
	Email        string
	PasswordHash string
	Description  string
}

// CompanyProfile is the editable part of a company.
type CompanyProfile struct {
	Name        string
	Location    string
	Description string
}
