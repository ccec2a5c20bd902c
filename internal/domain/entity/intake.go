package entity

import "time"

// ClientIntake cuestionario que la empresa cliente completa sobre sus datos e intereses.
type ClientIntake struct {
	ID               string
	CompanyID        string
	DataTypes        []string
	UsagePattern     string
	Interests        []string
	SensitivityLevel string // bajo, medio, alto o ""
	Notes            string
	Submitted        bool
	SubmittedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
