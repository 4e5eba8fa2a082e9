package models

// Company is the role-specific profile for a company user, 1:1 with a User
// of role=company. Created at signup or lazily when a company-only action
// (posting a job) runs without an existing profile.
type Company struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
	UserID      int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Location    string `json:"location"`
}
