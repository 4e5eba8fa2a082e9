package models

// Graduate is the role-specific profile for a graduate user, 1:1 with a User
// of role=graduate. It may be created at signup or lazily by the profile
// resolver the first time a graduate-only action runs.
type Graduate struct {
	ID                int64    `gorm:"primaryKey;autoIncrement:false" json:"graduate_id"`
	UserID            int64    `gorm:"uniqueIndex;not null" json:"user_id"`
	University        string   `json:"university"`
	Major             string   `json:"major"`
	UnifiedCardNumber string   `json:"unified_card_number"`
	Skills            string   `json:"skills"`
	Age               *int     `json:"age"`
	GPA               *float64 `gorm:"column:gpa" json:"GPA"`
	Projects          string   `json:"projects"`
	Experience        string   `json:"experience"`
}

// GraduateProfile is a Graduate joined with the owning user's identity.
type GraduateProfile struct {
	Graduate
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
