package models

import "time"

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Job is a posting owned by exactly one Company. Deleting a job does not
// cascade to its applications.
type Job struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false" json:"job_id"`
	CompanyID      int64     `gorm:"index;not null" json:"company_id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"not null" json:"description"`
	Location       string    `gorm:"not null" json:"location"`
	Salary         *float64  `json:"salary"`
	SkillsRequired string    `json:"skills_required"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `gorm:"index;default:active" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// JobWithCompany is a Job joined with the posting company's display name.
type JobWithCompany struct {
	Job
	CompanyName string `json:"company_name"`
}
