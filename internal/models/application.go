package models

import "time"

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application links a graduate to a job. At most one application may exist
// per (job_id, graduate_id) pair; the composite unique index is the
// serializing primitive that closes the check-then-insert race.
type Application struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"application_id"`
	JobID       int64     `gorm:"uniqueIndex:idx_applications_job_graduate;not null" json:"job_id"`
	GraduateID  int64     `gorm:"uniqueIndex:idx_applications_job_graduate;not null" json:"graduate_id"`
	Status      string    `gorm:"default:pending" json:"status"`
	CoverLetter string    `json:"cover_letter"`
	AppliedDate time.Time `json:"applied_date"`
}

// ValidApplicationStatus reports whether s is an accepted status transition
// target for a company reviewing applications.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// ApplicationWithGraduate is an Application joined with applicant details
// for the company review screen.
type ApplicationWithGraduate struct {
	Application
	GraduateName       string   `json:"graduate_name"`
	GraduateEmail      string   `json:"graduate_email"`
	GraduateMajor      string   `json:"graduate_major"`
	GraduateUniversity string   `json:"graduate_university"`
	GraduateGPA        *float64 `json:"graduate_gpa"`
	GraduateSkills     string   `json:"graduate_skills"`
}
