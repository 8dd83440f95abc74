// Package domain defines the persistence model for form submissions. The type
// is mapped with GORM and forms the data layer of the document-intake service.
package domain

import "time"

// Submission represents one accepted form submission: who sent it (email),
// where the uploaded document lives (opaque blob storage key), and the public
// IP address it came from.
//
// Invariant: at most one row per distinct ip_address. The guarantee is the
// database unique index, not application logic; the service layer only runs an
// advisory pre-check before inserting.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: submitter address as entered (no canonicalization).
//   - FilePath: opaque blob storage key, e.g. "uploads/jane_doe_example_com_1724912345678.pdf".
//   - IPAddress: resolved caller IP, or the sentinel "unknown".
//   - WebhookTriggered: set after a webhook delivery attempt completed; the
//     only field ever updated after insert.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// Rows are never deleted by this system, and the referenced blob has no
// foreign-key relationship: blob and row can be orphaned independently.
type Submission struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	Email            string    `json:"email"             gorm:"type:varchar(255);not null"`
	FilePath         string    `json:"file_path"         gorm:"type:varchar(512);not null"`
	IPAddress        string    `json:"ip_address"        gorm:"type:varchar(64);not null;uniqueIndex:ux_submission_ip"`
	WebhookTriggered bool      `json:"webhook_triggered" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for Submission.
func (Submission) TableName() string { return "form_submissions" }
