package history

import "time"

// Job statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// JobTypeSync is the job type of a reconciliation run.
const JobTypeSync = "sync"

// JobHistory is one finished background job.
type JobHistory struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	JobType   string    `gorm:"column:job_type;size:32;index" json:"job_type"`
	Status    string    `gorm:"column:status;size:16" json:"status"`
	Details   string    `gorm:"column:details;type:text" json:"details"`
}

// TableName overrides the table name used by JobHistory to `job_history`.
func (JobHistory) TableName() string {
	return "job_history"
}
