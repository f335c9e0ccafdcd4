package constants

// JobStatus is the canonical status for rows in parse_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued   JobStatus = "QUEUED"   // queued for processing
	JobStatusRunning  JobStatus = "RUNNING"  // in progress
	JobStatusParseOK  JobStatus = "PARSE_OK" // structured result produced
	JobStatusRejected JobStatus = "REJECTED" // every segment failed the quality gate
	JobStatusFailed   JobStatus = "FAILED"   // terminal failure
)
