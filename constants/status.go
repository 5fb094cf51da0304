package constants

// JobStatus is the canonical status for rows in the job ledger.
type JobStatus string

// Stable values (store these exact strings).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // discovered, waiting to run
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusOCROK   JobStatus = "OCR_OK"  // stage 1 completed (text extracted)
	JobStatusLLMOK   JobStatus = "LLM_OK"  // stage 2 completed (record extracted)
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
