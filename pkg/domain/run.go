package domain

import "time"

// RunStatus is a lifecycle state of a fetch run
type RunStatus string

// run statuses
const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Terminal reports whether the status is final
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// ModuleResult is the per-module outcome recorded on a run
type ModuleResult struct {
	Count int     `json:"count"`
	Hero  *string `json:"hero"`
}

// FetchRun records one invocation of the fetch pipeline
type FetchRun struct {
	ID               string                  `json:"id"`
	Status           RunStatus               `json:"status"`
	ModulesProcessed map[Module]ModuleResult `json:"modules_processed"`
	TotalItems       int                     `json:"total_items"`
	Errors           []string                `json:"errors"`
	StartedAt        *time.Time              `json:"started_at"`
	CompletedAt      *time.Time              `json:"completed_at"`
	CreatedAt        time.Time               `json:"created_at"`
}

// NewFetchRun makes a pending run with empty collections
func NewFetchRun(id string) FetchRun {
	return FetchRun{
		ID:               id,
		Status:           RunPending,
		ModulesProcessed: map[Module]ModuleResult{},
		Errors:           []string{},
		CreatedAt:        time.Now().UTC(),
	}
}
