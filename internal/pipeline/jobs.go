package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docfill/internal/generator"
	"github.com/google/uuid"
)

// JobStatus represents the state of a generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusGenerating JobStatus = "generating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single template fill.
type Job struct {
	mu sync.Mutex

	ID     string    `json:"job_id"`
	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	TemplateName string `json:"template_name"`
	DataName     string `json:"data_name"`

	Stats generator.Stats `json:"stats"`

	// TemplateHash identifies the uploaded template bytes.
	TemplateHash string    `json:"template_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Internal: not serialized.
	template []byte
	data     []byte
	result   []byte
	errors   []string
}

// NewJob creates a queued job for a template/data pair.
func NewJob(templateName string, template []byte, dataName string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:           uuid.NewString(),
		Status:       StatusQueued,
		Phase:        "queued",
		TemplateName: templateName,
		DataName:     dataName,
		TemplateHash: ContentHashHex(template),
		CreatedAt:    now,
		UpdatedAt:    now,
		template:     template,
		data:         data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// Complete stores the filled package and marks the job done.
func (j *Job) Complete(result []byte, stats generator.Stats) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = result
	j.Stats = stats
	j.Status = StatusCompleted
	j.Phase = "done"
	j.UpdatedAt = time.Now()
	// Inputs are no longer needed once the result exists.
	j.template = nil
	j.data = nil
}

// Inputs returns the raw template and data bytes.
func (j *Job) Inputs() (template, data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.template, j.data
}

// Result returns the filled package, or nil if the job has not completed.
func (j *Job) Result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string          `json:"job_id"`
	Status       JobStatus       `json:"status"`
	Phase        string          `json:"phase"`
	TemplateName string          `json:"template_name"`
	DataName     string          `json:"data_name"`
	TemplateHash string          `json:"template_hash"`
	Stats        generator.Stats `json:"stats"`
	ResultBytes  int             `json:"result_bytes"`
	Errors       []string        `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return JobSnapshot{
		ID:           j.ID,
		Status:       j.Status,
		Phase:        j.Phase,
		TemplateName: j.TemplateName,
		DataName:     j.DataName,
		TemplateHash: j.TemplateHash,
		Stats:        j.Stats,
		ResultBytes:  len(j.result),
		Errors:       errs,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
