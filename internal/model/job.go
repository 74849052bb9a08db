package model

import "fmt"

// Runner is the execution platform a job is scheduled on. The set of
// recognized runners is closed; the assembler rejects anything else.
type Runner string

// Recognized runner platforms.
const (
	RunnerUbuntu Runner = "ubuntu-latest"
	RunnerMacOS  Runner = "macos-latest"
)

// KnownRunners lists the recognized runner identifiers in declaration order.
func KnownRunners() []Runner {
	return []Runner{RunnerUbuntu, RunnerMacOS}
}

// IsKnownRunner reports whether r is one of the recognized runner identifiers.
func IsKnownRunner(r Runner) bool {
	for _, known := range KnownRunners() {
		if r == known {
			return true
		}
	}
	return false
}

// Job is one named unit of work in a workflow, bound to a runner and an
// ordered step sequence. Key is unique within a workflow.
type Job struct {
	Key         string
	DisplayName string
	Runner      Runner
	Steps       []Step
}

// JobSet is an order-preserving mapping of job key → Job. Declaration order
// is significant: it drives the serialized document, which is committed and
// diffed as a derived artifact.
type JobSet struct {
	keys []string
	jobs map[string]Job
}

// NewJobSet returns an empty job set.
func NewJobSet() *JobSet {
	return &JobSet{jobs: make(map[string]Job)}
}

// Add appends a job. Adding a key twice is a configuration error.
func (s *JobSet) Add(job Job) error {
	if _, exists := s.jobs[job.Key]; exists {
		return &ConfigError{Kind: DuplicateKey, Ident: job.Key}
	}
	s.keys = append(s.keys, job.Key)
	s.jobs[job.Key] = job
	return nil
}

// Get returns the job for key and whether it is present.
func (s *JobSet) Get(key string) (Job, bool) {
	job, ok := s.jobs[key]
	return job, ok
}

// Keys returns the job keys in insertion order.
func (s *JobSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of jobs.
func (s *JobSet) Len() int {
	return len(s.keys)
}

// Each calls fn for every job in insertion order, stopping at the first error.
func (s *JobSet) Each(fn func(Job) error) error {
	for _, key := range s.keys {
		if err := fn(s.jobs[key]); err != nil {
			return err
		}
	}
	return nil
}

func (j Job) String() string {
	return fmt.Sprintf("%s on %s (%d steps)", j.Key, j.Runner, len(j.Steps))
}
