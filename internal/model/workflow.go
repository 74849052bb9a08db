package model

// Trigger is one workflow trigger condition, e.g. push to a set of branches.
// An empty Branches list means the trigger fires unconditionally.
type Trigger struct {
	Event    string
	Branches []string
}

// WorkflowMeta holds the top-level workflow metadata merged with the
// expanded job set by the assembler.
type WorkflowMeta struct {
	Name     string
	Triggers []Trigger
	Env      Params
}

// Workflow is the fully assembled document: metadata plus the ordered job
// set. Instances are constructed fresh on every invocation; there is no
// persisted identity.
type Workflow struct {
	Name     string
	Triggers []Trigger
	Env      Params
	Jobs     *JobSet
}
