package domain

import "fmt"

// InputError marks a build-time malformation the builder will not silently
// drop: a duplicate class_id. Missing code/name on a single course is not
// an InputError — those rows are filtered instead.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Reason)
}

// InfeasibleError reports that coverage and exclusion cannot all hold
// simultaneously. Non-retryable without changing the problem.
type InfeasibleError struct {
	Stats SolveStats
}

func (e *InfeasibleError) Error() string {
	return "infeasible: no assignment satisfies the coverage and exclusion constraints"
}

// TimeoutError reports that the solver exhausted its budget without
// finding a feasible assignment. The caller may retry with a larger
// budget.
type TimeoutError struct {
	Stats SolveStats
}

func (e *TimeoutError) Error() string {
	return "timeout: solver budget exhausted before a feasible assignment was found"
}

// InternalError marks an invariant violation found during decoding, e.g.
// a second write into a cell that the encoder's constraints say cannot
// happen. Fatal: it indicates a bug in the encoder, never in caller
// input.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Reason)
}

// SolveStats carries the solver diagnostics surfaced alongside every
// terminal result, successful or not.
type SolveStats struct {
	WallTime        float64
	Branches        int64
	Conflicts       int64
	ScheduledCount  int
	TotalCourses    int
	Attempts        int
}
