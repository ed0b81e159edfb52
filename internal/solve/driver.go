// Package solve hands an encoded model to CP-SAT under a wall-clock
// budget and classifies the outcome as Optimal, Feasible, Infeasible, or
// Unknown.
package solve

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/modelenc"
)

// DefaultTimeBudget is the budget used when Config.TimeBudget is zero.
const DefaultTimeBudget = 300 * time.Second

// Status is the terminal classification of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Config configures one Solve call.
type Config struct {
	// TimeBudget bounds total wall-clock time. Zero means DefaultTimeBudget.
	TimeBudget time.Duration
	// Seed, if set, is passed straight through to CP-SAT and forces a
	// single deterministic attempt. Determinism requires a fixed seed,
	// which is incompatible with racing several seeds.
	Seed *int64
	// Workers is how many concurrent seeded attempts to race when Seed is
	// nil. Values < 1 are treated as 1.
	Workers int
}

// Result is the solver driver's verdict: status, objective, stats, and
// the solved response the decoder reads through the EncodedModel's
// variable handles.
type Result struct {
	Status    Status
	Objective int64
	Stats     domain.SolveStats
	Response  *cmpb.CpSolverResponse
}

// Driver runs CP-SAT against an EncodedModel.
type Driver struct{}

// Solve runs the model under cfg's budget, racing cfg.Workers seeded
// attempts when no explicit seed is requested, and returns the best
// terminal result.
func (Driver) Solve(ctx context.Context, model *modelenc.EncodedModel, cfg Config) (Result, error) {
	proto, err := model.Builder().Model()
	if err != nil {
		return Result{}, &domain.InternalError{Reason: "building CP-SAT model proto: " + err.Error()}
	}

	budget := cfg.TimeBudget
	if budget <= 0 {
		budget = DefaultTimeBudget
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	seeds := make([]int32, workers)
	if cfg.Seed != nil {
		workers = 1
		seeds = []int32{int32(*cfg.Seed)}
	} else {
		for i := range seeds {
			seeds[i] = int32(i + 1)
		}
	}

	type attempt struct {
		resp *cmpb.CpSolverResponse
		err  error
	}
	results := make(chan attempt, workers)
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int, seed int32) {
			defer wg.Done()
			if ctx.Err() != nil {
				results <- attempt{err: ctx.Err()}
				return
			}
			params := &sppb.SatParameters{
				MaxTimeInSeconds: proto64(budget.Seconds()),
				RandomSeed:       &seed,
			}
			resp, err := cpmodel.SolveCpModelWithParameters(proto, params)
			if err == nil {
				glog.V(1).Infof("solver worker %d (seed %d): status=%v objective=%v",
					workerID, seed, resp.GetStatus(), resp.GetObjectiveValue())
			}
			results <- attempt{resp: resp, err: err}
		}(i, seeds[i])
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var best *cmpb.CpSolverResponse
	var firstErr error
	attempts := 0
	for r := range results {
		attempts++
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if best == nil || betterResponse(r.resp, best) {
			best = r.resp
		}
	}

	if best == nil {
		if firstErr != nil {
			return Result{}, firstErr
		}
		return Result{}, &domain.InternalError{Reason: "solver produced no response"}
	}

	stats := domain.SolveStats{
		WallTime:     time.Since(start).Seconds(),
		Branches:     best.GetNumBranches(),
		Conflicts:    best.GetNumConflicts(),
		TotalCourses: model.Problem.TotalCourses(),
		Attempts:     attempts,
	}

	switch best.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		stats.ScheduledCount = stats.TotalCourses
		return Result{Status: StatusOptimal, Objective: int64(best.GetObjectiveValue()), Stats: stats, Response: best}, nil
	case cmpb.CpSolverStatus_FEASIBLE:
		stats.ScheduledCount = stats.TotalCourses
		return Result{Status: StatusFeasible, Objective: int64(best.GetObjectiveValue()), Stats: stats, Response: best}, nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return Result{Status: StatusInfeasible, Stats: stats, Response: best}, &domain.InfeasibleError{Stats: stats}
	default:
		return Result{Status: StatusUnknown, Stats: stats, Response: best}, &domain.TimeoutError{Stats: stats}
	}
}

// betterResponse ranks INFEASIBLE as most authoritative (a proof of
// impossibility from any one worker holds for every worker, since all
// workers solve the identical model), then OPTIMAL, then the FEASIBLE
// response with the lowest objective, then UNKNOWN.
func betterResponse(a, b *cmpb.CpSolverResponse) bool {
	return rank(a) < rank(b) || (rank(a) == rank(b) && a.GetObjectiveValue() < b.GetObjectiveValue())
}

func rank(r *cmpb.CpSolverResponse) int {
	switch r.GetStatus() {
	case cmpb.CpSolverStatus_INFEASIBLE:
		return 0
	case cmpb.CpSolverStatus_OPTIMAL:
		return 1
	case cmpb.CpSolverStatus_FEASIBLE:
		return 2
	default:
		return 3
	}
}

func proto64(v float64) *float64 { return &v }
