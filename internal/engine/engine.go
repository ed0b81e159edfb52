// Package engine wires the Problem Builder, Model Encoder, Solver Driver,
// and Solution Decoder into one state machine:
//
//	IDLE --build()--> ENCODED --solve()--> {OPTIMAL|FEASIBLE|INFEASIBLE|UNKNOWN}
//	                                          |              |
//	                                        decode()      (no decode)
//	                                          v
//	                                       DECODED
//
// A fresh Engine starts IDLE; Run drives it straight to DECODED or a
// terminal error. Re-entry from a terminal state requires a new Engine.
package engine

import (
	"context"
	"fmt"

	"github.com/deptsched/engine/internal/decode"
	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/ingest"
	"github.com/deptsched/engine/internal/modelenc"
	"github.com/deptsched/engine/internal/problem"
	"github.com/deptsched/engine/internal/solve"
)

type state int

const (
	stateIdle state = iota
	stateEncoded
	stateSolved
	stateDecoded
	stateTerminalNoDecode
)

// Config bundles every knob the engine's stages accept.
type Config struct {
	Encode modelenc.Options
	Solve  solve.Config
}

// Engine runs one build/encode/solve/decode cycle. It is not safe for
// concurrent use by multiple goroutines during build/solve — only the
// decoded Timetable, once produced, is safe to read concurrently.
type Engine struct {
	state state

	problem *problem.ScheduleProblem
	model   *modelenc.EncodedModel
	result  solve.Result
}

// Run executes the full IDLE -> DECODED pipeline in one call.
// Stage-by-stage access is available via Build/Encode/Solve/Decode for
// callers that want to inspect intermediate state (e.g. to log NumVars
// before solving).
func (e *Engine) Run(ctx context.Context, rooms []ingest.RoomRecord, curricula ingest.CurriculaDocument, cfg Config) (domain.Timetable, error) {
	if err := e.Build(rooms, curricula); err != nil {
		return domain.Timetable{}, err
	}
	e.Encode(cfg.Encode)
	if err := e.Solve(ctx, cfg.Solve); err != nil {
		return domain.Timetable{}, err
	}
	return e.Decode()
}

// Build runs the problem builder. IDLE -> IDLE (still pre-encode) on
// success; returns a domain.InputError on a duplicate class_id.
func (e *Engine) Build(rooms []ingest.RoomRecord, curricula ingest.CurriculaDocument) error {
	if e.state != stateIdle {
		return fmt.Errorf("engine: Build called out of order, state is not IDLE")
	}
	p, err := problem.Build(rooms, curricula)
	if err != nil {
		return err
	}
	e.problem = p
	return nil
}

// Encode runs the model encoder. IDLE -> ENCODED.
func (e *Engine) Encode(opts modelenc.Options) {
	e.model = modelenc.Encode(e.problem, opts)
	e.state = stateEncoded
}

// Solve runs the solver driver. ENCODED -> one of {OPTIMAL, FEASIBLE,
// INFEASIBLE, UNKNOWN}; only the first two leave the engine in a
// decodable state.
func (e *Engine) Solve(ctx context.Context, cfg solve.Config) error {
	if e.state != stateEncoded {
		return fmt.Errorf("engine: Solve called out of order, state is not ENCODED")
	}
	result, err := solve.Driver{}.Solve(ctx, e.model, cfg)
	e.result = result
	if err != nil {
		e.state = stateTerminalNoDecode
		return err
	}
	e.state = stateSolved
	return nil
}

// Decode runs the solution decoder. {OPTIMAL, FEASIBLE} -> DECODED.
func (e *Engine) Decode() (domain.Timetable, error) {
	if e.state != stateSolved {
		return domain.Timetable{}, fmt.Errorf("engine: Decode called out of order, state is not solved-feasible")
	}
	timetable, err := decode.Decode(e.model, e.result.Response)
	if err != nil {
		e.state = stateTerminalNoDecode
		return domain.Timetable{}, err
	}
	e.state = stateDecoded
	return timetable, nil
}

// Stats returns the diagnostics from the most recent Solve call.
func (e *Engine) Stats() domain.SolveStats { return e.result.Stats }

// Status returns the most recent Solve outcome.
func (e *Engine) Status() solve.Status { return e.result.Status }

// Objective returns the most recent Solve's weighted prefer-morning sum.
func (e *Engine) Objective() int64 { return e.result.Objective }
