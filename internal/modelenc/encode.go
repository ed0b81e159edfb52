// Package modelenc translates a problem.ScheduleProblem into a CP-SAT
// model — decision variables, mutual-exclusion constraints,
// course-coverage constraints, reified per-period indicators, and the
// prefer-morning linear objective.
package modelenc

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/problem"
)

// Options toggles encoder behavior that callers may want to vary between
// runs.
type Options struct {
	// ConstrainTBD, when false, exempts the "TBD" sentinel teacher from
	// the teacher-exclusion constraint, so unstaffed courses no longer
	// compete for the same slots. Default: true.
	ConstrainTBD bool
}

// DefaultOptions returns the encoder's default behavior.
func DefaultOptions() Options {
	return Options{ConstrainTBD: true}
}

// EncodedModel is the built CP-SAT model plus the variable tables needed
// to decode a solver response back into a domain.Timetable. It owns the
// problem it was built from but never mutates it.
type EncodedModel struct {
	Problem *problem.ScheduleProblem
	Options Options

	builder *cpmodel.Builder
	x       []classVars  // indexed by class
	y       []periodVars // indexed by class

	numVars        int
	numConstraints int
}

// Builder exposes the underlying CP-SAT builder for the Solver Driver.
func (m *EncodedModel) Builder() *cpmodel.Builder { return m.builder }

// VarAt returns the x[c,k,r,d,p] decision variable.
func (m *EncodedModel) VarAt(classIdx, courseIdx, roomIdx, dayIdx, periodIdx int) cpmodel.BoolVar {
	return m.x[classIdx].at(courseIdx, roomIdx, dayIdx, periodIdx)
}

// NumVars and NumConstraints are reported for solver stats/logging.
func (m *EncodedModel) NumVars() int        { return m.numVars }
func (m *EncodedModel) NumConstraints() int { return m.numConstraints }

// Encode builds the decision variables and constraints for p and returns
// the model ready for the solver driver.
func Encode(p *problem.ScheduleProblem, opts Options) *EncodedModel {
	const (
		D = domain.NumDays
		P = domain.NumPeriods
	)
	R := p.NumRooms()

	model := cpmodel.NewCpModelBuilder()
	m := &EncodedModel{
		Problem: p,
		Options: opts,
		builder: model,
		x:       make([]classVars, p.NumClasses()),
		y:       make([]periodVars, p.NumClasses()),
	}

	for c := 0; c < p.NumClasses(); c++ {
		K := p.CourseCount(c)
		m.x[c] = newClassVars(model, K, R, D, P)
		m.y[c] = newPeriodVars(model, K, P)
		m.numVars += K * R * D * P
		m.numVars += K * P
	}

	m.addCourseCoverage(D, P, R)
	m.addClassExclusion(D, P, R)
	m.addRoomExclusion(D, P, R)
	m.addTeacherExclusion(D, P, R)
	m.addReification(D, P, R)
	m.addObjective(P)

	return m
}

// addCourseCoverage ensures every course is assigned exactly once.
func (m *EncodedModel) addCourseCoverage(D, P, R int) {
	for c := 0; c < m.Problem.NumClasses(); c++ {
		K := m.Problem.CourseCount(c)
		for k := 0; k < K; k++ {
			expr := cpmodel.NewLinearExpr()
			for r := 0; r < R; r++ {
				for d := 0; d < D; d++ {
					for p := 0; p < P; p++ {
						expr.AddTerm(m.x[c].at(k, r, d, p), 1)
					}
				}
			}
			m.builder.AddEquality(expr, cpmodel.NewConstant(1))
			m.numConstraints++
		}
	}
}

// addClassExclusion ensures a class teaches at most one course per
// (day, period).
func (m *EncodedModel) addClassExclusion(D, P, R int) {
	for c := 0; c < m.Problem.NumClasses(); c++ {
		K := m.Problem.CourseCount(c)
		for d := 0; d < D; d++ {
			for p := 0; p < P; p++ {
				var vars []cpmodel.BoolVar
				for k := 0; k < K; k++ {
					for r := 0; r < R; r++ {
						vars = append(vars, m.x[c].at(k, r, d, p))
					}
				}
				if len(vars) == 0 {
					continue
				}
				m.builder.AddAtMostOne(vars...)
				m.numConstraints++
			}
		}
	}
}

// addRoomExclusion ensures a room hosts at most one course per
// (day, period).
func (m *EncodedModel) addRoomExclusion(D, P, R int) {
	for r := 0; r < R; r++ {
		for d := 0; d < D; d++ {
			for p := 0; p < P; p++ {
				var vars []cpmodel.BoolVar
				for c := 0; c < m.Problem.NumClasses(); c++ {
					K := m.Problem.CourseCount(c)
					for k := 0; k < K; k++ {
						vars = append(vars, m.x[c].at(k, r, d, p))
					}
				}
				if len(vars) == 0 {
					continue
				}
				m.builder.AddAtMostOne(vars...)
				m.numConstraints++
			}
		}
	}
}

// addTeacherExclusion ensures a teacher teaches at most one course per
// (day, period). The "TBD" sentinel participates unless the caller
// opted out via Options.ConstrainTBD.
func (m *EncodedModel) addTeacherExclusion(D, P, R int) {
	for teacher, refs := range m.Problem.TeacherIndex {
		if teacher == domain.TBDTeacher && !m.Options.ConstrainTBD {
			continue
		}
		for d := 0; d < D; d++ {
			for p := 0; p < P; p++ {
				var vars []cpmodel.BoolVar
				for _, ref := range refs {
					for r := 0; r < R; r++ {
						vars = append(vars, m.x[ref.ClassIdx].at(ref.CourseIdx, r, d, p))
					}
				}
				if len(vars) == 0 {
					continue
				}
				m.builder.AddAtMostOne(vars...)
				m.numConstraints++
			}
		}
	}
}

// addReification links y[c,k,p] to "this course is placed in period p on
// some day in some room".
func (m *EncodedModel) addReification(D, P, R int) {
	for c := 0; c < m.Problem.NumClasses(); c++ {
		K := m.Problem.CourseCount(c)
		for k := 0; k < K; k++ {
			for p := 0; p < P; p++ {
				y := m.y[c].at(k, p)
				var inPeriod []cpmodel.BoolVar
				for r := 0; r < R; r++ {
					for d := 0; d < D; d++ {
						inPeriod = append(inPeriod, m.x[c].at(k, r, d, p))
					}
				}
				if len(inPeriod) == 0 {
					m.builder.AddEquality(y, cpmodel.NewConstant(0))
					m.numConstraints++
					continue
				}
				m.builder.AddBoolOr(inPeriod...).OnlyEnforceIf(y)
				negated := make([]cpmodel.BoolVar, len(inPeriod))
				for i, v := range inPeriod {
					negated[i] = v.Not()
				}
				m.builder.AddBoolAnd(negated...).OnlyEnforceIf(y.Not())
				m.numConstraints += 2
			}
		}
	}
}

// addObjective minimizes the weighted sum of chosen periods, a
// prefer-morning objective expressed purely in terms of the reified
// y[c,k,p] variables so it stays independent of room/day count.
func (m *EncodedModel) addObjective(P int) {
	objective := cpmodel.NewLinearExpr()
	for c := 0; c < m.Problem.NumClasses(); c++ {
		K := m.Problem.CourseCount(c)
		for k := 0; k < K; k++ {
			for p := 0; p < P; p++ {
				objective.AddTerm(m.y[c].at(k, p), int64(domain.PeriodWeights[p]))
			}
		}
	}
	m.builder.Minimize(objective)
}
