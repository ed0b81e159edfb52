package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/engine/internal/decode"
	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/ingest"
	"github.com/deptsched/engine/internal/modelenc"
	"github.com/deptsched/engine/internal/solve"
)

func rawName(t *testing.T, s string) ingest.RawName {
	t.Helper()
	var n ingest.RawName
	require.NoError(t, n.UnmarshalJSON([]byte(fmt.Sprintf("%q", s))))
	return n
}

func subject(t *testing.T, code, name string, lecturers ...string) ingest.SubjectRecord {
	return ingest.SubjectRecord{Code: code, Name: rawName(t, name), Lecturer: lecturers}
}

func oneClassCurricula(subjects ...ingest.SubjectRecord) ingest.CurriculaDocument {
	return ingest.CurriculaDocument{
		Niveau: map[string]map[string]ingest.SemesterRecord{
			"1": {"S1": {Subjects: subjects}},
		},
	}
}

func quickCfg() Config {
	return Config{
		Encode: modelenc.DefaultOptions(),
		Solve:  solve.Config{TimeBudget: 10 * time.Second},
	}
}

// Trivial feasibility: one course, one room, one teacher.
func TestEngine_TrivialFeasibility(t *testing.T) {
	rooms := []ingest.RoomRecord{{Number: "R1", Building: "A"}}
	curricula := oneClassCurricula(subject(t, "CS1", "Algo", "Alice"))

	var e Engine
	tt, err := e.Run(context.Background(), rooms, curricula, quickCfg())
	require.NoError(t, err)
	require.Equal(t, solve.StatusOptimal, e.Status())
	require.EqualValues(t, 1, e.Objective())

	ct, ok := tt.ByClassID("Level-1-S1")
	require.True(t, ok)
	cell := ct.Grid[0][0] // Monday, p1
	require.False(t, cell.Empty)
	require.Equal(t, "CS1", cell.Code)
	require.Equal(t, "R1", cell.Room)
}

// More courses than available slots is infeasible.
func TestEngine_TooManyCoursesIsInfeasible(t *testing.T) {
	rooms := []ingest.RoomRecord{{Number: "R1", Building: "A"}}
	var subs []ingest.SubjectRecord
	for i := 0; i < 31; i++ {
		subs = append(subs, subject(t, fmt.Sprintf("CS%d", i), fmt.Sprintf("Course %d", i), fmt.Sprintf("Teacher%d", i)))
	}
	curricula := oneClassCurricula(subs...)

	var e Engine
	_, err := e.Run(context.Background(), rooms, curricula, quickCfg())
	require.Error(t, err)
	var infeasible *domain.InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	require.Equal(t, solve.StatusInfeasible, e.Status())
}

// Duplicate course codes are tolerated per curriculum index, not
// deduplicated.
func TestEngine_DuplicateCodesScheduledIndependently(t *testing.T) {
	rooms := []ingest.RoomRecord{{Number: "R1", Building: "A"}, {Number: "R2", Building: "A"}}
	curricula := oneClassCurricula(
		subject(t, "CS1", "Algo A", "Alice"),
		subject(t, "CS1", "Algo B", "Bob"),
	)

	var e Engine
	tt, err := e.Run(context.Background(), rooms, curricula, quickCfg())
	require.NoError(t, err)

	ct, ok := tt.ByClassID("Level-1-S1")
	require.True(t, ok)

	catalog := decode.NewClassCatalog([]domain.ClassCurriculum{{ClassID: ct.ClassID, Courses: ct.Courses}})
	problems := decode.Diagnose(catalog, tt, decode.Options{})
	require.Empty(t, problems)
}

// Empty curricula decodes with every grid empty.
func TestEngine_EmptyCurriculaDecodesEmpty(t *testing.T) {
	var e Engine
	tt, err := e.Run(context.Background(), nil, ingest.CurriculaDocument{}, quickCfg())
	require.NoError(t, err)
	require.Empty(t, tt.Classes)
}
