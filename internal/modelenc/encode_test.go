package modelenc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/problem"
)

func trivialProblem() *problem.ScheduleProblem {
	return &problem.ScheduleProblem{
		Classes: []domain.ClassCurriculum{
			{ClassID: "Level-1-S1", Courses: []domain.Course{
				{CourseID: 0, Code: "CS1", Name: "Algo", TeacherKey: "Alice"},
			}},
		},
		Rooms: []domain.Room{{ID: "R1", Number: "R1", Building: "A"}},
		TeacherIndex: map[string][]problem.CourseRef{
			"Alice": {{ClassIdx: 0, CourseIdx: 0}},
		},
	}
}

func TestEncode_VarCounts(t *testing.T) {
	p := trivialProblem()
	m := Encode(p, DefaultOptions())

	wantX := 1 * 1 * domain.NumDays * domain.NumPeriods
	wantY := 1 * domain.NumPeriods
	require.Equal(t, wantX+wantY, m.NumVars())
}

func TestEncode_VarAtIsStable(t *testing.T) {
	p := trivialProblem()
	m := Encode(p, DefaultOptions())

	v1 := m.VarAt(0, 0, 0, 0, 0)
	v2 := m.VarAt(0, 0, 0, 0, 0)
	require.Equal(t, v1, v2)
}

func TestEncode_TBDOptOutSkipsConstraint(t *testing.T) {
	p := &problem.ScheduleProblem{
		Classes: []domain.ClassCurriculum{
			{ClassID: "Level-1-S1", Courses: []domain.Course{
				{CourseID: 0, Code: "CS1", Name: "Algo", TeacherKey: domain.TBDTeacher},
			}},
			{ClassID: "Level-2-S1", Courses: []domain.Course{
				{CourseID: 0, Code: "CS2", Name: "Data", TeacherKey: domain.TBDTeacher},
			}},
		},
		Rooms: []domain.Room{{ID: "R1", Number: "R1"}, {ID: "R2", Number: "R2"}},
		TeacherIndex: map[string][]problem.CourseRef{
			domain.TBDTeacher: {{ClassIdx: 0, CourseIdx: 0}, {ClassIdx: 1, CourseIdx: 0}},
		},
	}

	constrained := Encode(p, Options{ConstrainTBD: true})
	unconstrained := Encode(p, Options{ConstrainTBD: false})

	require.Greater(t, constrained.NumConstraints(), unconstrained.NumConstraints())
}
