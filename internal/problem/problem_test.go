package problem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/ingest"
)

func rawName(s string) ingest.RawName {
	var n ingest.RawName
	if err := n.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		panic(err)
	}
	return n
}

func TestBuild_DropsMalformedSubjects(t *testing.T) {
	curricula := ingest.CurriculaDocument{
		Niveau: map[string]map[string]ingest.SemesterRecord{
			"1": {
				"S1": {
					Subjects: []ingest.SubjectRecord{
						{Code: "CS1", Name: rawName("Algo"), Lecturer: []string{"Alice"}},
						{Code: "", Name: rawName("No Code")},
						{Code: "CS2"}, // name missing -> not a string
					},
				},
			},
		},
	}

	p, err := Build(nil, curricula)
	require.NoError(t, err)
	require.Len(t, p.Classes, 1)
	require.Equal(t, "Level-1-S1", p.Classes[0].ClassID)
	require.Len(t, p.Classes[0].Courses, 1)
	require.Equal(t, "CS1", p.Classes[0].Courses[0].Code)
}

func TestBuild_TBDAggregatesUnstaffedCourses(t *testing.T) {
	curricula := ingest.CurriculaDocument{
		Niveau: map[string]map[string]ingest.SemesterRecord{
			"1": {
				"S1": {Subjects: []ingest.SubjectRecord{
					{Code: "CS1", Name: rawName("Algo")},
					{Code: "CS2", Name: rawName("Data"), Lecturer: []string{}},
				}},
			},
		},
	}

	p, err := Build(nil, curricula)
	require.NoError(t, err)
	require.Len(t, p.TeacherIndex[domain.TBDTeacher], 2)
}

func TestBuild_JoinsMultipleLecturers(t *testing.T) {
	curricula := ingest.CurriculaDocument{
		Niveau: map[string]map[string]ingest.SemesterRecord{
			"1": {"S1": {Subjects: []ingest.SubjectRecord{
				{Code: "CS1", Name: rawName("Algo"), Lecturer: []string{"Alice", "Bob"}},
			}}},
		},
	}

	p, err := Build(nil, curricula)
	require.NoError(t, err)
	require.Equal(t, "Alice, Bob", p.Classes[0].Courses[0].TeacherKey)
}

func TestBuild_ClassesAreSortedDeterministically(t *testing.T) {
	curricula := ingest.CurriculaDocument{
		Niveau: map[string]map[string]ingest.SemesterRecord{
			"2": {"S2": {}, "S1": {}},
			"1": {"S1": {}},
		},
	}
	p, err := Build(nil, curricula)
	require.NoError(t, err)
	require.Equal(t, []string{"Level-1-S1", "Level-2-S1", "Level-2-S2"}, classIDs(p))
}

func classIDs(p *ScheduleProblem) []string {
	ids := make([]string, len(p.Classes))
	for i, c := range p.Classes {
		ids[i] = c.ClassID
	}
	return ids
}
