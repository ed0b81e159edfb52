// Package problem turns normalized ingest data into a ScheduleProblem
// with dense, O(1)-indexable classes, courses, rooms, and a teacher ->
// (class, course) inverted index ready for variable creation by the
// model encoder.
package problem

import (
	"sort"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/ingest"
)

// CourseRef identifies one course by its class and course index.
type CourseRef struct {
	ClassIdx  int
	CourseIdx int
}

// ScheduleProblem is the fully-indexed, read-only input to the model
// encoder. It owns no pointers back into ingest data; every reference is
// a dense integer index.
type ScheduleProblem struct {
	Classes []domain.ClassCurriculum // indexed 0..C
	Rooms   []domain.Room            // indexed 0..R

	// TeacherIndex maps a teacher key to every (class, course) it teaches.
	// "TBD" aggregates every unstaffed course under one key, which is
	// intentional and preserved by default.
	TeacherIndex map[string][]CourseRef
}

// NumClasses, CourseCount, NumRooms give the model encoder the bounds it
// needs to size its variable table.
func (p *ScheduleProblem) NumClasses() int { return len(p.Classes) }

func (p *ScheduleProblem) CourseCount(classIdx int) int {
	return len(p.Classes[classIdx].Courses)
}

func (p *ScheduleProblem) NumRooms() int { return len(p.Rooms) }

// TotalCourses sums the course count across every class — used for
// solver stats.
func (p *ScheduleProblem) TotalCourses() int {
	total := 0
	for _, c := range p.Classes {
		total += len(c.Courses)
	}
	return total
}

// Build normalizes Rooms and Curricula into a ScheduleProblem. Duplicate
// class_ids are rejected as a domain.InputError; subjects with an empty
// code or a non-string name are silently dropped.
func Build(rooms []ingest.RoomRecord, curricula ingest.CurriculaDocument) (*ScheduleProblem, error) {
	p := &ScheduleProblem{
		TeacherIndex: make(map[string][]CourseRef),
	}

	for _, r := range rooms {
		p.Rooms = append(p.Rooms, domain.Room{
			ID:       r.Number,
			Number:   r.Number,
			Building: r.Building,
			Capacity: r.Capacity,
			Track:    r.Track,
		})
	}

	levels := make([]string, 0, len(curricula.Niveau))
	for level := range curricula.Niveau {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	seenClassIDs := make(map[string]bool)

	for _, level := range levels {
		semesters := curricula.Niveau[level]
		semKeys := make([]string, 0, len(semesters))
		for sem := range semesters {
			semKeys = append(semKeys, sem)
		}
		sort.Strings(semKeys)

		for _, sem := range semKeys {
			classID := domain.NewClassID(level, sem)
			if seenClassIDs[classID] {
				return nil, &domain.InputError{Reason: "duplicate class_id: " + classID}
			}
			seenClassIDs[classID] = true

			curriculum := domain.ClassCurriculum{
				ClassID:  classID,
				Level:    level,
				Semester: sem,
			}

			for _, subj := range semesters[sem].Subjects {
				name, isString := subj.Name.AsString()
				if !isString || subj.Code == "" {
					continue
				}

				teacherKey := domain.TBDTeacher
				var names []string
				for _, l := range subj.Lecturer {
					if l != "" {
						names = append(names, l)
					}
				}
				if len(names) > 0 {
					teacherKey = joinTeachers(names)
				}

				curriculum.Courses = append(curriculum.Courses, domain.Course{
					CourseID:   len(curriculum.Courses),
					Code:       subj.Code,
					Name:       name,
					TeacherKey: teacherKey,
					Credits:    subj.Credits,
				})
			}

			classIdx := len(p.Classes)
			p.Classes = append(p.Classes, curriculum)

			for courseIdx, course := range curriculum.Courses {
				ref := CourseRef{ClassIdx: classIdx, CourseIdx: courseIdx}
				p.TeacherIndex[course.TeacherKey] = append(p.TeacherIndex[course.TeacherKey], ref)
			}
		}
	}

	return p, nil
}

func joinTeachers(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}
