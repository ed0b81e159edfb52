package decode

import (
	"fmt"

	"github.com/deptsched/engine/internal/domain"
)

// Problem is one violation Diagnose found, described by a message that
// names the class, and where relevant the day, period, room or teacher.
type Problem struct {
	Message string
}

// Options toggles which properties Diagnose checks. TBD is excluded from
// the teacher-exclusion check only when the caller asks.
type Options struct {
	IgnoreTBDInTeacherCheck bool
}

// Diagnose walks a decoded Timetable and reports every constraint
// violation it finds: coverage, class exclusion, room exclusion, teacher
// exclusion, and curriculum confinement. It never mutates the timetable;
// an empty result means every property held.
func Diagnose(p *ClassCatalog, t domain.Timetable, opts Options) []Problem {
	var problems []Problem

	type slotKey struct {
		day, period int
		room        string
	}
	type teacherKey struct {
		day, period int
		teacher     string
	}
	roomUse := make(map[slotKey]string)
	teacherUse := make(map[teacherKey]string)

	for _, ct := range t.Classes {
		curriculum, ok := p.CurriculumByID(ct.ClassID)
		if !ok {
			problems = append(problems, Problem{Message: fmt.Sprintf("unknown class %s in timetable", ct.ClassID)})
			continue
		}

		seenCourseIdx := make(map[int]int)
		seenSlot := make(map[[2]int]bool) // at most one course per (day,period)

		for d := 0; d < domain.NumDays; d++ {
			for pr := 0; pr < domain.NumPeriods; pr++ {
				cell := ct.Grid[d][pr]
				if cell.Empty {
					continue
				}

				// class exclusion.
				key := [2]int{d, pr}
				if seenSlot[key] {
					problems = append(problems, Problem{Message: fmt.Sprintf(
						"class exclusion violated: %s has two courses at day %d period %d", ct.ClassID, d, pr)})
				}
				seenSlot[key] = true

				// curriculum confinement.
				if !curriculum.HasCode(cell.Code) {
					problems = append(problems, Problem{Message: fmt.Sprintf(
						"curriculum confinement violated: %s schedules code %s which is not in its curriculum", ct.ClassID, cell.Code)})
				}

				// room exclusion.
				rk := slotKey{day: d, period: pr, room: cell.Room}
				if owner, ok := roomUse[rk]; ok && owner != ct.ClassID {
					problems = append(problems, Problem{Message: fmt.Sprintf(
						"room exclusion violated: room %s double-booked at day %d period %d (%s and %s)",
						cell.Room, d, pr, owner, ct.ClassID)})
				}
				roomUse[rk] = ct.ClassID

				// teacher exclusion.
				if cell.TeacherKey != domain.TBDTeacher || !opts.IgnoreTBDInTeacherCheck {
					tk := teacherKey{day: d, period: pr, teacher: cell.TeacherKey}
					if owner, ok := teacherUse[tk]; ok && owner != ct.ClassID {
						problems = append(problems, Problem{Message: fmt.Sprintf(
							"teacher exclusion violated: %s double-booked at day %d period %d (%s and %s)",
							cell.TeacherKey, d, pr, owner, ct.ClassID)})
					}
					teacherUse[tk] = ct.ClassID
				}

				for idx, course := range curriculum.Courses {
					if course.Code == cell.Code && course.Name == cell.Name {
						seenCourseIdx[idx]++
					}
				}
			}
		}

		// coverage — every curriculum course appears exactly once. A cell
		// counts toward every course with its code and name, so courses
		// sharing both expect one cell each.
		for idx, course := range curriculum.Courses {
			want := 0
			for _, other := range curriculum.Courses {
				if other.Code == course.Code && other.Name == course.Name {
					want++
				}
			}
			if seenCourseIdx[idx] == 0 {
				problems = append(problems, Problem{Message: fmt.Sprintf(
					"coverage violated: %s course %s (index %d) was never scheduled", ct.ClassID, course.Code, idx)})
			} else if seenCourseIdx[idx] != want {
				problems = append(problems, Problem{Message: fmt.Sprintf(
					"coverage violated: %s course %s (index %d) fills %d cells, expected %d", ct.ClassID, course.Code, idx, seenCourseIdx[idx], want)})
			}
		}
	}

	return problems
}

// ClassCatalog is the minimal curriculum lookup Diagnose needs: curricula
// indexed by class id, built from plain domain values so decode does not
// import the problem package (decode only needs to read curricula, not
// build them).
type ClassCatalog struct {
	byID map[string]domain.ClassCurriculum
}

// NewClassCatalog indexes a set of curricula by class id.
func NewClassCatalog(classes []domain.ClassCurriculum) *ClassCatalog {
	c := &ClassCatalog{byID: make(map[string]domain.ClassCurriculum, len(classes))}
	for _, cl := range classes {
		c.byID[cl.ClassID] = cl
	}
	return c
}

func (c *ClassCatalog) CurriculumByID(classID string) (domain.ClassCurriculum, bool) {
	cl, ok := c.byID[classID]
	return cl, ok
}
