// Package decode materializes a domain.Timetable from CP-SAT's variable
// assignment.
package decode

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/modelenc"
)

// Decode walks every x[c,k,r,d,p] the encoder created and writes the ones
// CP-SAT set to true into a fresh Timetable. The encoder's constraints
// guarantee no cell is ever written twice; a double write is a bug in
// the encoder and is reported as a domain.InternalError rather than
// silently overwritten.
func Decode(model *modelenc.EncodedModel, response *cmpb.CpSolverResponse) (domain.Timetable, error) {
	p := model.Problem

	timetable := domain.Timetable{
		Days:    domain.Days,
		Periods: domain.PeriodLabels,
	}

	for c := 0; c < p.NumClasses(); c++ {
		curriculum := p.Classes[c]
		ct := domain.ClassTimetable{
			ClassID: curriculum.ClassID,
			Courses: curriculum.Courses,
		}
		for row := range ct.Grid {
			for col := range ct.Grid[row] {
				ct.Grid[row][col] = domain.Cell{Empty: true}
			}
		}

		K := p.CourseCount(c)
		for k := 0; k < K; k++ {
			course := curriculum.Courses[k]
			for r := 0; r < p.NumRooms(); r++ {
				room := p.Rooms[r]
				for d := 0; d < domain.NumDays; d++ {
					for pr := 0; pr < domain.NumPeriods; pr++ {
						v := model.VarAt(c, k, r, d, pr)
						if !cpmodel.SolutionBooleanValue(response, v) {
							continue
						}
						if !ct.Grid[d][pr].Empty {
							return domain.Timetable{}, &domain.InternalError{Reason: fmt.Sprintf(
								"double write into class %s day %d period %d: existing code %s, new code %s",
								curriculum.ClassID, d, pr, ct.Grid[d][pr].Code, course.Code)}
						}
						ct.Grid[d][pr] = domain.Cell{
							Code:       course.Code,
							Name:       course.Name,
							TeacherKey: course.TeacherKey,
							Room:       room.Number,
							Building:   room.Building,
						}
					}
				}
			}
		}

		timetable.Classes = append(timetable.Classes, ct)
	}

	return timetable, nil
}
