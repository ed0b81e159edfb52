// Package export is a minimal reference exporter: it hands the decoded
// Timetable to encoding/json exactly as produced. Any HTML, Markdown, or
// other printable rendering is a separate collaborator's concern; this
// package renders nothing, it only writes the contract out as JSON.
package export

import (
	"encoding/json"
	"io"

	"github.com/deptsched/engine/internal/domain"
)

type cellJSON struct {
	Empty    bool   `json:"empty"`
	Code     string `json:"code,omitempty"`
	Name     string `json:"name,omitempty"`
	Teacher  string `json:"teacher,omitempty"`
	Room     string `json:"room,omitempty"`
	Building string `json:"building,omitempty"`
}

type classJSON struct {
	ClassID string               `json:"class_id"`
	Courses []domain.Course      `json:"courses"`
	Grid    [][]cellJSON         `json:"grid"` // [day][period]
}

type timetableJSON struct {
	Days    []string    `json:"days"`
	Periods []string    `json:"periods"`
	Classes []classJSON `json:"classes"`
}

// WriteJSON serializes a Timetable for the Exporter contract.
func WriteJSON(w io.Writer, t domain.Timetable) error {
	out := timetableJSON{
		Days:    t.Days[:],
		Periods: t.Periods[:],
	}
	for _, ct := range t.Classes {
		cj := classJSON{ClassID: ct.ClassID, Courses: ct.Courses}
		for _, row := range ct.Grid {
			var jsonRow []cellJSON
			for _, cell := range row {
				if cell.Empty {
					jsonRow = append(jsonRow, cellJSON{Empty: true})
					continue
				}
				jsonRow = append(jsonRow, cellJSON{
					Code:     cell.Code,
					Name:     cell.Name,
					Teacher:  cell.TeacherKey,
					Room:     cell.Room,
					Building: cell.Building,
				})
			}
			cj.Grid = append(cj.Grid, jsonRow)
		}
		out.Classes = append(out.Classes, cj)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
