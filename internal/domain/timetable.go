package domain

// Cell is one (day, period) slot in a class's grid. A Cell with Empty set
// means no course was assigned to that slot (the zero value has Empty
// false, so empty cells are marked explicitly); any subset of cells may
// be empty.
type Cell struct {
	Empty      bool
	Code       string
	Name       string
	TeacherKey string
	Room       string
	Building   string
}

// Grid is a class's 6x5 day-by-period view, indexed [day][period].
type Grid [NumDays][NumPeriods]Cell

// ClassTimetable is one class's decoded schedule plus the ordered course
// list the exporter needs to render a legend.
type ClassTimetable struct {
	ClassID string
	Courses []Course
	Grid    Grid
}

// Timetable is the full decoded result handed to the Exporter: an ordered
// mapping class_id -> grid, plus the day and period labels.
type Timetable struct {
	Days    [NumDays]string
	Periods [NumPeriods]string
	Classes []ClassTimetable
}

// ByClassID returns the class's timetable, or false if the class is unknown.
func (t Timetable) ByClassID(classID string) (ClassTimetable, bool) {
	for _, c := range t.Classes {
		if c.ClassID == classID {
			return c, true
		}
	}
	return ClassTimetable{}, false
}
