package export

import (
	"sort"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
)

// assignmentHeaders is the fixed column order for a flattened timetable.
var assignmentHeaders = []string{
	"day", "start", "end", "course_code", "course_name",
	"faculty_name", "classroom_name", "building", "department_id",
}

// BuildDataset flattens a solved timetable into row records ordered by
// weekday index then start time, ties broken by course code.
func BuildDataset(assignments []domain.Assignment) Dataset {
	sorted := append([]domain.Assignment{}, assignments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Slot.Day != b.Slot.Day {
			return a.Slot.Day < b.Slot.Day
		}
		if a.Slot.Start != b.Slot.Start {
			return a.Slot.Start < b.Slot.Start
		}
		return a.Course.Code < b.Course.Code
	})

	rows := make([]map[string]string, len(sorted))
	for i, a := range sorted {
		rows[i] = map[string]string{
			"day":            a.Slot.Day.String(),
			"start":          a.Slot.Start.String(),
			"end":            a.Slot.End.String(),
			"course_code":    a.Course.Code,
			"course_name":    a.Course.Name,
			"faculty_name":   a.Faculty.Name,
			"classroom_name": a.Classroom.Name,
			"building":       a.Classroom.Building,
			"department_id":  a.Course.DepartmentID,
		}
	}

	return Dataset{Headers: assignmentHeaders, Rows: rows}
}
