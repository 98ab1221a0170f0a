package constraintmodel

import (
	"fmt"
	"sort"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/eligibility"
)

// Config toggles the soft-objective terms, mirroring the scheduler's
// generation options verbatim.
type Config struct {
	RespectFacultyPreferences    bool
	PrioritizeDepartmentGrouping bool
	DistributeCoursesEvenly      bool
	Days                         []domain.Weekday
}

// InfeasibleCourseError reports courses that have zero candidate bindings
// after the eligibility filter — trivially infeasible, detected at build
// time rather than left for the solver to discover.
type InfeasibleCourseError struct {
	CourseIDs []string
}

func (e *InfeasibleCourseError) Error() string {
	return fmt.Sprintf("constraintmodel: %d course(s) have no candidate bindings: %v", len(e.CourseIDs), e.CourseIDs)
}

// Build declares variables and constraints for the candidate binding set.
// It returns *InfeasibleCourseError (not wrapped) when any course with a
// positive hours_per_week has no admissible binding; callers should surface
// this distinctly from solver-level infeasibility.
func Build(bindings []eligibility.Binding, courses []domain.Course, cfg Config) (*Model, error) {
	if len(cfg.Days) == 0 {
		return nil, fmt.Errorf("constraintmodel: day list must not be empty")
	}

	m := &Model{NumBoolVars: len(bindings)}

	bindingsByCourse := make(map[string][]int, len(courses))
	bindingsByFaculty := make(map[string][]int)
	bindingsByRoom := make(map[string][]int)
	for i, b := range bindings {
		bindingsByCourse[b.Course.ID] = append(bindingsByCourse[b.Course.ID], i)
		bindingsByFaculty[b.Faculty.ID] = append(bindingsByFaculty[b.Faculty.ID], i)
		bindingsByRoom[b.Classroom.ID] = append(bindingsByRoom[b.Classroom.ID], i)
	}

	var infeasible []string
	for _, c := range courses {
		if c.HoursPerWeek <= 0 {
			continue
		}
		idxs, ok := bindingsByCourse[c.ID]
		if !ok || len(idxs) == 0 {
			infeasible = append(infeasible, c.ID)
			continue
		}
		terms := make([]Term, len(idxs))
		for j, idx := range idxs {
			terms[j] = boolTerm(idx, 1)
		}
		m.Constraints = append(m.Constraints, Constraint{
			Name:  fmt.Sprintf("demand[%s]", c.ID),
			Terms: terms,
			Op:    OpEq,
			RHS:   float64(c.HoursPerWeek),
		})
	}
	if len(infeasible) > 0 {
		sort.Strings(infeasible)
		return nil, &InfeasibleCourseError{CourseIDs: infeasible}
	}

	addNoOverlapConstraints(m, bindings, bindingsByFaculty, func(b eligibility.Binding) string { return b.Faculty.ID }, "faculty")
	addNoOverlapConstraints(m, bindings, bindingsByRoom, func(b eligibility.Binding) string { return b.Classroom.ID }, "room")

	facultyCaps := make(map[string]int)
	for _, b := range bindings {
		facultyCaps[b.Faculty.ID] = b.Faculty.WeeklyHoursCap
	}
	for facultyID, idxs := range bindingsByFaculty {
		weeklyCap := facultyCaps[facultyID]
		terms := make([]Term, len(idxs))
		for j, idx := range idxs {
			terms[j] = boolTerm(idx, 1)
		}
		m.Constraints = append(m.Constraints, Constraint{
			Name:  fmt.Sprintf("facultyCap[%s]", facultyID),
			Terms: terms,
			Op:    OpLE,
			RHS:   float64(weeklyCap),
		})
	}

	if cfg.RespectFacultyPreferences {
		for i, b := range bindings {
			if b.Faculty.IsPreferred(b.Slot) {
				m.Objective = append(m.Objective, boolTerm(i, 1))
			}
		}
	}

	if cfg.PrioritizeDepartmentGrouping {
		addDepartmentCoLocation(m, bindings, cfg.Days)
	}

	if cfg.DistributeCoursesEvenly {
		addDistributionPenalty(m, bindings, courses, cfg.Days)
	}

	return m, nil
}

// addNoOverlapConstraints emits, for each resource (faculty or classroom)
// and each distinct slot used by that resource, an at-most-one constraint
// over the bindings whose slot overlaps it — but only once per distinct
// overlap group, and only when the group has >= 2 members: a group of one
// binding can never conflict with itself, so the constraint would be
// vacuous.
func addNoOverlapConstraints(
	m *Model,
	bindings []eligibility.Binding,
	byResource map[string][]int,
	resourceID func(eligibility.Binding) string,
	label string,
) {
	resourceIDs := make([]string, 0, len(byResource))
	for id := range byResource {
		resourceIDs = append(resourceIDs, id)
	}
	sort.Strings(resourceIDs)

	for _, id := range resourceIDs {
		idxs := byResource[id]
		seenGroups := make(map[string]bool)
		for _, anchor := range idxs {
			anchorSlot := bindings[anchor].Slot
			var group []int
			for _, idx := range idxs {
				if bindings[idx].Slot.Overlaps(anchorSlot) || idx == anchor {
					group = append(group, idx)
				}
			}
			if len(group) < 2 {
				continue
			}
			sort.Ints(group)
			key := fmt.Sprint(group)
			if seenGroups[key] {
				continue
			}
			seenGroups[key] = true

			terms := make([]Term, len(group))
			for j, idx := range group {
				terms[j] = boolTerm(idx, 1)
			}
			m.Constraints = append(m.Constraints, Constraint{
				Name:  fmt.Sprintf("%sNoOverlap[%s]/%s", label, id, anchorSlot),
				Terms: terms,
				Op:    OpLE,
				RHS:   1,
			})
		}
	}
}

// addDepartmentCoLocation rewards keeping each department's weekly teaching
// on as few distinct days as possible: an auxiliary y_{d,day} = 1 iff any
// course of department d has an assignment on that day, and the objective
// subtracts sum(y_{d,day}), so fewer days used scores higher.
func addDepartmentCoLocation(m *Model, bindings []eligibility.Binding, days []domain.Weekday) {
	type deptDay struct {
		dept string
		day  domain.Weekday
	}
	groups := make(map[deptDay][]int)
	for i, b := range bindings {
		key := deptDay{dept: b.Course.DepartmentID, day: b.Slot.Day}
		groups[key] = append(groups[key], i)
	}

	keys := make([]deptDay, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dept != keys[j].dept {
			return keys[i].dept < keys[j].dept
		}
		return keys[i].day < keys[j].day
	})

	for _, key := range keys {
		idxs := groups[key]
		yIndex := len(m.IntVars)
		m.IntVars = append(m.IntVars, IntVarSpec{
			Name: fmt.Sprintf("dayUsed[%s][%s]", key.dept, key.day),
			Lo:   0,
			Hi:   1,
		})
		for _, idx := range idxs {
			// y >= x_b  <=>  x_b - y <= 0
			m.Constraints = append(m.Constraints, Constraint{
				Name: fmt.Sprintf("dayUsedLink[%s][%s][%d]", key.dept, key.day, idx),
				Terms: []Term{
					boolTerm(idx, 1),
					intTerm(yIndex, -1),
				},
				Op:  OpLE,
				RHS: 0,
			})
		}
		m.Objective = append(m.Objective, intTerm(yIndex, -1))
	}
}

// addDistributionPenalty pushes the per-day teaching load toward an even
// split: target = floor(total weekly teaching hours / number of days), an
// auxiliary diff[day] >= |count[day] - target| is introduced per day, and
// the objective subtracts sum(diff), so uneven days score lower.
func addDistributionPenalty(m *Model, bindings []eligibility.Binding, courses []domain.Course, days []domain.Weekday) {
	totalHours := 0
	for _, c := range courses {
		totalHours += c.HoursPerWeek
	}
	target := totalHours / len(days)

	byDay := make(map[domain.Weekday][]int)
	for i, b := range bindings {
		byDay[b.Slot.Day] = append(byDay[b.Slot.Day], i)
	}

	for _, day := range days {
		idxs := byDay[day]
		diffIndex := len(m.IntVars)
		m.IntVars = append(m.IntVars, IntVarSpec{
			Name: fmt.Sprintf("diff[%s]", day),
			Lo:   0,
			Hi:   len(idxs) + target,
		})

		countTerms := make([]Term, len(idxs))
		for j, idx := range idxs {
			countTerms[j] = boolTerm(idx, 1)
		}

		// diff >= count - target  <=>  count - diff <= target
		upper := append(append([]Term{}, countTerms...), intTerm(diffIndex, -1))
		m.Constraints = append(m.Constraints, Constraint{
			Name:  fmt.Sprintf("diffUpper[%s]", day),
			Terms: upper,
			Op:    OpLE,
			RHS:   float64(target),
		})

		// diff >= target - count  <=>  -count - diff <= -target
		lower := make([]Term, 0, len(countTerms)+1)
		for _, t := range countTerms {
			lower = append(lower, Term{Ref: t.Ref, Coeff: -t.Coeff})
		}
		lower = append(lower, intTerm(diffIndex, -1))
		m.Constraints = append(m.Constraints, Constraint{
			Name:  fmt.Sprintf("diffLower[%s]", day),
			Terms: lower,
			Op:    OpLE,
			RHS:   -float64(target),
		})

		m.Objective = append(m.Objective, intTerm(diffIndex, -1))
	}
}
