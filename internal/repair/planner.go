// Package repair handles incremental re-planning: faculty or classrooms
// going unavailable mid-week, or new courses being injected, without
// discarding and re-solving the whole timetable.
package repair

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/eligibility"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/metrics"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solver"
	appErrors "github.com/ruthvika-29-11/AI-TimeTable/pkg/errors"
)

// Mutation describes what changed since the prior solution was produced.
// Any field left empty means "no change on that axis"; a Mutation with
// every field empty is a no-op.
type Mutation struct {
	UnavailableFacultyIDs   []string
	UnavailableClassroomIDs []string
	AdditionalCourses       []domain.Course
}

func (m Mutation) isEmpty() bool {
	return len(m.UnavailableFacultyIDs) == 0 && len(m.UnavailableClassroomIDs) == 0 && len(m.AdditionalCourses) == 0
}

// Result is the outcome of a repair: the patched assignment list and any
// courses that remain short of their hours_per_week demand after both the
// solver re-run and the greedy fallback.
type Result struct {
	Assignments          []domain.Assignment
	UnscheduledCourseIDs []string
}

// Planner re-solves a residual problem after a Mutation, falling back to a
// deterministic greedy placer for anything the solver re-run leaves
// unscheduled.
type Planner struct {
	driver  *solver.Driver
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// New wires a Planner around an existing solver.Driver. rec and logger may
// be nil.
func New(driver *solver.Driver, rec *metrics.Recorder, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{driver: driver, metrics: rec, logger: logger}
}

// Repair partitions prior into kept and displaced assignments, builds the
// residual problem (faculty/rooms excluding the unavailable ids, with kept
// commitments folded into copies of their unavailable_slots), re-solves it
// under cfg with all soft-objective toggles disabled, and greedily places
// anything still unresolved. It never mutates faculty or rooms; all
// modified availability lives on copies scoped to this call.
func (p *Planner) Repair(
	ctx context.Context,
	prior []domain.Assignment,
	faculty []domain.Faculty,
	rooms []domain.Classroom,
	courses []domain.Course,
	slots []domain.TimeSlot,
	mutation Mutation,
	cfg solver.Config,
) (Result, error) {
	if mutation.isEmpty() {
		return Result{Assignments: prior}, nil
	}

	start := time.Now()
	defer func() { p.metrics.ObserveRepair(time.Since(start)) }()

	unavailFaculty := toSet(mutation.UnavailableFacultyIDs)
	unavailRooms := toSet(mutation.UnavailableClassroomIDs)

	var kept, displaced []domain.Assignment
	for _, a := range prior {
		if unavailFaculty[a.Faculty.ID] || unavailRooms[a.Classroom.ID] {
			displaced = append(displaced, a)
		} else {
			kept = append(kept, a)
		}
	}

	toReschedule := coursesToReschedule(displaced, mutation.AdditionalCourses, courses)
	if len(toReschedule) == 0 {
		return Result{Assignments: kept}, nil
	}

	residualFaculty := residualFacultyList(faculty, unavailFaculty, kept)
	residualRooms := residualRoomList(rooms, unavailRooms, kept)

	produced, err := p.driver.Solve(ctx, toReschedule, residualFaculty, residualRooms, slots, cfg)
	var solverErr error
	if err != nil {
		if !appErrors.Is(err, appErrors.KindTriviallyInfeasible) && !appErrors.Is(err, appErrors.KindSolverInfeasible) {
			return Result{}, err
		}
		solverErr = err
		p.logger.Warn("repair solver re-run did not fully resolve the residual problem", zap.Error(err))
	}

	demand := make(map[string]int, len(toReschedule))
	for _, c := range toReschedule {
		demand[c.ID] = c.HoursPerWeek
	}
	for _, a := range produced {
		demand[a.Course.ID]--
	}

	greedyBindings := eligibility.Build(toReschedule, residualFaculty, residualRooms, slots)
	committedFaculty := consumedSlots(kept, produced, func(a domain.Assignment) string { return a.Faculty.ID })
	committedRooms := consumedSlots(kept, produced, func(a domain.Assignment) string { return a.Classroom.ID })

	var greedyProduced []domain.Assignment
	for _, b := range greedyBindings {
		remaining := demand[b.Course.ID]
		if remaining <= 0 {
			continue
		}
		if slotTaken(committedFaculty[b.Faculty.ID], b.Slot) || slotTaken(committedRooms[b.Classroom.ID], b.Slot) {
			continue
		}
		greedyProduced = append(greedyProduced, domain.Assignment{
			Course:    b.Course,
			Faculty:   b.Faculty,
			Classroom: b.Classroom,
			Slot:      b.Slot,
		})
		committedFaculty[b.Faculty.ID] = append(committedFaculty[b.Faculty.ID], b.Slot)
		committedRooms[b.Classroom.ID] = append(committedRooms[b.Classroom.ID], b.Slot)
		demand[b.Course.ID]--
	}

	var unscheduled []string
	for _, c := range toReschedule {
		if demand[c.ID] > 0 {
			unscheduled = append(unscheduled, c.ID)
		}
	}
	sort.Strings(unscheduled)

	result := Result{
		Assignments:          append(append(append([]domain.Assignment{}, kept...), produced...), greedyProduced...),
		UnscheduledCourseIDs: unscheduled,
	}

	if len(unscheduled) > 0 {
		return result, appErrors.Wrap(errOrNil(solverErr), appErrors.KindPartialRepair, "PARTIAL_REPAIR",
			"repair left some courses unscheduled after the greedy fallback")
	}
	return result, nil
}

func errOrNil(err error) error {
	if err != nil {
		return err
	}
	return appErrors.ErrPartialRepair
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// coursesToReschedule is the union of displaced assignments' courses and
// the additional courses, deduplicated by course id and looked up against
// the full course list so hours_per_week reflects the caller's authority.
func coursesToReschedule(displaced []domain.Assignment, additional []domain.Course, allCourses []domain.Course) []domain.Course {
	byID := make(map[string]domain.Course, len(allCourses))
	for _, c := range allCourses {
		byID[c.ID] = c
	}

	seen := make(map[string]bool)
	var out []domain.Course
	for _, a := range displaced {
		if seen[a.Course.ID] {
			continue
		}
		seen[a.Course.ID] = true
		if c, ok := byID[a.Course.ID]; ok {
			out = append(out, c)
		} else {
			out = append(out, a.Course)
		}
	}
	for _, c := range additional {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// residualFacultyList drops unavailable faculty and folds each kept
// assignment's slot into a copy of its faculty's unavailable_slots, so the
// eligibility filter and constraint builder treat already-committed hours
// as hard blockers without touching the caller's Faculty values.
func residualFacultyList(faculty []domain.Faculty, unavail map[string]bool, kept []domain.Assignment) []domain.Faculty {
	keptSlots := make(map[string][]domain.TimeSlot)
	for _, a := range kept {
		keptSlots[a.Faculty.ID] = append(keptSlots[a.Faculty.ID], a.Slot)
	}

	out := make([]domain.Faculty, 0, len(faculty))
	for _, f := range faculty {
		if unavail[f.ID] {
			continue
		}
		if extra := keptSlots[f.ID]; len(extra) > 0 {
			copied := f
			copied.UnavailableSlots = append(append([]domain.TimeSlot{}, f.UnavailableSlots...), extra...)
			out = append(out, copied)
			continue
		}
		out = append(out, f)
	}
	return out
}

// residualRoomList is residualFacultyList's counterpart for classrooms.
func residualRoomList(rooms []domain.Classroom, unavail map[string]bool, kept []domain.Assignment) []domain.Classroom {
	keptSlots := make(map[string][]domain.TimeSlot)
	for _, a := range kept {
		keptSlots[a.Classroom.ID] = append(keptSlots[a.Classroom.ID], a.Slot)
	}

	out := make([]domain.Classroom, 0, len(rooms))
	for _, r := range rooms {
		if unavail[r.ID] {
			continue
		}
		if extra := keptSlots[r.ID]; len(extra) > 0 {
			copied := r
			copied.UnavailableSlots = append(append([]domain.TimeSlot{}, r.UnavailableSlots...), extra...)
			out = append(out, copied)
			continue
		}
		out = append(out, r)
	}
	return out
}

// consumedSlots indexes the slots already committed to each resource id
// (by keyFn) across both kept and solver-produced assignments, so the
// greedy fallback never double-books a faculty or room.
func consumedSlots(kept, produced []domain.Assignment, keyFn func(domain.Assignment) string) map[string][]domain.TimeSlot {
	out := make(map[string][]domain.TimeSlot)
	for _, a := range kept {
		out[keyFn(a)] = append(out[keyFn(a)], a.Slot)
	}
	for _, a := range produced {
		out[keyFn(a)] = append(out[keyFn(a)], a.Slot)
	}
	return out
}

func slotTaken(slots []domain.TimeSlot, candidate domain.TimeSlot) bool {
	return candidate.OverlapsAny(slots)
}
