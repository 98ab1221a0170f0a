// Package solver wires the eligibility filter, constraint model builder and
// a solverbackend.Backend into a single call that turns entity collections
// into a list of domain.Assignment.
package solver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/constraintmodel"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/eligibility"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/metrics"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solvecache"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend"
	appErrors "github.com/ruthvika-29-11/AI-TimeTable/pkg/errors"
)

// Config governs a single Solve call.
type Config struct {
	Budget time.Duration
	Days   []domain.Weekday

	RespectFacultyPreferences    bool
	PrioritizeDepartmentGrouping bool
	DistributeCoursesEvenly      bool

	// CacheTTL, when positive and a cache is wired, controls how long a
	// solve's result is reused for an identical input fingerprint.
	CacheTTL time.Duration
}

// Driver runs the eligibility filter, constraint model builder and a
// solverbackend.Backend as one unit, optionally backed by a solvecache
// lookup to skip re-solving an identical input.
type Driver struct {
	backend solverbackend.Backend
	cache   solvecache.Cache
	metrics *metrics.Recorder
	logger  *zap.Logger
	name    string
}

// New wires a Driver. backend is required; cache, rec and logger may be
// nil, in which case caching is skipped, metrics become no-ops and
// logging goes to zap's no-op logger.
func New(backend solverbackend.Backend, cache solvecache.Cache, rec *metrics.Recorder, logger *zap.Logger, backendName string) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if backendName == "" {
		backendName = "unknown"
	}
	return &Driver{backend: backend, cache: cache, metrics: rec, logger: logger, name: backendName}
}

// Name returns the backend name this Driver was constructed with, for
// callers that want to attribute a solve (e.g. an audit record) to it.
func (d *Driver) Name() string {
	return d.name
}

// Solve builds the candidate binding set, the constraint model, and runs
// the wired backend under cfg.Budget. It returns an *appErrors.Error of kind
// KindTriviallyInfeasible (wrapping the *constraintmodel.InfeasibleCourseError
// that names the offending course ids) when a course has zero candidate
// bindings, and appErrors.ErrSolverInfeasible when the backend reports
// infeasibility or exhausts its budget without a feasible solution.
func (d *Driver) Solve(
	ctx context.Context,
	courses []domain.Course,
	faculty []domain.Faculty,
	rooms []domain.Classroom,
	slots []domain.TimeSlot,
	cfg Config,
) ([]domain.Assignment, error) {
	if len(courses) == 0 {
		return nil, nil
	}

	bindings := eligibility.Build(courses, faculty, rooms, slots)

	model, err := constraintmodel.Build(bindings, courses, constraintmodel.Config{
		RespectFacultyPreferences:    cfg.RespectFacultyPreferences,
		PrioritizeDepartmentGrouping: cfg.PrioritizeDepartmentGrouping,
		DistributeCoursesEvenly:      cfg.DistributeCoursesEvenly,
		Days:                         cfg.Days,
	})
	if err != nil {
		var infeasible *constraintmodel.InfeasibleCourseError
		if asInfeasible(err, &infeasible) {
			return nil, appErrors.Wrap(err, appErrors.KindTriviallyInfeasible, "TRIVIALLY_INFEASIBLE", fmt.Sprintf("course(s) have no candidate bindings: %v", infeasible.CourseIDs))
		}
		return nil, appErrors.Wrap(err, appErrors.KindInputMalformed, "INPUT_MALFORMED", "could not build constraint model")
	}

	key := fingerprint(bindings, cfg, d.name)

	if d.cache != nil {
		if result, ok := d.cache.Get(ctx, key); ok {
			d.metrics.RecordCacheLookup(true)
			d.logger.Debug("solve cache hit", zap.String("backend", d.name))
			return materialize(bindings, result), nil
		}
		d.metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	result, err := d.backend.Solve(ctx, model, cfg.Budget)
	duration := time.Since(start)
	if err != nil {
		d.metrics.ObserveSolve(d.name, "error", duration, len(bindings))
		return nil, appErrors.Wrap(err, appErrors.KindInternal, "INTERNAL_ERROR", "solver backend failed")
	}

	status := statusLabel(result.Status)
	d.metrics.ObserveSolve(d.name, status, duration, len(bindings))
	d.logger.Info("solve complete",
		zap.String("backend", d.name),
		zap.String("status", status),
		zap.Duration("duration", duration),
		zap.Int("bindings", len(bindings)),
	)

	if result.Status == solverbackend.StatusInfeasible || result.Status == solverbackend.StatusUnknown {
		return nil, appErrors.ErrSolverInfeasible
	}

	if d.cache != nil && cfg.CacheTTL > 0 {
		d.cache.Set(ctx, key, result, cfg.CacheTTL)
	}

	return materialize(bindings, result), nil
}

func materialize(bindings []eligibility.Binding, result solverbackend.Result) []domain.Assignment {
	assignments := make([]domain.Assignment, 0, len(bindings))
	for i, chosen := range result.BoolValues {
		if !chosen {
			continue
		}
		b := bindings[i]
		assignments = append(assignments, domain.Assignment{
			Course:    b.Course,
			Faculty:   b.Faculty,
			Classroom: b.Classroom,
			Slot:      b.Slot,
		})
	}
	return assignments
}

func statusLabel(s solverbackend.Status) string {
	switch s {
	case solverbackend.StatusOptimal:
		return "optimal"
	case solverbackend.StatusFeasible:
		return "feasible"
	case solverbackend.StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// fingerprint hashes everything that determines a solve's outcome: the
// candidate binding set (by tuple id, plus the per-binding inputs the model
// builder reads: hours_per_week, weekly cap, department and preference),
// the toggled config, and which backend will run it.
func fingerprint(bindings []eligibility.Binding, cfg Config, backendName string) string {
	type canonicalBinding struct {
		Course, Faculty, Room string
		Day                   int
		Start, End            int
		HoursPerWeek          int
		WeeklyHoursCap        int
		Department            string
		Preferred             bool
	}
	keys := make([]canonicalBinding, len(bindings))
	for i, b := range bindings {
		keys[i] = canonicalBinding{
			Course:  b.Course.ID,
			Faculty: b.Faculty.ID,
			Room:    b.Classroom.ID,
			Day:     int(b.Slot.Day),
			Start:   int(b.Slot.Start),
			End:     int(b.Slot.End),

			HoursPerWeek:   b.Course.HoursPerWeek,
			WeeklyHoursCap: b.Faculty.WeeklyHoursCap,
			Department:     b.Course.DepartmentID,
			Preferred:      b.Faculty.IsPreferred(b.Slot),
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Course != keys[j].Course {
			return keys[i].Course < keys[j].Course
		}
		if keys[i].Faculty != keys[j].Faculty {
			return keys[i].Faculty < keys[j].Faculty
		}
		if keys[i].Room != keys[j].Room {
			return keys[i].Room < keys[j].Room
		}
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Start < keys[j].Start
	})

	payload := struct {
		Backend  string
		Bindings any
		Cfg      Config
	}{Backend: backendName, Bindings: keys, Cfg: cfg}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func asInfeasible(err error, target **constraintmodel.InfeasibleCourseError) bool {
	if ic, ok := err.(*constraintmodel.InfeasibleCourseError); ok {
		*target = ic
		return true
	}
	return false
}
