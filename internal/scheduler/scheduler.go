// Package scheduler is the top-level facade: given entity collections it
// generates a conflict-free weekly timetable, and given a prior solution
// plus a mutation it repairs it incrementally.
package scheduler

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/history"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/metrics"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/repair"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/slotgrid"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solver"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solvecache"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend/ortools"
)

// Options supplies the ambient dependencies a Scheduler is built from. All
// fields are optional; zero values fall back to nil-safe defaults.
type Options struct {
	Backend     solverbackend.Backend
	BackendName string
	Cache       solvecache.Cache
	CacheTTL    time.Duration
	Metrics     *metrics.Recorder
	Logger      *zap.Logger
	History     *history.Repository
	Days        []domain.Weekday
}

// GenerateConfig mirrors the external Configuration surface: solver
// budget and the three soft-objective toggles.
type GenerateConfig struct {
	MaxTimeLimit                 time.Duration
	RespectFacultyPreferences    bool
	PrioritizeDepartmentGrouping bool
	DistributeCoursesEvenly      bool
}

// Scheduler holds the immutable inputs for one planning instance: faculty,
// classrooms, courses and departments are borrowed read-only for the
// lifetime of the instance. Concurrent calls to Generate or Repair on the
// same Scheduler are not supported; construct one per solve.
type Scheduler struct {
	faculty     []domain.Faculty
	classrooms  []domain.Classroom
	courses     []domain.Course
	departments []domain.Department
	slots       []domain.TimeSlot
	days        []domain.Weekday

	driver   *solver.Driver
	repairer *repair.Planner
	history  *history.Repository
	logger   *zap.Logger
	metrics  *metrics.Recorder
	cacheTTL time.Duration
	validate *validator.Validate
}

// New constructs a Scheduler over the given entity collections, using the
// default slot grid (weekdays Monday-Friday, hourly periods 08:00-18:00)
// until SetTimePeriods overrides it.
func New(faculty []domain.Faculty, classrooms []domain.Classroom, courses []domain.Course, departments []domain.Department, opts Options) (*Scheduler, error) {
	if opts.Backend == nil {
		opts.Backend = ortools.New()
	}
	if opts.BackendName == "" {
		opts.BackendName = "ortools"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = solvecache.NewMemory()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	days := opts.Days
	if len(days) == 0 {
		days = slotgrid.DefaultDays()
	}

	slots, err := slotgrid.Generate(days, slotgrid.DefaultPeriods())
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validateEntities(validate, faculty, classrooms, courses); err != nil {
		return nil, err
	}

	driver := solver.New(opts.Backend, opts.Cache, opts.Metrics, opts.Logger, opts.BackendName)
	repairer := repair.New(driver, opts.Metrics, opts.Logger)

	return &Scheduler{
		faculty:     faculty,
		classrooms:  classrooms,
		courses:     courses,
		departments: departments,
		slots:       slots,
		days:        days,
		driver:      driver,
		repairer:    repairer,
		history:     opts.History,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		cacheTTL:    opts.CacheTTL,
		validate:    validate,
	}, nil
}

// SetTimePeriods replaces the candidate slot grid. Call before Generate or
// Repair; it has no effect on assignments already produced.
func (s *Scheduler) SetTimePeriods(days []domain.Weekday, periods []slotgrid.Period) error {
	slots, err := slotgrid.Generate(days, periods)
	if err != nil {
		return err
	}
	s.slots = slots
	s.days = days
	return nil
}

// Generate runs the full pipeline (eligibility filter -> constraint model
// -> backend solve) and returns the resulting assignments, or an empty
// list if the solver exhausted its budget without a feasible solution.
func (s *Scheduler) Generate(ctx context.Context, cfg GenerateConfig) ([]domain.Assignment, error) {
	budget := cfg.MaxTimeLimit
	if budget <= 0 {
		budget = 60 * time.Second
	}

	start := time.Now()
	assignments, err := s.driver.Solve(ctx, s.courses, s.faculty, s.classrooms, s.slots, solver.Config{
		Budget:                       budget,
		Days:                         s.days,
		RespectFacultyPreferences:    cfg.RespectFacultyPreferences,
		PrioritizeDepartmentGrouping: cfg.PrioritizeDepartmentGrouping,
		DistributeCoursesEvenly:      cfg.DistributeCoursesEvenly,
		CacheTTL:                     s.cacheTTL,
	})
	s.recordHistory(ctx, "generate", time.Since(start), len(assignments), err)
	return assignments, err
}

// Repair handles faculty/classroom unavailability or injected courses
// against a prior solution, disabling all soft-objective toggles on the
// solver re-run (speed over quality in emergencies) and falling back to a
// deterministic greedy placer for anything still unresolved.
func (s *Scheduler) Repair(ctx context.Context, prior []domain.Assignment, mutation repair.Mutation) (repair.Result, error) {
	start := time.Now()
	result, err := s.repairer.Repair(ctx, prior, s.faculty, s.classrooms, s.courses, s.slots, mutation, solver.Config{
		Budget:   30 * time.Second,
		Days:     s.days,
		CacheTTL: s.cacheTTL,
	})
	s.recordHistory(ctx, "repair", time.Since(start), len(result.Assignments), err)
	return result, err
}

func (s *Scheduler) recordHistory(ctx context.Context, runKind string, duration time.Duration, bindingCount int, err error) {
	if s.history == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	if recErr := s.history.Record(ctx, history.Record{
		RunKind:      runKind,
		Backend:      s.driver.Name(),
		Status:       status,
		DurationMS:   duration.Milliseconds(),
		BindingCount: bindingCount,
	}); recErr != nil {
		s.logger.Warn("failed to record solve history", zap.Error(recErr))
	}
}
