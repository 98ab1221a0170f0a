// Command scheduler-demo builds a small sample timetable instance, runs a
// generate followed by a repair, and prints the result as CSV. It exists
// to exercise the scheduler package end to end; it is not a server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/export"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/metrics"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/repair"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/scheduler"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solvecache"
	"github.com/ruthvika-29-11/AI-TimeTable/pkg/cache"
	"github.com/ruthvika-29-11/AI-TimeTable/pkg/config"
	"github.com/ruthvika-29-11/AI-TimeTable/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	rec := metrics.New()

	faculty, classrooms, courses, departments := sampleInstance()

	var solveCache solvecache.Cache
	if cfg.Scheduler.UseCache && cfg.Scheduler.UseRedisCache {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, falling back to in-process cache", "error", err)
			solveCache = solvecache.NewMemory()
		} else {
			solveCache = solvecache.NewRedis(redisClient, "scheduler:")
		}
	} else if cfg.Scheduler.UseCache {
		solveCache = solvecache.NewMemory()
	}

	s, err := scheduler.New(faculty, classrooms, courses, departments, scheduler.Options{
		Metrics: rec,
		Logger:  logr,
		Cache:   solveCache,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to construct scheduler", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.MaxTimeLimit+5*time.Second)
	defer cancel()

	assignments, err := s.Generate(ctx, scheduler.GenerateConfig{
		MaxTimeLimit:                 cfg.Scheduler.MaxTimeLimit,
		RespectFacultyPreferences:    cfg.Scheduler.RespectFacultyPreferences,
		PrioritizeDepartmentGrouping: cfg.Scheduler.PrioritizeDepartmentGrouping,
		DistributeCoursesEvenly:      cfg.Scheduler.DistributeCoursesEvenly,
	})
	if err != nil {
		logr.Sugar().Fatalw("generate failed", "error", err)
	}
	logr.Sugar().Infow("generated timetable", "assignments", len(assignments))

	result, err := s.Repair(ctx, assignments, repair.Mutation{
		UnavailableFacultyIDs: []string{faculty[0].ID},
	})
	if err != nil {
		logr.Sugar().Warnw("repair reported an issue", "error", err, "unscheduled", result.UnscheduledCourseIDs)
	}

	dataset := export.BuildDataset(result.Assignments)
	csv, err := export.NewCSVExporter().Render(dataset)
	if err != nil {
		logr.Sugar().Fatalw("csv export failed", "error", err)
	}

	if _, err := os.Stdout.Write(csv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sampleInstance() ([]domain.Faculty, []domain.Classroom, []domain.Course, []domain.Department) {
	departments := []domain.Department{
		{ID: "dept-cs", Name: "Computer Science", Code: "CS"},
	}
	faculty := []domain.Faculty{
		{ID: "f1", Name: "Dr. Ada Lovelace", Title: "Professor", DepartmentID: "dept-cs", WeeklyHoursCap: 10, Expertise: tagSet("AI", "Algorithms")},
		{ID: "f2", Name: "Dr. Grace Hopper", Title: "Associate Professor", DepartmentID: "dept-cs", WeeklyHoursCap: 10, Expertise: tagSet("Compilers", "Algorithms")},
	}
	classrooms := []domain.Classroom{
		{ID: "r1", Name: "Hall A", Building: "Main", Capacity: 40, RoomType: domain.RoomLecture},
		{ID: "r2", Name: "Lab 1", Building: "Annex", Capacity: 25, RoomType: domain.RoomLab, Facilities: tagSet("Projector")},
	}
	courses := []domain.Course{
		{ID: "c1", Code: "CS101", Name: "Intro to Algorithms", DepartmentID: "dept-cs", HoursPerWeek: 3, RequiredRoomType: domain.RoomLecture, MinCapacity: 20, FacultyRequirements: tagSet("Algorithms")},
		{ID: "c2", Code: "CS201", Name: "Compiler Design", DepartmentID: "dept-cs", HoursPerWeek: 2, RequiredRoomType: domain.RoomLab, MinCapacity: 15, RequiredFacilities: tagSet("Projector"), FacultyRequirements: tagSet("Compilers")},
	}
	return faculty, classrooms, courses, departments
}

func tagSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
