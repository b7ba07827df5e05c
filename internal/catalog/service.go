package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=catalog_test

type customRepo interface {
	Add(ctx context.Context, exercise CustomExercise) (*CustomExercise, error)
	List(ctx context.Context, userID string) ([]CustomExercise, error)
	Delete(ctx context.Context, userID string, id int) error
}

type exerciseCatalog interface {
	Exercises(ctx context.Context) []CatalogExercise
}

type Service struct {
	repo    customRepo
	catalog exerciseCatalog
	now     func() time.Time
}

func NewService(repo customRepo, catalog exerciseCatalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *Service) AddCustom(ctx context.Context, userID, name string, muscles []string) (*CustomExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name cannot be empty", ErrInvalidExercise)
	}

	return s.repo.Add(ctx, CustomExercise{
		UserID:    userID,
		Name:      name,
		Muscles:   cleanMuscles(muscles),
		CreatedAt: s.now(),
	})
}

func (s *Service) ListCustom(ctx context.Context, userID string) ([]CustomExercise, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) DeleteCustom(ctx context.Context, userID string, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

// MuscleMap maps exercise names to the muscles they work. The user's custom
// exercises take precedence over the catalog.
func (s *Service) MuscleMap(ctx context.Context, userID string) (_ workouts.ExerciseMuscleMap, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.muscleMap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	custom, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list custom exercises: %w", err)
	}

	muscles := make(workouts.ExerciseMuscleMap)
	for _, ex := range custom {
		muscles[ex.Name] = ex.Muscles
	}

	for _, ex := range s.catalog.Exercises(ctx) {
		if _, ok := muscles[ex.Name]; ok {
			continue
		}
		if ex.Target == "" {
			muscles[ex.Name] = []string{}
		} else {
			muscles[ex.Name] = []string{ex.Target}
		}
	}

	return muscles, nil
}

// Options lists the exercises a session can be logged with: the user's custom
// exercises and the catalog ones not shadowed by a custom name.
func (s *Service) Options(ctx context.Context, userID string) (_ []Option, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.options")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	custom, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list custom exercises: %w", err)
	}

	options := make([]Option, 0, len(custom))
	customLabels := make(map[string]bool, len(custom))
	for _, ex := range custom {
		options = append(options, Option{
			Value:  "custom_" + strconv.Itoa(ex.ID),
			Label:  ex.Name,
			Source: "custom",
		})
		customLabels[ex.Name] = true
	}

	for _, ex := range s.catalog.Exercises(ctx) {
		if customLabels[ex.Name] {
			continue
		}
		options = append(options, Option{
			Value:  "api_" + ex.ID,
			Label:  ex.Name,
			Source: "api",
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return strings.ToLower(options[i].Label) < strings.ToLower(options[j].Label)
	})

	return options, nil
}
