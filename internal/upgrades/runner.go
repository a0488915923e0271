package upgrades

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/repository"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// Result reports what a profile upgrade did.
type Result struct {
	Profile string   `json:"profile"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Applied []string `json:"applied"`
}

// Runner applies registered steps and records profile versions.
type Runner struct {
	registry *Registry
	versions repository.ProfileVersionRepository
	logger   *zap.Logger
}

// NewRunner builds a runner.
func NewRunner(registry *Registry, versions repository.ProfileVersionRepository, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, versions: versions, logger: logger}
}

// Registry returns the step registry.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// CurrentVersion returns the installed version of profile.
func (r *Runner) CurrentVersion(ctx context.Context, profile string) (string, error) {
	version, err := r.versions.Get(ctx, profile)
	if errors.Is(err, repository.ErrNotFound) {
		return BaseVersion, nil
	}
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return version, nil
}

// Pending returns the chain of steps leading from the installed version.
func (r *Runner) Pending(ctx context.Context, profile string) ([]Step, error) {
	current, err := r.CurrentVersion(ctx, profile)
	if err != nil {
		return nil, err
	}
	steps := r.registry.Steps(profile)
	var pending []Step
	for _, step := range steps {
		if step.Source == current {
			pending = append(pending, step)
			current = step.Destination
		}
	}
	return pending, nil
}

// Run applies every pending step of profile in order. The profile version
// is recorded after each successful step; the first failure stops the run.
func (r *Runner) Run(ctx context.Context, profile string) (*Result, error) {
	pending, err := r.Pending(ctx, profile)
	if err != nil {
		return nil, err
	}
	from, err := r.CurrentVersion(ctx, profile)
	if err != nil {
		return nil, err
	}
	result := &Result{Profile: profile, From: from, To: from, Applied: []string{}}
	for _, step := range pending {
		if err := r.apply(ctx, step); err != nil {
			return result, err
		}
		if err := r.versions.Set(ctx, profile, step.Destination); err != nil {
			return result, apperrors.MapError(err)
		}
		result.To = step.Destination
		result.Applied = append(result.Applied, step.ID)
	}
	r.logger.Info("profile upgraded",
		zap.String("profile", profile),
		zap.String("from", result.From),
		zap.String("to", result.To),
		zap.Int("steps", len(result.Applied)))
	return result, nil
}

// RunStep runs one step by id without touching the profile version.
func (r *Runner) RunStep(ctx context.Context, id string) error {
	step, ok := r.registry.Get(id)
	if !ok {
		return apperrors.NewNotFound("upgrade step", map[string]any{"step": id})
	}
	return r.apply(ctx, step)
}

func (r *Runner) apply(ctx context.Context, step Step) error {
	r.logger.Info("running upgrade step",
		zap.String("step", step.ID),
		zap.String("profile", step.Profile),
		zap.String("source", step.Source),
		zap.String("destination", step.Destination))
	if err := step.Handler(ctx); err != nil {
		return fmt.Errorf("upgrade step %s: %w", step.ID, err)
	}
	return nil
}
