// Package upgrades runs versioned maintenance steps against the portal.
package upgrades

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// DefaultProfile is the setup profile of the intranet package.
const DefaultProfile = "lactec.intranet:default"

// BaseVersion is the version of a profile no step has run for yet.
const BaseVersion = "1000"

// Handler performs one upgrade step.
type Handler func(ctx context.Context) error

// Step moves a profile from Source to Destination.
type Step struct {
	ID          string  `json:"id"`
	Profile     string  `json:"profile"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Title       string  `json:"title"`
	Handler     Handler `json:"-"`
}

// Registry holds the known upgrade steps.
type Registry struct {
	mu    sync.RWMutex
	steps map[string]Step
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string]Step)}
}

// Register adds a step. Versions are integers and must increase.
func (r *Registry) Register(step Step) error {
	if step.ID == "" || step.Profile == "" || step.Handler == nil {
		return fmt.Errorf("upgrade step needs id, profile and handler")
	}
	source, err := strconv.Atoi(step.Source)
	if err != nil {
		return fmt.Errorf("step %s: invalid source version %q", step.ID, step.Source)
	}
	destination, err := strconv.Atoi(step.Destination)
	if err != nil {
		return fmt.Errorf("step %s: invalid destination version %q", step.ID, step.Destination)
	}
	if destination <= source {
		return fmt.Errorf("step %s: destination %s must be greater than source %s", step.ID, step.Destination, step.Source)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.steps[step.ID]; dup {
		return fmt.Errorf("step %s already registered", step.ID)
	}
	r.steps[step.ID] = step
	return nil
}

// Get looks up a step by id.
func (r *Registry) Get(id string) (Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	step, ok := r.steps[id]
	return step, ok
}

// Steps lists the steps of a profile ordered by source version.
func (r *Registry) Steps(profile string) []Step {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var steps []Step
	for _, step := range r.steps {
		if step.Profile == profile {
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		si, _ := strconv.Atoi(steps[i].Source)
		sj, _ := strconv.Atoi(steps[j].Source)
		if si != sj {
			return si < sj
		}
		return steps[i].ID < steps[j].ID
	})
	return steps
}

// Profiles lists the profiles with registered steps.
func (r *Registry) Profiles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, step := range r.steps {
		seen[step.Profile] = struct{}{}
	}
	profiles := make([]string, 0, len(seen))
	for profile := range seen {
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)
	return profiles
}
