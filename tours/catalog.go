package tours

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dylan/spotlight/tour"
)

// ErrInvalidStep is wrapped by every validation failure in a catalog file.
var ErrInvalidStep = errors.New("invalid step")

// Catalog maps features to step factories.
type Catalog struct {
	factories map[tour.Feature]tour.StepFactory
}

func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[tour.Feature]tour.StepFactory)}
}

// Set registers (or replaces) the factory for f.
func (c *Catalog) Set(f tour.Feature, factory tour.StepFactory) {
	c.factories[f] = factory
}

// Factory returns the factory for f, or nil.
func (c *Catalog) Factory(f tour.Feature) tour.StepFactory {
	if c == nil {
		return nil
	}
	return c.factories[f]
}

// Steps resolves f's step list now.
func (c *Catalog) Steps(f tour.Feature) []tour.Step {
	if fn := c.Factory(f); fn != nil {
		return fn()
	}
	return nil
}

// Features lists the catalog's features in name order.
func (c *Catalog) Features() []tour.Feature {
	out := make([]tour.Feature, 0, len(c.factories))
	for f := range c.factories {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge returns a new catalog with o's features layered over c's.
func (c *Catalog) Merge(o *Catalog) *Catalog {
	out := NewCatalog()
	for f, fn := range c.factories {
		out.factories[f] = fn
	}
	if o != nil {
		for f, fn := range o.factories {
			out.factories[f] = fn
		}
	}
	return out
}

// Without drops the named features.
func (c *Catalog) Without(features ...tour.Feature) *Catalog {
	out := c.Merge(nil)
	for _, f := range features {
		delete(out.factories, f)
	}
	return out
}

type fileStep struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Action      string   `yaml:"action,omitempty"`
	Target      string   `yaml:"target,omitempty"`
	Position    string   `yaml:"position,omitempty"`
	Requires    []string `yaml:"requires,omitempty"`
}

type catalogFile struct {
	Tours map[string][]fileStep `yaml:"tours"`
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog:
//
//	tours:
//	  planner:
//	    - id: list
//	      title: Your tasks
//	      description: Scroll to review.
//	      target: planner.list
//	      position: bottom
//	      requires: [planner.list]
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := NewCatalog()
	for name, raw := range cf.Tours {
		if name == "" {
			return nil, fmt.Errorf("%w: empty feature name", ErrInvalidStep)
		}
		steps, err := convertSteps(raw)
		if err != nil {
			return nil, fmt.Errorf("tour %q: %w", name, err)
		}
		c.Set(tour.Feature(name), func() []tour.Step {
			out := make([]tour.Step, len(steps))
			copy(out, steps)
			return out
		})
	}
	return c, nil
}

func convertSteps(raw []fileStep) ([]tour.Step, error) {
	seen := make(map[string]bool, len(raw))
	steps := make([]tour.Step, 0, len(raw))
	for i, fs := range raw {
		if fs.ID == "" {
			return nil, fmt.Errorf("%w: step %d has no id", ErrInvalidStep, i)
		}
		if seen[fs.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidStep, fs.ID)
		}
		seen[fs.ID] = true
		if fs.Title == "" {
			return nil, fmt.Errorf("%w: step %q has no title", ErrInvalidStep, fs.ID)
		}

		action := tour.Action(fs.Action)
		switch action {
		case tour.ActionNone, tour.ActionTap, tour.ActionSwipe, tour.ActionLook:
		default:
			return nil, fmt.Errorf("%w: step %q has unknown action %q", ErrInvalidStep, fs.ID, fs.Action)
		}

		if fs.Target == "" {
			if fs.Position != "" && tour.Position(fs.Position) != tour.PositionCenter {
				return nil, fmt.Errorf("%w: step %q sets position without a target", ErrInvalidStep, fs.ID)
			}
			if len(fs.Requires) > 0 {
				return nil, fmt.Errorf("%w: step %q sets requires without a target", ErrInvalidStep, fs.ID)
			}
			steps = append(steps, tour.Centered(fs.ID, fs.Title, fs.Description).WithAction(action))
			continue
		}

		pos := tour.Position(fs.Position)
		if pos == "" {
			pos = tour.PositionBottom
		}
		if !pos.Valid() {
			return nil, fmt.Errorf("%w: step %q has unknown position %q", ErrInvalidStep, fs.ID, fs.Position)
		}
		s := tour.Anchored(fs.ID, fs.Target, pos, fs.Title, fs.Description).WithAction(action)
		if len(fs.Requires) > 0 {
			s = s.When(allPresent(fs.Requires))
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func allPresent(locators []string) tour.Condition {
	locs := append([]string(nil), locators...)
	return func(q tour.Query) bool {
		for _, l := range locs {
			if !tour.TargetPresent(l)(q) {
				return false
			}
		}
		return true
	}
}
