package tweak

import "fmt"

// Registry is an immutable, declaration-ordered catalog of tweaks.
// It has no side effects and no failure modes after construction.
type Registry struct {
	tweaks []Tweak
	byID   map[string]Tweak
}

// NewRegistry builds a registry from the given definitions.
// IDs must be unique across the whole catalog.
func NewRegistry(tweaks []Tweak) (*Registry, error) {
	r := &Registry{
		tweaks: make([]Tweak, 0, len(tweaks)),
		byID:   make(map[string]Tweak, len(tweaks)),
	}
	for _, t := range tweaks {
		if t.ID == "" {
			return nil, fmt.Errorf("tweak %q has empty id", t.Name)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tweak id %q", t.ID)
		}
		nt := t.normalized()
		r.tweaks = append(r.tweaks, nt)
		r.byID[nt.ID] = nt
	}
	return r, nil
}

// Default returns a registry containing the built-in catalog.
func Default() *Registry {
	r, err := NewRegistry(catalog)
	if err != nil {
		// The built-in catalog is validated by tests; a bad entry is a
		// programming error.
		panic(err)
	}
	return r
}

// List returns all tweaks in declaration order. The returned slice is a copy.
func (r *Registry) List() []Tweak {
	out := make([]Tweak, len(r.tweaks))
	copy(out, r.tweaks)
	return out
}

// ByID looks up a tweak by its identifier.
func (r *Registry) ByID(id string) (Tweak, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Select resolves ids to tweaks, preserving registry declaration order.
// Unknown ids produce an error so callers cannot silently request
// nonexistent tweaks.
func (r *Registry) Select(ids []string) ([]Tweak, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("unknown tweak id %q", id)
		}
		want[id] = true
	}
	out := make([]Tweak, 0, len(want))
	for _, t := range r.tweaks {
		if want[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Group pairs a category with its tweaks for display.
type Group struct {
	Category Category `json:"category"`
	Tweaks   []Tweak  `json:"tweaks"`
}

// Grouped returns tweaks grouped by category following the fixed category
// order. Categories with no tweaks are omitted.
func (r *Registry) Grouped() []Group {
	groups := make([]Group, 0, len(Categories))
	for _, c := range Categories {
		var ts []Tweak
		for _, t := range r.tweaks {
			if t.Category == c {
				ts = append(ts, t)
			}
		}
		if len(ts) > 0 {
			groups = append(groups, Group{Category: c, Tweaks: ts})
		}
	}
	return groups
}
