package scene

import (
	"math/rand/v2"
)

// Transition is the result of re-checking objective progress after a find.
type Transition int

const (
	// TransitionNone means the active objective is still incomplete,
	// or completion was already signalled.
	TransitionNone Transition = iota
	// TransitionAdvanced means the active objective completed and the next one is now active.
	TransitionAdvanced
	// TransitionAllComplete is signalled once, when the last objective completes.
	TransitionAllComplete
)

func (t Transition) String() string {
	switch t {
	case TransitionAdvanced:
		return "advanced"
	case TransitionAllComplete:
		return "all-complete"
	default:
		return "none"
	}
}

// ObjectsForObjective returns the objects whose tags intersect the objective's.
// A nil objective or one without tags selects every object.
func ObjectsForObjective(objects []*Object, obj *Objective) []*Object {
	if obj == nil || len(obj.Tags) == 0 {
		return objects
	}
	var out []*Object
	for _, o := range objects {
		if o.HasTag(obj.Tags...) {
			out = append(out, o)
		}
	}
	return out
}

// AllFound reports whether every object in the subset has been found.
func AllFound(objects []*Object) bool {
	for _, o := range objects {
		if !o.Found {
			return false
		}
	}
	return true
}

// ObjectiveProgress summarizes one objective for status display.
type ObjectiveProgress struct {
	Title string
	Emoji string
	Found int
	Total int
}

// Tracker walks an ordered objective list as objects are found.
// A scene without objectives behaves as one implicit objective covering all objects.
type Tracker struct {
	objects    []*Object
	objectives []Objective
	index      int
	complete   bool
}

// NewTracker creates a tracker. When rng is non-nil and there is more than one
// objective, the order is shuffled once here and fixed afterwards.
func NewTracker(objects []*Object, objectives []Objective, rng *rand.Rand) *Tracker {
	ordered := append([]Objective(nil), objectives...)
	if rng != nil && len(ordered) > 1 {
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return &Tracker{objects: objects, objectives: ordered}
}

// Index returns the index of the active objective.
func (t *Tracker) Index() int {
	return t.index
}

// Objectives returns the objectives in play order.
func (t *Tracker) Objectives() []Objective {
	return t.objectives
}

// Current returns the active objective, or nil when the scene has none.
func (t *Tracker) Current() *Objective {
	if len(t.objectives) == 0 {
		return nil
	}
	return &t.objectives[t.index]
}

// Active returns the objects of the active objective.
func (t *Tracker) Active() []*Object {
	return ObjectsForObjective(t.objects, t.Current())
}

// Complete reports whether the terminal signal has fired.
func (t *Tracker) Complete() bool {
	return t.complete
}

// OnFound re-checks the active objective after a successful find. It advances
// past every completed objective and returns TransitionAllComplete exactly once.
func (t *Tracker) OnFound() Transition {
	if t.complete {
		return TransitionNone
	}

	result := TransitionNone
	for AllFound(t.Active()) {
		if t.index+1 < len(t.objectives) {
			t.index++
			result = TransitionAdvanced
			continue
		}
		t.complete = true
		return TransitionAllComplete
	}
	return result
}

// Progress reports found/total counts for every objective in play order.
func (t *Tracker) Progress() []ObjectiveProgress {
	out := make([]ObjectiveProgress, 0, len(t.objectives))
	for i := range t.objectives {
		obj := &t.objectives[i]
		group := ObjectsForObjective(t.objects, obj)
		p := ObjectiveProgress{Title: obj.Title, Emoji: obj.Emoji, Total: len(group)}
		for _, o := range group {
			if o.Found {
				p.Found++
			}
		}
		out = append(out, p)
	}
	return out
}
