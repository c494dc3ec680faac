package scene

import (
	"image"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/logger"
)

// Scene is one playable scene: its objects with found state, the rasters, and
// objective progress. It is the only place object state is mutated.
type Scene struct {
	def        Definition
	objects    []*Object
	background image.Image
	mask       image.Image
	tracker    *Tracker
}

// New creates a scene from a definition and its decoded rasters. Objects are
// copied, so the definition can be reused. rng shuffles the objective order
// once; pass nil to keep the authored order.
func New(def Definition, background, mask image.Image, rng *rand.Rand) *Scene {
	s := &Scene{
		def:        def,
		background: background,
		mask:       mask,
	}

	s.objects = make([]*Object, len(def.Objects))
	for i, o := range def.Objects {
		o.Color = strings.ToUpper(o.Color)
		o.Tags = append([]string(nil), o.Tags...)
		s.objects[i] = &o
	}
	s.tracker = NewTracker(s.objects, def.Objectives, rng)

	return s
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.def.Name
}

// Type returns the scene type.
func (s *Scene) Type() Type {
	return s.def.Type
}

// Definition returns the definition the scene was created from.
func (s *Scene) Definition() Definition {
	return s.def
}

// Objects returns all scene objects in authored order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Object looks up an object by name.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Background returns the background raster.
func (s *Scene) Background() image.Image {
	return s.background
}

// Mask returns the mask raster.
func (s *Scene) Mask() image.Image {
	return s.mask
}

// Size returns the scene size in world pixels, taken from the background
// (or the mask when no background is loaded).
func (s *Scene) Size() (w, h int) {
	switch {
	case s.background != nil:
		b := s.background.Bounds()
		return b.Dx(), b.Dy()
	case s.mask != nil:
		b := s.mask.Bounds()
		return b.Dx(), b.Dy()
	}
	return 0, 0
}

// Tracker returns the objective tracker.
func (s *Scene) Tracker() *Tracker {
	return s.tracker
}

// NextTarget returns the first unfound, positioned object of the active
// objective, or nil when nothing is left to find.
func (s *Scene) NextTarget() *Object {
	for _, o := range s.tracker.Active() {
		if !o.Found && o.Positioned {
			return o
		}
	}
	return nil
}

// MarkFoundByColor marks the first unfound object with the given color as
// found. It returns nil when no unfound object matches.
func (s *Scene) MarkFoundByColor(hex string) *Object {
	for _, o := range s.objects {
		if !o.Found && SameColor(o.Color, hex) {
			o.Found = true
			logger.Debug("object found",
				zap.String("scene", s.def.Name),
				zap.String("object", o.Name),
				zap.String("color", o.Color))
			return o
		}
	}
	return nil
}

// AllFound reports whether every object in the scene has been found.
func (s *Scene) AllFound() bool {
	return AllFound(s.objects)
}
