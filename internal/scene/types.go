// Package scene holds scene definitions, mask segmentation and objective tracking.
package scene

import (
	"slices"

	"github.com/Faultbox/wildsnap/pkg/math"
)

// Type selects the capture flow a scene is played with.
type Type string

const (
	// TypePhoto uses the shutter, cooldown and nudge flow.
	TypePhoto Type = "photo"
	// TypeWimmelbild resolves directly on pointer tap.
	TypeWimmelbild Type = "wimmelbild"
)

// Valid reports whether t is a known scene type.
func (t Type) Valid() bool {
	return t == TypePhoto || t == TypeWimmelbild
}

// Object is a hidden object identified by its mask color.
type Object struct {
	Name  string
	Color string // canonical "#RRGGBB"
	Tags  []string
	Found bool

	// Derived from the mask by ExtractPositions.
	X, Y       float64
	Radius     float64
	Positioned bool
}

// Center returns the object centroid in world pixels.
func (o *Object) Center() math.Vec2 {
	return math.Vec2{X: o.X, Y: o.Y}
}

// HasTag reports whether the object carries any of tags.
func (o *Object) HasTag(tags ...string) bool {
	for _, t := range tags {
		if slices.Contains(o.Tags, t) {
			return true
		}
	}
	return false
}

// Objective is an ordered group of objects selected by tag.
type Objective struct {
	Title string
	Tags  []string
	Emoji string
}

// Label returns the emoji if set, otherwise the title.
func (o Objective) Label() string {
	if o.Emoji != "" {
		return o.Emoji
	}
	return o.Title
}

// Definition is the canonical scene record.
type Definition struct {
	Name       string
	Type       Type
	Image      string // optional background file override
	Objects    []Object
	Objectives []Objective
}
