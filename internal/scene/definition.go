package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wildsnap/internal/logger"
)

var (
	// ErrInvalidSceneType is returned for a sceneType other than photo or wimmelbild.
	ErrInvalidSceneType = errors.New("invalid scene type")
	// ErrInvalidColor is returned for an object color that is not #RRGGBB.
	ErrInvalidColor = errors.New("invalid object color")
	// ErrDuplicateColor is reported by Validate when two objects share a color.
	ErrDuplicateColor = errors.New("duplicate object color")
	// ErrDuplicateName is reported by Validate when two objects share a name.
	ErrDuplicateName = errors.New("duplicate object name")
)

// rawDefinition mirrors the authored scene file. Objects may be listed under
// "objects" or "animals", and an objective may give a single "tag" or a "tags"
// list.
type rawDefinition struct {
	Name       string         `json:"name" yaml:"name"`
	SceneType  string         `json:"sceneType" yaml:"sceneType"`
	Image      string         `json:"image" yaml:"image"`
	Objects    []rawObject    `json:"objects" yaml:"objects"`
	Animals    []rawObject    `json:"animals" yaml:"animals"`
	Objectives []rawObjective `json:"objectives" yaml:"objectives"`
}

type rawObject struct {
	Name  string   `json:"name" yaml:"name"`
	Color string   `json:"color" yaml:"color"`
	Tags  []string `json:"tags" yaml:"tags"`
	Found bool     `json:"found" yaml:"found"`
}

type rawObjective struct {
	Title string   `json:"title" yaml:"title"`
	Tag   string   `json:"tag" yaml:"tag"`
	Tags  []string `json:"tags" yaml:"tags"`
	Emoji string   `json:"emoji" yaml:"emoji"`
}

// DecodeJSON reads a scene definition in the JSON scene-file format.
func DecodeJSON(r io.Reader) (Definition, error) {
	var raw rawDefinition
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Definition{}, fmt.Errorf("decoding scene json: %w", err)
	}
	return raw.normalize()
}

// DecodeYAML reads a scene definition written as YAML.
func DecodeYAML(r io.Reader) (Definition, error) {
	var raw rawDefinition
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return Definition{}, fmt.Errorf("decoding scene yaml: %w", err)
	}
	return raw.normalize()
}

// normalize migrates legacy field names into the canonical Definition.
func (raw rawDefinition) normalize() (Definition, error) {
	def := Definition{
		Name:  raw.Name,
		Type:  Type(raw.SceneType),
		Image: raw.Image,
	}
	if def.Type == "" {
		def.Type = TypePhoto
	}
	if !def.Type.Valid() {
		return Definition{}, fmt.Errorf("%w: %q", ErrInvalidSceneType, raw.SceneType)
	}

	objects := raw.Objects
	if len(objects) == 0 {
		objects = raw.Animals
	} else if len(raw.Animals) > 0 {
		logger.Warn("scene lists both objects and animals, using objects",
			zap.String("scene", raw.Name))
	}

	def.Objects = make([]Object, 0, len(objects))
	for _, o := range objects {
		color, err := NormalizeHex(o.Color)
		if err != nil {
			return Definition{}, fmt.Errorf("object %q: %w", o.Name, err)
		}
		def.Objects = append(def.Objects, Object{
			Name:  o.Name,
			Color: color,
			Tags:  append([]string(nil), o.Tags...),
			Found: o.Found,
		})
	}

	def.Objectives = make([]Objective, 0, len(raw.Objectives))
	for _, o := range raw.Objectives {
		tags := append([]string(nil), o.Tags...)
		if len(tags) == 0 && o.Tag != "" {
			tags = []string{o.Tag}
		}
		def.Objectives = append(def.Objectives, Objective{
			Title: o.Title,
			Tags:  tags,
			Emoji: o.Emoji,
		})
	}

	return def, nil
}

// Validate checks authoring invariants that the game itself tolerates:
// object names and colors must be unique within a scene.
func Validate(def Definition) error {
	var errs []error
	if !def.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSceneType, def.Type))
	}

	names := make(map[string]bool, len(def.Objects))
	colors := make(map[string]string, len(def.Objects))
	for _, o := range def.Objects {
		if names[o.Name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, o.Name))
		}
		names[o.Name] = true

		key := strings.ToUpper(o.Color)
		if prev, ok := colors[key]; ok {
			errs = append(errs, fmt.Errorf("%w: %s used by %q and %q", ErrDuplicateColor, key, prev, o.Name))
			continue
		}
		colors[key] = o.Name
	}
	return errors.Join(errs...)
}
