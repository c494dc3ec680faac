package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/wildsnap/internal/logger"
	"github.com/Faultbox/wildsnap/internal/scene"
)

// templateDir holds example scenes that are never listed.
const templateDir = "template"

// Entry is one playable scene in the catalog.
type Entry struct {
	Name  string
	Title string
	Type  scene.Type
	Image string
	Mask  string
}

// Group is the catalog entries of one scene type.
type Group struct {
	Type    scene.Type
	Title   string
	Entries []Entry
}

var groupTitles = map[scene.Type]string{
	scene.TypePhoto:      "Photo scenes",
	scene.TypeWimmelbild: "Wimmelbild scenes",
}

var titleCaser = cases.Title(language.English)

// PrettyName turns a scene file name into a display title.
func PrettyName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// SceneNames lists the scene names with a definition file in the scenes
// directory, sorted. Files under template directories are skipped.
func (m *Manager) SceneNames() ([]string, error) {
	seen := make(map[string]bool)
	err := fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.EqualFold(d.Name(), templateDir) {
				logger.Debug("skipping template directory", zap.String("path", p))
				return fs.SkipDir
			}
			return nil
		}
		// Only the top level is playable; nested files are ignored.
		if path.Dir(p) != "." {
			return nil
		}
		ext := path.Ext(p)
		if slices.Contains(definitionExts, ext) {
			seen[strings.TrimSuffix(p, ext)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning scenes: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Catalog lists playable scenes grouped by type, photo scenes first. Scenes
// that fail Validate are left out and logged.
func (m *Manager) Catalog() ([]Group, error) {
	names, err := m.SceneNames()
	if err != nil {
		return nil, err
	}

	byType := make(map[scene.Type][]Entry)
	for _, name := range names {
		entry, err := m.entry(name)
		if err != nil {
			logger.Warn("scene skipped", zap.String("scene", name), zap.Error(err))
			continue
		}
		byType[entry.Type] = append(byType[entry.Type], entry)
	}

	var groups []Group
	for _, t := range []scene.Type{scene.TypePhoto, scene.TypeWimmelbild} {
		if len(byType[t]) == 0 {
			continue
		}
		groups = append(groups, Group{Type: t, Title: groupTitles[t], Entries: byType[t]})
	}
	return groups, nil
}

func (m *Manager) entry(name string) (Entry, error) {
	if err := m.Validate(name); err != nil {
		return Entry{}, err
	}
	def, err := m.Definition(name)
	if err != nil {
		return Entry{}, err
	}
	img, err := m.ImageFile(name, def)
	if err != nil {
		return Entry{}, err
	}
	mask, err := m.MaskFile(name)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Name:  name,
		Title: PrettyName(name),
		Type:  def.Type,
		Image: img,
		Mask:  mask,
	}, nil
}

// Validate checks one scene's files: definition, image and mask exist, the
// definition passes scene.Validate, and every object color occurs in the mask.
// All problems are reported together.
func (m *Manager) Validate(name string) error {
	def, err := m.Definition(name)
	if err != nil {
		return err
	}

	var errs []error
	if err := scene.Validate(def); err != nil {
		errs = append(errs, err)
	}
	if _, err := m.ImageFile(name, def); err != nil {
		errs = append(errs, err)
	}

	maskFile, err := m.MaskFile(name)
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	mask, err := m.Image(maskFile)
	if err != nil {
		return errors.Join(append(errs, err)...)
	}

	colors := scene.Segment(mask)
	for _, o := range def.Objects {
		if _, ok := colors[o.Color]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s (%s)", ErrColorNotInMask, o.Color, o.Name))
		}
	}
	return errors.Join(errs...)
}
