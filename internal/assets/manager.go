// Package assets loads scene definitions and rasters and lists the scenes
// available to play.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/Faultbox/wildsnap/internal/logger"
	"github.com/Faultbox/wildsnap/internal/scene"
)

var (
	// ErrSceneNotFound is returned when no definition file exists for a scene.
	ErrSceneNotFound = errors.New("scene not found")
	// ErrMaskMissing is returned when a scene has no mask raster.
	ErrMaskMissing = errors.New("scene mask missing")
	// ErrImageMissing is returned when a scene has no background raster.
	ErrImageMissing = errors.New("scene image missing")
	// ErrColorNotInMask is reported by Validate for an object color the mask lacks.
	ErrColorNotInMask = errors.New("color not found in mask")
)

// File name conventions inside the scenes directory.
var (
	definitionExts = []string{".json", ".yaml", ".yml"}
	imageExts      = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"}
	maskExts       = []string{".png", ".webp", ".bmp", ".gif"}
)

// MaskSuffix is appended to the scene name for the mask file.
const MaskSuffix = "_mask"

// Bundle is everything needed to start a scene.
type Bundle struct {
	Definition scene.Definition
	Background image.Image
	Mask       image.Image
}

// Manager loads scene assets from a directory tree.
type Manager struct {
	fsys  fs.FS
	root  string
	cache *Cache
}

// NewManager creates a manager reading <basePath>/<dir>.
func NewManager(basePath, dir string) *Manager {
	root := filepath.Join(basePath, dir)
	return &Manager{
		fsys:  os.DirFS(root),
		root:  root,
		cache: NewCache(),
	}
}

// NewManagerFS creates a manager over an arbitrary file system whose root is
// the scenes directory.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		root:  ".",
		cache: NewCache(),
	}
}

// Root returns the scenes directory the manager reads from.
func (m *Manager) Root() string {
	return m.root
}

// Cache returns the file cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Read loads a file relative to the scenes directory.
func (m *Manager) Read(name string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	m.cache.Set(name, data)
	return data, nil
}

// Exists reports whether a file exists relative to the scenes directory.
func (m *Manager) Exists(name string) bool {
	_, err := fs.Stat(m.fsys, name)
	return err == nil
}

// DefinitionFile returns the definition file for a scene.
func (m *Manager) DefinitionFile(name string) (string, error) {
	if f := m.firstExisting(name, definitionExts); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSceneNotFound, name)
}

// Definition loads and normalizes a scene definition. JSON is tried before YAML.
func (m *Manager) Definition(name string) (scene.Definition, error) {
	file, err := m.DefinitionFile(name)
	if err != nil {
		return scene.Definition{}, err
	}
	data, err := m.Read(file)
	if err != nil {
		return scene.Definition{}, err
	}

	var def scene.Definition
	if path.Ext(file) == ".json" {
		def, err = scene.DecodeJSON(bytes.NewReader(data))
	} else {
		def, err = scene.DecodeYAML(bytes.NewReader(data))
	}
	if err != nil {
		return scene.Definition{}, fmt.Errorf("scene %s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = name
	}
	return def, nil
}

// ImageFile returns the background file for a scene: the definition's image
// override if set, otherwise <name> with a known image extension.
func (m *Manager) ImageFile(name string, def scene.Definition) (string, error) {
	if def.Image != "" {
		if m.Exists(def.Image) {
			return def.Image, nil
		}
		return "", fmt.Errorf("%w: %s", ErrImageMissing, def.Image)
	}
	if f := m.firstExisting(name, imageExts); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrImageMissing, name)
}

// MaskFile returns the mask file for a scene.
func (m *Manager) MaskFile(name string) (string, error) {
	if f := m.firstExisting(name+MaskSuffix, maskExts); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMaskMissing, name)
}

// Image decodes a raster file.
func (m *Manager) Image(file string) (image.Image, error) {
	data, err := m.Read(file)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}
	logger.Debug("image decoded",
		zap.String("file", file),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

// Load reads a scene's definition and both rasters.
func (m *Manager) Load(name string) (*Bundle, error) {
	def, err := m.Definition(name)
	if err != nil {
		return nil, err
	}

	imgFile, err := m.ImageFile(name, def)
	if err != nil {
		return nil, err
	}
	maskFile, err := m.MaskFile(name)
	if err != nil {
		return nil, err
	}

	bg, err := m.Image(imgFile)
	if err != nil {
		return nil, err
	}
	mask, err := m.Image(maskFile)
	if err != nil {
		return nil, err
	}

	if bg.Bounds().Size() != mask.Bounds().Size() {
		logger.Warn("mask size differs from image",
			zap.String("scene", name),
			zap.Stringer("image", bg.Bounds().Size()),
			zap.Stringer("mask", mask.Bounds().Size()))
	}

	logger.Info("scene loaded",
		zap.String("scene", name),
		zap.String("type", string(def.Type)),
		zap.Int("objects", len(def.Objects)),
		zap.Int("objectives", len(def.Objectives)))

	return &Bundle{Definition: def, Background: bg, Mask: mask}, nil
}

func (m *Manager) firstExisting(base string, exts []string) string {
	for _, ext := range exts {
		if f := base + ext; m.Exists(f) {
			return f
		}
	}
	return ""
}
