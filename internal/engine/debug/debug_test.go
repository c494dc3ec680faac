package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/scene"
)

func TestSnapshotWriter_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	w := NewSnapshotWriter(dir, "capture")
	w.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 7_000_000, time.UTC) }

	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 0xFF, A: 0xFF})

	path, err := w.Save("red fox", img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "capture_red-fox_2024-03-09_14-05-06.007.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, _, _, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestSnapshotWriter_NilImage(t *testing.T) {
	w := NewSnapshotWriter(t.TempDir(), "capture")
	_, err := w.Save("x", nil)
	assert.Error(t, err)
}

func TestSnapshotWriter_Filename(t *testing.T) {
	w := NewSnapshotWriter("", "frame")
	w.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	assert.Equal(t, "frame_2024-01-02_03-04-05.000.png", w.Filename(""))
	assert.Equal(t, "frame_ab-c_2024-01-02_03-04-05.000.png", w.Filename(" a/b c "))
	assert.False(t, strings.Contains(w.Filename("../../etc"), "/"))
}

func TestRenderFrame_NoScene(t *testing.T) {
	frame := RenderFrame(nil, nil, image.Pt(8, 6), nil, FrameOptions{})
	assert.Equal(t, image.Rect(0, 0, 8, 6), frame.Bounds())
	assert.Equal(t, emptyColor, frame.NRGBAAt(4, 3))
}

func TestRenderFrame_ScalesViewport(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 100; x < 200; x++ {
			bg.SetNRGBA(x, y, color.NRGBA{B: 0xFF, A: 0xFF})
		}
	}
	vp := viewport.New(200, 100, 100, 100)
	vp.SetPosition(100, 0)

	frame := RenderFrame(bg, vp, image.Pt(50, 50), nil, FrameOptions{})
	assert.Equal(t, color.NRGBA{B: 0xFF, A: 0xFF}, frame.NRGBAAt(25, 25))
}

func TestRenderFrame_FoundOutlines(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	vp := viewport.New(100, 100, 100, 100)
	found := &scene.Object{Name: "fox", X: 50, Y: 50, Radius: 20, Positioned: true, Found: true}
	hidden := &scene.Object{Name: "owl", X: 20, Y: 20, Radius: 10, Positioned: true}

	frame := RenderFrame(bg, vp, image.Pt(100, 100), []*scene.Object{found, hidden}, FrameOptions{})

	assert.Equal(t, OutlineColor, frame.NRGBAAt(70, 50)) // on the ring
	assert.NotEqual(t, OutlineColor, frame.NRGBAAt(50, 50))
	assert.NotEqual(t, OutlineColor, frame.NRGBAAt(30, 20)) // unfound owl has no ring
}

func TestRenderFrame_DebugOverlay(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	vp := viewport.New(100, 100, 100, 100)

	frame := RenderFrame(bg, vp, image.Pt(100, 100), nil, FrameOptions{Debug: true, Tolerance: 20})
	assert.NotZero(t, frame.NRGBAAt(50, 50).A) // crosshair
	assert.NotZero(t, frame.NRGBAAt(30, 50).G) // tolerance box left edge
	assert.Zero(t, frame.NRGBAAt(40, 40).A)
}
