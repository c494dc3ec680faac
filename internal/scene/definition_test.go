package scene

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_Canonical(t *testing.T) {
	src := `{
		"name": "jungle_adventure",
		"sceneType": "photo",
		"objects": [
			{"name": "toucan", "color": "#ff8800", "tags": ["bird"]},
			{"name": "jaguar", "color": "00AA11", "tags": ["cat"]}
		],
		"objectives": [
			{"title": "Find the birds", "tags": ["bird"], "emoji": "🐦"}
		]
	}`

	def, err := DecodeJSON(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "jungle_adventure", def.Name)
	assert.Equal(t, TypePhoto, def.Type)
	require.Len(t, def.Objects, 2)
	assert.Equal(t, "#FF8800", def.Objects[0].Color)
	assert.Equal(t, "#00AA11", def.Objects[1].Color)
	require.Len(t, def.Objectives, 1)
	assert.Equal(t, []string{"bird"}, def.Objectives[0].Tags)
	assert.Equal(t, "🐦", def.Objectives[0].Label())
}

func TestDecodeJSON_LegacyShapes(t *testing.T) {
	src := `{
		"name": "savanna",
		"animals": [{"name": "lion", "color": "#00ff00", "tags": ["lion"]}],
		"objectives": [{"title": "Lions", "tag": "lion"}]
	}`

	def, err := DecodeJSON(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, TypePhoto, def.Type, "missing sceneType defaults to photo")
	require.Len(t, def.Objects, 1)
	assert.Equal(t, "lion", def.Objects[0].Name)
	assert.Equal(t, []string{"lion"}, def.Objectives[0].Tags)
	assert.Equal(t, "Lions", def.Objectives[0].Label())
}

func TestDecodeJSON_ObjectsWinOverAnimals(t *testing.T) {
	src := `{
		"name": "both",
		"objects": [{"name": "new", "color": "#111111"}],
		"animals": [{"name": "old", "color": "#222222"}]
	}`

	def, err := DecodeJSON(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, def.Objects, 1)
	assert.Equal(t, "new", def.Objects[0].Name)
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad scene type", `{"name": "x", "sceneType": "puzzle"}`, ErrInvalidSceneType},
		{"bad color", `{"name": "x", "objects": [{"name": "a", "color": "#12345"}]}`, ErrInvalidColor},
		{"non-hex color", `{"name": "x", "objects": [{"name": "a", "color": "#GGGGGG"}]}`, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := DecodeJSON(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	src := `
name: arctic
sceneType: wimmelbild
image: arctic_night.png
objects:
  - name: seal
    color: "#336699"
    tags: [sea]
objectives:
  - title: Sea life
    tags: [sea]
`
	def, err := DecodeYAML(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, TypeWimmelbild, def.Type)
	assert.Equal(t, "arctic_night.png", def.Image)
	require.Len(t, def.Objects, 1)
	assert.Equal(t, "#336699", def.Objects[0].Color)
}

func TestValidate(t *testing.T) {
	def := Definition{
		Name: "dupes",
		Type: TypePhoto,
		Objects: []Object{
			{Name: "a", Color: "#FF0000"},
			{Name: "b", Color: "#ff0000"},
			{Name: "a", Color: "#00FF00"},
		},
	}

	err := Validate(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateColor)
	assert.ErrorIs(t, err, ErrDuplicateName)

	def.Objects = def.Objects[:1]
	assert.NoError(t, Validate(def))
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#abcdef", "#ABCDEF", false},
		{"ABCDEF", "#ABCDEF", false},
		{" #00ff00 ", "#00FF00", false},
		{"#fff", "", true},
		{"", "", true},
		{"#zzzzzz", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestIsBackground(t *testing.T) {
	assert.True(t, IsBackground(rgb(0, 0, 0)))
	assert.True(t, IsBackground(color.NRGBA{R: 0xFF}))
	assert.False(t, IsBackground(rgb(1, 0, 0)))
}
