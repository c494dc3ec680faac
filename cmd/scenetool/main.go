// scenetool is a CLI utility for inspecting and validating WildSnap scenes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/wildsnap/internal/assets"
	"github.com/Faultbox/wildsnap/internal/config"
	"github.com/Faultbox/wildsnap/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list", "ls":
		cmdList(args)
	case "validate", "check":
		cmdValidate(args)
	case "info":
		cmdInfo(args)
	case "segments", "seg":
		cmdSegments(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - WildSnap scene utility

Usage:
  scenetool <command> [options]

Commands:
  list                       List playable scenes grouped by type
  validate [scene...]        Check definitions, images and masks
  info <scene>               Show objects and objectives of a scene
  segments <scene>           Show the colors found in a scene mask

Options (all commands):
  -base <path>               Base path (default ".")
  -dir <path>                Scenes directory under the base path

Examples:
  scenetool list
  scenetool validate jungle_adventure
  scenetool segments -base ./web jungle_adventure`)
}

// openManager parses the common flags and returns the asset manager and the
// remaining arguments.
func openManager(name string, args []string) (*assets.Manager, []string) {
	defaults := config.Default()
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	base := fs.String("base", defaults.Scenes.BasePath, "Base path")
	dir := fs.String("dir", defaults.Scenes.Dir, "Scenes directory under the base path")
	fs.Parse(args)
	return assets.NewManager(*base, *dir), fs.Args()
}

func cmdList(args []string) {
	m, _ := openManager("list", args)

	groups, err := m.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, g := range groups {
		fmt.Printf("%s (%d)\n", g.Title, len(g.Entries))
		for _, e := range g.Entries {
			fmt.Printf("  %-28s %s\n", e.Name, e.Title)
		}
	}
}

func cmdValidate(args []string) {
	m, names := openManager("validate", args)

	if len(names) == 0 {
		var err error
		names, err = m.SceneNames()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	failed := 0
	for _, name := range names {
		err := m.Validate(name)
		if err == nil {
			fmt.Printf("ok    %s\n", name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", name)
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("      %s\n", line)
		}
	}

	fmt.Printf("\n%d scenes, %d failed\n", len(names), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdInfo(args []string) {
	m, names := openManager("info", args)
	if len(names) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool info <scene>")
		os.Exit(1)
	}

	def, err := m.Definition(names[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene:      %s\n", def.Name)
	fmt.Printf("Title:      %s\n", assets.PrettyName(names[0]))
	fmt.Printf("Type:       %s\n", def.Type)
	fmt.Printf("Objects:    %d\n", len(def.Objects))
	fmt.Println()

	for _, o := range def.Objects {
		fmt.Printf("  %-20s %s  [%s]\n", o.Name, o.Color, strings.Join(o.Tags, ", "))
	}

	objects := make([]*scene.Object, len(def.Objects))
	for i := range def.Objects {
		objects[i] = &def.Objects[i]
	}

	fmt.Println()
	fmt.Println("Objectives:")
	for i := range def.Objectives {
		obj := &def.Objectives[i]
		n := len(scene.ObjectsForObjective(objects, obj))
		fmt.Printf("  %d. %-20s tags=%s objects=%d\n", i+1, obj.Label(), strings.Join(obj.Tags, ","), n)
	}
}

func cmdSegments(args []string) {
	m, names := openManager("segments", args)
	if len(names) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool segments <scene>")
		os.Exit(1)
	}

	file, err := m.MaskFile(names[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img, err := m.Image(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def, err := m.Definition(names[0])
	if err != nil && !errors.Is(err, assets.ErrSceneNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	owners := make(map[string]string)
	for _, o := range def.Objects {
		owners[o.Color] = o.Name
	}

	aggs := scene.Segment(img)
	fmt.Printf("Mask:   %s (%dx%d)\n", file, img.Bounds().Dx(), img.Bounds().Dy())
	fmt.Printf("Colors: %d\n\n", len(aggs))
	for _, c := range scene.SortedColors(aggs) {
		a := aggs[c]
		x, y := a.Centroid()
		owner := owners[c]
		if owner == "" {
			owner = "(unassigned)"
		}
		fmt.Printf("  %s  px=%-8d center=(%.1f, %.1f) r=%-5.0f %s\n", c, a.Count, x, y, a.Radius(), owner)
	}
}
