package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

func runInfo(w io.Writer, path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	m, err := loader.NewLoader(loader.BackendTypeGLTF).Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	printInfo(w, path, stat.Size(), m)
	return nil
}

func printInfo(w io.Writer, path string, size int64, m model.Model) {
	fmt.Fprintf(w, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Format:     %s\n", strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")))
	fmt.Fprintf(w, "Size:       %.2f KB\n", float64(size)/1024)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Name:       %s\n", m.Name())
	fmt.Fprintf(w, "Nodes:      %d\n", len(m.Nodes()))
	fmt.Fprintf(w, "Meshes:     %d\n", len(m.Meshes()))
	fmt.Fprintf(w, "Triangles:  %d\n", m.TriangleCount())

	if bmin, bmax, ok := m.Bounds(); ok {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Bounds Min: (%.3f, %.3f, %.3f)\n", bmin[0], bmin[1], bmin[2])
		fmt.Fprintf(w, "Bounds Max: (%.3f, %.3f, %.3f)\n", bmax[0], bmax[1], bmax[2])
		fmt.Fprintf(w, "Dimensions: %.3f x %.3f x %.3f\n", bmax[0]-bmin[0], bmax[1]-bmin[1], bmax[2]-bmin[2])
	}

	if clips := m.Animations(); len(clips) > 0 {
		fmt.Fprintln(w)
		for i, clip := range clips {
			fmt.Fprintf(w, "Animation %d: %s (%.2fs, %d channels)\n", i, clip.Name, clip.Duration, len(clip.Channels))
		}
	}
}
