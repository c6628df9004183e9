package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

const sceneFileJSON = `{
	"name": "Pair",
	"image": {"width": 30, "height": 10, "samples": 3, "depth": 4},
	"camera": {"lookFrom": [0, 0, 0], "lookAt": [0, 0, -1]},
	"spheres": [
		{"center": [0, -100.5, -1], "radius": 100, "material": {"type": "lambertian", "albedo": [0.5, 0.5, 0.5]}},
		{"center": [0, 0, -1], "radius": 0.5, "material": {"type": "dielectric", "refractiveIndex": 1.5}}
	]
}`

func testOptions(t *testing.T, out string) renderOptions {
	t.Helper()
	return renderOptions{
		SceneID:   "normals",
		ScenesDir: t.TempDir(),
		Width:     8,
		Passes:    1,
		Workers:   1,
		TileSize:  64,
		Seed:      42,
		Out:       filepath.Join(t.TempDir(), out),
	}
}

func TestLoadScene(t *testing.T) {
	sceneFile := filepath.Join(t.TempDir(), "pair.json")
	if err := os.WriteFile(sceneFile, []byte(sceneFileJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		opts     renderOptions
		expected scene.SamplingConfig
		objects  int
	}{
		{
			name:     "built-in defaults",
			opts:     renderOptions{SceneID: "default"},
			expected: scene.SamplingConfig{Width: 200, Height: 100, SamplesPerPixel: 100, MaxDepth: 50},
			objects:  4,
		},
		{
			name:     "width keeps aspect ratio",
			opts:     renderOptions{SceneID: "metal", Width: 40, Samples: 7, Depth: 3},
			expected: scene.SamplingConfig{Width: 40, Height: 20, SamplesPerPixel: 7, MaxDepth: 3},
			objects:  4,
		},
		{
			name:     "height keeps aspect ratio",
			opts:     renderOptions{SceneID: "metal", Height: 30},
			expected: scene.SamplingConfig{Width: 60, Height: 30, SamplesPerPixel: 100, MaxDepth: 50},
			objects:  4,
		},
		{
			name:     "scene file",
			opts:     renderOptions{SceneID: "default", SceneFile: sceneFile, Width: 60, Height: 60},
			expected: scene.SamplingConfig{Width: 60, Height: 60, SamplesPerPixel: 3, MaxDepth: 4},
			objects:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadScene(tt.opts)
			if err != nil {
				t.Fatalf("loadScene() error: %v", err)
			}
			if s.SamplingConfig != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, s.SamplingConfig)
			}
			if s.World.Len() != tt.objects {
				t.Errorf("Expected %d objects, got %d", tt.objects, s.World.Len())
			}
		})
	}
}

func TestLoadScene_Errors(t *testing.T) {
	if _, err := loadScene(renderOptions{SceneID: "nonexistent"}); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := loadScene(renderOptions{SceneFile: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("Expected an error for a missing scene file")
	}
}

func TestRenderToFile_PPM(t *testing.T) {
	opts := testOptions(t, "normals.ppm")
	if err := renderToFile(context.Background(), opts); err != nil {
		t.Fatalf("renderToFile() error: %v", err)
	}

	data, err := os.ReadFile(opts.Out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != "P3" || lines[1] != "8 4" || lines[2] != "255" {
		t.Fatalf("Unexpected header: %q", lines[:3])
	}
	if len(lines) != 3+8*4 {
		t.Errorf("Expected %d pixel lines, got %d", 8*4, len(lines)-3)
	}
}

func TestRenderToFile_ProgressivePNG(t *testing.T) {
	opts := testOptions(t, "normals.png")
	opts.Workers = 3
	opts.Passes = 2
	opts.Samples = 2
	opts.TileSize = 4

	if err := renderToFile(context.Background(), opts); err != nil {
		t.Fatalf("renderToFile() error: %v", err)
	}

	f, err := os.Open(opts.Out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %v", b)
	}
}

func TestRenderToFile_SerialMatchesSingleTile(t *testing.T) {
	serial := testOptions(t, "serial.ppm")
	serial.SceneID = "default"
	serial.Samples = 2
	serial.Depth = 5

	parallel := serial
	parallel.Out = filepath.Join(t.TempDir(), "parallel.ppm")
	parallel.Workers = 4

	for _, opts := range []renderOptions{serial, parallel} {
		if err := renderToFile(context.Background(), opts); err != nil {
			t.Fatalf("renderToFile() error: %v", err)
		}
	}

	a, _ := os.ReadFile(serial.Out)
	b, _ := os.ReadFile(parallel.Out)
	if !bytes.Equal(a, b) {
		t.Error("Expected identical images from the scanline loop and a single covering tile")
	}
}

func TestRenderToFile_UnsupportedFormat(t *testing.T) {
	opts := testOptions(t, "frame.bmp")
	if err := renderToFile(context.Background(), opts); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(opts.Out); !os.IsNotExist(err) {
		t.Error("Expected no file to be created")
	}
}

func TestApp_Render(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.ppm")
	args := []string{"go-sphere-tracer", "render", "--scene", "normals", "--width", "6", "--workers", "1", "--out", out}

	if err := newApp().Run(args); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3\n6 3\n255\n") {
		t.Errorf("Unexpected header: %q", string(data[:min(len(data), 16)]))
	}
}

func TestApp_Scenes(t *testing.T) {
	args := []string{"go-sphere-tracer", "scenes", "--scenes-dir", t.TempDir()}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestFormatScenes(t *testing.T) {
	response, err := scene.ListAllScenes("")
	if err != nil {
		t.Fatal(err)
	}

	table := formatScenes(response)
	for _, id := range []string{"default", "metal", "normals", "random", scene.BuiltinGroup} {
		if !strings.Contains(table, id) {
			t.Errorf("Expected %q in the scene table", id)
		}
	}
}

func TestBundledSceneFiles(t *testing.T) {
	files, err := scene.ListSceneFiles("scenes")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("Expected bundled scene files")
	}

	for _, info := range files {
		t.Run(info.ID, func(t *testing.T) {
			if _, err := loadScene(renderOptions{SceneID: info.ID, ScenesDir: "scenes"}); err != nil {
				t.Errorf("loadScene(%s) error: %v", info.ID, err)
			}
		})
	}
}
