package prefabs

import (
	"errors"
	"image/color"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	if spec.Screen.Width != 800 || spec.Screen.Height != 600 {
		t.Fatalf("unexpected screen %+v", spec.Screen)
	}
	if spec.Trajectory.MaxCollisions < 1 || spec.Trajectory.MaxSteps < 1 {
		t.Fatalf("trajectory bounds must be positive: %+v", spec.Trajectory)
	}
	if spec.Screen.Background == nil {
		t.Fatalf("expected a background color")
	}

	cfg := spec.Physics.TrajectoryConfig()
	if cfg.Scale != 100 || math.Abs(cfg.Gravity.Y-235.44) > 1e-9 || cfg.Gravity.X != 0 {
		t.Fatalf("unexpected trajectory config %+v", cfg)
	}
	if math.Abs(cfg.TimeStep-1.0/60) > 1e-4 {
		t.Fatalf("expected a 60 Hz step, got %v", cfg.TimeStep)
	}
}

func TestLoadLevelSpec(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		moving   int
	}{
		{"1", "grid", 0},
		{"level_2.yaml", "conveyor", 2},
		{"prefabs/level_1.yaml", "grid", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := LoadLevelSpec(tc.name)
			if err != nil {
				t.Fatalf("load level: %v", err)
			}
			if spec.Name != tc.wantName || len(spec.MovingPegs) != tc.moving {
				t.Fatalf("unexpected level %q with %d moving pegs", spec.Name, len(spec.MovingPegs))
			}
			if spec.Layout.Script == "" || spec.Layout.TargetEvery <= 0 {
				t.Fatalf("incomplete layout %+v", spec.Layout)
			}
		})
	}

	if _, err := LoadLevelSpec("99"); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#14161c"`, want: color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}},
		{in: `"ff000080"`, want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#zz0000"`, wantErr: true},
		{in: `[1, 2, 3]`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Color != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, c.Color)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	got, err := DecodeComponentSpec[ColliderComponentSpec](map[string]any{
		"type":   "polygon",
		"points": []any{map[string]any{"x": 1, "y": 2}, map[string]any{"x": 3, "y": 4}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != "polygon" || len(got.Points) != 2 || got.Points[1] != (PointSpec{X: 3, Y: 4}) {
		t.Fatalf("unexpected spec %+v", got)
	}

	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || empty != (TransformComponentSpec{}) {
		t.Fatalf("nil component should decode to the zero spec, got %+v err=%v", empty, err)
	}
}

func TestCleanPaths(t *testing.T) {
	prefabTests := map[string]string{
		"":                  "",
		"ball.yaml":         "ball.yaml",
		"prefabs/ball.yaml": "ball.yaml",
	}
	for in, want := range prefabTests {
		if got := cleanPrefabPath(in); got != want {
			t.Fatalf("cleanPrefabPath(%q) = %q, expected %q", in, got, want)
		}
	}

	scriptTests := map[string]string{
		"":                               "",
		"peg_grid.tengo":                 "scripts/peg_grid.tengo",
		"scripts/peg_grid.tengo":         "scripts/peg_grid.tengo",
		"prefabs/scripts/peg_grid.tengo": "scripts/peg_grid.tengo",
		"prefabs/peg_grid.tengo":         "scripts/peg_grid.tengo",
	}
	for in, want := range scriptTests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestWatcherBatchesEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	level := filepath.Join(dir, "level_9.yaml")
	script := filepath.Join(dir, "grid.tengo")
	for _, f := range []struct {
		path string
		data string
	}{
		{filepath.Join(dir, "notes.txt"), "x"},
		{level, "name: a\n"},
		{script, "pegs := []\n"},
		{level, "name: b\n"},
	} {
		if err := os.WriteFile(f.path, []byte(f.data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(got) < 2 {
		got = append(got, w.Poll()...)
		time.Sleep(20 * time.Millisecond)
	}
	if len(got) != 2 {
		t.Fatalf("expected the level and script in one burst, got %v", got)
	}
	want := []string{script, level}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLayeredAssets(t *testing.T) {
	disk := fstest.MapFS{"ball.yaml": {Data: []byte("edited")}}
	base := fstest.MapFS{
		"ball.yaml":              {Data: []byte("builtin")},
		"wall.yaml":              {Data: []byte("wall")},
		"scripts/peg_grid.tengo": {Data: []byte("grid")},
	}
	src := layered{disk, base}

	tests := []struct {
		name    string
		clean   string
		want    string
		wantErr error
	}{
		{name: "override_wins", clean: cleanPrefabPath("prefabs/ball.yaml"), want: "edited"},
		{name: "falls_back", clean: cleanPrefabPath("wall.yaml"), want: "wall"},
		{name: "script", clean: cleanScriptPath("peg_grid.tengo"), want: "grid"},
		{name: "missing", clean: "level_7.yaml", wantErr: fs.ErrNotExist},
		{name: "empty", clean: "", wantErr: fs.ErrInvalid},
		{name: "escapes_root", clean: "../game.yaml", wantErr: fs.ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := readAsset(src, tc.clean)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("read %q: %v", tc.clean, err)
			}
			if string(data) != tc.want {
				t.Fatalf("read %q = %q, expected %q", tc.clean, data, tc.want)
			}
		})
	}
}

func TestEmbeddedAssetsPresent(t *testing.T) {
	for _, name := range []string{"game.yaml", "ball.yaml", "scripts/peg_grid.tengo"} {
		if _, err := fs.ReadFile(embedded, name); err != nil {
			t.Fatalf("embedded %s: %v", name, err)
		}
	}
}
