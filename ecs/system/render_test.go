package system

import (
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPreviewPath(t *testing.T) {
	origin := cp.Vector{X: 10, Y: 20}

	tests := []struct {
		name      string
		positions []cp.Vector
		want      []cp.Vector
	}{
		{name: "empty", positions: nil, want: nil},
		{
			name:      "single_sample",
			positions: []cp.Vector{{X: 11, Y: 21}},
			want:      []cp.Vector{origin, {X: 11, Y: 21}},
		},
		{
			name:      "starts_at_launcher",
			positions: []cp.Vector{{X: 12, Y: 20}, {X: 14, Y: 21}, {X: 16, Y: 23}},
			want:      []cp.Vector{origin, {X: 12, Y: 20}, {X: 14, Y: 21}, {X: 16, Y: 23}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := previewPath(origin, tc.positions)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPreviewPathLeavesSamplesUntouched(t *testing.T) {
	positions := make([]cp.Vector, 2, 8)
	positions[0], positions[1] = cp.Vector{X: 1}, cp.Vector{X: 2}

	previewPath(cp.Vector{}, positions)
	if positions[0] != (cp.Vector{X: 1}) || positions[1] != (cp.Vector{X: 2}) {
		t.Fatalf("preview samples were modified: %v", positions)
	}
}
