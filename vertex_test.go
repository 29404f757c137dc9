package libgo

import (
	"fmt"
	"testing"
)

func TestVertexString(t *testing.T) {
	testCases := []struct {
		vertex Vertex
		want   string
	}{
		{Vertex{X: 0, Y: 0}, "A1"},
		{Vertex{X: 3, Y: 3}, "D4"},
		{Vertex{X: 7, Y: 0}, "H1"},
		{Vertex{X: 8, Y: 0}, "J1"}, // the letter I is skipped
		{Vertex{X: 18, Y: 18}, "T19"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.vertex.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseVertex(t *testing.T) {
	testCases := []struct {
		in      string
		want    Vertex
		isValid bool
	}{
		{"A1", Vertex{X: 0, Y: 0}, true},
		{"D4", Vertex{X: 3, Y: 3}, true},
		{"J1", Vertex{X: 8, Y: 0}, true},
		{"T19", Vertex{X: 18, Y: 18}, true},
		{"I5", Vertex{}, false},  // I is not a goban letter
		{"a1", Vertex{}, false},  // lowercase letters are rejected
		{"D0", Vertex{}, false},  // rows are 1-based
		{"D-1", Vertex{}, false}, // negative rows are rejected
		{"D", Vertex{}, false},   // too short
		{"", Vertex{}, false},
		{"Dfour", Vertex{}, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			got, err := ParseVertex(tc.in)
			if tc.isValid && err != nil {
				t.Fatalf("ParseVertex(%q) returned error: %v", tc.in, err)
			}
			if !tc.isValid {
				if err == nil {
					t.Fatalf("ParseVertex(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if got != tc.want {
				t.Errorf("ParseVertex(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseVertexRoundTrip(t *testing.T) {
	for x := 0; x < MaxBoardSize; x++ {
		for y := 0; y < MaxBoardSize; y++ {
			v := Vertex{X: x, Y: y}
			got, err := ParseVertex(v.String())
			if err != nil {
				t.Fatalf("ParseVertex(%q) returned error: %v", v.String(), err)
			}
			if got != v {
				t.Fatalf("round trip of %v gave %v", v, got)
			}
		}
	}
}

func TestVerticesString(t *testing.T) {
	vs := Vertices{{X: 0, Y: 0}, {X: 3, Y: 3}, {X: 18, Y: 18}}
	want := "A1 D4 T19"
	if got := vs.String(); got != want {
		t.Errorf("Vertices.String() = %q, want %q", got, want)
	}
}
