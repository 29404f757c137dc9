package gtp

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	id := func(n int) *int { return &n }

	testCases := []struct {
		line string
		want Command
		ok   bool
	}{
		{"play b D4", Command{Name: "play", Args: []string{"b", "D4"}}, true},
		{"7 play w Q16", Command{ID: id(7), Name: "play", Args: []string{"w", "Q16"}}, true},
		{"  quit  ", Command{Name: "quit"}, true},
		{"boardsize\t9", Command{Name: "boardsize", Args: []string{"9"}}, true},
		{"genmove b # with a comment", Command{Name: "genmove", Args: []string{"b"}}, true},
		{"# only a comment", Command{}, false},
		{"", Command{}, false},
		{"   \t ", Command{}, false},
		{"42", Command{ID: id(42)}, true},
	}

	for _, tc := range testCases {
		got, ok := ParseCommand(tc.line)
		if ok != tc.ok {
			t.Errorf("ParseCommand(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Name != tc.want.Name {
			t.Errorf("ParseCommand(%q).Name = %q, want %q", tc.line, got.Name, tc.want.Name)
		}
		if (got.ID == nil) != (tc.want.ID == nil) ||
			(got.ID != nil && *got.ID != *tc.want.ID) {
			t.Errorf("ParseCommand(%q) id mismatch", tc.line)
		}
		if len(got.Args) != 0 || len(tc.want.Args) != 0 {
			if !reflect.DeepEqual(got.Args, tc.want.Args) {
				t.Errorf("ParseCommand(%q).Args = %v, want %v", tc.line, got.Args, tc.want.Args)
			}
		}
	}
}

func TestResponseString(t *testing.T) {
	nine := 9
	errUnknown := errors.New("unknown command")
	testCases := []struct {
		name string
		resp Response
		want string
	}{
		{"Reply", Response{Reply: "pass"}, "= pass\r\n\r\n"},
		{"Empty", Response{}, "= \r\n\r\n"},
		{"WithID", Response{ID: &nine, Reply: "2"}, "=9 2\r\n\r\n"},
		{"Error", Response{Err: errUnknown}, "? unknown command\r\n\r\n"},
		{"ErrorWithID", Response{ID: &nine, Err: errUnknown}, "?9 unknown command\r\n\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resp.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
