package variation

import (
	"errors"
	"strings"
	"testing"

	"github.com/hailam/fourengine/internal/position"
)

// R1: parse then render a variation is identity.
func TestParseRenderRoundTrip(t *testing.T) {
	for _, v := range []string{"", "4", "444444", "32164625"} {
		p, err := Parse(v)
		if err != nil {
			t.Fatalf("Parse(%q): %v", v, err)
		}
		cols := make([]int, len(v))
		for i, r := range v {
			cols[i] = int(r-'0') - 1
		}
		rendered, err := Render(cols)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if rendered != v {
			t.Errorf("Render(cols of %q) = %q, want %q", v, rendered, v)
		}
		p2, err := Parse(rendered)
		if err != nil {
			t.Fatalf("Parse(rendered): %v", err)
		}
		if p2 != p {
			t.Errorf("re-parsed position differs from original for %q", v)
		}
	}
}

func TestParseInvalidVariation(t *testing.T) {
	if _, err := Parse("9"); !errors.Is(err, position.ErrInvalidVariation) {
		t.Errorf("expected ErrInvalidVariation, got %v", err)
	}
}

func TestReadTestSet(t *testing.T) {
	data := "# comment\r\n44444447  -2\r\n\r\n4 2\n"
	cases, err := ReadTestSet(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTestSet: %v", err)
	}
	want := []Case{{"44444447", -2}, {"4", 2}}
	if len(cases) != len(want) {
		t.Fatalf("got %d cases, want %d", len(cases), len(want))
	}
	for i := range want {
		if cases[i] != want[i] {
			t.Errorf("case %d = %+v, want %+v", i, cases[i], want[i])
		}
	}
}

func TestReadTestSetRejectsMalformed(t *testing.T) {
	if _, err := ReadTestSet(strings.NewReader("4\n")); err == nil {
		t.Fatal("expected error for a line missing the expected score")
	}
}
