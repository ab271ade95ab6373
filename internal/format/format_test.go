package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/nbukhari/onebrc/internal/agg"
	"github.com/nbukhari/onebrc/internal/stats"
)

func checkOutput(t *testing.T, want, got string) {
	t.Helper()
	if want != got {
		t.Fatalf("output mismatch:\n%v", diff.LineDiff(want, got))
	}
}

func sample() *agg.Result {
	r := agg.New(3)
	r.Put("StationB", stats.New(-55))
	r.Put("StationA", stats.New(100).Add(200))
	r.Put("Abéché", stats.New(-3).Add(-2))
	return r
}

func TestFormatSorted(t *testing.T) {
	checkOutput(t,
		"{Abéché=-0.3/-0.3/-0.2, StationA=10.0/15.0/20.0, StationB=-5.5/-5.5/-5.5}",
		Format(sample(), Sorted))
}

func TestFormatEncounter(t *testing.T) {
	checkOutput(t,
		"{StationB=-5.5/-5.5/-5.5, StationA=10.0/15.0/20.0, Abéché=-0.3/-0.3/-0.2}",
		Format(sample(), Encounter))
}

func TestFormatSortedDoesNotReorderResult(t *testing.T) {
	r := sample()
	_ = Format(r, Sorted)
	if r.Keys()[0] != "StationB" {
		t.Fatalf("sorting leaked into result keys: %v", r.Keys())
	}
}

func TestFormatEmpty(t *testing.T) {
	checkOutput(t, "{}", Format(agg.New(0), Sorted))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), Sorted); err != nil {
		t.Fatalf("write: %v", err)
	}
	checkOutput(t, Format(sample(), Sorted), buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	if err := Write(failWriter{}, sample(), Sorted); err == nil {
		t.Fatalf("expect write error")
	}
}

func TestTenths(t *testing.T) {
	cases := map[int64]string{
		0:    "0.0",
		5:    "0.5",
		-5:   "-0.5",
		-10:  "-1.0",
		999:  "99.9",
		-999: "-99.9",
		1234: "123.4",
	}
	for v, want := range cases {
		if got := Tenths(v); got != want {
			t.Fatalf("Tenths(%d): expect %q, got %q", v, want, got)
		}
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"": Sorted, "sorted": Sorted, "Encounter": Encounter} {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Fatalf("ParseOrder(%q): expect %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseOrder("random"); err == nil {
		t.Fatalf("expect error for unknown order")
	}
}
