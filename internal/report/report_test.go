package report

import (
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/linkrank/internal/rank"
)

func TestStats(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	Stats(&b, "web.txt", 12, 34)
	want := "web.txt: 12 nodes, 34 edges\n"
	if b.String() != want {
		t.Errorf("Stats = %q, want %q", b.String(), want)
	}
}

func TestRankedList(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	RankedList(&b, []rank.Entry{
		{Node: "http://a.example", Score: 0.3333},
		{Node: "http://b.example", Score: 0.1},
	})
	want := "33.33\thttp://a.example\n10.00\thttp://b.example\n"
	if b.String() != want {
		t.Errorf("RankedList = %q, want %q", b.String(), want)
	}
}

func TestTiming(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	Timing(&b, 1500*time.Millisecond)
	want := "Calculation took 1.50 seconds.\n"
	if b.String() != want {
		t.Errorf("Timing = %q, want %q", b.String(), want)
	}
}

func TestSpeedup(t *testing.T) {
	t.Parallel()

	t.Run("ratio", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		Speedup(&b, 10*time.Second, 2*time.Second)
		want := "The probabilistic method was 5 times faster.\n"
		if b.String() != want {
			t.Errorf("Speedup = %q, want %q", b.String(), want)
		}
	})

	t.Run("zero distribution time prints nothing", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		Speedup(&b, 10*time.Second, 0)
		if b.String() != "" {
			t.Errorf("Speedup = %q, want empty", b.String())
		}
	})
}
