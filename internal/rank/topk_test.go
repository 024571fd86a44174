package rank

import (
	"reflect"
	"testing"
)

func TestTop_Ordering(t *testing.T) {
	t.Parallel()
	scores := map[string]float64{
		"low":  0.1,
		"high": 0.6,
		"mid":  0.3,
	}

	got := Top(scores, 3)
	want := []Entry{
		{Node: "high", Score: 0.6},
		{Node: "mid", Score: 0.3},
		{Node: "low", Score: 0.1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Top = %v, want %v", got, want)
	}
}

func TestTop_TieBreakByNode(t *testing.T) {
	t.Parallel()
	scores := map[string]float64{
		"c": 0.5,
		"a": 0.5,
		"b": 0.5,
	}

	got := All(scores)
	want := []Entry{
		{Node: "a", Score: 0.5},
		{Node: "b", Score: 0.5},
		{Node: "c", Score: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All = %v, want %v", got, want)
	}
}

func TestTop_Length(t *testing.T) {
	t.Parallel()
	scores := map[string]float64{"a": 1, "b": 2, "c": 3}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"negative k", -1, 0},
		{"zero k", 0, 0},
		{"partial", 2, 2},
		{"exact", 3, 3},
		{"beyond length", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := len(Top(scores, tt.k)); got != tt.want {
				t.Errorf("len(Top(scores, %d)) = %d, want %d", tt.k, got, tt.want)
			}
		})
	}
}

func TestTop_EmptyMapping(t *testing.T) {
	t.Parallel()
	if got := Top(map[string]float64{}, 5); len(got) != 0 {
		t.Errorf("Top(empty, 5) = %v, want empty", got)
	}
}

func TestTop_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	scores := map[string]float64{"a": 1, "b": 2}
	_ = Top(scores, 1)
	if scores["a"] != 1 || scores["b"] != 2 || len(scores) != 2 {
		t.Errorf("input mutated: %v", scores)
	}
}
