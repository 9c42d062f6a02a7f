package exercise

import "testing"

func TestCheckAnswer_GapFill(t *testing.T) {
	ex := &Exercise{Kind: KindGapFill, Answer: "Walking"}

	tests := []struct {
		input string
		want  bool
	}{
		{"walking", true},
		{"  WALKING ", true},
		{"Walking", true},
		{"walk", false},
		{"walkin", false},
		{"", false},
		{"A", false},
	}

	for _, tc := range tests {
		if got := CheckAnswer(tc.input, ex); got != tc.want {
			t.Errorf("CheckAnswer(%q, gap-fill) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	ex := &Exercise{
		Kind:    KindMultipleChoice,
		Answer:  "running",
		Options: []string{"making", "running", Placeholder, "eating", "sleeping"},
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"running", true},
		{"Running ", true},
		{"B", true},
		{"b", true},
		{"2", true},
		{"A", false},
		{"1", false},
		{"F", false},
		{"6", false},
		{Placeholder, false},
		{"", false},
	}

	for _, tc := range tests {
		if got := CheckAnswer(tc.input, ex); got != tc.want {
			t.Errorf("CheckAnswer(%q, mcq) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestResolveAnswer(t *testing.T) {
	ex := &Exercise{Kind: KindMultipleChoice, Options: []string{"x", "y"}}
	if got := ResolveAnswer("b", ex); got != "y" {
		t.Errorf("ResolveAnswer(b) = %q, want y", got)
	}
	if got := ResolveAnswer(" zed ", ex); got != "zed" {
		t.Errorf("ResolveAnswer(zed) = %q, want zed", got)
	}
}

func TestOptionLabel(t *testing.T) {
	for i, want := range []string{"A", "B", "C", "D", "E"} {
		if got := OptionLabel(i); got != want {
			t.Errorf("OptionLabel(%d) = %q, want %q", i, got, want)
		}
	}
}
