package location

import "testing"

func TestProximityEvaluator(t *testing.T) {
	e := ProximityEvaluator{Lines: 3}
	base := New("a.go", 10, 0)

	tests := []struct {
		name     string
		existing Location
		expected bool
	}{
		{"same line", New("a.go", 10, 5), true},
		{"below within", New("a.go", 13, 0), true},
		{"above within", New("a.go", 7, 0), true},
		{"below outside", New("a.go", 14, 0), false},
		{"above outside", New("a.go", 6, 0), false},
		{"other file", New("b.go", 10, 0), false},
		{"uncleaned path", Location{Path: "./a.go", Point: Point{Line: 11}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanReplace(base, tt.existing); got != tt.expected {
				t.Errorf("CanReplace(%s, %s) = %v, want %v", base, tt.existing, got, tt.expected)
			}
		})
	}
}

func TestExactEvaluator(t *testing.T) {
	var e ExactEvaluator
	if !e.CanReplace(New("a.go", 1, 2), New("a.go", 1, 2)) {
		t.Error("identical locations should replace")
	}
	if e.CanReplace(New("a.go", 1, 2), New("a.go", 1, 3)) {
		t.Error("different columns should not replace")
	}
}
