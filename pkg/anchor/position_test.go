package anchor

import (
	"errors"
	"testing"
)

func TestNewTextPosition(t *testing.T) {
	t.Run("valid_ranges", func(t *testing.T) {
		cases := []struct {
			start, end int
		}{
			{0, 1},
			{0, 100},
			{12821, 12840},
			{5, 6},
		}
		for _, testCase := range cases {
			position, err := NewTextPosition(testCase.start, testCase.end)
			if err != nil {
				t.Errorf("NewTextPosition(%d, %d) failed: %v", testCase.start, testCase.end, err)
				continue
			}
			if position.Start != testCase.start || position.End != testCase.end {
				t.Errorf("NewTextPosition(%d, %d) = %v", testCase.start, testCase.end, position)
			}
		}
	})

	t.Run("invalid_ranges", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end int
		}{
			{"start_equals_end", 5, 5},
			{"start_after_end", 10, 2},
			{"negative_start", -1, 5},
			{"negative_end", 0, -3},
			{"zero_zero", 0, 0},
		}
		for _, testCase := range cases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := NewTextPosition(testCase.start, testCase.end)
				if err == nil {
					t.Fatalf("NewTextPosition(%d, %d) should fail", testCase.start, testCase.end)
				}
				var rangeErr *RangeError
				if !errors.As(err, &rangeErr) {
					t.Errorf("expected *RangeError, got %T", err)
				}
			})
		}
	})
}

func TestTextPositionOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     TextPosition
		overlaps bool
	}{
		{"disjoint", TextPosition{0, 5}, TextPosition{10, 15}, false},
		{"touching_boundary", TextPosition{0, 5}, TextPosition{5, 10}, false},
		{"partial_overlap", TextPosition{0, 7}, TextPosition{5, 10}, true},
		{"contained", TextPosition{0, 20}, TextPosition{5, 10}, true},
		{"identical", TextPosition{3, 9}, TextPosition{3, 9}, true},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.a.Overlaps(testCase.b); got != testCase.overlaps {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", testCase.a, testCase.b, got, testCase.overlaps)
			}
			// Overlap is symmetric.
			if got := testCase.b.Overlaps(testCase.a); got != testCase.overlaps {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", testCase.b, testCase.a, got, testCase.overlaps)
			}
		})
	}
}

func TestTextPositionContains(t *testing.T) {
	outer := TextPosition{Start: 10, End: 50}

	if !outer.Contains(TextPosition{Start: 10, End: 50}) {
		t.Error("a position should contain itself")
	}
	if !outer.Contains(TextPosition{Start: 20, End: 30}) {
		t.Error("expected [10,50) to contain [20,30)")
	}
	if outer.Contains(TextPosition{Start: 5, End: 30}) {
		t.Error("[10,50) should not contain [5,30)")
	}
	if outer.Contains(TextPosition{Start: 40, End: 60}) {
		t.Error("[10,50) should not contain [40,60)")
	}
}

func TestTextPositionCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b TextPosition
		sign int
	}{
		{"earlier_start", TextPosition{0, 5}, TextPosition{3, 5}, -1},
		{"later_start", TextPosition{8, 9}, TextPosition{3, 10}, 1},
		{"same_start_shorter", TextPosition{3, 5}, TextPosition{3, 10}, -1},
		{"equal", TextPosition{3, 5}, TextPosition{3, 5}, 0},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := testCase.a.Compare(testCase.b)
			switch {
			case testCase.sign < 0 && got >= 0:
				t.Errorf("Compare = %d, want negative", got)
			case testCase.sign > 0 && got <= 0:
				t.Errorf("Compare = %d, want positive", got)
			case testCase.sign == 0 && got != 0:
				t.Errorf("Compare = %d, want 0", got)
			}
		})
	}
}

func TestTextPositionCombineWithinGap(t *testing.T) {
	cases := []struct {
		name   string
		a, b   TextPosition
		maxGap int
		want   TextPosition
		ok     bool
	}{
		{"overlapping", TextPosition{0, 10}, TextPosition{5, 15}, 0, TextPosition{0, 15}, true},
		{"touching", TextPosition{0, 5}, TextPosition{5, 10}, 0, TextPosition{0, 10}, true},
		{"gap_within_tolerance", TextPosition{0, 5}, TextPosition{8, 10}, 3, TextPosition{0, 10}, true},
		{"gap_too_wide", TextPosition{0, 5}, TextPosition{9, 10}, 3, TextPosition{}, false},
		{"reversed_operands", TextPosition{8, 10}, TextPosition{0, 5}, 3, TextPosition{0, 10}, true},
		{"contained", TextPosition{0, 20}, TextPosition{5, 10}, 0, TextPosition{0, 20}, true},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			merged, ok := testCase.a.CombineWithinGap(testCase.b, testCase.maxGap)
			if ok != testCase.ok {
				t.Fatalf("CombineWithinGap ok = %v, want %v", ok, testCase.ok)
			}
			if ok && merged != testCase.want {
				t.Errorf("CombineWithinGap = %v, want %v", merged, testCase.want)
			}
		})
	}
}

func TestTextPositionString(t *testing.T) {
	position := TextPosition{Start: 12821, End: 12840}
	if got := position.String(); got != "[12821,12840)" {
		t.Errorf("String() = %q", got)
	}
}
