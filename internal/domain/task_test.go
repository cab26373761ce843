package domain

import (
	"math"
	"testing"
)

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page Page
		want int
	}{
		{Page{}, 0},
		{Page{Number: 1, Limit: 10}, 0},
		{Page{Number: 3, Limit: 10}, 20},
		{Page{Number: -2, Limit: 10}, 0},
		{Page{Number: math.MaxInt, Limit: 100}, math.MaxInt},
		{Page{Number: 5}, 0},
	}
	for _, tc := range cases {
		if got := tc.page.Offset(); got != tc.want {
			t.Errorf("%#v.Offset() = %d, want %d", tc.page, got, tc.want)
		}
	}
}

func TestTaskPatchEmpty(t *testing.T) {
	if !(TaskPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	if (TaskPatch{Status: TaskStatusCompleted}).Empty() {
		t.Error("patch with status should not be empty")
	}
}
