package sorter

import (
	"context"
	"reflect"
	"testing"

	"github.com/sdejongh/paircomp/internal/platform"
)

// TestInternalSorter verifies in-process sorting
func TestInternalSorter(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "unsorted input",
			lines: []string{"banana", "apple", "cherry"},
			want:  []string{"apple", "banana", "cherry"},
		},
		{
			name:  "already sorted",
			lines: []string{"a", "b", "c"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "duplicates preserved",
			lines: []string{"b", "a", "b"},
			want:  []string{"a", "b", "b"},
		},
		{
			name:  "empty input",
			lines: []string{},
			want:  []string{},
		},
		{
			name:  "byte order not locale order",
			lines: []string{"a", "B", "A"},
			want:  []string{"A", "B", "a"},
		},
	}

	s := NewInternalSorter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sort(context.Background(), tt.lines)
			if err != nil {
				t.Fatalf("Sort failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestInternalSorterDoesNotMutateInput verifies the input slice is left
// untouched
func TestInternalSorterDoesNotMutateInput(t *testing.T) {
	lines := []string{"b", "a"}

	s := NewInternalSorter()
	if _, err := s.Sort(context.Background(), lines); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	if !reflect.DeepEqual(lines, []string{"b", "a"}) {
		t.Errorf("input slice was mutated: %v", lines)
	}
}

// TestInternalSorterCancelled verifies context cancellation
func TestInternalSorterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewInternalSorter()
	if _, err := s.Sort(ctx, []string{"b", "a"}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

// TestExternalSorter verifies delegation to the platform sort utility
func TestExternalSorter(t *testing.T) {
	if !platform.SortUtilityAvailable() {
		t.Skip("platform sort utility not available")
	}

	s := NewExternalSorter()
	got, err := s.Sort(context.Background(), []string{"banana", "apple", "cherry"})
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	want := []string{"apple", "banana", "cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

// TestExternalSorterMatchesInternal verifies both sorters agree on byte
// order
func TestExternalSorterMatchesInternal(t *testing.T) {
	if !platform.SortUtilityAvailable() {
		t.Skip("platform sort utility not available")
	}

	lines := []string{"zulu", "Alpha", "alpha", "10", "2", "B"}

	internal, err := NewInternalSorter().Sort(context.Background(), lines)
	if err != nil {
		t.Fatalf("internal Sort failed: %v", err)
	}

	external, err := NewExternalSorter().Sort(context.Background(), lines)
	if err != nil {
		t.Fatalf("external Sort failed: %v", err)
	}

	if !reflect.DeepEqual(internal, external) {
		t.Errorf("sorters disagree: internal=%v external=%v", internal, external)
	}
}
