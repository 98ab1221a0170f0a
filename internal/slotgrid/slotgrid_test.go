package slotgrid

import "testing"

func TestGenerateDefaultGridSize(t *testing.T) {
	slots, err := Generate(DefaultDays(), DefaultPeriods())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := len(DefaultDays()) * len(DefaultPeriods())
	if len(slots) != want {
		t.Fatalf("expected %d slots, got %d", want, len(slots))
	}
}

func TestGenerateIsDuplicateFree(t *testing.T) {
	periods := []Period{{Start: 0, End: 60}, {Start: 0, End: 60}}
	slots, err := Generate(DefaultDays()[:1], periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected duplicate periods to collapse to 1 slot, got %d", len(slots))
	}
}

func TestGenerateRejectsEmptyLists(t *testing.T) {
	if _, err := Generate(nil, DefaultPeriods()); err == nil {
		t.Fatalf("expected error for empty day list")
	}
	if _, err := Generate(DefaultDays(), nil); err == nil {
		t.Fatalf("expected error for empty period list")
	}
}

func TestGenerateOrderingDeterministic(t *testing.T) {
	a, _ := Generate(DefaultDays(), DefaultPeriods())
	b, _ := Generate(DefaultDays(), DefaultPeriods())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected deterministic ordering at index %d", i)
		}
	}
}
