package deliverable

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ds   []Deliverable
		want int
	}{
		{
			name: "no deliverables is zero",
			ds:   nil,
			want: 0,
		},
		{
			name: "none approved is zero",
			ds:   []Deliverable{{Status: StatusPending}, {Status: StatusSubmitted}},
			want: 0,
		},
		{
			name: "two of three approved rounds to 67",
			ds:   []Deliverable{{Status: StatusApproved}, {Status: StatusApproved}, {Status: StatusPending}},
			want: 67,
		},
		{
			name: "one of three approved rounds to 33",
			ds:   []Deliverable{{Status: StatusApproved}, {Status: StatusNeedsChanges}, {Status: StatusPending}},
			want: 33,
		},
		{
			name: "all approved is 100",
			ds:   []Deliverable{{Status: StatusApproved}, {Status: StatusApproved}},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Progress(tt.ds); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusBreakdown(t *testing.T) {
	t.Parallel()

	ds := []Deliverable{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusSubmitted},
		{Status: StatusApproved},
	}

	got := StatusBreakdown(ds)

	if got[StatusPending] != 2 {
		t.Errorf("breakdown[pending] = %d, want 2", got[StatusPending])
	}
	if got[StatusSubmitted] != 1 {
		t.Errorf("breakdown[submitted] = %d, want 1", got[StatusSubmitted])
	}
	if got[StatusApproved] != 1 {
		t.Errorf("breakdown[approved] = %d, want 1", got[StatusApproved])
	}
	if _, ok := got[StatusNeedsChanges]; ok {
		t.Error("breakdown should not contain absent statuses")
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	t.Parallel()

	now := day(0)
	ds := []Deliverable{
		{ID: 1, Status: StatusPending, DueDate: day(10)},
		{ID: 2, Status: StatusApproved, DueDate: day(3)},
		{ID: 3, Status: StatusSubmitted, DueDate: day(1)},
		{ID: 4, Status: StatusNeedsChanges, DueDate: day(-2)},
		{ID: 5, Status: StatusPending, DueDate: day(5)},
	}

	t.Run("filters approved and past-due, sorts ascending", func(t *testing.T) {
		t.Parallel()
		got := UpcomingDeadlines(ds, now, 0)

		wantIDs := []int64{3, 5, 1}
		if len(got) != len(wantIDs) {
			t.Fatalf("UpcomingDeadlines() len = %d, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("UpcomingDeadlines()[%d].ID = %d, want %d", i, got[i].ID, id)
			}
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		t.Parallel()
		got := UpcomingDeadlines(ds, now, 2)
		if len(got) != 2 {
			t.Fatalf("UpcomingDeadlines() len = %d, want 2", len(got))
		}
		if got[0].ID != 3 || got[1].ID != 5 {
			t.Errorf("UpcomingDeadlines() ids = [%d %d], want [3 5]", got[0].ID, got[1].ID)
		}
	})

	t.Run("does not mutate input order", func(t *testing.T) {
		t.Parallel()
		_ = UpcomingDeadlines(ds, now, 0)
		if ds[0].ID != 1 || ds[4].ID != 5 {
			t.Error("input slice was reordered")
		}
	})
}
