package reorder

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func slotsAt(ids []int64, top, height float64) []Slot {
	slots := make([]Slot, len(ids))
	for i, id := range ids {
		b := Bounds{Top: top + float64(i)*height, Height: height}
		slots[i] = Slot{ID: id, Center: b.Center()}
	}
	return slots
}

func TestInsertionIndex_NearestMidpointBelow(t *testing.T) {
	// Centers at 5, 15, 25.
	slots := slotsAt([]int64{1, 2, 3}, 0, 10)

	cases := []struct {
		y    float64
		want int
	}{
		{0, 0},
		{4.9, 0},
		{5, 1}, // exactly on a midpoint does not qualify
		{12, 1},
		{24, 2},
		{25, 3},
		{100, 3},
	}
	for _, tc := range cases {
		if got := InsertionIndex(slots, tc.y); got != tc.want {
			t.Errorf("InsertionIndex(y=%v) = %d, want %d", tc.y, got, tc.want)
		}
	}
}

func TestInsertionIndex_Empty(t *testing.T) {
	if got := InsertionIndex(nil, 10); got != 0 {
		t.Errorf("expected 0 for empty slots, got %d", got)
	}
}

func TestInsertionIndex_UnsortedSlots(t *testing.T) {
	// Slots need not be in visual order; the closest center below wins.
	slots := []Slot{{ID: 1, Center: 30}, {ID: 2, Center: 12}, {ID: 3, Center: 20}}
	if got := InsertionIndex(slots, 10); got != 1 {
		t.Errorf("expected slot 1, got %d", got)
	}
}

func TestMove(t *testing.T) {
	got, err := Move([]int64{1, 2, 3, 4}, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []int64{4, 1, 2, 3}) {
		t.Errorf("expected [4 1 2 3], got %v", got)
	}

	got, _ = Move([]int64{1, 2, 3, 4}, 1, 99)
	if !slices.Equal(got, []int64{2, 3, 4, 1}) {
		t.Errorf("expected [2 3 4 1], got %v", got)
	}

	if _, err := Move([]int64{1, 2}, 7, 0); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestMove_DoesNotModifyInput(t *testing.T) {
	in := []int64{1, 2, 3}
	_, _ = Move(in, 3, 0)
	if !slices.Equal(in, []int64{1, 2, 3}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestDrag_MoveToTop(t *testing.T) {
	d, err := Start([]int64{1, 2, 3}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Siblings laid out with the dragged card still at the bottom.
	order := d.Over(slotsAt([]int64{1, 2}, 0, 10), 1)
	if !slices.Equal(order, []int64{3, 1, 2}) {
		t.Errorf("expected [3 1 2], got %v", order)
	}
	if !d.Changed() {
		t.Error("expected drag to report a change")
	}
	if got := d.Drop(); !slices.Equal(got, []int64{3, 1, 2}) {
		t.Errorf("expected drop [3 1 2], got %v", got)
	}
}

func TestDrag_MoveToEnd(t *testing.T) {
	d, _ := Start([]int64{1, 2, 3}, 1)
	order := d.Over(slotsAt([]int64{2, 3}, 10, 10), 50)
	if !slices.Equal(order, []int64{2, 3, 1}) {
		t.Errorf("expected [2 3 1], got %v", order)
	}
}

func TestDrag_Unchanged(t *testing.T) {
	d, _ := Start([]int64{1, 2, 3}, 2)
	// Pointer between card 1 and card 3 keeps card 2 in place.
	d.Over([]Slot{{ID: 1, Center: 5}, {ID: 3, Center: 25}}, 15)
	if d.Changed() {
		t.Errorf("expected unchanged order, got %v", d.Order())
	}
}

func TestStart_NotRendered(t *testing.T) {
	if _, err := Start([]int64{1, 2}, 3); err == nil {
		t.Error("expected error for id not in order")
	}
}

type recordingOrderer struct {
	calls [][]int64
	err   error
}

func (r *recordingOrderer) Reorder(ctx context.Context, ids []int64) error {
	r.calls = append(r.calls, slices.Clone(ids))
	return r.err
}

func TestSubmitter_SendsFullOrder(t *testing.T) {
	rec := &recordingOrderer{}
	s := NewSubmitter(rec, nil)

	if err := s.Submit(context.Background(), []int64{3, 1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.calls) != 1 || !slices.Equal(rec.calls[0], []int64{3, 1, 2}) {
		t.Errorf("unexpected calls: %v", rec.calls)
	}
}

func TestSubmitter_EmptyOrderNotSent(t *testing.T) {
	rec := &recordingOrderer{}
	if err := NewSubmitter(rec, nil).Submit(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no calls, got %v", rec.calls)
	}
}

func TestSubmitter_DuplicateRejected(t *testing.T) {
	rec := &recordingOrderer{}
	if err := NewSubmitter(rec, nil).Submit(context.Background(), []int64{1, 1}); err == nil {
		t.Fatal("expected error for duplicate ids")
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no calls, got %v", rec.calls)
	}
}

func TestSubmitter_FailureLoggedNotRetried(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	rec := &recordingOrderer{err: errors.New("connection refused")}
	err := NewSubmitter(rec, log).Submit(context.Background(), []int64{1, 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(rec.calls) != 1 {
		t.Errorf("expected exactly one attempt, got %d", len(rec.calls))
	}
	if !strings.Contains(buf.String(), "saving task order failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
}
