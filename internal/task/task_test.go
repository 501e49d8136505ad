package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func intp(i int) *int { return &i }

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"PENDING":     Pending,
		"pending":     Pending,
		"IN_PROGRESS": InProgress,
		"in-progress": InProgress,
		" completed ": Completed,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseStatus(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseStatus("ALL"); err == nil {
		t.Error("expected error for ALL")
	}
}

func TestStatusLabels(t *testing.T) {
	if Pending.Label() != "Pending" {
		t.Errorf("unexpected label %q", Pending.Label())
	}
	if InProgress.Label() != "In progress" {
		t.Errorf("unexpected label %q", InProgress.Label())
	}
	if Completed.Label() != "Done" {
		t.Errorf("unexpected label %q", Completed.Label())
	}
	if Completed.Next() != Pending {
		t.Errorf("expected Next to wrap to Pending, got %v", Completed.Next())
	}
}

func TestTask_UnmarshalJSON(t *testing.T) {
	data := `{"id":7,"title":"Report Q1","description":null,"status":"IN_PROGRESS",
		"dueDate":"2024-05-01","createdAt":"2024-04-20T09:15:30.123456","orderIndex":2}`

	var got Task
	if err := json.Unmarshal([]byte(data), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 7 || got.Title != "Report Q1" || got.Description != "" {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.Status != InProgress {
		t.Errorf("expected IN_PROGRESS, got %v", got.Status)
	}
	if got.DueDate == nil || got.DueDate.String() != "2024-05-01" {
		t.Errorf("unexpected due date: %v", got.DueDate)
	}
	if got.OrderIndex == nil || *got.OrderIndex != 2 {
		t.Errorf("unexpected order index: %v", got.OrderIndex)
	}
	if got.CreatedAt.Year() != 2024 || got.CreatedAt.Hour() != 9 {
		t.Errorf("unexpected createdAt: %v", got.CreatedAt)
	}
}

func TestTask_UnmarshalJSON_NullsAndDefaults(t *testing.T) {
	var got Task
	if err := json.Unmarshal([]byte(`{"id":1,"title":"x","dueDate":null,"orderIndex":null}`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DueDate != nil || got.OrderIndex != nil {
		t.Errorf("expected nil due date and order index, got %+v", got)
	}
	if got.Status != Pending {
		t.Errorf("expected missing status to default to PENDING, got %v", got.Status)
	}
}

func TestTask_UnmarshalJSON_UnknownStatus(t *testing.T) {
	var got Task
	if err := json.Unmarshal([]byte(`{"id":1,"title":"x","status":"ARCHIVED"}`), &got); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestInput_MarshalJSON(t *testing.T) {
	d, _ := ParseDate("2024-05-01")
	b, err := json.Marshal(Input{Title: "a", Status: Completed, DueDate: &d})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"title":"a","description":"","status":"COMPLETED","dueDate":"2024-05-01"}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}

	b, _ = json.Marshal(Input{Title: "a"})
	want = `{"title":"a","description":"","status":"PENDING","dueDate":null}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestInput_Validate(t *testing.T) {
	if err := (Input{Title: "  "}).Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if err := (Input{Title: "ok", Status: Status(9)}).Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := (Input{Title: "ok"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got := (Input{Title: "  padded  "}).Normalize().Title; got != "padded" {
		t.Errorf("expected trimmed title, got %q", got)
	}
}

func TestCompare_OrderIndexAscending(t *testing.T) {
	tasks := []Task{
		{ID: 1, OrderIndex: intp(2)},
		{ID: 2, OrderIndex: intp(0)},
		{ID: 3, OrderIndex: intp(1)},
	}
	Sort(tasks)
	got := IDs(tasks)
	want := []int64{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCompare_FallbackNewestFirst(t *testing.T) {
	tasks := []Task{{ID: 1}, {ID: 3}, {ID: 2}}
	Sort(tasks)
	got := IDs(tasks)
	want := []int64{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCompare_EqualIndexBreaksOnID(t *testing.T) {
	a := Task{ID: 4, OrderIndex: intp(0)}
	b := Task{ID: 9, OrderIndex: intp(0)}
	if !Less(b, a) {
		t.Error("expected newer task first on equal order index")
	}
}

func TestCompare_IndexedBeforeUnindexed(t *testing.T) {
	indexed := Task{ID: 1, OrderIndex: intp(5)}
	plain := Task{ID: 9}
	if !Less(indexed, plain) || Less(plain, indexed) {
		t.Error("expected indexed task before unindexed one regardless of id")
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	yesterday := DateOf(now).AddDays(-1)
	today := DateOf(now)

	pending := Task{Status: Pending, DueDate: &yesterday}
	if !pending.Overdue(now) {
		t.Error("expected pending task due yesterday to be overdue")
	}

	done := Task{Status: Completed, DueDate: &yesterday}
	if done.Overdue(now) {
		t.Error("completed task must not be overdue")
	}

	dueToday := Task{Status: Pending, DueDate: &today}
	if dueToday.Overdue(now) {
		t.Error("task due today must not be overdue")
	}

	if (Task{Status: Pending}).Overdue(now) {
		t.Error("task without due date must not be overdue")
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
