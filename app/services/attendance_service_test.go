package services

import (
	"reflect"
	"testing"
	"time"

	"karate-attendance/app/models"
)

func TestMergeOverrideReplacesMatchingDate(t *testing.T) {
	existing := []models.SessionOverride{
		{Date: "2025-01-06", Instructor: "Kim", Status: models.StatusCompleted},
		{Date: "2025-01-08", Instructor: "Dana", Status: models.StatusCancelled, Notes: "travel"},
	}
	update := models.SessionOverride{Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted}

	got := mergeOverride(existing, update, false)
	if len(got) != 2 {
		t.Fatalf("got %d overrides, want 2", len(got))
	}
	if got[1] != update {
		t.Errorf("got %+v, want %+v", got[1], update)
	}
	// Other dates' entries are untouched.
	if got[0] != existing[0] {
		t.Errorf("unrelated override changed: got %+v, want %+v", got[0], existing[0])
	}
	// The input slice itself is not mutated.
	if existing[1].Instructor != "Dana" {
		t.Errorf("input slice mutated: %+v", existing[1])
	}
}

func TestMergeOverrideAppendsNewDate(t *testing.T) {
	existing := []models.SessionOverride{
		{Date: "2025-01-06", Instructor: "Kim"},
	}
	update := models.SessionOverride{Date: "2025-01-13", Instructor: "Eli", Status: models.StatusCompleted}

	got := mergeOverride(existing, update, false)
	if len(got) != 2 {
		t.Fatalf("got %d overrides, want 2", len(got))
	}
	if got[0] != existing[0] || got[1] != update {
		t.Errorf("got %+v", got)
	}
}

func TestMergeOverrideKeepNotes(t *testing.T) {
	existing := []models.SessionOverride{
		{Date: "2025-01-08", Instructor: "Dana", Status: models.StatusScheduled, Notes: "belt test day"},
	}

	// Re-marking attendance sends no notes; the session's notes survive.
	marked := mergeOverride(existing, models.SessionOverride{
		Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted,
	}, true)
	want := models.SessionOverride{Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted, Notes: "belt test day"}
	if marked[0] != want {
		t.Errorf("got %+v, want %+v", marked[0], want)
	}

	// Explicit notes still replace.
	edited := mergeOverride(existing, models.SessionOverride{
		Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted, Notes: "moved to small dojo",
	}, true)
	if got, want := edited[0].Notes, "moved to small dojo"; got != want {
		t.Errorf("got notes %q, want %q", got, want)
	}

	// Without keepNotes an empty value clears, matching the direct
	// session-update endpoint's replace semantics.
	cleared := mergeOverride(existing, models.SessionOverride{
		Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted,
	}, false)
	if got := cleared[0].Notes; got != "" {
		t.Errorf("got notes %q, want empty", got)
	}
}

func TestMergeOverrideIdempotent(t *testing.T) {
	existing := []models.SessionOverride{
		{Date: "2025-01-06", Instructor: "Kim"},
	}
	update := models.SessionOverride{Date: "2025-01-08", Instructor: "Eli", Status: models.StatusCompleted}

	once := mergeOverride(existing, update, true)
	twice := mergeOverride(once, update, true)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same outcome twice changed the list: %+v vs %+v", once, twice)
	}
}

func TestFirstScheduled(t *testing.T) {
	occs := []models.ClassOccurrence{
		{Date: "2025-01-15", StartTime: "09:00", Status: models.StatusCompleted, ClassName: "Kids"},
		{Date: "2025-01-15", StartTime: "10:00", Status: models.StatusCancelled, ClassName: "Teens"},
		{Date: "2025-01-15", StartTime: "17:00", Status: models.StatusScheduled, ClassName: "Adults"},
		{Date: "2025-01-16", StartTime: "09:00", Status: models.StatusScheduled, ClassName: "Kids"},
	}

	// Mid-morning: the completed and cancelled sessions are skipped.
	got, ok := firstScheduled(occs, "09:30")
	if !ok {
		t.Fatal("firstScheduled found nothing, want the 17:00 class")
	}
	if got.ClassName != "Adults" || got.StartTime != "17:00" {
		t.Errorf("got %s at %s, want Adults at 17:00", got.ClassName, got.StartTime)
	}

	// Late evening: nothing left today.
	if _, ok := firstScheduled(occs[:3], "20:00"); ok {
		t.Error("firstScheduled found a class after all of today's sessions")
	}

	// Empty cutoff matches everything still scheduled.
	got, ok = firstScheduled(occs[3:], "")
	if !ok || got.Date != "2025-01-16" {
		t.Errorf("got %+v ok=%v, want the 2025-01-16 class", got, ok)
	}

	if _, ok := firstScheduled(nil, ""); ok {
		t.Error("firstScheduled found a class in an empty list")
	}
}

func TestReportRange(t *testing.T) {
	// 2025-01-15 is a Wednesday.
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		name       string
		start, end string
	}{
		{"week", "2025-01-12", "2025-01-18"},
		{"month", "2025-01-01", "2025-01-31"},
		{"quarter", "2025-01-01", "2025-03-31"},
		{"unknown-falls-back-to-month", "2025-01-01", "2025-01-31"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			start, end := ReportRange(tc.name, now)
			if start != tc.start || end != tc.end {
				t.Errorf("got %s..%s, want %s..%s", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestReportRangeQuarterBoundaries(t *testing.T) {
	for _, tc := range []struct {
		month      time.Month
		start, end string
	}{
		{time.February, "2025-01-01", "2025-03-31"},
		{time.June, "2025-04-01", "2025-06-30"},
		{time.September, "2025-07-01", "2025-09-30"},
		{time.December, "2025-10-01", "2025-12-31"},
	} {
		now := time.Date(2025, tc.month, 10, 0, 0, 0, 0, time.UTC)
		start, end := ReportRange("quarter", now)
		if start != tc.start || end != tc.end {
			t.Errorf("%s: got %s..%s, want %s..%s", tc.month, start, end, tc.start, tc.end)
		}
	}
}
