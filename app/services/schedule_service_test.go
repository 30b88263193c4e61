package services

import (
	"reflect"
	"testing"
	"time"

	"karate-attendance/app/models"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func collectDates(seq func(func(time.Time) bool)) []string {
	var out []string
	seq(func(d time.Time) bool {
		out = append(out, d.Format(models.DateLayout))
		return true
	})
	return out
}

func TestOccurrenceDates(t *testing.T) {
	for _, tc := range []struct {
		name          string
		anchor        string
		rangeStart    string
		rangeEnd      string
		daysOfWeek    []int64
		recurrenceEnd string
		want          []string
	}{
		{
			name:   "mon wed inside wider range",
			anchor: "2025-01-06", rangeStart: "2025-01-01", rangeEnd: "2025-01-31",
			daysOfWeek: []int64{1, 3}, recurrenceEnd: "2025-01-17",
			want: []string{"2025-01-06", "2025-01-08", "2025-01-13", "2025-01-15"},
		},
		{
			name:   "range narrower than recurrence window",
			anchor: "2025-01-06", rangeStart: "2025-01-13", rangeEnd: "2025-01-14",
			daysOfWeek: []int64{1, 3}, recurrenceEnd: "2025-03-31",
			want: []string{"2025-01-13"},
		},
		{
			name:   "empty intersection yields nothing",
			anchor: "2025-03-01", rangeStart: "2025-01-01", rangeEnd: "2025-01-31",
			daysOfWeek: []int64{1}, recurrenceEnd: "2025-03-31",
			want: nil,
		},
		{
			name:   "empty weekday set yields nothing",
			anchor: "2025-01-06", rangeStart: "2025-01-01", rangeEnd: "2025-01-31",
			daysOfWeek: nil, recurrenceEnd: "2025-01-31",
			want: nil,
		},
		{
			name:   "sunday is zero",
			anchor: "2025-01-01", rangeStart: "2025-01-01", rangeEnd: "2025-01-14",
			daysOfWeek: []int64{0}, recurrenceEnd: "2025-01-14",
			want: []string{"2025-01-05", "2025-01-12"},
		},
		{
			name:   "single day window matching weekday",
			anchor: "2025-01-06", rangeStart: "2025-01-06", rangeEnd: "2025-01-06",
			daysOfWeek: []int64{1}, recurrenceEnd: "2025-01-06",
			want: []string{"2025-01-06"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			seq := OccurrenceDates(date(t, tc.anchor), date(t, tc.rangeStart), date(t, tc.rangeEnd), tc.daysOfWeek, date(t, tc.recurrenceEnd))
			if got := collectDates(seq); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			// The sequence must be restartable.
			if got := collectDates(seq); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("second pass: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOccurrenceDatesEarlyStop(t *testing.T) {
	seq := OccurrenceDates(date(t, "2025-01-01"), date(t, "2025-01-01"), date(t, "2025-12-31"), []int64{1, 2, 3, 4, 5}, date(t, "2025-12-31"))
	var n int
	seq(func(time.Time) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("got %d yields after early stop, want 3", n)
	}
}

func TestResolveSession(t *testing.T) {
	overrides := []models.SessionOverride{
		{Date: "2025-01-08", Instructor: "Dana", Status: models.StatusCancelled, Notes: "travel"},
		{Date: "2025-01-15", Instructor: "Eli"},
	}

	for _, tc := range []struct {
		name string
		date string
		want EffectiveSession
	}{
		{"full override wins", "2025-01-08", EffectiveSession{Instructor: "Dana", Status: models.StatusCancelled, Notes: "travel"}},
		{"override without status falls back to default", "2025-01-15", EffectiveSession{Instructor: "Eli", Status: models.StatusScheduled}},
		{"no override uses default status", "2025-01-06", EffectiveSession{Status: models.StatusScheduled}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveSession(tc.date, overrides, models.StatusScheduled)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func recurringFixture() *models.ClassSchedule {
	return &models.ClassSchedule{
		ID:                "sched-1",
		ClassID:           "class-1",
		ClassName:         "Adult Karate",
		ClassInstructor:   "Sensei Kim",
		Date:              "2025-01-06",
		StartTime:         "18:00",
		EndTime:           "19:30",
		Recurring:         true,
		DaysOfWeek:        []int64{1, 3},
		RecurrenceEndDate: "2025-01-17",
		Status:            models.StatusScheduled,
	}
}

func TestExpandSchedulesRecurring(t *testing.T) {
	sched := recurringFixture()
	sched.Sessions = []models.SessionOverride{
		{Date: "2025-01-08", Instructor: "Dana", Status: models.StatusCancelled, Notes: "instructor away"},
	}

	got := ExpandSchedules([]*models.ClassSchedule{sched}, date(t, "2025-01-01"), date(t, "2025-01-31"))
	if len(got) != 4 {
		t.Fatalf("got %d occurrences, want 4: %+v", len(got), got)
	}

	wantDates := []string{"2025-01-06", "2025-01-08", "2025-01-13", "2025-01-15"}
	for i, occ := range got {
		if occ.Date != wantDates[i] {
			t.Errorf("occurrence %d: got date %s, want %s", i, occ.Date, wantDates[i])
		}
		if !occ.MaterializedFromRecurrence {
			t.Errorf("occurrence %d: materialized_from_recurrence is false", i)
		}
		if occ.ScheduleID != "sched-1" {
			t.Errorf("occurrence %d: got schedule id %s, want sched-1", i, occ.ScheduleID)
		}
	}

	// The overridden date reflects the override, the rest keep defaults.
	if got[1].Instructor != "Dana" || got[1].Status != models.StatusCancelled || got[1].Notes != "instructor away" {
		t.Errorf("overridden occurrence: got %+v", got[1])
	}
	if got[0].Instructor != "Sensei Kim" || got[0].Status != models.StatusScheduled {
		t.Errorf("plain occurrence: got %+v", got[0])
	}
}

func TestExpandSchedulesIgnoresParentStatusForRecurring(t *testing.T) {
	// Mutating the parent record's lifecycle status must not leak into
	// occurrences that have no override of their own.
	sched := recurringFixture()
	sched.Status = models.StatusCompleted

	got := ExpandSchedules([]*models.ClassSchedule{sched}, date(t, "2025-01-01"), date(t, "2025-01-31"))
	for _, occ := range got {
		if occ.Status != models.StatusScheduled {
			t.Errorf("%s: got status %s, want scheduled", occ.Date, occ.Status)
		}
	}
}

func TestExpandSchedulesNonRecurring(t *testing.T) {
	sched := &models.ClassSchedule{
		ID:              "sched-2",
		ClassInstructor: "Sensei Kim",
		Date:            "2025-02-01",
		StartTime:       "10:00",
		EndTime:         "11:00",
		Status:          models.StatusCompleted,
	}

	got := ExpandSchedules([]*models.ClassSchedule{sched}, date(t, "2025-02-01"), date(t, "2025-02-01"))
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(got))
	}
	occ := got[0]
	if occ.MaterializedFromRecurrence {
		t.Error("one-off occurrence marked as materialized from recurrence")
	}
	if occ.Status != models.StatusCompleted {
		t.Errorf("got status %s, want completed", occ.Status)
	}

	// Outside the window it disappears entirely.
	if got := ExpandSchedules([]*models.ClassSchedule{sched}, date(t, "2025-02-02"), date(t, "2025-02-28")); len(got) != 0 {
		t.Errorf("out-of-window one-off still expanded: %+v", got)
	}
}

func TestExpandSchedulesSkipsMalformedRecords(t *testing.T) {
	bad := []*models.ClassSchedule{
		{ID: "bad-date", Date: "not-a-date"},
		{ID: "bad-weekdays", Date: "2025-01-06", Recurring: true, RecurrenceEndDate: "2025-01-31"},
		{ID: "bad-weekday-range", Date: "2025-01-06", Recurring: true, DaysOfWeek: []int64{7}, RecurrenceEndDate: "2025-01-31"},
		{ID: "bad-window", Date: "2025-01-06", Recurring: true, DaysOfWeek: []int64{1}, RecurrenceEndDate: "2025-01-01"},
	}
	good := recurringFixture()

	got := ExpandSchedules(append(bad, good), date(t, "2025-01-01"), date(t, "2025-01-31"))
	if len(got) != 4 {
		t.Fatalf("got %d occurrences, want 4 from the single valid schedule", len(got))
	}
	for _, occ := range got {
		if occ.ScheduleID != good.ID {
			t.Errorf("occurrence from skipped schedule %s leaked through", occ.ScheduleID)
		}
	}
}

func TestExpandSchedulesOpenEndedRecurrence(t *testing.T) {
	sched := recurringFixture()
	sched.RecurrenceEndDate = ""

	got := ExpandSchedules([]*models.ClassSchedule{sched}, date(t, "2025-01-01"), date(t, "2025-01-14"))
	wantDates := []string{"2025-01-06", "2025-01-08", "2025-01-13"}
	if len(got) != len(wantDates) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(wantDates))
	}
	for i, occ := range got {
		if occ.Date != wantDates[i] {
			t.Errorf("occurrence %d: got %s, want %s", i, occ.Date, wantDates[i])
		}
	}
}

func TestExpandSchedulesSortsByDateThenStartTime(t *testing.T) {
	evening := recurringFixture()
	morning := recurringFixture()
	morning.ID = "sched-morning"
	morning.StartTime = "09:00"
	morning.EndTime = "10:00"

	got := ExpandSchedules([]*models.ClassSchedule{evening, morning}, date(t, "2025-01-01"), date(t, "2025-01-31"))
	if len(got) != 8 {
		t.Fatalf("got %d occurrences, want 8", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Date < prev.Date || (cur.Date == prev.Date && cur.StartTime < prev.StartTime) {
			t.Errorf("occurrences out of order at %d: %s %s before %s %s",
				i, prev.Date, prev.StartTime, cur.Date, cur.StartTime)
		}
	}
	// Same date: the 09:00 class comes before the 18:00 one.
	if got[0].StartTime != "09:00" || got[1].StartTime != "18:00" {
		t.Errorf("same-day ordering wrong: %s then %s", got[0].StartTime, got[1].StartTime)
	}
}
