package slot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediconnect/internal/domains/schedule/model"
	"mediconnect/internal/domains/slot"
	"mediconnect/shared/calendar"
)

func clocks(times []calendar.TimeOfDay) []string {
	res := make([]string, 0, len(times))
	for _, t := range times {
		res = append(res, t.Display())
	}

	return res
}

func window(sh, sm, eh, em int) model.Window {
	return model.Window{Start: calendar.NewTimeOfDay(sh, sm), End: calendar.NewTimeOfDay(eh, em)}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		windows []model.Window
		booked  []calendar.TimeOfDay
		want    []string
	}{
		{
			name:    "half hour window",
			windows: []model.Window{window(9, 0, 9, 30)},
			want:    []string{"9:00 AM", "9:15 AM"},
		},
		{
			name:    "first slot booked",
			windows: []model.Window{window(9, 0, 9, 30)},
			booked:  []calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0)},
			want:    []string{"9:15 AM"},
		},
		{
			name:    "fully booked",
			windows: []model.Window{window(9, 0, 9, 30)},
			booked:  []calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0), calendar.NewTimeOfDay(9, 15)},
			want:    []string{},
		},
		{
			name:    "overlapping windows are deduplicated and sorted",
			windows: []model.Window{window(14, 0, 14, 45), window(9, 0, 9, 15), window(14, 15, 15, 0)},
			want:    []string{"9:00 AM", "2:00 PM", "2:15 PM", "2:30 PM", "2:45 PM"},
		},
		{
			name:    "window shorter than a step still yields its start",
			windows: []model.Window{window(10, 0, 10, 10)},
			want:    []string{"10:00 AM"},
		},
		{
			name:    "window ending at midnight",
			windows: []model.Window{window(23, 30, 23, 59)},
			want:    []string{"11:30 PM", "11:45 PM"},
		},
		{
			name: "no windows",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clocks(slot.Generate(tt.windows, tt.booked)))
		})
	}
}

func TestContains(t *testing.T) {
	windows := []model.Window{window(9, 0, 10, 0), window(13, 10, 13, 40)}

	assert.True(t, slot.Contains(windows, calendar.NewTimeOfDay(9, 45)))
	assert.True(t, slot.Contains(windows, calendar.NewTimeOfDay(13, 25)))
	assert.False(t, slot.Contains(windows, calendar.NewTimeOfDay(10, 0)))
	assert.False(t, slot.Contains(windows, calendar.NewTimeOfDay(9, 10)))
	assert.False(t, slot.Contains(windows, calendar.NewTimeOfDay(13, 15)))
	assert.False(t, slot.Contains(nil, calendar.NewTimeOfDay(9, 0)))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "slot:doc-1:", slot.CachePrefix("doc-1"))
	assert.Equal(t, "slot:doc-1:2026-10-19", slot.CacheKey("doc-1", calendar.NewDate(2026, 10, 19)))
}
