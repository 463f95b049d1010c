package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediconnect/shared/calendar"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    calendar.TimeOfDay
		wantErr bool
	}{
		{input: "09:15", want: calendar.NewTimeOfDay(9, 15)},
		{input: "14:30:00", want: calendar.NewTimeOfDay(14, 30)},
		{input: "9:15 AM", want: calendar.NewTimeOfDay(9, 15)},
		{input: "03:45 pm", want: calendar.NewTimeOfDay(15, 45)},
		{input: "12:00 AM", want: calendar.NewTimeOfDay(0, 0)},
		{input: "25:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := calendar.ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidTime)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want.Clock(), got.Clock())
		})
	}
}

func TestTimeOfDay_Display(t *testing.T) {
	assert.Equal(t, "9:15 AM", calendar.NewTimeOfDay(9, 15).Display())
	assert.Equal(t, "12:00 PM", calendar.NewTimeOfDay(12, 0).Display())
	assert.Equal(t, "03:04 PM", calendar.NewTimeOfDay(15, 4).DisplayPadded())
	assert.Equal(t, "15:04", calendar.NewTimeOfDay(15, 4).Clock())
}

func TestTimeOfDay_Add(t *testing.T) {
	next, ok := calendar.NewTimeOfDay(9, 45).Add(15 * time.Minute)
	assert.True(t, ok)
	assert.Equal(t, "10:00", next.Clock())

	_, ok = calendar.NewTimeOfDay(23, 50).Add(15 * time.Minute)
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	d, err := calendar.ParseDate("2026-10-19")
	require.NoError(t, err)

	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2026-10-20", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.Equal(t, "October 19, 2026", d.Format("January 02, 2006"))
	assert.Len(t, d.Range(7), 7)
	assert.Equal(t, time.Sunday, d.Range(7)[6].Weekday())

	_, err = calendar.ParseDate("19/10/2026")
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestScanValue(t *testing.T) {
	var d calendar.Date
	require.NoError(t, d.Scan(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-10-19", d.String())

	require.NoError(t, d.Scan([]byte("2026-10-20T00:00:00Z")))
	assert.Equal(t, "2026-10-20", d.String())

	value, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", value)

	var tod calendar.TimeOfDay
	require.NoError(t, tod.Scan("09:30:00"))
	assert.Equal(t, "09:30", tod.Clock())

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 14, 15, 0, 0, time.UTC)))
	value, err = tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "14:15:00", value)

	assert.Error(t, tod.Scan(42))
}
