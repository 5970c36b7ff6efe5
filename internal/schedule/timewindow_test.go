package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	w, err := NewTimeWindow("2025-06-10", "09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", w.Date)
	assert.Equal(t, "09:00", w.Start)
	assert.Equal(t, "10:00", w.End)
}

func TestTimeWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr error
	}{
		{"valid", "2025-06-10", "09:00", "10:00", nil},
		{"bad date", "10-06-2025", "09:00", "10:00", ErrInvalidDate},
		{"empty date", "", "09:00", "10:00", ErrInvalidDate},
		{"bad start", "2025-06-10", "9am", "10:00", ErrInvalidTime},
		{"bad end", "2025-06-10", "09:00", "25:00", ErrInvalidTime},
		{"end equals start", "2025-06-10", "09:00", "09:00", ErrInvalidWindow},
		{"end before start", "2025-06-10", "10:00", "09:00", ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeWindow(tt.date, tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTimeWindowOverlaps(t *testing.T) {
	base := TimeWindow{Date: "2025-06-10", Start: "09:00", End: "10:00"}

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{"identical", TimeWindow{"2025-06-10", "09:00", "10:00"}, true},
		{"contained", TimeWindow{"2025-06-10", "09:15", "09:45"}, true},
		{"containing", TimeWindow{"2025-06-10", "08:00", "11:00"}, true},
		{"overlap left", TimeWindow{"2025-06-10", "08:30", "09:30"}, true},
		{"overlap right", TimeWindow{"2025-06-10", "09:30", "10:30"}, true},
		{"touching before", TimeWindow{"2025-06-10", "08:00", "09:00"}, false},
		{"touching after", TimeWindow{"2025-06-10", "10:00", "11:00"}, false},
		{"disjoint", TimeWindow{"2025-06-10", "11:00", "12:00"}, false},
		{"same clock other day", TimeWindow{"2025-06-11", "09:00", "10:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-10"))
	assert.False(t, ValidDate("2025-13-10"))
	assert.False(t, ValidDate("june 10"))
	assert.False(t, ValidDate(""))
}
