package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "hh:mm", input: "08:30", want: "08:30"},
		{name: "postgres time", input: "17:00:00", want: "17:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:15", wantErr: ErrTimeOutOfRange},
		{name: "bad minutes", input: "08:75", wantErr: ErrInvalidTimeString},
		{name: "garbage", input: "8h", wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("08:00")

	end, err := start.AddMinutes(4 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), end)

	end, err = TimeString("20:00").AddMinutes(4 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = TimeString("22:00").AddMinutes(4 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("12:00").IsAfter("11:59"))
	assert.True(t, TimeString("12:00").Equal("12:00"))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	date := time.Date(2026, 10, 19, 15, 42, 0, 0, loc)

	got := TimeString("08:30").On(date)
	assert.Equal(t, time.Date(2026, 10, 19, 8, 30, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("06:00:00")))
	assert.Equal(t, TimeString("06:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
