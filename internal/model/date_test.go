package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso", input: "2024-01-31", want: NewDate(2024, time.January, 31)},
		{name: "unpadded", input: "2024-1-5", want: NewDate(2024, time.January, 5)},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2024-03-05", NewDate(2024, time.March, 5).String())
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.January, 31},
		{2024, time.April, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d %s", tt.year, tt.month)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.December, 25)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-25"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDateOrdering(t *testing.T) {
	early := NewDate(2024, time.January, 1)
	late := NewDate(2024, time.June, 1)

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.After(late))
	assert.True(t, Date{}.IsZero())
	assert.False(t, early.IsZero())
}
