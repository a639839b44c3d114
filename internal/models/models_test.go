package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHiveID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"padded mixed case", " Colmena Alfa ", "colmena_alfa"},
		{"already normalized", "colmena_alfa", "colmena_alfa"},
		{"internal runs of whitespace", "Colmena   Alfa\tNorte", "colmena_alfa_norte"},
		{"only whitespace", "   \t ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHiveID(tt.in))
		})
	}
}

func TestHiveDisplayName(t *testing.T) {
	named := &Hive{HiveUniqueID: "colmena_alfa", Name: "Alfa"}
	assert.Equal(t, "Alfa", named.DisplayName())

	unnamed := &Hive{HiveUniqueID: "colmena_alfa"}
	assert.Equal(t, "Colmena colmena_alfa", unnamed.DisplayName())
}

func TestReadingWindowDuration(t *testing.T) {
	d, ok := WindowDay.Duration()
	assert.True(t, ok)
	assert.Equal(t, 24*time.Hour, d)

	d, ok = WindowWeek.Duration()
	assert.True(t, ok)
	assert.Equal(t, 7*24*time.Hour, d)

	d, ok = WindowMonth.Duration()
	assert.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, d)

	_, ok = ReadingWindow("90d").Duration()
	assert.False(t, ok)
}

func TestReadingFiltersNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ReadingFilters
		want ReadingFilters
	}{
		{"defaults", ReadingFilters{}, ReadingFilters{Window: WindowDay}},
		{"invalid window falls back", ReadingFilters{Window: "2h"}, ReadingFilters{Window: WindowDay}},
		{"valid window kept", ReadingFilters{Window: WindowMonth}, ReadingFilters{Window: WindowMonth}},
		{"negative limit cleared", ReadingFilters{Limit: -5}, ReadingFilters{Window: WindowDay}},
		{"limit capped", ReadingFilters{Limit: 5000}, ReadingFilters{Window: WindowDay, Limit: 1000}},
		{"limit kept", ReadingFilters{Window: WindowWeek, Limit: 50}, ReadingFilters{Window: WindowWeek, Limit: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}
