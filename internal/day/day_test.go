package day

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestRange_inclusiveOfBothEndpoints(t *testing.T) {
	days := Range(date(2023, 12, 30), date(2024, 1, 2))
	assert.Len(t, days, 4)
	assert.Equal(t, 2023, days[0].Year)
	assert.Equal(t, 364, days[0].DOY)
	assert.Equal(t, 2024, days[3].Year)
	assert.Equal(t, 2, days[3].DOY)
}

func TestRange_singleDay(t *testing.T) {
	days := Range(date(2023, 6, 15), date(2023, 6, 15))
	assert.Len(t, days, 1)
}

func TestRange_endBeforeIniReturnsEmpty(t *testing.T) {
	days := Range(date(2023, 6, 16), date(2023, 6, 15))
	assert.Nil(t, days)
}

func TestDayOfYear_leapYearFeb29(t *testing.T) {
	days := Range(date(2024, 2, 29), date(2024, 2, 29))
	assert.Equal(t, 60, days[0].DOY)
}
