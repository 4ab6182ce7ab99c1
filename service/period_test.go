package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestResolvePeriodFullYear(t *testing.T) {
	start, end := ResolvePeriod(2025, nil, nil)

	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC), end)
}

func TestResolvePeriodQuarters(t *testing.T) {
	cases := []struct {
		quarter   int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{1, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.September, 30, 23, 59, 59, 0, time.UTC)},
		{2, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)},
		{3, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)},
		{4, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		start, end := ResolvePeriod(2025, intPtr(tc.quarter), nil)
		assert.Equal(t, tc.wantStart, start, "Q%d start", tc.quarter)
		assert.Equal(t, tc.wantEnd, end, "Q%d end", tc.quarter)
	}
}

func TestResolvePeriodMonth(t *testing.T) {
	// 7月属于财年当年
	start, end := ResolvePeriod(2025, nil, intPtr(7))
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC), end)

	// 2月属于财年次年
	start, end = ResolvePeriod(2025, nil, intPtr(2))
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), end)

	// 12月仍在财年当年
	start, end = ResolvePeriod(2025, nil, intPtr(12))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestPriorPeriod(t *testing.T) {
	// 整年口径：上一财年
	year, quarter := PriorPeriod(2025, nil)
	assert.Equal(t, 2024, year)
	assert.Nil(t, quarter)

	// 季度口径：同财年上一季度
	year, quarter = PriorPeriod(2025, intPtr(3))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 2, *quarter)

	// Q1的上一期间是上一财年Q4
	year, quarter = PriorPeriod(2025, intPtr(1))
	assert.Equal(t, 2024, year)
	assert.Equal(t, 4, *quarter)
}

func TestCurrentFiscalYear(t *testing.T) {
	assert.Equal(t, 2025, CurrentFiscalYear(time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, CurrentFiscalYear(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, CurrentFiscalYear(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
}
