package service

import "time"

// 财年从每年7月1日开始，到次年6月30日结束
const fiscalYearStartMonth = time.July

// ResolvePeriod 将（财年，可选季度，可选月份）解析为具体的起止时间。
// 季度按财年起点锚定：Q1=7-9月，Q2=10-12月，Q3=次年1-3月，Q4=次年4-6月。
// 月份直接对应日历月，7-12月属于fiscalYear当年，1-6月属于fiscalYear+1年。
// 调用方约定：quarter与month最多提供一个，两者都提供时以quarter为准不做校验。
func ResolvePeriod(fiscalYear int, quarter, month *int) (time.Time, time.Time) {
	if quarter != nil {
		// time.Date会自动对超过12的月份进位
		start := time.Date(fiscalYear, fiscalYearStartMonth+time.Month(3*(*quarter-1)), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, 0).Add(-time.Second)
		return start, end
	}

	if month != nil {
		year := fiscalYear
		if time.Month(*month) < fiscalYearStartMonth {
			year = fiscalYear + 1
		}
		start := time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return start, end
	}

	// 整个财年
	start := time.Date(fiscalYear, fiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Second)
	return start, end
}

// PriorPeriod 返回上一期间（用于环比趋势）：
// 季度口径下，Q1的上一期间是上一财年Q4；整年口径下是上一财年。
func PriorPeriod(fiscalYear int, quarter *int) (int, *int) {
	if quarter == nil {
		return fiscalYear - 1, nil
	}
	if *quarter > 1 {
		prev := *quarter - 1
		return fiscalYear, &prev
	}
	q4 := 4
	return fiscalYear - 1, &q4
}
