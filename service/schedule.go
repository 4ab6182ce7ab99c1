package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"
)

// CompanyLister 列出需要做每日快照的公司
type CompanyLister interface {
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

// ScheduleDailyTaskAt 每天指定时间执行任务
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			duration := next.Sub(now)
			time.Sleep(duration)
			task()
		}
	}()
}

// CurrentFiscalYear 返回当前日期所属的财年（财年从7月1日开始）
func CurrentFiscalYear(now time.Time) int {
	if now.Month() >= fiscalYearStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}

// RunDailySnapshots 为每个公司计算并持久化集团层级的整年聚合快照，
// 保证后续趋势计算有上期数据可查。单个公司失败不影响其余公司。
func RunDailySnapshots(engine *PerformanceEngine, companies CompanyLister) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	companyIDs, err := companies.ListCompanyIDs(ctx)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("查询公司列表失败，跳过本次快照任务")
		return
	}

	fiscalYear := CurrentFiscalYear(time.Now())

	for _, companyID := range companyIDs {
		input := models.AggregationInput{
			Level:           models.OrgLevelGroup,
			EntityID:        companyID,
			EntityName:      groupEntityName,
			FiscalYear:      fiscalYear,
			IncludeChildren: true,
		}

		record, err := engine.Aggregate(ctx, companyID, input, "scheduler")
		if err != nil {
			utils.Logger.Error().Err(err).Str("companyId", companyID).Msg("每日快照聚合失败")
			continue
		}

		if err := engine.SaveAggregation(ctx, companyID, record); err != nil {
			utils.Logger.Error().Err(err).Str("companyId", companyID).Msg("每日快照保存失败")
			continue
		}

		utils.Logger.Info().
			Str("companyId", companyID).
			Int("fiscalYear", fiscalYear).
			Float64("combinedScore", record.CombinedScore).
			Msg("每日快照已保存")
	}
}
