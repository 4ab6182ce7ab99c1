package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Compare 在同一评分域、同一期间内对多个实体进行排名与统计。
// 调用方约定：至少提供2个实体（由请求校验保证，引擎不再检查）。
func (e *PerformanceEngine) Compare(ctx context.Context, companyID string, entities []models.EntityRef, domain models.PerformanceDomain, fiscalYear int, quarter *int) (*models.PerformanceComparison, error) {
	rows := make([]models.ComparisonEntity, len(entities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.childConcurrency)
	for i, ref := range entities {
		i, ref := i, ref
		g.Go(func() error {
			input := models.AggregationInput{
				Level:      ref.Level,
				EntityID:   ref.ID,
				EntityName: ref.Name,
				FiscalYear: fiscalYear,
				Quarter:    quarter,
			}
			perf, err := e.Aggregate(gctx, companyID, input, "system")
			if err != nil {
				return err
			}
			score := domainScore(perf, domain)
			rows[i] = models.ComparisonEntity{
				EntityID:   ref.ID,
				EntityName: ref.Name,
				Level:      ref.Level,
				Score:      score,
				Rating:     DeriveRating(score),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("对比聚合计算失败: %w", err)
	}

	// 降序排名，rank=1为最佳
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	n := len(rows)
	scores := make([]float64, n)
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Percentile = utils.Round2(float64(n-i) / float64(n) * 100)
		scores[i] = rows[i].Score
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return nil, fmt.Errorf("计算均值失败: %w", err)
	}
	median, err := stats.Median(scores)
	if err != nil {
		return nil, fmt.Errorf("计算中位数失败: %w", err)
	}
	stdDev, err := stats.StandardDeviationPopulation(scores)
	if err != nil {
		return nil, fmt.Errorf("计算标准差失败: %w", err)
	}

	return &models.PerformanceComparison{
		CompanyID:       companyID,
		Domain:          domain,
		FiscalYear:      fiscalYear,
		Quarter:         quarter,
		Entities:        rows,
		Mean:            utils.Round2(mean),
		Median:          utils.Round2(median),
		StdDev:          utils.Round2(stdDev),
		TopPerformer:    rows[0].EntityName,
		BottomPerformer: rows[n-1].EntityName,
		GeneratedAt:     time.Now(),
	}, nil
}

// domainScore 从聚合结果中取出指定评分域的得分
func domainScore(perf *models.AggregatedPerformance, domain models.PerformanceDomain) float64 {
	switch domain {
	case models.DomainStrategy:
		return perf.StrategyScore
	case models.DomainOKR:
		return perf.OKRScore
	case models.DomainKPI:
		return perf.KPIScore
	default:
		return perf.CombinedScore
	}
}
