package service

import (
	"context"
	"fmt"
	"time"

	"github.com/BerniceZTT/strategy_end/models"

	"golang.org/x/sync/errgroup"
)

// Heatmap 生成实体×评分域的热力图。
// 每个实体只聚合一次，各评分域的单元格从同一份聚合结果中取值；
// 单元格之间相互独立，只额外维护全局最小/最大得分供前端色阶归一化。
func (e *PerformanceEngine) Heatmap(ctx context.Context, companyID string, entities []models.EntityRef, domains []models.PerformanceDomain, fiscalYear int, quarter *int) (*models.PerformanceHeatmap, error) {
	results := make([]*models.AggregatedPerformance, len(entities))

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
			results[i] = perf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("热力图聚合计算失败: %w", err)
	}

	heatmap := &models.PerformanceHeatmap{
		CompanyID:   companyID,
		FiscalYear:  fiscalYear,
		Quarter:     quarter,
		Domains:     domains,
		Cells:       make([]models.HeatmapCell, 0, len(entities)*len(domains)),
		GeneratedAt: time.Now(),
	}

	first := true
	for i, ref := range entities {
		perf := results[i]
		for _, domain := range domains {
			score := domainScore(perf, domain)
			heatmap.Cells = append(heatmap.Cells, models.HeatmapCell{
				EntityID:   ref.ID,
				EntityName: ref.Name,
				Domain:     domain,
				Score:      score,
				Rating:     DeriveRating(score),
				Trend:      perf.Trend,
			})

			if first {
				heatmap.MinScore = score
				heatmap.MaxScore = score
				first = false
				continue
			}
			if score < heatmap.MinScore {
				heatmap.MinScore = score
			}
			if score > heatmap.MaxScore {
				heatmap.MaxScore = score
			}
		}
	}

	return heatmap, nil
}
