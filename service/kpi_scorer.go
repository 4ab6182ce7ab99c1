package service

import (
	"context"
	"sort"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"
)

// scoreKPI 计算KPI域聚合结果。
// 零目标值等除零情形一律特判为确定的数值结果，不会产生NaN/Inf。
func (e *PerformanceEngine) scoreKPI(ctx context.Context, companyID string, input models.AggregationInput) (models.KPIAggregation, error) {
	var agg models.KPIAggregation

	kpis, err := e.kpi.ListActiveKPIs(ctx, companyID)
	if err != nil {
		return agg, err
	}

	// 非集团层级只统计归属于本实体的指标
	if input.Level != models.OrgLevelGroup {
		filtered := kpis[:0]
		for _, k := range kpis {
			if k.Scope.Level == input.Level && k.Scope.EntityID == input.EntityID {
				filtered = append(filtered, k)
			}
		}
		kpis = filtered
	}

	type categoryBucket struct {
		count    int
		scoreSum float64
	}
	categories := make(map[string]*categoryBucket)

	var scoreSum float64
	var healthyCount int

	for _, kpi := range kpis {
		agg.TotalKPIs++

		switch kpi.TrendDirection {
		case models.KPITrendImproving:
			agg.ImprovingCount++
		case models.KPITrendDeclining:
			agg.DecliningCount++
		case models.KPITrendStable:
			agg.StableCount++
		}

		// 没有当前值的指标不参与得分
		if kpi.CurrentValue == nil {
			continue
		}
		agg.KPIsWithData++

		score := kpiScore(kpi)
		scoreSum += score

		switch kpi.CurrentPerformance {
		case models.KPIPerformanceExceeding:
			agg.ExceedingCount++
			healthyCount++
		case models.KPIPerformanceOnTarget:
			agg.OnTargetCount++
			healthyCount++
		case models.KPIPerformanceBelowTarget:
			agg.BelowTargetCount++
		case models.KPIPerformanceCritical:
			agg.CriticalCount++
		}

		bucket, ok := categories[kpi.Category]
		if !ok {
			bucket = &categoryBucket{}
			categories[kpi.Category] = bucket
		}
		bucket.count++
		bucket.scoreSum += score
	}

	if agg.KPIsWithData > 0 {
		agg.Score = utils.Round2(scoreSum / float64(agg.KPIsWithData))
		agg.HealthScore = utils.Round2(float64(healthyCount) / float64(agg.KPIsWithData) * 100)
	}

	for category, bucket := range categories {
		avg := bucket.scoreSum / float64(bucket.count)
		agg.CategorySummaries = append(agg.CategorySummaries, models.KPICategorySummary{
			Category: category,
			Count:    bucket.count,
			AvgScore: utils.Round2(avg),
			Status:   categoryStatus(avg),
		})
	}
	sort.Slice(agg.CategorySummaries, func(i, j int) bool {
		return agg.CategorySummaries[i].Category < agg.CategorySummaries[j].Category
	})

	return agg, nil
}

// kpiScore 单个指标得分，取值[0,100]。
// 越高越好：current/target*100；越低越好：target/current*100；固定目标：中性50。
func kpiScore(kpi models.KPI) float64 {
	current := *kpi.CurrentValue
	target := kpi.Target.Value

	switch kpi.Direction {
	case models.DirectionHigherBetter:
		if target == 0 {
			if current > 0 {
				return 100
			}
			return 0
		}
		return utils.Clamp(current/target*100, 0, 100)
	case models.DirectionLowerBetter:
		if current == 0 {
			if target > 0 {
				return 100
			}
			return 0
		}
		return utils.Clamp(target/current*100, 0, 100)
	default:
		return 50
	}
}

// categoryStatus 按平均得分阈值推导类别达成档位
func categoryStatus(avgScore float64) models.KPIPerformance {
	switch {
	case avgScore >= 80:
		return models.KPIPerformanceExceeding
	case avgScore >= 60:
		return models.KPIPerformanceOnTarget
	case avgScore >= 40:
		return models.KPIPerformanceBelowTarget
	default:
		return models.KPIPerformanceCritical
	}
}
