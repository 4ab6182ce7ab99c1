package service

import (
	"context"
	"sort"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"
)

// 战略域综合得分权重：支柱进度0.40 + 目标完成率0.35 + 举措完成率0.25
const (
	pillarProgressWeight       = 0.40
	objectiveCompletionWeight  = 0.35
	initiativeCompletionWeight = 0.25
)

// scoreStrategy 计算战略域聚合结果。
// 无任何规划时返回零计数与零分，不视为错误。
func (e *PerformanceEngine) scoreStrategy(ctx context.Context, companyID string, input models.AggregationInput) (models.StrategyAggregation, error) {
	var agg models.StrategyAggregation

	plans, err := e.strategy.ListPlans(ctx, companyID, input.FiscalYear)
	if err != nil {
		return agg, err
	}

	// 非集团层级只统计范围匹配的规划
	if input.Level != models.OrgLevelGroup {
		filtered := plans[:0]
		for _, p := range plans {
			if p.Scope.Level == input.Level && p.Scope.EntityID == input.EntityID {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}

	var pillarSum float64
	var pillarCount int

	for _, plan := range plans {
		agg.TotalPlans++
		switch plan.Status {
		case models.PlanStatusActive:
			agg.ActivePlans++
		case models.PlanStatusCompleted:
			agg.CompletedPlans++
		}

		for _, pillar := range plan.Pillars {
			pillarSum += pillar.Progress
			pillarCount++

			agg.PillarBreakdown = append(agg.PillarBreakdown, models.PillarProgress{
				PlanTitle: plan.Title,
				Name:      pillar.Name,
				Progress:  utils.Round2(pillar.Progress),
				Status:    pillarStatus(pillar.Progress),
			})

			for _, objective := range pillar.Objectives {
				agg.TotalObjectives++
				if objective.Status == models.ExecutionStatusCompleted {
					agg.CompletedObjectives++
				}

				for _, initiative := range objective.Initiatives {
					agg.TotalInitiatives++
					if initiative.Status == models.ExecutionStatusCompleted {
						agg.CompletedInitiatives++
					}
				}
			}
		}
	}

	if pillarCount > 0 {
		agg.AvgPillarProgress = utils.Round2(pillarSum / float64(pillarCount))
	}
	if agg.TotalObjectives > 0 {
		agg.ObjectiveCompletionRate = utils.Round2(float64(agg.CompletedObjectives) / float64(agg.TotalObjectives) * 100)
	}
	if agg.TotalInitiatives > 0 {
		agg.InitiativeCompletionRate = utils.Round2(float64(agg.CompletedInitiatives) / float64(agg.TotalInitiatives) * 100)
	}

	score := pillarProgressWeight*agg.AvgPillarProgress +
		objectiveCompletionWeight*agg.ObjectiveCompletionRate +
		initiativeCompletionWeight*agg.InitiativeCompletionRate
	agg.Score = utils.Round2(utils.Clamp(score, 0, 100))

	// 支柱进度从高到低排列，便于前端直接展示
	sort.SliceStable(agg.PillarBreakdown, func(i, j int) bool {
		return agg.PillarBreakdown[i].Progress > agg.PillarBreakdown[j].Progress
	})

	return agg, nil
}

// pillarStatus 按进度阈值推导支柱状态
func pillarStatus(progress float64) models.PillarStatus {
	switch {
	case progress >= 100:
		return models.PillarStatusCompleted
	case progress >= 70:
		return models.PillarStatusOnTrack
	case progress >= 40:
		return models.PillarStatusAtRisk
	default:
		return models.PillarStatusDelayed
	}
}
