package service

import (
	"context"
	"sort"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"
)

// okrSuccessScore OKR评分约定：0.7即为完全达成
const okrSuccessScore = 0.7

// scoreOKR 计算OKR域聚合结果。
// 目标得分按0.7约定换算为百分制：score = min(100, avg/0.7*100)。
func (e *PerformanceEngine) scoreOKR(ctx context.Context, companyID string, input models.AggregationInput) (models.OKRAggregation, error) {
	var agg models.OKRAggregation

	objectives, err := e.okr.ListObjectives(ctx, companyID, input.FiscalYear, input.Quarter)
	if err != nil {
		return agg, err
	}

	// 非集团层级只统计本层级、本实体负责的目标
	if input.Level != models.OrgLevelGroup {
		filtered := objectives[:0]
		for _, o := range objectives {
			if o.Level == input.Level && o.OwnerID == input.EntityID {
				filtered = append(filtered, o)
			}
		}
		objectives = filtered
	}

	if len(objectives) == 0 {
		return agg, nil
	}

	byID := make(map[string]models.Objective, len(objectives))
	levelBuckets := make(map[models.OrgLevel]*models.OKRLevelSummary)

	var scoreSum, krScoreSum float64
	var krCount int

	for _, obj := range objectives {
		agg.TotalObjectives++
		scoreSum += obj.Score
		byID[obj.ID.Hex()] = obj

		switch obj.Status {
		case models.ObjectiveStatusCompleted:
			agg.CompletedObjectives++
		case models.ObjectiveStatusAtRisk:
			agg.AtRiskObjectives++
		}

		for _, kr := range obj.KeyResults {
			krScoreSum += kr.Score
			krCount++
		}

		bucket, ok := levelBuckets[obj.Level]
		if !ok {
			bucket = &models.OKRLevelSummary{Level: obj.Level}
			levelBuckets[obj.Level] = bucket
		}
		bucket.Count++
		bucket.AvgScore += obj.Score
		if obj.Status == models.ObjectiveStatusCompleted {
			bucket.CompletionRate++
		}
	}

	avgScore := scoreSum / float64(agg.TotalObjectives)
	agg.AvgObjectiveScore = utils.Round2(avgScore)
	if krCount > 0 {
		agg.AvgKeyResultScore = utils.Round2(krScoreSum / float64(krCount))
	}
	agg.CompletionRate = utils.Round2(float64(agg.CompletedObjectives) / float64(agg.TotalObjectives) * 100)
	agg.Score = utils.Round2(utils.Clamp(avgScore/okrSuccessScore*100, 0, 100))
	agg.AlignmentScore = utils.Round2(alignmentScore(objectives, byID))
	agg.CascadingDepth = cascadingDepth(objectives)

	// 汇总各层级的平均分与完成率
	for _, bucket := range levelBuckets {
		bucket.AvgScore = utils.Round2(bucket.AvgScore / float64(bucket.Count))
		bucket.CompletionRate = utils.Round2(bucket.CompletionRate / float64(bucket.Count) * 100)
		agg.LevelSummaries = append(agg.LevelSummaries, *bucket)
	}
	sort.Slice(agg.LevelSummaries, func(i, j int) bool {
		return levelOrder(agg.LevelSummaries[i].Level) < levelOrder(agg.LevelSummaries[j].Level)
	})

	return agg, nil
}

// alignmentScore 对齐得分：只惩罚父目标健康但自身处于风险中的子目标。
// 父目标同样处于风险中的子目标视为对齐（问题在上游）。无子目标时记满分。
func alignmentScore(objectives []models.Objective, byID map[string]models.Objective) float64 {
	var children, aligned int

	for _, obj := range objectives {
		if obj.ParentObjectiveID == "" {
			continue
		}
		parent, ok := byID[obj.ParentObjectiveID]
		if !ok {
			continue
		}

		children++
		childAtRisk := obj.Status == models.ObjectiveStatusAtRisk
		parentAtRisk := parent.Status == models.ObjectiveStatusAtRisk
		if !childAtRisk || parentAtRisk {
			aligned++
		}
	}

	if children == 0 {
		return 100
	}
	return float64(aligned) / float64(children) * 100
}

// cascadingDepth 级联深度：最长的父->子目标链长度。
// 每次遍历携带独立的visited集合，自引用或环状父链不会导致死循环。
func cascadingDepth(objectives []models.Objective) int {
	childrenByParent := make(map[string][]string)
	hasParent := make(map[string]bool)

	for _, obj := range objectives {
		if obj.ParentObjectiveID != "" {
			id := obj.ID.Hex()
			childrenByParent[obj.ParentObjectiveID] = append(childrenByParent[obj.ParentObjectiveID], id)
			hasParent[id] = true
		}
	}

	var maxDepth int
	for _, obj := range objectives {
		id := obj.ID.Hex()
		if hasParent[id] {
			continue
		}
		visited := make(map[string]bool)
		if d := chainDepth(id, childrenByParent, visited); d > maxDepth {
			maxDepth = d
		}
	}

	return maxDepth
}

// chainDepth 深度优先计算目标链长度，已访问节点贡献为0
func chainDepth(id string, childrenByParent map[string][]string, visited map[string]bool) int {
	if visited[id] {
		return 0
	}
	visited[id] = true

	maxChild := 0
	for _, childID := range childrenByParent[id] {
		if d := chainDepth(childID, childrenByParent, visited); d > maxChild {
			maxChild = d
		}
	}
	return 1 + maxChild
}

// levelOrder 组织层级的排序权重
func levelOrder(level models.OrgLevel) int {
	switch level {
	case models.OrgLevelGroup:
		return 0
	case models.OrgLevelSubsidiary:
		return 1
	case models.OrgLevelDepartment:
		return 2
	case models.OrgLevelTeam:
		return 3
	case models.OrgLevelIndividual:
		return 4
	default:
		return 5
	}
}
