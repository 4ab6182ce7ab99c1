package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"golang.org/x/sync/errgroup"
)

// Aggregate 计算一个组织实体在指定期间的综合绩效。
// 三个域评分相互独立，并发执行；计算本身无副作用，持久化由SaveAggregation显式完成。
func (e *PerformanceEngine) Aggregate(ctx context.Context, companyID string, input models.AggregationInput, actorID string) (*models.AggregatedPerformance, error) {
	started := time.Now()

	// 解析权重，缺省时使用引擎默认值
	weights := models.DefaultWeights()
	if input.Weights != nil {
		if err := input.Weights.Validate(); err != nil {
			return nil, utils.CreateBadRequestError(err.Error())
		}
		weights = *input.Weights
	}

	periodStart, periodEnd := ResolvePeriod(input.FiscalYear, input.Quarter, input.Month)

	// 三个域评分并发执行
	var strategyAgg models.StrategyAggregation
	var okrAgg models.OKRAggregation
	var kpiAgg models.KPIAggregation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		strategyAgg, err = e.scoreStrategy(gctx, companyID, input)
		return err
	})
	g.Go(func() error {
		var err error
		okrAgg, err = e.scoreOKR(gctx, companyID, input)
		return err
	})
	g.Go(func() error {
		var err error
		kpiAgg, err = e.scoreKPI(gctx, companyID, input)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("域评分计算失败: %w", err)
	}

	combined := utils.Round2(strategyAgg.Score*weights.Strategy +
		okrAgg.Score*weights.OKR +
		kpiAgg.Score*weights.KPI)

	record := &models.AggregatedPerformance{
		Key:           models.AggregationKey(input.EntityID, input.FiscalYear, input.Quarter),
		CompanyID:     companyID,
		EntityID:      input.EntityID,
		EntityName:    input.EntityName,
		Level:         input.Level,
		FiscalYear:    input.FiscalYear,
		Quarter:       input.Quarter,
		Month:         input.Month,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		StrategyScore: strategyAgg.Score,
		OKRScore:      okrAgg.Score,
		KPIScore:      kpiAgg.Score,
		CombinedScore: combined,
		Weights:       weights,
		Rating:        DeriveRating(combined),
		Trend:         models.TrendStable,
		Strategy:      strategyAgg,
		OKR:           okrAgg,
		KPI:           kpiAgg,
		Health:        deriveHealth(strategyAgg, okrAgg, kpiAgg),
		CalculatedAt:  time.Now(),
		CalculatedBy:  actorID,
	}

	// 汇总子实体摘要
	if input.IncludeChildren {
		children, err := e.aggregateChildren(ctx, companyID, input)
		if err != nil {
			return nil, err
		}
		record.Children = children
	}

	// 对照上一期间的持久化快照计算趋势；快照缺失属正常情况
	if err := e.applyTrend(ctx, companyID, record); err != nil {
		return nil, err
	}

	utils.LogAggregation(companyID, input.EntityID, input.FiscalYear, combined, time.Since(started))
	return record, nil
}

// aggregateChildren 并发聚合下一层级的子实体，按综合得分降序返回摘要
func (e *PerformanceEngine) aggregateChildren(ctx context.Context, companyID string, input models.AggregationInput) ([]models.ChildAggregationSummary, error) {
	childLevel, ok := input.Level.ChildLevel()
	if !ok {
		return nil, nil
	}

	// 集团直属子公司不按parentEntityId过滤，与层级树的展开口径一致
	parentID := input.EntityID
	if input.Level == models.OrgLevelGroup {
		parentID = ""
	}

	refs, err := e.org.ListChildEntities(ctx, companyID, childLevel, parentID)
	if err != nil {
		return nil, fmt.Errorf("查询子实体失败: %w", err)
	}
	if len(refs) == 0 {
		return nil, nil
	}

	summaries := make([]models.ChildAggregationSummary, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.childConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			childInput := models.AggregationInput{
				Level:      childLevel,
				EntityID:   ref.ID,
				EntityName: ref.Name,
				FiscalYear: input.FiscalYear,
				Quarter:    input.Quarter,
				Month:      input.Month,
				Weights:    input.Weights,
				// 摘要只取一层，避免逐层指数展开
				IncludeChildren: false,
			}
			child, err := e.Aggregate(gctx, companyID, childInput, "system")
			if err != nil {
				return err
			}
			summaries[i] = models.ChildAggregationSummary{
				EntityID:      child.EntityID,
				EntityName:    child.EntityName,
				Level:         child.Level,
				CombinedScore: child.CombinedScore,
				Rating:        child.Rating,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CombinedScore > summaries[j].CombinedScore
	})
	return summaries, nil
}

// applyTrend 查找上一期间的持久化快照并计算环比趋势。
// 快照不存在时趋势保持stable，增量字段不填充。
func (e *PerformanceEngine) applyTrend(ctx context.Context, companyID string, record *models.AggregatedPerformance) error {
	priorYear, priorQuarter := PriorPeriod(record.FiscalYear, record.Quarter)
	priorKey := models.AggregationKey(record.EntityID, priorYear, priorQuarter)

	prior, err := e.snapshots.Get(ctx, companyID, priorKey)
	if err != nil {
		return fmt.Errorf("读取上期快照失败: %w", err)
	}
	if prior == nil {
		return nil
	}

	change := utils.Round2(record.CombinedScore - prior.CombinedScore)
	record.ScoreChange = &change

	var changePercent float64
	if prior.CombinedScore != 0 {
		changePercent = utils.Round2(change / prior.CombinedScore * 100)
	} else if record.CombinedScore > 0 {
		changePercent = 100
	}
	record.ScoreChangePercent = &changePercent
	record.Trend = DeriveTrend(changePercent)

	return nil
}

// DeriveRating 按综合得分阈值推导六档评级
func DeriveRating(score float64) models.PerformanceRating {
	switch {
	case score >= 90:
		return models.RatingExceptional
	case score >= 80:
		return models.RatingStrong
	case score >= 60:
		return models.RatingOnTrack
	case score >= 40:
		return models.RatingNeedsAttention
	case score >= 20:
		return models.RatingAtRisk
	default:
		return models.RatingCritical
	}
}

// DeriveTrend 按环比百分比阈值推导五档趋势
func DeriveTrend(changePercent float64) models.PerformanceTrend {
	switch {
	case changePercent > 10:
		return models.TrendStrongUp
	case changePercent > 3:
		return models.TrendUp
	case changePercent >= -3:
		return models.TrendStable
	case changePercent >= -10:
		return models.TrendDown
	default:
		return models.TrendStrongDown
	}
}

// domainHealth 按域得分阈值推导单域健康状态，零分视为无数据
func domainHealth(score float64) models.HealthStatus {
	switch {
	case score >= 70:
		return models.HealthHealthy
	case score >= 40:
		return models.HealthWarning
	case score > 0:
		return models.HealthCritical
	default:
		return models.HealthNoData
	}
}

// healthSeverity 健康状态的严重度排序，no_data不参与恶化判断
func healthSeverity(h models.HealthStatus) int {
	switch h {
	case models.HealthCritical:
		return 3
	case models.HealthWarning:
		return 2
	case models.HealthHealthy:
		return 1
	default:
		return 0
	}
}

// deriveHealth 汇总三域健康状态，Overall取最差的一档。
// no_data只如实上报，不会把整体健康拉低；三域都无数据时整体为no_data。
func deriveHealth(strategy models.StrategyAggregation, okr models.OKRAggregation, kpi models.KPIAggregation) models.PerformanceHealth {
	health := models.PerformanceHealth{
		StrategyHealth: domainHealth(strategy.Score),
		OKRHealth:      domainHealth(okr.Score),
		KPIHealth:      domainHealth(kpi.Score),
	}

	worst := health.StrategyHealth
	for _, h := range []models.HealthStatus{health.OKRHealth, health.KPIHealth} {
		if healthSeverity(h) > healthSeverity(worst) {
			worst = h
		}
	}
	if healthSeverity(worst) == 0 {
		worst = models.HealthNoData
	}
	health.Overall = worst

	// 跨域问题项与健康项计数
	health.IssueCount = okr.AtRiskObjectives + kpi.BelowTargetCount + kpi.CriticalCount + delayedPillars(strategy)
	health.HealthyCount = okr.CompletedObjectives + kpi.ExceedingCount + kpi.OnTargetCount + onTrackPillars(strategy)

	return health
}

// delayedPillars 统计处于风险或延期状态的支柱数
func delayedPillars(strategy models.StrategyAggregation) int {
	count := 0
	for _, p := range strategy.PillarBreakdown {
		if p.Status == models.PillarStatusAtRisk || p.Status == models.PillarStatusDelayed {
			count++
		}
	}
	return count
}

// onTrackPillars 统计在轨或已完成的支柱数
func onTrackPillars(strategy models.StrategyAggregation) int {
	count := 0
	for _, p := range strategy.PillarBreakdown {
		if p.Status == models.PillarStatusCompleted || p.Status == models.PillarStatusOnTrack {
			count++
		}
	}
	return count
}
