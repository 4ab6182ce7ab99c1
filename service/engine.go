package service

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
)

// StrategyRepository 战略规划读取接口
type StrategyRepository interface {
	ListPlans(ctx context.Context, companyID string, fiscalYear int) ([]models.StrategicPlan, error)
}

// OKRRepository OKR目标读取接口
type OKRRepository interface {
	ListObjectives(ctx context.Context, companyID string, fiscalYear int, quarter *int) ([]models.Objective, error)
}

// KPIRepository KPI定义读取接口
type KPIRepository interface {
	ListActiveKPIs(ctx context.Context, companyID string) ([]models.KPI, error)
}

// OrgDirectory 组织目录读取接口
type OrgDirectory interface {
	ListChildEntities(ctx context.Context, companyID string, level models.OrgLevel, parentEntityID string) ([]models.OrgEntityRef, error)
}

// AggregationStore 绩效快照存取接口。Get在快照不存在时返回(nil, nil)
type AggregationStore interface {
	Get(ctx context.Context, companyID, key string) (*models.AggregatedPerformance, error)
	Put(ctx context.Context, companyID string, record *models.AggregatedPerformance) error
}

// PerformanceEngine 绩效聚合引擎。
// 引擎本身无状态，所有外部读取都通过注入的仓储接口完成，便于单元测试。
type PerformanceEngine struct {
	strategy  StrategyRepository
	okr       OKRRepository
	kpi       KPIRepository
	org       OrgDirectory
	snapshots AggregationStore

	// 子实体聚合的并发上限
	childConcurrency int
}

// NewPerformanceEngine 创建绩效聚合引擎
func NewPerformanceEngine(
	strategy StrategyRepository,
	okr OKRRepository,
	kpi KPIRepository,
	org OrgDirectory,
	snapshots AggregationStore,
	childConcurrency int,
) *PerformanceEngine {
	if childConcurrency <= 0 {
		childConcurrency = 4
	}
	return &PerformanceEngine{
		strategy:         strategy,
		okr:              okr,
		kpi:              kpi,
		org:              org,
		snapshots:        snapshots,
		childConcurrency: childConcurrency,
	}
}

// SaveAggregation 显式持久化一条聚合结果，同键覆盖写
func (e *PerformanceEngine) SaveAggregation(ctx context.Context, companyID string, record *models.AggregatedPerformance) error {
	return e.snapshots.Put(ctx, companyID, record)
}

// GetAggregation 按实体与期间读取已持久化的聚合结果，不存在时返回(nil, nil)
func (e *PerformanceEngine) GetAggregation(ctx context.Context, companyID, entityID string, fiscalYear int, quarter *int) (*models.AggregatedPerformance, error) {
	key := models.AggregationKey(entityID, fiscalYear, quarter)
	return e.snapshots.Get(ctx, companyID, key)
}
