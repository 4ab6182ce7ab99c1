package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightTolerance 权重之和允许的数值误差
const WeightTolerance = 1e-6

// PerformanceWeights 三域权重，三个分量之和必须为1.0
type PerformanceWeights struct {
	Strategy float64 `bson:"strategy" json:"strategy"`
	OKR      float64 `bson:"okr" json:"okr"`
	KPI      float64 `bson:"kpi" json:"kpi"`
}

// DefaultWeights 返回引擎默认权重 0.3 / 0.4 / 0.3
func DefaultWeights() PerformanceWeights {
	return PerformanceWeights{Strategy: 0.3, OKR: 0.4, KPI: 0.3}
}

// Validate 校验权重之和是否为1.0
func (w PerformanceWeights) Validate() error {
	sum := w.Strategy + w.OKR + w.KPI
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("权重之和必须为1.0，当前为%.6f", sum)
	}
	if w.Strategy < 0 || w.OKR < 0 || w.KPI < 0 {
		return fmt.Errorf("权重不能为负数")
	}
	return nil
}

// AggregationInput 一次绩效聚合计算的输入。
// quarter与month最多只应提供一个，两者都缺省时按整个财年计算。
type AggregationInput struct {
	Level           OrgLevel            `json:"level" binding:"required"`
	EntityID        string              `json:"entityId" binding:"required"`
	EntityName      string              `json:"entityName" binding:"required"`
	FiscalYear      int                 `json:"fiscalYear" binding:"required"`
	Quarter         *int                `json:"quarter,omitempty"`
	Month           *int                `json:"month,omitempty"`
	Weights         *PerformanceWeights `json:"weights,omitempty"`
	IncludeChildren bool                `json:"includeChildren"`
}

// PillarStatus 支柱进度状态（四档），由进度阈值推导
type PillarStatus string

const (
	PillarStatusCompleted PillarStatus = "completed"
	PillarStatusOnTrack   PillarStatus = "on_track"
	PillarStatusAtRisk    PillarStatus = "at_risk"
	PillarStatusDelayed   PillarStatus = "delayed"
)

// PillarProgress 支柱进度摘要
type PillarProgress struct {
	PlanTitle string       `bson:"planTitle" json:"planTitle"`
	Name      string       `bson:"name" json:"name"`
	Progress  float64      `bson:"progress" json:"progress"`
	Status    PillarStatus `bson:"status" json:"status"`
}

// StrategyAggregation 战略域聚合结果
type StrategyAggregation struct {
	TotalPlans               int              `bson:"totalPlans" json:"totalPlans"`
	ActivePlans              int              `bson:"activePlans" json:"activePlans"`
	CompletedPlans           int              `bson:"completedPlans" json:"completedPlans"`
	TotalObjectives          int              `bson:"totalObjectives" json:"totalObjectives"`
	CompletedObjectives      int              `bson:"completedObjectives" json:"completedObjectives"`
	TotalInitiatives         int              `bson:"totalInitiatives" json:"totalInitiatives"`
	CompletedInitiatives     int              `bson:"completedInitiatives" json:"completedInitiatives"`
	AvgPillarProgress        float64          `bson:"avgPillarProgress" json:"avgPillarProgress"`
	ObjectiveCompletionRate  float64          `bson:"objectiveCompletionRate" json:"objectiveCompletionRate"`
	InitiativeCompletionRate float64          `bson:"initiativeCompletionRate" json:"initiativeCompletionRate"`
	Score                    float64          `bson:"score" json:"score"`
	PillarBreakdown          []PillarProgress `bson:"pillarBreakdown,omitempty" json:"pillarBreakdown,omitempty"`
}

// OKRLevelSummary 按组织层级的OKR摘要
type OKRLevelSummary struct {
	Level          OrgLevel `bson:"level" json:"level"`
	Count          int      `bson:"count" json:"count"`
	AvgScore       float64  `bson:"avgScore" json:"avgScore"`
	CompletionRate float64  `bson:"completionRate" json:"completionRate"`
}

// OKRAggregation OKR域聚合结果
type OKRAggregation struct {
	TotalObjectives     int               `bson:"totalObjectives" json:"totalObjectives"`
	CompletedObjectives int               `bson:"completedObjectives" json:"completedObjectives"`
	AtRiskObjectives    int               `bson:"atRiskObjectives" json:"atRiskObjectives"`
	AvgObjectiveScore   float64           `bson:"avgObjectiveScore" json:"avgObjectiveScore"`
	AvgKeyResultScore   float64           `bson:"avgKeyResultScore" json:"avgKeyResultScore"`
	CompletionRate      float64           `bson:"completionRate" json:"completionRate"`
	AlignmentScore      float64           `bson:"alignmentScore" json:"alignmentScore"`
	CascadingDepth      int               `bson:"cascadingDepth" json:"cascadingDepth"`
	Score               float64           `bson:"score" json:"score"`
	LevelSummaries      []OKRLevelSummary `bson:"levelSummaries,omitempty" json:"levelSummaries,omitempty"`
}

// KPICategorySummary 按类别的KPI摘要
type KPICategorySummary struct {
	Category string         `bson:"category" json:"category"`
	Count    int            `bson:"count" json:"count"`
	AvgScore float64        `bson:"avgScore" json:"avgScore"`
	Status   KPIPerformance `bson:"status" json:"status"`
}

// KPIAggregation KPI域聚合结果
type KPIAggregation struct {
	TotalKPIs         int                  `bson:"totalKpis" json:"totalKpis"`
	KPIsWithData      int                  `bson:"kpisWithData" json:"kpisWithData"`
	ExceedingCount    int                  `bson:"exceedingCount" json:"exceedingCount"`
	OnTargetCount     int                  `bson:"onTargetCount" json:"onTargetCount"`
	BelowTargetCount  int                  `bson:"belowTargetCount" json:"belowTargetCount"`
	CriticalCount     int                  `bson:"criticalCount" json:"criticalCount"`
	ImprovingCount    int                  `bson:"improvingCount" json:"improvingCount"`
	DecliningCount    int                  `bson:"decliningCount" json:"decliningCount"`
	StableCount       int                  `bson:"stableCount" json:"stableCount"`
	Score             float64              `bson:"score" json:"score"`
	HealthScore       float64              `bson:"healthScore" json:"healthScore"`
	CategorySummaries []KPICategorySummary `bson:"categorySummaries,omitempty" json:"categorySummaries,omitempty"`
}

// PerformanceHealth 健康摘要，Overall恒为三个子健康中最差的一档
type PerformanceHealth struct {
	Overall        HealthStatus `bson:"overall" json:"overall"`
	StrategyHealth HealthStatus `bson:"strategyHealth" json:"strategyHealth"`
	OKRHealth      HealthStatus `bson:"okrHealth" json:"okrHealth"`
	KPIHealth      HealthStatus `bson:"kpiHealth" json:"kpiHealth"`
	IssueCount     int          `bson:"issueCount" json:"issueCount"`
	HealthyCount   int          `bson:"healthyCount" json:"healthyCount"`
}

// ChildAggregationSummary 子实体聚合摘要
type ChildAggregationSummary struct {
	EntityID      string            `bson:"entityId" json:"entityId"`
	EntityName    string            `bson:"entityName" json:"entityName"`
	Level         OrgLevel          `bson:"level" json:"level"`
	CombinedScore float64           `bson:"combinedScore" json:"combinedScore"`
	Rating        PerformanceRating `bson:"rating" json:"rating"`
}

// AggregatedPerformance 绩效聚合结果，亦为快照存储的持久化单元。
// 记录一经生成不再修改，重新计算会以相同key整体覆盖。
type AggregatedPerformance struct {
	ID                 primitive.ObjectID        `bson:"_id,omitempty" json:"_id,omitempty"`
	Key                string                    `bson:"key" json:"key"`
	CompanyID          string                    `bson:"companyId" json:"companyId"`
	EntityID           string                    `bson:"entityId" json:"entityId"`
	EntityName         string                    `bson:"entityName" json:"entityName"`
	Level              OrgLevel                  `bson:"level" json:"level"`
	FiscalYear         int                       `bson:"fiscalYear" json:"fiscalYear"`
	Quarter            *int                      `bson:"quarter,omitempty" json:"quarter,omitempty"`
	Month              *int                      `bson:"month,omitempty" json:"month,omitempty"`
	PeriodStart        time.Time                 `bson:"periodStart" json:"periodStart"`
	PeriodEnd          time.Time                 `bson:"periodEnd" json:"periodEnd"`
	StrategyScore      float64                   `bson:"strategyScore" json:"strategyScore"`
	OKRScore           float64                   `bson:"okrScore" json:"okrScore"`
	KPIScore           float64                   `bson:"kpiScore" json:"kpiScore"`
	CombinedScore      float64                   `bson:"combinedScore" json:"combinedScore"`
	Weights            PerformanceWeights        `bson:"weights" json:"weights"`
	Rating             PerformanceRating         `bson:"rating" json:"rating"`
	Trend              PerformanceTrend          `bson:"trend" json:"trend"`
	ScoreChange        *float64                  `bson:"scoreChange,omitempty" json:"scoreChange,omitempty"`
	ScoreChangePercent *float64                  `bson:"scoreChangePercent,omitempty" json:"scoreChangePercent,omitempty"`
	Strategy           StrategyAggregation       `bson:"strategy" json:"strategy"`
	OKR                OKRAggregation            `bson:"okr" json:"okr"`
	KPI                KPIAggregation            `bson:"kpi" json:"kpi"`
	Health             PerformanceHealth         `bson:"health" json:"health"`
	Children           []ChildAggregationSummary `bson:"children,omitempty" json:"children,omitempty"`
	CalculatedAt       time.Time                 `bson:"calculatedAt" json:"calculatedAt"`
	CalculatedBy       string                    `bson:"calculatedBy" json:"calculatedBy"`
}

// AggregationKey 生成快照存储键：{entityId}_{fiscalYear}_{quarter或"full"}
func AggregationKey(entityID string, fiscalYear int, quarter *int) string {
	period := "full"
	if quarter != nil {
		period = fmt.Sprintf("Q%d", *quarter)
	}
	return fmt.Sprintf("%s_%d_%s", entityID, fiscalYear, period)
}

// PerformanceNode 绩效层级树节点，每次请求新建，不跨请求共享
type PerformanceNode struct {
	EntityID      string             `json:"entityId"`
	EntityName    string             `json:"entityName"`
	Level         OrgLevel           `json:"level"`
	StrategyScore float64            `json:"strategyScore"`
	OKRScore      float64            `json:"okrScore"`
	KPIScore      float64            `json:"kpiScore"`
	CombinedScore float64            `json:"combinedScore"`
	Rating        PerformanceRating  `json:"rating"`
	Trend         PerformanceTrend   `json:"trend"`
	Health        HealthStatus       `json:"health"`
	Children      []*PerformanceNode `json:"children"`
}

// PerformanceHierarchy 绩效层级树
type PerformanceHierarchy struct {
	CompanyID   string           `json:"companyId"`
	FiscalYear  int              `json:"fiscalYear"`
	Quarter     *int             `json:"quarter,omitempty"`
	Root        *PerformanceNode `json:"root"`
	TotalNodes  int              `json:"totalNodes"`
	Depth       int              `json:"depth"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// EntityRef 参与对比/热力图的实体引用
type EntityRef struct {
	ID    string   `json:"id" binding:"required"`
	Name  string   `json:"name" binding:"required"`
	Level OrgLevel `json:"level" binding:"required"`
}

// ComparisonEntity 对比结果中的单个实体，rank=1为最佳
type ComparisonEntity struct {
	EntityID   string            `json:"entityId"`
	EntityName string            `json:"entityName"`
	Level      OrgLevel          `json:"level"`
	Score      float64           `json:"score"`
	Rating     PerformanceRating `json:"rating"`
	Rank       int               `json:"rank"`
	Percentile float64           `json:"percentile"`
}

// PerformanceComparison 跨实体对比结果
type PerformanceComparison struct {
	CompanyID       string             `json:"companyId"`
	Domain          PerformanceDomain  `json:"domain"`
	FiscalYear      int                `json:"fiscalYear"`
	Quarter         *int               `json:"quarter,omitempty"`
	Entities        []ComparisonEntity `json:"entities"`
	Mean            float64            `json:"mean"`
	Median          float64            `json:"median"`
	StdDev          float64            `json:"stdDev"`
	TopPerformer    string             `json:"topPerformer"`
	BottomPerformer string             `json:"bottomPerformer"`
	GeneratedAt     time.Time          `json:"generatedAt"`
}

// HeatmapCell 热力图单元格（行=实体，列=评分域）
type HeatmapCell struct {
	EntityID   string            `json:"entityId"`
	EntityName string            `json:"entityName"`
	Domain     PerformanceDomain `json:"domain"`
	Score      float64           `json:"score"`
	Rating     PerformanceRating `json:"rating"`
	Trend      PerformanceTrend  `json:"trend"`
}

// PerformanceHeatmap 实体×评分域的热力图，MinScore/MaxScore供前端色阶归一化
type PerformanceHeatmap struct {
	CompanyID   string              `json:"companyId"`
	FiscalYear  int                 `json:"fiscalYear"`
	Quarter     *int                `json:"quarter,omitempty"`
	Domains     []PerformanceDomain `json:"domains"`
	Cells       []HeatmapCell       `json:"cells"`
	MinScore    float64             `json:"minScore"`
	MaxScore    float64             `json:"maxScore"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// 绩效相关请求结构
type (
	// AggregationRequest 绩效聚合请求
	AggregationRequest struct {
		CompanyID string `json:"companyId" binding:"required"`
		AggregationInput
	}

	// ComparisonRequest 跨实体对比请求
	ComparisonRequest struct {
		CompanyID  string            `json:"companyId" binding:"required"`
		Entities   []EntityRef       `json:"entities" binding:"required,min=2"`
		Domain     PerformanceDomain `json:"domain" binding:"required"`
		FiscalYear int               `json:"fiscalYear" binding:"required"`
		Quarter    *int              `json:"quarter,omitempty"`
	}

	// HeatmapRequest 热力图请求
	HeatmapRequest struct {
		CompanyID  string              `json:"companyId" binding:"required"`
		Entities   []EntityRef         `json:"entities" binding:"required,min=1"`
		Domains    []PerformanceDomain `json:"domains" binding:"required,min=1"`
		FiscalYear int                 `json:"fiscalYear" binding:"required"`
		Quarter    *int                `json:"quarter,omitempty"`
	}
)
