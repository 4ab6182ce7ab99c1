package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KPIDirection 指标方向：越高越好 / 越低越好 / 固定目标
type KPIDirection string

const (
	DirectionHigherBetter KPIDirection = "higher_better"
	DirectionLowerBetter  KPIDirection = "lower_better"
	DirectionFixedTarget  KPIDirection = "fixed_target"
)

// KPIPerformance 指标达成档位枚举
type KPIPerformance string

const (
	KPIPerformanceExceeding   KPIPerformance = "exceeding"
	KPIPerformanceOnTarget    KPIPerformance = "on_target"
	KPIPerformanceBelowTarget KPIPerformance = "below_target"
	KPIPerformanceCritical    KPIPerformance = "critical"
)

// KPITrendDirection 指标走势枚举
type KPITrendDirection string

const (
	KPITrendImproving KPITrendDirection = "improving"
	KPITrendDeclining KPITrendDirection = "declining"
	KPITrendStable    KPITrendDirection = "stable"
)

// KPITarget 指标目标值
type KPITarget struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// KPIScope 指标的归属范围
type KPIScope struct {
	Level    OrgLevel `bson:"level" json:"level"`
	EntityID string   `bson:"entityId,omitempty" json:"entityId,omitempty"`
}

// KPI 关键绩效指标定义文档
type KPI struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyID          string             `bson:"companyId" json:"companyId"`
	Name               string             `bson:"name" json:"name"`
	Category           string             `bson:"category" json:"category"`
	Scope              KPIScope           `bson:"scope" json:"scope"`
	Direction          KPIDirection       `bson:"direction" json:"direction"`
	Target             KPITarget          `bson:"target" json:"target"`
	CurrentValue       *float64           `bson:"currentValue,omitempty" json:"currentValue,omitempty"`
	CurrentPerformance KPIPerformance     `bson:"currentPerformance,omitempty" json:"currentPerformance,omitempty"`
	TrendDirection     KPITrendDirection  `bson:"trendDirection,omitempty" json:"trendDirection,omitempty"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
