package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus 战略规划状态枚举
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// ExecutionStatus 战略目标/举措的执行状态枚举
type ExecutionStatus string

const (
	ExecutionStatusNotStarted ExecutionStatus = "not_started"
	ExecutionStatusInProgress ExecutionStatus = "in_progress"
	ExecutionStatusCompleted  ExecutionStatus = "completed"
	ExecutionStatusDelayed    ExecutionStatus = "delayed"
	ExecutionStatusCancelled  ExecutionStatus = "cancelled"
)

// PlanScope 战略规划的适用范围
type PlanScope struct {
	Level    OrgLevel `bson:"level" json:"level"`
	EntityID string   `bson:"entityId,omitempty" json:"entityId,omitempty"`
}

// StrategicInitiative 战略举措
type StrategicInitiative struct {
	Name   string          `bson:"name" json:"name"`
	Owner  string          `bson:"owner,omitempty" json:"owner,omitempty"`
	Status ExecutionStatus `bson:"status" json:"status"`
}

// StrategicObjective 战略目标，挂在支柱下
type StrategicObjective struct {
	Name        string                `bson:"name" json:"name"`
	Status      ExecutionStatus       `bson:"status" json:"status"`
	Initiatives []StrategicInitiative `bson:"initiatives,omitempty" json:"initiatives,omitempty"`
}

// StrategicPillar 战略支柱，progress取值0-100
type StrategicPillar struct {
	Name       string               `bson:"name" json:"name"`
	Progress   float64              `bson:"progress" json:"progress"`
	Objectives []StrategicObjective `bson:"objectives,omitempty" json:"objectives,omitempty"`
}

// StrategicPlan 战略规划文档
type StrategicPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyID  string             `bson:"companyId" json:"companyId"`
	Title      string             `bson:"title" json:"title"`
	FiscalYear int                `bson:"fiscalYear" json:"fiscalYear"`
	Scope      PlanScope          `bson:"scope" json:"scope"`
	Status     PlanStatus         `bson:"status" json:"status"`
	Pillars    []StrategicPillar  `bson:"pillars,omitempty" json:"pillars,omitempty"`
	CreatedBy  string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
