package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectiveStatus 目标状态枚举
type ObjectiveStatus string

const (
	ObjectiveStatusDraft     ObjectiveStatus = "draft"
	ObjectiveStatusActive    ObjectiveStatus = "active"
	ObjectiveStatusOnTrack   ObjectiveStatus = "on_track"
	ObjectiveStatusAtRisk    ObjectiveStatus = "at_risk"
	ObjectiveStatusCompleted ObjectiveStatus = "completed"
	ObjectiveStatusCancelled ObjectiveStatus = "cancelled"
)

// KeyResult 关键结果，score按0.7约定：0.7即为完全达成
type KeyResult struct {
	Title  string  `bson:"title" json:"title"`
	Score  float64 `bson:"score" json:"score"`
	Unit   string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// Objective OKR目标文档，score按0.7约定评分
type Objective struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyID         string             `bson:"companyId" json:"companyId"`
	Title             string             `bson:"title" json:"title"`
	FiscalYear        int                `bson:"fiscalYear" json:"fiscalYear"`
	Quarter           *int               `bson:"quarter,omitempty" json:"quarter,omitempty"`
	Level             OrgLevel           `bson:"level" json:"level"`
	OwnerID           string             `bson:"ownerId" json:"ownerId"`
	OwnerName         string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Status            ObjectiveStatus    `bson:"status" json:"status"`
	Score             float64            `bson:"score" json:"score"`
	ParentObjectiveID string             `bson:"parentObjectiveId,omitempty" json:"parentObjectiveId,omitempty"`
	KeyResults        []KeyResult        `bson:"keyResults,omitempty" json:"keyResults,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
