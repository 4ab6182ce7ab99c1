package repository

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// StrategyRepo 战略规划仓储
type StrategyRepo struct{}

// NewStrategyRepo 创建战略规划仓储
func NewStrategyRepo() *StrategyRepo {
	return &StrategyRepo{}
}

// ListPlans 列出指定公司、指定财年的全部战略规划
func (r *StrategyRepo) ListPlans(ctx context.Context, companyID string, fiscalYear int) ([]models.StrategicPlan, error) {
	query := bson.M{
		"companyId":  companyID,
		"fiscalYear": fiscalYear,
	}

	cursor, err := Collection(StrategicPlansCollection).Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.StrategicPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	utils.LogDbOperation("find", StrategicPlansCollection, query, len(plans))
	return plans, nil
}
