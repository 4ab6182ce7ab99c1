package repository

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// KPIRepo KPI定义仓储
type KPIRepo struct{}

// NewKPIRepo 创建KPI定义仓储
func NewKPIRepo() *KPIRepo {
	return &KPIRepo{}
}

// ListActiveKPIs 列出指定公司当前启用的全部KPI定义
func (r *KPIRepo) ListActiveKPIs(ctx context.Context, companyID string) ([]models.KPI, error) {
	query := bson.M{
		"companyId": companyID,
		"isActive":  true,
	}

	cursor, err := Collection(KPIsCollection).Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var kpis []models.KPI
	if err := cursor.All(ctx, &kpis); err != nil {
		return nil, err
	}

	utils.LogDbOperation("find", KPIsCollection, query, len(kpis))
	return kpis, nil
}
