package repository

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// OKRRepo OKR目标仓储
type OKRRepo struct{}

// NewOKRRepo 创建OKR目标仓储
func NewOKRRepo() *OKRRepo {
	return &OKRRepo{}
}

// ListObjectives 列出指定公司、财年（可选季度）的全部OKR目标
func (r *OKRRepo) ListObjectives(ctx context.Context, companyID string, fiscalYear int, quarter *int) ([]models.Objective, error) {
	query := bson.M{
		"companyId":  companyID,
		"fiscalYear": fiscalYear,
	}
	if quarter != nil {
		query["quarter"] = *quarter
	}

	cursor, err := Collection(ObjectivesCollection).Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var objectives []models.Objective
	if err := cursor.All(ctx, &objectives); err != nil {
		return nil, err
	}

	utils.LogDbOperation("find", ObjectivesCollection, query, len(objectives))
	return objectives, nil
}
