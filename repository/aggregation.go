package repository

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AggregationRepo 绩效快照仓储，按{entityId}_{fiscalYear}_{quarter或"full"}键存取
type AggregationRepo struct{}

// NewAggregationRepo 创建绩效快照仓储
func NewAggregationRepo() *AggregationRepo {
	return &AggregationRepo{}
}

// Get 按键读取快照，不存在时返回nil（属正常情况，非错误）
func (r *AggregationRepo) Get(ctx context.Context, companyID, key string) (*models.AggregatedPerformance, error) {
	query := bson.M{
		"companyId": companyID,
		"key":       key,
	}

	var record models.AggregatedPerformance
	err := Collection(AggregationsCollection).FindOne(ctx, query).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

// Put 按键覆盖写入快照（upsert，后写覆盖先写）
func (r *AggregationRepo) Put(ctx context.Context, companyID string, record *models.AggregatedPerformance) error {
	record.CompanyID = companyID
	if record.Key == "" {
		record.Key = models.AggregationKey(record.EntityID, record.FiscalYear, record.Quarter)
	}

	filter := bson.M{
		"companyId": companyID,
		"key":       record.Key,
	}

	// 覆盖写不保留旧_id
	doc := *record
	doc.ID = primitive.NilObjectID

	upsert := true
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		return Collection(AggregationsCollection).ReplaceOne(ctx, filter, doc, &options.ReplaceOptions{Upsert: &upsert})
	}, 3)
	if err != nil {
		return err
	}

	utils.LogDbOperation("replaceOne", AggregationsCollection, filter, record.Key)
	return nil
}
