package repository

import (
	"context"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrgRepo 组织目录仓储
type OrgRepo struct{}

// NewOrgRepo 创建组织目录仓储
func NewOrgRepo() *OrgRepo {
	return &OrgRepo{}
}

// ListChildEntities 列出某层级下处于active状态的子实体。
// parentEntityID为空时按层级全量返回（用于集团层直属子公司）。
func (r *OrgRepo) ListChildEntities(ctx context.Context, companyID string, level models.OrgLevel, parentEntityID string) ([]models.OrgEntityRef, error) {
	query := bson.M{
		"companyId": companyID,
		"level":     level,
		"status":    "active",
	}
	if parentEntityID != "" {
		query["parentEntityId"] = parentEntityID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := Collection(OrgEntitiesCollection).Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []models.OrgEntityRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}

	utils.LogDbOperation("find", OrgEntitiesCollection, query, len(refs))
	return refs, nil
}

// ListCompanyIDs 列出目录中出现过的全部公司ID，供定时快照任务遍历
func (r *OrgRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	values, err := Collection(OrgEntitiesCollection).Distinct(ctx, "companyId", bson.M{"status": "active"})
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
