package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BerniceZTT/strategy_end/models"

	"golang.org/x/sync/errgroup"
)

// maxHierarchyDepth 层级树最大深度，无论组织目录形态如何都保证递归终止
const maxHierarchyDepth = 4

// groupEntityName 集团根节点的展示名
const groupEntityName = "集团总部"

// BuildHierarchy 构建整个公司的绩效层级树。
// 始终从集团层级出发逐层展开（集团->子公司->部门->团队），
// 个人层级是可达的叶子但不自动展开；深度达到上限后不再递归。
func (e *PerformanceEngine) BuildHierarchy(ctx context.Context, companyID string, fiscalYear int, quarter *int) (*models.PerformanceHierarchy, error) {
	root, err := e.buildNode(ctx, companyID, models.OrgLevelGroup, companyID, groupEntityName, fiscalYear, quarter, 1)
	if err != nil {
		return nil, fmt.Errorf("构建绩效层级树失败: %w", err)
	}

	return &models.PerformanceHierarchy{
		CompanyID:   companyID,
		FiscalYear:  fiscalYear,
		Quarter:     quarter,
		Root:        root,
		TotalNodes:  countNodes(root),
		Depth:       treeDepth(root),
		GeneratedAt: time.Now(),
	}, nil
}

// buildNode 聚合单个实体并并发递归其子实体
func (e *PerformanceEngine) buildNode(ctx context.Context, companyID string, level models.OrgLevel, entityID, entityName string, fiscalYear int, quarter *int, depth int) (*models.PerformanceNode, error) {
	input := models.AggregationInput{
		Level:      level,
		EntityID:   entityID,
		EntityName: entityName,
		FiscalYear: fiscalYear,
		Quarter:    quarter,
	}

	perf, err := e.Aggregate(ctx, companyID, input, "system")
	if err != nil {
		return nil, err
	}

	node := &models.PerformanceNode{
		EntityID:      entityID,
		EntityName:    entityName,
		Level:         level,
		StrategyScore: perf.StrategyScore,
		OKRScore:      perf.OKRScore,
		KPIScore:      perf.KPIScore,
		CombinedScore: perf.CombinedScore,
		Rating:        perf.Rating,
		Trend:         perf.Trend,
		Health:        perf.Health.Overall,
		Children:      []*models.PerformanceNode{},
	}

	// 深度上限保证即使目录数据成环也能终止
	if depth >= maxHierarchyDepth {
		return node, nil
	}

	childLevel, ok := level.ChildLevel()
	if !ok || childLevel == models.OrgLevelIndividual {
		return node, nil
	}

	parentID := entityID
	if level == models.OrgLevelGroup {
		// 集团直属子公司不按parentEntityId过滤
		parentID = ""
	}

	refs, err := e.org.ListChildEntities(ctx, companyID, childLevel, parentID)
	if err != nil {
		return nil, fmt.Errorf("查询子实体失败: %w", err)
	}

	children := make([]*models.PerformanceNode, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.childConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			child, err := e.buildNode(gctx, companyID, childLevel, ref.ID, ref.Name, fiscalYear, quarter, depth+1)
			if err != nil {
				return err
			}
			children[i] = child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].CombinedScore > children[j].CombinedScore
	})
	node.Children = children

	return node, nil
}

// countNodes 后序遍历统计节点总数
func countNodes(node *models.PerformanceNode) int {
	if node == nil {
		return 0
	}
	total := 1
	for _, child := range node.Children {
		total += countNodes(child)
	}
	return total
}

// treeDepth 后序遍历计算最长根到叶路径
func treeDepth(node *models.PerformanceNode) int {
	if node == nil {
		return 0
	}
	maxChild := 0
	for _, child := range node.Children {
		if d := treeDepth(child); d > maxChild {
			maxChild = d
		}
	}
	return 1 + maxChild
}
