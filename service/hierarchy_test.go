package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/strategy_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullDirectory 四层满链路组织目录：集团 -> 2子公司 -> 部门 -> 团队
func fullDirectory() *fakeOrgDirectory {
	return &fakeOrgDirectory{children: map[models.OrgLevel]map[string][]models.OrgEntityRef{
		models.OrgLevelSubsidiary: {
			"": {
				{ID: "sub-east", Name: "华东子公司"},
				{ID: "sub-north", Name: "华北子公司"},
			},
		},
		models.OrgLevelDepartment: {
			"sub-east": {{ID: "dept-rd", Name: "研发部"}},
		},
		models.OrgLevelTeam: {
			"dept-rd": {{ID: "team-platform", Name: "平台组"}},
		},
	}}
}

func TestBuildHierarchyStructure(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, fullDirectory(), nil)

	hierarchy, err := engine.BuildHierarchy(context.Background(), "acme", 2025, nil)
	require.NoError(t, err)

	root := hierarchy.Root
	require.NotNil(t, root)
	assert.Equal(t, "acme", root.EntityID)
	assert.Equal(t, "集团总部", root.EntityName)
	assert.Equal(t, models.OrgLevelGroup, root.Level)

	// 集团 + 2子公司 + 1部门 + 1团队
	assert.Equal(t, 5, hierarchy.TotalNodes)
	assert.Equal(t, 4, hierarchy.Depth)

	require.Len(t, root.Children, 2)
	east := root.Children[0]
	if east.EntityID != "sub-east" {
		east = root.Children[1]
	}
	require.Len(t, east.Children, 1)
	assert.Equal(t, "dept-rd", east.Children[0].EntityID)
	require.Len(t, east.Children[0].Children, 1)
	assert.Equal(t, "team-platform", east.Children[0].Children[0].EntityID)

	// 团队是第4层，达到深度上限后不再展开
	assert.Empty(t, east.Children[0].Children[0].Children)
}

func TestBuildHierarchyChildrenSortedDesc(t *testing.T) {
	weak := makeKPI("华北营收", "财务", models.DirectionHigherBetter, 100, floatPtr(30), models.KPIPerformanceCritical)
	weak.Scope = models.KPIScope{Level: models.OrgLevelSubsidiary, EntityID: "sub-north"}

	strong := makeKPI("华东营收", "财务", models.DirectionHigherBetter, 100, floatPtr(90), models.KPIPerformanceOnTarget)
	strong.Scope = models.KPIScope{Level: models.OrgLevelSubsidiary, EntityID: "sub-east"}

	engine := newTestEngine(nil, nil, &fakeKPIRepo{kpis: []models.KPI{weak, strong}}, fullDirectory(), nil)

	hierarchy, err := engine.BuildHierarchy(context.Background(), "acme", 2025, nil)
	require.NoError(t, err)

	require.Len(t, hierarchy.Root.Children, 2)
	assert.Equal(t, "sub-east", hierarchy.Root.Children[0].EntityID)
	assert.Equal(t, "sub-north", hierarchy.Root.Children[1].EntityID)
	assert.Greater(t, hierarchy.Root.Children[0].CombinedScore, hierarchy.Root.Children[1].CombinedScore)
}

func TestBuildHierarchyDepthCapTerminates(t *testing.T) {
	// 目录在每一层都返回子实体，树仍必须在第4层封顶
	dir := &fakeOrgDirectory{children: map[models.OrgLevel]map[string][]models.OrgEntityRef{
		models.OrgLevelSubsidiary: {"": {{ID: "s", Name: "子公司"}}},
		models.OrgLevelDepartment: {"s": {{ID: "d", Name: "部门"}}},
		models.OrgLevelTeam:       {"d": {{ID: "t", Name: "团队"}}},
		// 团队之下的个人层级不应被查询到
		models.OrgLevelIndividual: {"t": {{ID: "p", Name: "个人"}}},
	}}
	engine := newTestEngine(nil, nil, nil, dir, nil)

	hierarchy, err := engine.BuildHierarchy(context.Background(), "acme", 2025, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, hierarchy.Depth, 4)
	assert.Equal(t, 4, hierarchy.TotalNodes)
}

func TestBuildHierarchyEmptyDirectory(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil, nil)

	hierarchy, err := engine.BuildHierarchy(context.Background(), "acme", 2025, intPtr(2))
	require.NoError(t, err)

	assert.Equal(t, 1, hierarchy.TotalNodes)
	assert.Equal(t, 1, hierarchy.Depth)
	assert.Empty(t, hierarchy.Root.Children)
	require.NotNil(t, hierarchy.Quarter)
	assert.Equal(t, 2, *hierarchy.Quarter)
}
