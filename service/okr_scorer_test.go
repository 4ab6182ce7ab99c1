package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/strategy_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeObjective(companyID string, fiscalYear int, level models.OrgLevel, ownerID string, status models.ObjectiveStatus, score float64) models.Objective {
	return models.Objective{
		ID:         primitive.NewObjectID(),
		CompanyID:  companyID,
		FiscalYear: fiscalYear,
		Level:      level,
		OwnerID:    ownerID,
		Status:     status,
		Score:      score,
	}
}

func TestScoreOKREmpty(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil, nil)

	agg, err := engine.scoreOKR(context.Background(), "acme", groupInput(2025))
	require.NoError(t, err)

	assert.Equal(t, 0, agg.TotalObjectives)
	assert.Equal(t, 0.0, agg.Score)
}

func TestScoreOKRRescale(t *testing.T) {
	okr := &fakeOKRRepo{objectives: []models.Objective{
		makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusCompleted, 0.7),
		makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.35),
	}}
	engine := newTestEngine(nil, okr, nil, nil, nil)

	agg, err := engine.scoreOKR(context.Background(), "acme", groupInput(2025))
	require.NoError(t, err)

	// 平均0.525，两位小数四舍五入后为0.52，按0.7约定换算为75分
	assert.InDelta(t, 0.52, agg.AvgObjectiveScore, 0.001)
	assert.InDelta(t, 75.0, agg.Score, 0.001)
	assert.InDelta(t, 50.0, agg.CompletionRate, 0.001)
}

func TestScoreOKRRescaleCapsAt100(t *testing.T) {
	okr := &fakeOKRRepo{objectives: []models.Objective{
		makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusCompleted, 1.0),
	}}
	engine := newTestEngine(nil, okr, nil, nil, nil)

	agg, err := engine.scoreOKR(context.Background(), "acme", groupInput(2025))
	require.NoError(t, err)

	// 1.0/0.7会超过100，必须封顶
	assert.InDelta(t, 100.0, agg.Score, 0.001)
}

func TestScoreOKRLevelFilter(t *testing.T) {
	okr := &fakeOKRRepo{objectives: []models.Objective{
		makeObjective("acme", 2025, models.OrgLevelTeam, "team-1", models.ObjectiveStatusCompleted, 0.7),
		makeObjective("acme", 2025, models.OrgLevelTeam, "team-2", models.ObjectiveStatusCompleted, 0.1),
		makeObjective("acme", 2025, models.OrgLevelDepartment, "dept-1", models.ObjectiveStatusCompleted, 0.1),
	}}
	engine := newTestEngine(nil, okr, nil, nil, nil)

	input := models.AggregationInput{
		Level:      models.OrgLevelTeam,
		EntityID:   "team-1",
		EntityName: "平台团队",
		FiscalYear: 2025,
	}

	agg, err := engine.scoreOKR(context.Background(), "acme", input)
	require.NoError(t, err)

	assert.Equal(t, 1, agg.TotalObjectives)
	assert.InDelta(t, 100.0, agg.Score, 0.001)
}

func TestAlignmentScorePenalizesOnlyMisalignedChildren(t *testing.T) {
	parentHealthy := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	parentAtRisk := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusAtRisk, 0.2)

	childMisaligned := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusAtRisk, 0.2)
	childMisaligned.ParentObjectiveID = parentHealthy.ID.Hex()

	childSharedRisk := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusAtRisk, 0.2)
	childSharedRisk.ParentObjectiveID = parentAtRisk.ID.Hex()

	childHealthy := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.6)
	childHealthy.ParentObjectiveID = parentHealthy.ID.Hex()

	objectives := []models.Objective{parentHealthy, parentAtRisk, childMisaligned, childSharedRisk, childHealthy}
	byID := make(map[string]models.Objective)
	for _, o := range objectives {
		byID[o.ID.Hex()] = o
	}

	// 3个子目标中只有1个被惩罚（父目标健康但自身有风险）
	score := alignmentScore(objectives, byID)
	assert.InDelta(t, 66.67, score, 0.01)
}

func TestAlignmentScoreNoChildren(t *testing.T) {
	root := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	objectives := []models.Objective{root}
	byID := map[string]models.Objective{root.ID.Hex(): root}

	assert.InDelta(t, 100.0, alignmentScore(objectives, byID), 0.001)
}

func TestCascadingDepthChain(t *testing.T) {
	root := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	mid := makeObjective("acme", 2025, models.OrgLevelSubsidiary, "sub-1", models.ObjectiveStatusOnTrack, 0.5)
	mid.ParentObjectiveID = root.ID.Hex()
	leaf := makeObjective("acme", 2025, models.OrgLevelTeam, "team-1", models.ObjectiveStatusOnTrack, 0.5)
	leaf.ParentObjectiveID = mid.ID.Hex()

	assert.Equal(t, 3, cascadingDepth([]models.Objective{root, mid, leaf}))
}

func TestCascadingDepthTerminatesOnCycle(t *testing.T) {
	a := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	b := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)

	// a <-> b 相互为父，构成环
	a.ParentObjectiveID = b.ID.Hex()
	b.ParentObjectiveID = a.ID.Hex()

	// 环上没有根目标，深度为0且不会死循环
	assert.Equal(t, 0, cascadingDepth([]models.Objective{a, b}))
}

func TestCascadingDepthSelfReference(t *testing.T) {
	root := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	selfRef := makeObjective("acme", 2025, models.OrgLevelGroup, "acme", models.ObjectiveStatusOnTrack, 0.5)
	selfRef.ParentObjectiveID = selfRef.ID.Hex()

	// 自引用目标不会导致非终止
	assert.Equal(t, 1, cascadingDepth([]models.Objective{root, selfRef}))
}
