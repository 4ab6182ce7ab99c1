package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/strategy_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// comparisonFixture KPI域得分分别为90/60/30的三个子公司
func comparisonFixture() (*fakeKPIRepo, []models.EntityRef) {
	kpis := make([]models.KPI, 0, 3)
	refs := []models.EntityRef{
		{ID: "sub-east", Name: "华东子公司", Level: models.OrgLevelSubsidiary},
		{ID: "sub-south", Name: "华南子公司", Level: models.OrgLevelSubsidiary},
		{ID: "sub-north", Name: "华北子公司", Level: models.OrgLevelSubsidiary},
	}
	values := []float64{90, 60, 30}
	for i, ref := range refs {
		kpi := makeKPI(ref.Name+"营收", "财务", models.DirectionHigherBetter, 100, floatPtr(values[i]), models.KPIPerformanceOnTarget)
		kpi.Scope = models.KPIScope{Level: models.OrgLevelSubsidiary, EntityID: ref.ID}
		kpis = append(kpis, kpi)
	}
	return &fakeKPIRepo{kpis: kpis}, refs
}

func TestCompareRanksAndPercentiles(t *testing.T) {
	kpi, refs := comparisonFixture()
	engine := newTestEngine(nil, nil, kpi, nil, nil)

	result, err := engine.Compare(context.Background(), "acme", refs, models.DomainKPI, 2025, nil)
	require.NoError(t, err)

	require.Len(t, result.Entities, 3)

	assert.Equal(t, "sub-east", result.Entities[0].EntityID)
	assert.InDelta(t, 90.0, result.Entities[0].Score, 0.001)
	assert.Equal(t, 1, result.Entities[0].Rank)
	assert.InDelta(t, 100.0, result.Entities[0].Percentile, 0.01)

	assert.Equal(t, "sub-south", result.Entities[1].EntityID)
	assert.Equal(t, 2, result.Entities[1].Rank)
	assert.InDelta(t, 66.67, result.Entities[1].Percentile, 0.01)

	assert.Equal(t, "sub-north", result.Entities[2].EntityID)
	assert.Equal(t, 3, result.Entities[2].Rank)
	assert.InDelta(t, 33.33, result.Entities[2].Percentile, 0.01)

	assert.Equal(t, "华东子公司", result.TopPerformer)
	assert.Equal(t, "华北子公司", result.BottomPerformer)
}

func TestCompareStatistics(t *testing.T) {
	kpi, refs := comparisonFixture()
	engine := newTestEngine(nil, nil, kpi, nil, nil)

	result, err := engine.Compare(context.Background(), "acme", refs, models.DomainKPI, 2025, nil)
	require.NoError(t, err)

	assert.InDelta(t, 60.0, result.Mean, 0.001)
	assert.InDelta(t, 60.0, result.Median, 0.001)
	// 总体标准差 sqrt(((30)^2+0+(-30)^2)/3) = 24.49
	assert.InDelta(t, 24.49, result.StdDev, 0.01)
}

func TestCompareCombinedDomain(t *testing.T) {
	kpi, refs := comparisonFixture()
	engine := newTestEngine(nil, nil, kpi, nil, nil)

	result, err := engine.Compare(context.Background(), "acme", refs, models.DomainCombined, 2025, nil)
	require.NoError(t, err)

	// 战略与OKR为0时综合得分为0.3*KPI得分
	assert.InDelta(t, 27.0, result.Entities[0].Score, 0.001)
	assert.Equal(t, models.DomainCombined, result.Domain)
}

func TestCompareRatingsPerEntity(t *testing.T) {
	kpi, refs := comparisonFixture()
	engine := newTestEngine(nil, nil, kpi, nil, nil)

	result, err := engine.Compare(context.Background(), "acme", refs, models.DomainKPI, 2025, nil)
	require.NoError(t, err)

	assert.Equal(t, models.RatingExceptional, result.Entities[0].Rating)
	assert.Equal(t, models.RatingOnTrack, result.Entities[1].Rating)
	assert.Equal(t, models.RatingAtRisk, result.Entities[2].Rating)
}
