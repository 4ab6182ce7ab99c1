package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerniceZTT/strategy_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyLister struct {
	ids []string
	err error
}

func (f *fakeCompanyLister) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestRunDailySnapshotsPersistsGroupAggregate(t *testing.T) {
	strategy, okr, kpi := endToEndFixture()
	store := newMemoryAggregationStore()
	engine := newTestEngine(strategy, okr, kpi, nil, store)

	RunDailySnapshots(engine, &fakeCompanyLister{ids: []string{"acme"}})

	key := models.AggregationKey("acme", CurrentFiscalYear(time.Now()), nil)
	record, err := store.Get(context.Background(), "acme", key)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "scheduler", record.CalculatedBy)
	assert.Equal(t, models.OrgLevelGroup, record.Level)
}

func TestRunDailySnapshotsListerFailure(t *testing.T) {
	store := newMemoryAggregationStore()
	engine := newTestEngine(nil, nil, nil, nil, store)

	// 公司列表查询失败时直接跳过，不留下任何快照
	RunDailySnapshots(engine, &fakeCompanyLister{err: errors.New("连接超时")})

	assert.Empty(t, store.records)
}
