package service

import (
	"context"
	"sync"

	"github.com/BerniceZTT/strategy_end/models"
)

// 内存版仓储实现，用于不依赖外部存储的确定性单元测试

type fakeStrategyRepo struct {
	plans []models.StrategicPlan
	err   error
}

func (f *fakeStrategyRepo) ListPlans(ctx context.Context, companyID string, fiscalYear int) ([]models.StrategicPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StrategicPlan
	for _, p := range f.plans {
		if p.CompanyID == companyID && p.FiscalYear == fiscalYear {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOKRRepo struct {
	objectives []models.Objective
	err        error
}

func (f *fakeOKRRepo) ListObjectives(ctx context.Context, companyID string, fiscalYear int, quarter *int) ([]models.Objective, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Objective
	for _, o := range f.objectives {
		if o.CompanyID != companyID || o.FiscalYear != fiscalYear {
			continue
		}
		if quarter != nil && (o.Quarter == nil || *o.Quarter != *quarter) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type fakeKPIRepo struct {
	kpis []models.KPI
	err  error
}

func (f *fakeKPIRepo) ListActiveKPIs(ctx context.Context, companyID string) ([]models.KPI, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.KPI
	for _, k := range f.kpis {
		if k.CompanyID == companyID && k.IsActive {
			out = append(out, k)
		}
	}
	return out, nil
}

type fakeOrgDirectory struct {
	// children[level][parentEntityId]
	children map[models.OrgLevel]map[string][]models.OrgEntityRef
	err      error
}

func (f *fakeOrgDirectory) ListChildEntities(ctx context.Context, companyID string, level models.OrgLevel, parentEntityID string) ([]models.OrgEntityRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	byParent, ok := f.children[level]
	if !ok {
		return nil, nil
	}
	return byParent[parentEntityID], nil
}

type memoryAggregationStore struct {
	mu      sync.Mutex
	records map[string]*models.AggregatedPerformance
}

func newMemoryAggregationStore() *memoryAggregationStore {
	return &memoryAggregationStore{records: make(map[string]*models.AggregatedPerformance)}
}

func (s *memoryAggregationStore) Get(ctx context.Context, companyID, key string) (*models.AggregatedPerformance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[companyID+"/"+key]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (s *memoryAggregationStore) Put(ctx context.Context, companyID string, record *models.AggregatedPerformance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.Key == "" {
		record.Key = models.AggregationKey(record.EntityID, record.FiscalYear, record.Quarter)
	}
	copied := *record
	s.records[companyID+"/"+record.Key] = &copied
	return nil
}

// newTestEngine 组装一个全内存的测试引擎
func newTestEngine(strategy *fakeStrategyRepo, okr *fakeOKRRepo, kpi *fakeKPIRepo, org *fakeOrgDirectory, store *memoryAggregationStore) *PerformanceEngine {
	if strategy == nil {
		strategy = &fakeStrategyRepo{}
	}
	if okr == nil {
		okr = &fakeOKRRepo{}
	}
	if kpi == nil {
		kpi = &fakeKPIRepo{}
	}
	if org == nil {
		org = &fakeOrgDirectory{}
	}
	if store == nil {
		store = newMemoryAggregationStore()
	}
	return NewPerformanceEngine(strategy, okr, kpi, org, store, 4)
}
