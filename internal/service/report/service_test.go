package report

import (
	"context"
	"testing"
	"time"

	"llamacrm-service/internal/domain/lead"
	leadsvc "llamacrm-service/internal/service/lead"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRemote struct {
	leads []lead.Lead
}

func (s *stubRemote) List(ctx context.Context) ([]lead.Lead, error) { return s.leads, nil }

func (s *stubRemote) Insert(ctx context.Context, l *lead.Lead) error { return nil }

func (s *stubRemote) Update(ctx context.Context, id string, l *lead.Lead) error { return nil }

func newTestService(t *testing.T, seed []lead.Lead) (*Service, *leadsvc.Store) {
	t.Helper()

	store := leadsvc.NewStore(&stubRemote{leads: seed}, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	return NewService(store, nil, 30*time.Second, zap.NewNop()), store
}

func TestCacheKey_ChangesOnStoreMutation(t *testing.T) {
	svc, store := newTestService(t, []lead.Lead{
		{ID: "L-1", Name: "Alfa", CreatedAt: time.Now()},
	})

	before := svc.cacheKey(RangeAll, "", "")

	store.Add(&lead.CreateLeadRequest{Name: "Beta", Origin: lead.OriginTikTok})

	after := svc.cacheKey(RangeAll, "", "")
	assert.NotEqual(t, before, after, "a mutation must orphan prior cached payloads")

	// Parameters still differentiate keys within one store state.
	assert.NotEqual(t, svc.cacheKey(RangeAll, "", ""), svc.cacheKey(RangeMonth, "", ""))
}

func TestReport_ReflectsOptimisticAddImmediately(t *testing.T) {
	svc, store := newTestService(t, []lead.Lead{
		{ID: "L-1", Name: "Alfa", CreatedAt: time.Now()},
	})

	first := svc.Report(context.Background(), RangeAll, "", "")
	require.Equal(t, 1, first.TotalLeads)

	store.Add(&lead.CreateLeadRequest{Name: "Beta", Origin: lead.OriginTikTok})

	second := svc.Report(context.Background(), RangeAll, "", "")
	assert.Equal(t, 2, second.TotalLeads)
}
