package lead

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"llamacrm-service/internal/domain/lead"
	xerrors "llamacrm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRemote struct {
	mu sync.Mutex

	listLeads []lead.Lead
	listErr   error
	insertErr error
	updateErr error

	inserted []lead.Lead
	updated  []lead.Lead

	// blockInsert, when set, holds the insert until released.
	blockInsert chan struct{}
	// confirmed is signaled after every insert/update attempt.
	confirmed chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{confirmed: make(chan struct{}, 16)}
}

func (f *fakeRemote) List(ctx context.Context) ([]lead.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]lead.Lead, len(f.listLeads))
	copy(out, f.listLeads)
	return out, nil
}

func (f *fakeRemote) Insert(ctx context.Context, l *lead.Lead) error {
	if f.blockInsert != nil {
		<-f.blockInsert
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.confirmed <- struct{}{} }()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *l)
	return nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, l *lead.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.confirmed <- struct{}{} }()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *l)
	return nil
}

func (f *fakeRemote) waitConfirm(t *testing.T) {
	t.Helper()
	select {
	case <-f.confirmed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for remote confirmation")
	}
}

type recordedEvents struct {
	mu      sync.Mutex
	created []lead.Lead
	updated []lead.Lead
	failed  []*xerrors.SyncError
}

func (r *recordedEvents) LeadCreated(l lead.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, l)
}

func (r *recordedEvents) LeadUpdated(l lead.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, l)
}

func (r *recordedEvents) SyncFailed(e *xerrors.SyncError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, e)
}

func seedLeads() []lead.Lead {
	now := time.Now()
	return []lead.Lead{
		{ID: "L-2", Name: "Beta", CreatedAt: now},
		{ID: "L-1", Name: "Alfa", CreatedAt: now.Add(-time.Hour)},
	}
}

func draft(name string) *lead.CreateLeadRequest {
	return &lead.CreateLeadRequest{Name: name, Origin: lead.OriginTikTok}
}

func updateReqFrom(l lead.Lead) *lead.UpdateLeadRequest {
	return &lead.UpdateLeadRequest{
		Name:              l.Name,
		Email:             l.Email,
		Qualification:     l.Qualification,
		Status:            l.Status,
		Origin:            l.Origin,
		WhatsappConfirmed: l.WhatsappConfirmed,
		Attended:          l.Attended,
		Bought:            l.Bought,
		CollectedAmount:   l.CollectedAmount,
		Revenue:           l.Revenue,
		Setter:            l.Setter,
		Closer:            l.Closer,
		Notes:             l.Notes,
	}
}

func TestLoad_ReplacesCollection(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())

	require.NoError(t, store.Load(context.Background()))

	got := store.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, "L-2", got[0].ID)
	assert.Nil(t, store.LastSyncError())
}

func TestLoad_FailSoftKeepsPriorData(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	remote.mu.Lock()
	remote.listErr = errors.New("connection refused")
	remote.mu.Unlock()

	err := store.Load(context.Background())

	require.Error(t, err)
	var syncErr *xerrors.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "load", syncErr.Op)

	assert.Len(t, store.Snapshot(), 2, "prior collection must survive a failed load")
	assert.NotNil(t, store.LastSyncError())
}

func TestAdd_PrependsBeforeConfirmation(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	remote.blockInsert = make(chan struct{})
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	created := store.Add(draft("Nuevo Lead"))

	// The remote insert is still blocked: the record must already be
	// at the head of the collection.
	got := store.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, created.ID, got[0].ID)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, lead.StatusNew, created.Status)
	assert.Equal(t, lead.TriStatePending, created.Attended)
	assert.Equal(t, lead.TriStatePending, created.WhatsappConfirmed)
	assert.Equal(t, lead.QualificationLevel1, created.Qualification)

	close(remote.blockInsert)
	remote.waitConfirm(t)

	remote.mu.Lock()
	defer remote.mu.Unlock()
	require.Len(t, remote.inserted, 1)
	assert.Equal(t, created.ID, remote.inserted[0].ID)
}

func TestAdd_UniqueIDs(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote, nil, zap.NewNop())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		l := store.Add(draft("x"))
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
	for i := 0; i < 50; i++ {
		remote.waitConfirm(t)
	}
}

func TestAdd_FailedInsertKeepsLocalRecord(t *testing.T) {
	remote := newFakeRemote()
	remote.insertErr = errors.New("backend fault")
	events := &recordedEvents{}
	store := NewStore(remote, events, zap.NewNop())

	created := store.Add(draft("Sin Persistir"))
	remote.waitConfirm(t)

	got := store.Snapshot()
	require.Len(t, got, 1, "optimistic record is never rolled back")
	assert.Equal(t, created.ID, got[0].ID)

	syncErr := store.LastSyncError()
	require.NotNil(t, syncErr)
	assert.Equal(t, "add", syncErr.Op)

	events.mu.Lock()
	defer events.mu.Unlock()
	assert.Len(t, events.created, 1)
	assert.Len(t, events.failed, 1)
}

func TestUpdate_ReplacesExactlyOne(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	orig, ok := store.Get("L-1")
	require.True(t, ok)

	req := updateReqFrom(orig)
	req.Bought = true
	req.Revenue = 2500

	updated, ok := store.Update("L-1", req)
	require.True(t, ok)
	assert.True(t, updated.Bought)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt, "created_at is immutable")

	got := store.Snapshot()
	require.Len(t, got, 2, "collection size unchanged")

	other, ok := store.Get("L-2")
	require.True(t, ok)
	assert.False(t, other.Bought)

	remote.waitConfirm(t)
	remote.mu.Lock()
	defer remote.mu.Unlock()
	require.Len(t, remote.updated, 1)
	assert.Equal(t, "L-1", remote.updated[0].ID)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	_, ok := store.Update("L-missing", updateReqFrom(lead.Lead{Name: "x", Origin: lead.OriginTikTok}))

	assert.False(t, ok)
	assert.Len(t, store.Snapshot(), 2)

	select {
	case <-remote.confirmed:
		t.Fatal("no remote call expected for unknown id")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdate_FailedConfirmationKeepsLocalState(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	remote.mu.Lock()
	remote.updateErr = errors.New("backend fault")
	remote.mu.Unlock()

	orig, _ := store.Get("L-1")
	req := updateReqFrom(orig)
	req.Notes = "actualizado"

	_, ok := store.Update("L-1", req)
	require.True(t, ok)
	remote.waitConfirm(t)

	got, _ := store.Get("L-1")
	assert.Equal(t, "actualizado", got.Notes, "local mutation survives failed confirmation")

	syncErr := store.LastSyncError()
	require.NotNil(t, syncErr)
	assert.Equal(t, "update", syncErr.Op)
}

func TestSetChatAnalysis(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	updated, ok := store.SetChatAnalysis("L-2", "lead tibio, objeción de precio")
	require.True(t, ok)
	assert.Equal(t, "lead tibio, objeción de precio", updated.ChatAnalysis)

	remote.waitConfirm(t)
	remote.mu.Lock()
	defer remote.mu.Unlock()
	require.Len(t, remote.updated, 1)
	assert.Equal(t, "L-2", remote.updated[0].ID)
}

func TestVersionAdvancesOnEveryMutation(t *testing.T) {
	remote := newFakeRemote()
	remote.listLeads = seedLeads()
	store := NewStore(remote, nil, zap.NewNop())

	v0 := store.Version()
	require.NoError(t, store.Load(context.Background()))
	v1 := store.Version()
	assert.Greater(t, v1, v0)

	created := store.Add(draft("nuevo"))
	v2 := store.Version()
	assert.Greater(t, v2, v1)

	_, ok := store.Update(created.ID, updateReqFrom(created))
	require.True(t, ok)
	v3 := store.Version()
	assert.Greater(t, v3, v2)

	_, ok = store.SetChatAnalysis(created.ID, "resumen")
	require.True(t, ok)
	assert.Greater(t, store.Version(), v3)

	// An unknown id mutates nothing and must not advance the version.
	before := store.Version()
	_, ok = store.Update("L-missing", updateReqFrom(created))
	assert.False(t, ok)
	assert.Equal(t, before, store.Version())

	for i := 0; i < 3; i++ {
		remote.waitConfirm(t)
	}
}

func TestLoadSuccessClearsSyncError(t *testing.T) {
	remote := newFakeRemote()
	remote.insertErr = errors.New("backend fault")
	store := NewStore(remote, nil, zap.NewNop())

	store.Add(draft("fallido"))
	remote.waitConfirm(t)
	require.NotNil(t, store.LastSyncError())

	remote.mu.Lock()
	remote.insertErr = nil
	remote.listLeads = seedLeads()
	remote.mu.Unlock()

	require.NoError(t, store.Load(context.Background()))
	assert.Nil(t, store.LastSyncError())

	// The failed insert's record was replaced wholesale by the reload.
	assert.Len(t, store.Snapshot(), 2)
}
