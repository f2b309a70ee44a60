// internal/service/lead/store.go
package lead

import (
	"context"
	"fmt"
	"sync"
	"time"

	"llamacrm-service/internal/domain/lead"
	xerrors "llamacrm-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// RemoteStore is the table adapter the collection synchronizes against.
type RemoteStore interface {
	List(ctx context.Context) ([]lead.Lead, error)
	Insert(ctx context.Context, l *lead.Lead) error
	Update(ctx context.Context, id string, l *lead.Lead) error
}

// Events receives lead lifecycle notifications for connected dashboards.
type Events interface {
	LeadCreated(l lead.Lead)
	LeadUpdated(l lead.Lead)
	SyncFailed(e *xerrors.SyncError)
}

// Store is the authoritative in-memory lead collection, ordered by
// created_at descending. Writes are optimistic: the local mutation is
// applied and visible immediately, then the remote confirmation runs in
// the background. A failed confirmation is surfaced once as a SyncError
// and the local state is never rolled back; the next explicit Load is
// the only re-sync path.
type Store struct {
	mu      sync.RWMutex
	leads   []lead.Lead
	version uint64

	remote RemoteStore
	events Events
	logger *zap.Logger

	syncMu   sync.Mutex
	lastSync *xerrors.SyncError
}

func NewStore(remote RemoteStore, events Events, logger *zap.Logger) *Store {
	return &Store{
		remote: remote,
		events: events,
		logger: logger,
	}
}

// Load fetches all leads from the remote table, newest first, and
// replaces the in-memory collection. On failure the prior collection is
// left untouched (fail-soft) and a SyncError is returned.
func (s *Store) Load(ctx context.Context) error {
	fetched, err := s.remote.List(ctx)
	if err != nil {
		syncErr := xerrors.NewSyncError("load", "Sincronización limitada. Verifica conexión.", err)
		s.recordSyncError(syncErr)
		s.logger.Error("lead load failed", zap.Error(err))
		return syncErr
	}

	s.mu.Lock()
	s.leads = fetched
	s.version++
	s.mu.Unlock()

	s.clearSyncError()
	s.logger.Info("leads loaded", zap.Int("count", len(fetched)))
	return nil
}

// Add synthesizes id and created_at for the draft, prepends the new
// record to the collection, and requests the remote insert in the
// background. The returned lead is already visible to all reads before
// the insert resolves; if the insert fails the record stays local-only
// until the next Load replaces the collection.
func (s *Store) Add(draft *lead.CreateLeadRequest) lead.Lead {
	newLead := draft.ToLead()
	newLead.ID = fmt.Sprintf("L-%s", ulid.Make().String())
	newLead.CreatedAt = time.Now()

	s.mu.Lock()
	s.leads = append([]lead.Lead{newLead}, s.leads...)
	s.version++
	s.mu.Unlock()

	if s.events != nil {
		s.events.LeadCreated(newLead)
	}

	go s.confirmInsert(newLead)

	return newLead
}

// Update replaces the record matching req by id and requests the remote
// update in the background. An unknown id is a silent no-op on the
// collection: the second return value reports whether a record matched.
// Local state is never rolled back on a failed confirmation.
func (s *Store) Update(id string, req *lead.UpdateLeadRequest) (lead.Lead, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.leads {
		if s.leads[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return lead.Lead{}, false
	}

	updated := req.Apply(s.leads[idx])
	s.leads[idx] = updated
	s.version++
	s.mu.Unlock()

	if s.events != nil {
		s.events.LeadUpdated(updated)
	}

	go s.confirmUpdate(updated)

	return updated, true
}

// SetChatAnalysis writes an enrichment result onto the matching lead,
// same optimistic path as Update.
func (s *Store) SetChatAnalysis(id, analysis string) (lead.Lead, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.leads {
		if s.leads[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return lead.Lead{}, false
	}

	s.leads[idx].ChatAnalysis = analysis
	updated := s.leads[idx]
	s.version++
	s.mu.Unlock()

	if s.events != nil {
		s.events.LeadUpdated(updated)
	}

	go s.confirmUpdate(updated)

	return updated, true
}

// Get returns the lead with the given id.
func (s *Store) Get(id string) (lead.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			return s.leads[i], true
		}
	}
	return lead.Lead{}, false
}

// Snapshot returns a copy of the current collection. Filters and
// aggregations work on snapshots and never mutate the store.
func (s *Store) Snapshot() []lead.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]lead.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Version increments on every mutation of the collection (Load, Add,
// Update, SetChatAnalysis). Derived read paths that cache results key
// them by version so a cached payload can never outlive the state it
// was computed from.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastSyncError returns the most recent unresolved sync condition, if
// any. It is banner-grade: non-fatal and cleared by a successful Load.
func (s *Store) LastSyncError() *xerrors.SyncError {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	return s.lastSync
}

// confirmInsert runs the fire-and-forget remote insert for Add. It uses
// a background context: no timeout or cancellation is imposed, and a
// late failure still records the sync condition.
func (s *Store) confirmInsert(l lead.Lead) {
	if err := s.remote.Insert(context.Background(), &l); err != nil {
		syncErr := xerrors.NewSyncError("add", "Error al guardar el lead.", err)
		s.recordSyncError(syncErr)
		s.logger.Error("lead insert confirmation failed",
			zap.String("lead_id", l.ID),
			zap.Error(err),
		)
	}
}

func (s *Store) confirmUpdate(l lead.Lead) {
	if err := s.remote.Update(context.Background(), l.ID, &l); err != nil {
		syncErr := xerrors.NewSyncError("update", "Error al actualizar registro.", err)
		s.recordSyncError(syncErr)
		s.logger.Error("lead update confirmation failed",
			zap.String("lead_id", l.ID),
			zap.Error(err),
		)
	}
}

func (s *Store) recordSyncError(e *xerrors.SyncError) {
	s.syncMu.Lock()
	s.lastSync = e
	s.syncMu.Unlock()

	if s.events != nil {
		s.events.SyncFailed(e)
	}
}

func (s *Store) clearSyncError() {
	s.syncMu.Lock()
	s.lastSync = nil
	s.syncMu.Unlock()
}
