package session

import (
	"context"
	"sync"
	"time"

	"github.com/davitama/storefront/cartview"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager hands out the single authoritative cart view machine for each
// session. Machines live in memory; guest snapshots are mirrored to the
// Store after every guest mutation so a restart does not lose them.
//
// Session IDs come from client cookies, so the registry is bounded:
// machines idle past the TTL are swept on access, and dropping a guest
// session releases its machine along with the stored snapshot. An
// evicted session that comes back inside the TTL is reseeded from the
// store.
type Manager struct {
	mu       sync.Mutex
	machines map[string]*machineEntry
	store    Store
	ttl      time.Duration
	logger   *zap.Logger
}

type machineEntry struct {
	machine  *cartview.Machine
	lastSeen time.Time
}

// NewManager creates a new Manager backed by the given guest-cart store.
// Machines untouched for ttl are evicted from memory.
func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		machines: make(map[string]*machineEntry),
		store:    store,
		ttl:      ttl,
		logger:   logger,
	}
}

// Machine returns the view machine for a session, creating it on first
// access. A fresh guest machine is seeded from any persisted snapshot.
func (mgr *Manager) Machine(ctx context.Context, sessionID string) *cartview.Machine {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	now := time.Now()
	mgr.sweepLocked(now)

	if e, ok := mgr.machines[sessionID]; ok {
		e.lastSeen = now
		return e.machine
	}

	m := cartview.New(mgr.logger)
	if lines, err := mgr.store.Get(ctx, sessionID); err != nil {
		mgr.logger.Warn("Failed to load guest cart snapshot", zap.String("session_id", sessionID), zap.Error(err))
	} else if len(lines) > 0 {
		m.Restore(lines)
	}

	mgr.machines[sessionID] = &machineEntry{machine: m, lastSeen: now}
	return m
}

// PersistGuest mirrors a guest machine's items to the store. Signed-in
// sessions are skipped: the server cart is already authoritative.
func (mgr *Manager) PersistGuest(ctx context.Context, sessionID string, m *cartview.Machine) {
	if m.UserID() != uuid.Nil {
		return
	}
	if err := mgr.store.Set(ctx, sessionID, m.Snapshot().Items); err != nil {
		mgr.logger.Warn("Failed to persist guest cart snapshot", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// DropGuest discards a session's guest cart entirely: the persisted
// snapshot and, if the session is still in guest mode, the in-memory
// machine. A machine that just signed in stays registered; only its
// guest leftovers are removed.
func (mgr *Manager) DropGuest(ctx context.Context, sessionID string) {
	mgr.mu.Lock()
	if e, ok := mgr.machines[sessionID]; ok && e.machine.UserID() == uuid.Nil {
		delete(mgr.machines, sessionID)
	}
	mgr.mu.Unlock()

	if err := mgr.store.Delete(ctx, sessionID); err != nil {
		mgr.logger.Warn("Failed to drop guest cart snapshot", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// sweepLocked evicts machines idle past the TTL. Guest items survive in
// the store until its own TTL runs out; signed-in sessions refetch the
// server cart on their next request.
func (mgr *Manager) sweepLocked(now time.Time) {
	if mgr.ttl <= 0 {
		return
	}
	for id, e := range mgr.machines {
		if now.Sub(e.lastSeen) > mgr.ttl {
			delete(mgr.machines, id)
		}
	}
}
