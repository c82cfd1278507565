package cartview

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Remote is the server-persisted cart as seen by the machine: the domain
// access layer bound to one signed-in user.
type Remote interface {
	List(ctx context.Context) ([]Line, error)
	Add(ctx context.Context, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, itemID uuid.UUID) error
	SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Clear(ctx context.Context) error
}

// Machine is the authoritative cart view for one session. All mutation
// goes through its methods; consumers only ever see snapshots.
//
// Every public mutation picks a strategy from the current identity:
// guest mutations apply the pure transitions directly and never fail;
// signed-in mutations write through to the server and resynchronize the
// view from a full re-fetch. A failed round trip leaves the view at its
// last known-good value with the loading flag cleared.
type Machine struct {
	mu     sync.Mutex
	state  State
	user   uuid.UUID
	remote Remote
	logger *zap.Logger
}

// New creates a machine holding an empty guest cart.
func New(logger *zap.Logger) *Machine {
	return &Machine{
		state:  State{Items: []Line{}},
		logger: logger,
	}
}

// Snapshot returns a copy of the current view.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() State {
	items := make([]Line, len(m.state.Items))
	copy(items, m.state.Items)
	return State{Items: items, Total: m.state.Total, Loading: m.state.Loading}
}

// UserID returns the bound user, or uuid.Nil for a guest session.
func (m *Machine) UserID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Restore seeds the guest view from a persisted session snapshot. It is
// a no-op for signed-in sessions, whose view comes from the server.
func (m *Machine) Restore(items []Line) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.remote != nil {
		return
	}
	m.state = ReplaceAll(m.state, items)
}

// AddToCart adds one unit of the product described by line.
func (m *Machine) AddToCart(ctx context.Context, line Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategyLocked().add(ctx, m, line)
}

// RemoveFromCart drops the line holding the given product.
func (m *Machine) RemoveFromCart(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategyLocked().remove(ctx, m, productID)
}

// UpdateQuantity replaces a line's quantity; zero or negative removes it.
func (m *Machine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategyLocked().setQuantity(ctx, m, productID, quantity)
}

// ClearCart empties the cart.
func (m *Machine) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategyLocked().clear(ctx, m)
}

// Refresh resynchronizes the view with the server cart. Guest sessions
// have nothing to refresh.
func (m *Machine) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.remote == nil {
		return nil
	}
	return m.refetchLocked(ctx)
}

// SignIn binds the session to a user. Any unsynced guest items are
// discarded and the view is replaced by the server cart.
func (m *Machine) SignIn(ctx context.Context, userID uuid.UUID, remote Remote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = userID
	m.remote = remote
	m.state = Clear(m.state)
	return m.refetchLocked(ctx)
}

// SignOut unbinds the session and resets the view to an empty cart.
func (m *Machine) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = uuid.Nil
	m.remote = nil
	m.state = State{Items: []Line{}}
}

// refetchLocked pulls the full server cart and resets the view via
// ReplaceAll. Holds the mutex for the duration of the round trip, so a
// session's operations apply strictly in the order issued.
func (m *Machine) refetchLocked(ctx context.Context) error {
	m.state.Loading = true
	items, err := m.remote.List(ctx)
	m.state.Loading = false
	if err != nil {
		m.logger.Error("Failed to fetch cart items", zap.String("user_id", m.user.String()), zap.Error(err))
		return err
	}
	m.state = ReplaceAll(m.state, items)
	return nil
}

func (m *Machine) strategyLocked() mutator {
	if m.remote != nil {
		return remoteMutator{}
	}
	return guestMutator{}
}

// mutator is the per-call strategy behind every public mutation, keeping
// the guest and write-through paths independently testable.
type mutator interface {
	add(ctx context.Context, m *Machine, line Line) error
	remove(ctx context.Context, m *Machine, productID string) error
	setQuantity(ctx context.Context, m *Machine, productID string, quantity int) error
	clear(ctx context.Context, m *Machine) error
}

// guestMutator applies the pure transitions to local state. Nothing is
// persisted beyond the session and no call can fail.
type guestMutator struct{}

func (guestMutator) add(_ context.Context, m *Machine, line Line) error {
	m.state = Add(m.state, line)
	return nil
}

func (guestMutator) remove(_ context.Context, m *Machine, productID string) error {
	m.state = Remove(m.state, productID)
	return nil
}

func (guestMutator) setQuantity(_ context.Context, m *Machine, productID string, quantity int) error {
	m.state = SetQuantity(m.state, productID, quantity)
	return nil
}

func (guestMutator) clear(_ context.Context, m *Machine) error {
	m.state = Clear(m.state)
	return nil
}

// remoteMutator writes through to the server cart and resynchronizes
// the view from a full re-fetch. Not optimistic: the view never shows a
// mutation the server has not confirmed.
type remoteMutator struct{}

func (remoteMutator) add(ctx context.Context, m *Machine, line Line) error {
	productID, err := uuid.Parse(line.ProductID)
	if err != nil {
		return err
	}

	m.state.Loading = true
	err = m.remote.Add(ctx, productID, 1)
	m.state.Loading = false
	if err != nil {
		m.logger.Error("Failed to add item to cart",
			zap.String("user_id", m.user.String()),
			zap.String("product_id", line.ProductID),
			zap.Error(err),
		)
		return err
	}
	return m.refetchLocked(ctx)
}

func (remoteMutator) remove(ctx context.Context, m *Machine, productID string) error {
	itemID, ok := m.itemIDFor(productID)
	if !ok {
		return nil
	}

	m.state.Loading = true
	err := m.remote.Remove(ctx, itemID)
	m.state.Loading = false
	if err != nil {
		m.logger.Error("Failed to remove item from cart",
			zap.String("user_id", m.user.String()),
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return err
	}
	return m.refetchLocked(ctx)
}

func (remoteMutator) setQuantity(ctx context.Context, m *Machine, productID string, quantity int) error {
	itemID, ok := m.itemIDFor(productID)
	if !ok {
		return nil
	}

	m.state.Loading = true
	err := m.remote.SetQuantity(ctx, itemID, quantity)
	m.state.Loading = false
	if err != nil {
		m.logger.Error("Failed to update cart quantity",
			zap.String("user_id", m.user.String()),
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return err
	}
	return m.refetchLocked(ctx)
}

func (remoteMutator) clear(ctx context.Context, m *Machine) error {
	m.state.Loading = true
	err := m.remote.Clear(ctx)
	m.state.Loading = false
	if err != nil {
		m.logger.Error("Failed to clear cart", zap.String("user_id", m.user.String()), zap.Error(err))
		return err
	}
	m.state = ReplaceAll(m.state, nil)
	return nil
}

// itemIDFor maps the view identity (product) to the server line identity.
func (m *Machine) itemIDFor(productID string) (uuid.UUID, bool) {
	for _, item := range m.state.Items {
		if item.ProductID == productID && item.ItemID != "" {
			if id, err := uuid.Parse(item.ItemID); err == nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}
