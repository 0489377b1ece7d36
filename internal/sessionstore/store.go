// Package sessionstore owns the authenticated identity, the registered-user
// directory, and the active session's order history.
//
// The store moves through three states: Loading while the persisted snapshot
// is read, then Anonymous or Authenticated depending on whether a session
// survived. Login and register simulate a network round trip with a fixed
// artificial delay; both are serialized by an in-flight guard so a second
// call waits for the first to resolve.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shoplane/storefront/config"
	"github.com/shoplane/storefront/internal/domain"
	"github.com/shoplane/storefront/internal/localstore"
	"go.uber.org/zap"
)

const (
	keyUser      = "user"
	keyOrders    = "orders"
	keyDirectory = "directory"

	TopicChanged = "session.changed"
)

// Registration carries the account fields plus the credential. The password
// is stored in the directory record only; it never reaches the session.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   *domain.Address
	Password  string
}

// OrderDraft is what the checkout collaborator supplies. Id, owner and date
// are synthesized here, never by the caller.
type OrderDraft struct {
	Items           []domain.OrderItem
	Total           int64
	Status          domain.OrderStatus
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

type Store struct {
	mu sync.Mutex
	st state

	// authMu serializes login/register so the simulated network calls
	// cannot interleave.
	authMu sync.Mutex

	storage        *localstore.Store
	bus            EventBus.Bus
	node           *snowflake.Node
	latency        time.Duration
	orderPrefix    string
	trackingPrefix string
}

func New(storage *localstore.Store, bus EventBus.Bus, node *snowflake.Node, cfg config.SessionConfig) *Store {
	return &Store{
		st:             state{loading: true},
		storage:        storage,
		bus:            bus,
		node:           node,
		latency:        time.Duration(cfg.AuthLatencyMs) * time.Millisecond,
		orderPrefix:    cfg.OrderPrefix,
		trackingPrefix: cfg.TrackingPrefix,
	}
}

// Init rehydrates the active session and order history, then leaves the
// Loading state. Records that no longer parse are discarded with a warning,
// the same as an absent record.
func (s *Store) Init() error {
	var user domain.UserAccount
	found, err := s.storage.GetJSON(localstore.NamespaceSession, keyUser, &user)
	switch {
	case err != nil:
		zap.L().Warn("session user snapshot discarded", zap.Error(err))
	case found:
		s.mu.Lock()
		s.st.user = &user
		s.mu.Unlock()
	}

	var orders []domain.Order
	found, err = s.storage.GetJSON(localstore.NamespaceSession, keyOrders, &orders)
	switch {
	case err != nil:
		zap.L().Warn("order snapshot discarded", zap.Error(err))
	case found:
		s.mu.Lock()
		s.st.orders = orders
		s.mu.Unlock()
	}

	s.dispatch(setLoading{loading: false})
	return nil
}

// User returns a copy of the active session's account, or nil while
// anonymous. The returned record never carries a password.
func (s *Store) User() *domain.UserAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.user == nil {
		return nil
	}
	u := *s.st.user
	return &u
}

// Orders returns the order history view, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.st.orders...)
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.loading
}

// Authenticated reports whether an active session exists.
func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Login resolves true when a directory record matches both email and password
// exactly. A mismatch resolves false and leaves any prior session untouched.
// The returned error is reserved for storage failures, never bad credentials.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.dispatch(setLoading{loading: true})
	defer s.dispatch(setLoading{loading: false})

	if err := s.simulateLatency(ctx); err != nil {
		return false, err
	}

	records, err := s.loadDirectory()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Email == email && rec.Password == password {
			u := rec.Public()
			s.dispatch(setUser{user: &u})
			return true, nil
		}
	}
	return false, nil
}

// Register resolves false when the email is already present in the directory
// (exact, case-sensitive match), with no side effect of any kind. On success
// the full record including the password is appended to the directory, and
// the stripped record becomes the active session.
func (s *Store) Register(ctx context.Context, reg Registration) (bool, error) {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.dispatch(setLoading{loading: true})
	defer s.dispatch(setLoading{loading: false})

	if err := s.simulateLatency(ctx); err != nil {
		return false, err
	}

	records, err := s.loadDirectory()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Email == reg.Email {
			return false, nil
		}
	}

	rec := domain.DirectoryRecord{
		UserAccount: domain.UserAccount{
			ID:        uuid.NewString(),
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Email:     reg.Email,
			Phone:     reg.Phone,
			Address:   reg.Address,
			JoinDate:  time.Now(),
		},
		Password: reg.Password,
	}

	// Persist the directory before establishing the session so a storage
	// failure leaves no partial state.
	records = append(records, rec)
	if err := s.storage.PutJSON(localstore.NamespaceSession, keyDirectory, records); err != nil {
		return false, err
	}

	u := rec.Public()
	s.dispatch(setUser{user: &u})
	return true, nil
}

// Logout clears the active session and the order history view.
func (s *Store) Logout() {
	s.dispatch(setUser{user: nil})
	s.dispatch(setOrders{orders: nil})
}

// UpdateProfile shallow-merges partial fields (keyed by json name, e.g.
// "firstName") into the active session. It is deliberately inert while
// anonymous. The underlying directory record is not updated; the session
// copy may diverge from it until the next login.
func (s *Store) UpdateProfile(fields map[string]interface{}) {
	if !s.Authenticated() {
		return
	}
	s.dispatch(updateUser{fields: fields})
}

// AddOrder synthesizes id, owner, date and tracking number for the draft and
// prepends the order to the history. It is inert while anonymous and returns
// the created order otherwise.
func (s *Store) AddOrder(draft OrderDraft) *domain.Order {
	user := s.User()
	if user == nil {
		return nil
	}

	tok := s.node.Generate()
	status := draft.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	order := domain.Order{
		ID:              s.orderPrefix + tok.String(),
		UserID:          user.ID,
		Items:           append([]domain.OrderItem(nil), draft.Items...),
		Total:           draft.Total,
		Status:          status,
		OrderDate:       time.Now(),
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
		TrackingNumber:  s.trackingNumber(tok),
	}
	s.dispatch(prependOrder{order: order})
	return &order
}

// trackingNumber keeps the short human-readable form: prefix plus the last
// eight digits of the snowflake token.
func (s *Store) trackingNumber(tok snowflake.ID) string {
	digits := tok.String()
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}
	return s.trackingPrefix + digits
}

func (s *Store) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) loadDirectory() ([]domain.DirectoryRecord, error) {
	var records []domain.DirectoryRecord
	if _, err := s.storage.GetJSON(localstore.NamespaceSession, keyDirectory, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// dispatch reduces, flushes whatever the action touched, then notifies
// subscribers. Flush failures are logged; the in-memory transition stands.
func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.st = reduce(s.st, a)
	var user *domain.UserAccount
	if s.st.user != nil {
		u := *s.st.user
		user = &u
	}
	orders := append([]domain.Order(nil), s.st.orders...)
	s.mu.Unlock()

	switch a.(type) {
	case setUser, updateUser:
		s.flushUser(user)
	case setOrders, prependOrder:
		s.flushOrders(orders)
	case setLoading:
		// transient, never persisted
	}

	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}

func (s *Store) flushUser(u *domain.UserAccount) {
	var err error
	if u == nil {
		err = s.storage.Delete(localstore.NamespaceSession, keyUser)
	} else {
		err = s.storage.PutJSON(localstore.NamespaceSession, keyUser, u)
	}
	if err != nil {
		zap.L().Error("session user flush failed", zap.Error(err))
	}
}

func (s *Store) flushOrders(orders []domain.Order) {
	if err := s.storage.PutJSON(localstore.NamespaceSession, keyOrders, orders); err != nil {
		zap.L().Error("order history flush failed", zap.Error(err))
	}
}
