// Package checkout is the collaborator glue between the cart and the session
// store. The two stores stay uncoupled; only this service sequences
// record-the-order followed by clear-the-cart.
package checkout

import (
	"github.com/shoplane/storefront/internal/cartstore"
	"github.com/shoplane/storefront/internal/domain"
	"github.com/shoplane/storefront/internal/sessionstore"
)

type Service struct {
	cart    *cartstore.Store
	session *sessionstore.Store
}

func New(cart *cartstore.Store, session *sessionstore.Store) *Service {
	return &Service{cart: cart, session: session}
}

// PlaceOrder freezes the current cart into an order on the active session and
// then clears the cart. It reports false, without touching either store, when
// the cart is empty or no session is active.
func (s *Service) PlaceOrder(shipping domain.ShippingAddress, paymentMethod string) (*domain.Order, bool) {
	lines := s.cart.Items()
	if len(lines) == 0 {
		return nil, false
	}
	if !s.session.Authenticated() {
		return nil, false
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Image:    line.Image,
		})
	}

	order := s.session.AddOrder(sessionstore.OrderDraft{
		Items:           items,
		Total:           s.cart.Total(),
		Status:          domain.OrderStatusProcessing,
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
	})
	if order == nil {
		// session vanished between the check and the add, keep the cart
		return nil, false
	}

	s.cart.Clear()
	return order, true
}
