package cartstore

import "github.com/shoplane/storefront/internal/domain"

// action is the closed set of cart transitions. Every mutation goes through
// dispatch with one of these, so the reducer switch covers every case.
type action interface {
	isCartAction()
}

type addItem struct {
	line domain.CartLine
}

type updateQuantity struct {
	id       int64
	quantity int
}

type removeItem struct {
	id int64
}

type clearCart struct{}

func (addItem) isCartAction()        {}
func (updateQuantity) isCartAction() {}
func (removeItem) isCartAction()     {}
func (clearCart) isCartAction()      {}

// reduce applies one action to the line list and returns the next list.
// All actions are total: unknown ids fall through as no-ops.
func reduce(items []domain.CartLine, a action) []domain.CartLine {
	switch a := a.(type) {
	case addItem:
		line := a.line
		if line.Quantity <= 0 {
			line.Quantity = 1
		}
		for i := range items {
			if items[i].ID == line.ID {
				next := append([]domain.CartLine(nil), items...)
				next[i].Quantity += line.Quantity
				return next
			}
		}
		return append(append([]domain.CartLine(nil), items...), line)
	case updateQuantity:
		if a.quantity <= 0 {
			return reduce(items, removeItem{id: a.id})
		}
		next := append([]domain.CartLine(nil), items...)
		for i := range next {
			if next[i].ID == a.id {
				next[i].Quantity = a.quantity
			}
		}
		return next
	case removeItem:
		next := make([]domain.CartLine, 0, len(items))
		for _, line := range items {
			if line.ID != a.id {
				next = append(next, line)
			}
		}
		return next
	case clearCart:
		return nil
	}
	return items
}
