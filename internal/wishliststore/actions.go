package wishliststore

import "github.com/shoplane/storefront/internal/domain"

type action interface {
	isWishlistAction()
}

type addEntry struct {
	entry domain.WishlistEntry
}

type removeEntry struct {
	id int64
}

type clearWishlist struct{}

func (addEntry) isWishlistAction()      {}
func (removeEntry) isWishlistAction()   {}
func (clearWishlist) isWishlistAction() {}

func reduce(items []domain.WishlistEntry, a action) []domain.WishlistEntry {
	switch a := a.(type) {
	case addEntry:
		for _, e := range items {
			if e.ID == a.entry.ID {
				// already saved, keep the existing entry
				return items
			}
		}
		return append(append([]domain.WishlistEntry(nil), items...), a.entry)
	case removeEntry:
		next := make([]domain.WishlistEntry, 0, len(items))
		for _, e := range items {
			if e.ID != a.id {
				next = append(next, e)
			}
		}
		return next
	case clearWishlist:
		return nil
	}
	return items
}
