package sessionstore

import (
	"github.com/mitchellh/mapstructure"
	"github.com/shoplane/storefront/internal/domain"
	"go.uber.org/zap"
)

// state is everything the session store owns: the active session (nil while
// anonymous), the order history view, and the loading flag that is true from
// construction until rehydration finishes and during simulated auth calls.
type state struct {
	user    *domain.UserAccount
	orders  []domain.Order
	loading bool
}

type action interface {
	isSessionAction()
}

type setUser struct {
	user *domain.UserAccount
}

type setLoading struct {
	loading bool
}

type setOrders struct {
	orders []domain.Order
}

type prependOrder struct {
	order domain.Order
}

type updateUser struct {
	fields map[string]interface{}
}

func (setUser) isSessionAction()      {}
func (setLoading) isSessionAction()   {}
func (setOrders) isSessionAction()    {}
func (prependOrder) isSessionAction() {}
func (updateUser) isSessionAction()   {}

func reduce(st state, a action) state {
	switch a := a.(type) {
	case setUser:
		st.user = a.user
	case setLoading:
		st.loading = a.loading
	case setOrders:
		st.orders = a.orders
	case prependOrder:
		// newest first
		st.orders = append([]domain.Order{a.order}, st.orders...)
	case updateUser:
		if st.user == nil {
			return st
		}
		merged := *st.user
		if err := mergeFields(&merged, a.fields); err != nil {
			zap.L().Warn("profile update fields rejected", zap.Error(err))
			return st
		}
		st.user = &merged
	}
	return st
}

// mergeFields shallow-merges partial fields (keyed by their json names) into
// the account record. Fields not present in the map are left untouched.
func mergeFields(into *domain.UserAccount, fields map[string]interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  into,
	})
	if err != nil {
		return err
	}
	return dec.Decode(fields)
}
