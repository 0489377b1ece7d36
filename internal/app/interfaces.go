package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/shoplane/storefront/config"
	"github.com/shoplane/storefront/internal/cartstore"
	"github.com/shoplane/storefront/internal/checkout"
	"github.com/shoplane/storefront/internal/localstore"
	"github.com/shoplane/storefront/internal/searchstore"
	"github.com/shoplane/storefront/internal/sessionstore"
	"github.com/shoplane/storefront/internal/wishliststore"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StorageProvider provides the snapshot store
type StorageProvider interface {
	Storage() *localstore.Store
}

// BusProvider provides the store-change event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// StoresProvider provides the state layer's stores. Page components depend
// on this rather than on the Application itself.
type StoresProvider interface {
	Cart() *cartstore.Store
	Wishlist() *wishliststore.Store
	Session() *sessionstore.Store
	Search() *searchstore.Store
	Checkout() *checkout.Service
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StorageProvider
	BusProvider
	StoresProvider

	// Application lifecycle methods
	Init(cfg *config.AppConfig) error
	Release()
	// BackupNow writes a snapshot backup immediately, outside the schedule
	BackupNow() error
}
