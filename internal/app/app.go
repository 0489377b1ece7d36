package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/shoplane/storefront/config"
	"github.com/shoplane/storefront/internal/cartstore"
	"github.com/shoplane/storefront/internal/checkout"
	"github.com/shoplane/storefront/internal/localstore"
	"github.com/shoplane/storefront/internal/searchstore"
	"github.com/shoplane/storefront/internal/sessionstore"
	"github.com/shoplane/storefront/internal/wishliststore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application wires the state layer together: one snapshot store, one event
// bus, the three peer stores plus the search boundary store, and the
// scheduled housekeeping jobs.
type Application struct {
	appConfig *config.AppConfig
	storage   *localstore.Store
	bus       EventBus.Bus
	node      *snowflake.Node

	cart     *cartstore.Store
	wishlist *wishliststore.Store
	session  *sessionstore.Store
	search   *searchstore.Store
	checkout *checkout.Service

	sched *schedJobs
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ StorageProvider = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
	_ StoresProvider  = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig      { return a.appConfig }
func (a *Application) Storage() *localstore.Store     { return a.storage }
func (a *Application) Bus() EventBus.Bus              { return a.bus }
func (a *Application) Cart() *cartstore.Store         { return a.cart }
func (a *Application) Wishlist() *wishliststore.Store { return a.wishlist }
func (a *Application) Session() *sessionstore.Store   { return a.session }
func (a *Application) Search() *searchstore.Store     { return a.search }
func (a *Application) Checkout() *checkout.Service    { return a.checkout }

// Init initializes logging, opens the snapshot store, constructs and
// rehydrates every store, and starts the scheduled jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	a.storage, err = localstore.Open(cfg.StorageFile())
	if err != nil {
		return err
	}

	a.node, err = snowflake.NewNode(cfg.Session.NodeID)
	if err != nil {
		return err
	}

	a.bus = EventBus.New()
	a.cart = cartstore.New(a.storage, a.bus)
	a.wishlist = wishliststore.New(a.storage, a.bus)
	a.session = sessionstore.New(a.storage, a.bus, a.node, cfg.Session)
	a.search = searchstore.New(a.storage, a.bus)
	a.checkout = checkout.New(a.cart, a.session)

	for _, init := range []func() error{
		a.cart.Init, a.wishlist.Init, a.session.Init, a.search.Init,
	} {
		if err := init(); err != nil {
			return err
		}
	}

	a.subscribeChangeLog()
	a.initJob()

	zap.L().Info("storefront state layer initialized",
		zap.String("workdir", cfg.System.Workdir),
		zap.Bool("authenticated", a.session.Authenticated()))
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	var logger *zap.Logger
	var err error
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// subscribeChangeLog traces every store mutation at debug level. It doubles
// as the example for how page components subscribe to change topics.
func (a *Application) subscribeChangeLog() {
	topics := []string{
		cartstore.TopicChanged,
		wishliststore.TopicChanged,
		sessionstore.TopicChanged,
		searchstore.TopicChanged,
	}
	for _, topic := range topics {
		topic := topic
		if err := a.bus.Subscribe(topic, func() {
			zap.L().Debug("store changed", zap.String("topic", topic))
		}); err != nil {
			zap.S().Errorf("subscribe %s error %s", topic, err.Error())
		}
	}
}

// Release stops the jobs and closes the snapshot store.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.stop()
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			zap.L().Error("close snapshot store failed", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
