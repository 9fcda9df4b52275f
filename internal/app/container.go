package app

import (
	"context"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/application/doctor"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/application/session"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/capture"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/catalog"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/config"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/storage"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/tree"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/pkg/logger"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// Options selects the sources the container wires.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	// Screenshot replays a saved image instead of capturing a display.
	Screenshot string
	// Snapshot overrides tree.snapshot from the config.
	Snapshot string
	// Display selects the display index for live capture.
	Display int
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Session        *session.Controller
	DoctorService  *doctor.Service
	Catalog        *catalog.SQLiteStore
	Clipboard      ports.Clipboard
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. The session controller
// has no Namer yet; the CLI installs one.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(opts.Verbose)

	scratch, err := storage.ResolveScratchRoot(cfg.Output.ScratchRoot, log)
	if err != nil {
		return nil, err
	}

	var source interface {
		ports.CaptureProvider
		ports.DeviceProvider
	}
	if opts.Screenshot != "" {
		source = capture.NewFile(opts.Screenshot)
	} else {
		source = capture.NewDesktop(opts.Display)
	}

	snapshotPath := cfg.Tree.Snapshot
	if opts.Snapshot != "" {
		snapshotPath = opts.Snapshot
	}

	controller := &session.Controller{
		Config:      cfg,
		ScratchRoot: scratch,
		OutputRoot:  cfg.Output.Root,
		Capture:     source,
		Device:      source,
		Storage:     storage.New(),
		Logger:      log,
		Tree:        tree.Empty{},
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Device:         source,
		ScratchRoot:    scratch,
		Probe:          storage.Probe,
	}

	if snapshotPath != "" {
		snapshot := tree.NewSnapshot(snapshotPath)
		controller.Tree = snapshot
		controller.Foreground = snapshot
		doctorService.Tree = snapshot
	}

	var store *catalog.SQLiteStore
	if cfg.Catalog.Enabled {
		store = catalog.Open(cfg.Catalog.Path)
		controller.Catalog = store
		doctorService.Catalog = store
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Session:        controller,
		DoctorService:  doctorService,
		Catalog:        store,
		Logger:         log,
	}, nil
}

// UseScreenshot replays the image at path instead of capturing a display.
func (c *Container) UseScreenshot(path string) {
	src := capture.NewFile(path)
	c.Session.Capture = src
	c.Session.Device = src
	c.DoctorService.Device = src
}

// UseDisplay captures the display with the given index.
func (c *Container) UseDisplay(index int) {
	src := capture.NewDesktop(index)
	c.Session.Capture = src
	c.Session.Device = src
	c.DoctorService.Device = src
}

// UseSnapshot reads the element tree from the snapshot at path.
func (c *Container) UseSnapshot(path string) {
	snapshot := tree.NewSnapshot(path)
	c.Session.Tree = snapshot
	c.Session.Foreground = snapshot
	c.DoctorService.Tree = snapshot
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Catalog != nil {
		return c.Catalog.Close()
	}
	return nil
}
