package doctor

import (
	"context"
	"fmt"

	configapp "github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/application/config"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// CatalogHealth is implemented by catalogs that can report their backend.
type CatalogHealth interface {
	Ping() error
	Backend() string
	Path() string
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Device         ports.DeviceProvider
	Tree           ports.TreeProvider
	Catalog        CatalogHealth
	// ScratchRoot is the resolved scratch root.
	ScratchRoot string
	// Probe checks a directory is writable.
	Probe func(dir string) error
}

// Run executes checks and returns a report. The error is non-nil when any
// check failed.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.dirCheck("Output root", cfg.Output.Root, domain.HealthError))
	checks = append(checks, s.dirCheck("Scratch root", s.ScratchRoot, domain.HealthWarn))
	checks = append(checks, s.displayCheck(ctx))
	checks = append(checks, s.treeCheck(ctx))
	if cfg.Catalog.Enabled {
		checks = append(checks, s.catalogCheck())
	}

	report := domain.HealthReport{Checks: checks}
	if n := report.Failed(); n > 0 {
		return report, fmt.Errorf("%d check(s) failed", n)
	}
	return report, nil
}

func (s *Service) dirCheck(name, dir string, severity domain.HealthStatus) domain.HealthCheck {
	if dir == "" {
		return domain.HealthCheck{Name: name, Status: severity, Details: "not configured"}
	}
	if s.Probe == nil {
		return warn(name, dir+" (not probed)")
	}
	if err := s.Probe(dir); err != nil {
		return domain.HealthCheck{Name: name, Status: severity, Details: fmt.Sprintf("%s not writable: %v", dir, err)}
	}
	return ok(name, dir)
}

func (s *Service) displayCheck(ctx context.Context) domain.HealthCheck {
	if s.Device == nil {
		return fail("Display", "no capture source")
	}
	info, err := s.Device.Device(ctx)
	if err != nil {
		return fail("Display", err.Error())
	}
	return ok("Display", fmt.Sprintf("%dx%d", info.Width, info.Height))
}

func (s *Service) treeCheck(ctx context.Context) domain.HealthCheck {
	if s.Tree == nil {
		return warn("Element tree", "no tree snapshot configured; samples will have no nodes")
	}
	nodes, err := s.Tree.QueryAll(ctx)
	if err != nil {
		return fail("Element tree", err.Error())
	}
	if len(nodes) == 0 {
		return warn("Element tree", "snapshot is empty")
	}
	return ok("Element tree", fmt.Sprintf("%d elements", len(nodes)))
}

func (s *Service) catalogCheck() domain.HealthCheck {
	if s.Catalog == nil {
		return warn("Catalog", "unavailable")
	}
	if err := s.Catalog.Ping(); err != nil {
		return warn("Catalog", fmt.Sprintf("%s (%s)", err.Error(), s.Catalog.Path()))
	}
	return ok("Catalog", fmt.Sprintf("%s at %s", s.Catalog.Backend(), s.Catalog.Path()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
