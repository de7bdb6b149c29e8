package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillgraph/skillgraph/pkg/config"
	"github.com/skillgraph/skillgraph/pkg/logger"
	"github.com/skillgraph/skillgraph/pkg/presenter"
	"github.com/skillgraph/skillgraph/pkg/skills"
	"github.com/skillgraph/skillgraph/pkg/telemetry"
)

// discoverCatalog scans the configured sources and extracts cross-references.
// A non-nil catalog may come with an error describing skills that failed to
// load; a nil catalog means discovery could not run at all.
func discoverCatalog(ctx context.Context, sources config.SourcesConfig) (*skills.Catalog, error) {
	var (
		catalog *skills.Catalog
		loadErr error
	)

	err := telemetry.WithSpan(ctx, "skills.discover", func(ctx context.Context) error {
		discovery, err := skills.NewDiscovery(
			skills.WithSkillDirs(sources.Skills...),
			skills.WithExcludePatterns(sources.Exclude...),
		)
		if err != nil {
			return errors.Wrap(err, "failed to initialize skill discovery")
		}

		list, err := discovery.DiscoverSkills(ctx)
		if err != nil {
			loadErr = err
			telemetry.AddEvent(ctx, "skills.load_failed", attribute.String("error", err.Error()))
		}

		catalog = skills.NewCatalog(list)
		telemetry.SetAttributes(ctx,
			attribute.Int("skills.count", len(list)),
			attribute.Int("skills.missing", len(catalog.MissingTargets())),
		)
		logger.G(ctx).WithField("count", len(list)).Debug("skill catalog built")
		return nil
	}, attribute.StringSlice("skills.dirs", sources.Skills))
	if err != nil {
		return nil, err
	}

	return catalog, loadErr
}

// loadCatalog reads the configuration and discovers skills for a one-shot
// command. Skills that fail to load are reported as a warning.
func loadCatalog(ctx context.Context) (config.Config, *skills.Catalog, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return cfg, nil, err
	}

	catalog, err := discoverCatalog(ctx, cfg.Sources)
	if catalog == nil {
		return cfg, nil, err
	}
	if err != nil {
		logger.G(ctx).WithError(err).Debug("some skills failed to load")
		presenter.Warning("Some skills could not be loaded: " + err.Error())
	}
	return cfg, catalog, nil
}
