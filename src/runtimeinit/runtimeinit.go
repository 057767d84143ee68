package runtimeinit

import (
	"fmt"
	"log"
	"os"

	"scan-overlay/src/clipboard"
	"scan-overlay/src/config"
	"scan-overlay/src/resources"
	"scan-overlay/src/settings"
)

type Options struct {
	SetupLogging func(bool)
	// RequireResources fails the bootstrap when the resource directory is
	// missing instead of falling back to the built-in identifiers.
	RequireResources bool
}

// Runtime holds everything the shell needs after bootstrap.
type Runtime struct {
	Config   *config.Config
	Resolver resources.Resolver
	Store    *settings.Store
}

func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}

	resolver, err := buildResolver(cfg.ResourceDir, opts.RequireResources)
	if err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	return &Runtime{
		Config:   cfg,
		Resolver: resolver,
		Store:    settings.New(resolver),
	}, nil
}

func buildResolver(dir string, required bool) (resources.Resolver, error) {
	if st, err := os.Stat(dir); err == nil && st.IsDir() {
		log.Printf("Resolving overlay resources from %s", dir)
		return resources.Dir{Path: dir}, nil
	}
	if required {
		return nil, fmt.Errorf("resource directory %s not found", dir)
	}
	log.Printf("Resource directory %s not found, using built-in identifiers", dir)
	return resources.BuiltIn(), nil
}
