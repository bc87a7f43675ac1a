package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgie-dev/budgie/internal/config"
	"github.com/budgie-dev/budgie/internal/errorlog"
	"github.com/budgie-dev/budgie/internal/ingest"
	"github.com/budgie-dev/budgie/internal/logging"
	"github.com/budgie-dev/budgie/internal/refs"
	"github.com/budgie-dev/budgie/internal/store"
)

// project bundles everything a command needs from an opened project dir.
type project struct {
	root   string
	cfg    *config.Config
	store  *store.CSVStore
	refs   *refs.Service
	errlog *errorlog.Log
	engine *ingest.Engine
	log    zerolog.Logger
}

// openProject loads budgie.yaml from dir and wires the pipeline over its
// data directory.
func openProject(dir string) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "budgie.yaml"))
	if err != nil {
		return nil, fmt.Errorf("not a budgie project (missing budgie.yaml?): %w", err)
	}

	log := logging.New(cfg.LogLevel)

	st, err := store.NewCSVStore(filepath.Join(root, cfg.Ledger.DataDir))
	if err != nil {
		return nil, err
	}
	rs, err := refs.Load(st, log)
	if err != nil {
		return nil, err
	}
	el, err := errorlog.New(st)
	if err != nil {
		return nil, err
	}

	eng := ingest.New(st, rs, el, ingest.Options{
		Currency:        cfg.Household.Currency,
		DefaultPersonID: cfg.Household.FallbackPersonID,
		Now:             time.Now,
	}, log)

	return &project{
		root:   root,
		cfg:    cfg,
		store:  st,
		refs:   rs,
		errlog: el,
		engine: eng,
		log:    log,
	}, nil
}
