package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sitegen-cli/internal/content"
	"github.com/sells-group/sitegen-cli/internal/enrich"
	"github.com/sells-group/sitegen-cli/internal/flow"
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
	"github.com/sells-group/sitegen-cli/internal/normalize"
	"github.com/sells-group/sitegen-cli/internal/store"
	"github.com/sells-group/sitegen-cli/internal/variant"
	anthropicpkg "github.com/sells-group/sitegen-cli/pkg/anthropic"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "sitegen.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initGenerator builds the copy generator, disabled when no API key is set.
func initGenerator() enrich.Generator {
	if cfg.Anthropic.Key == "" {
		return enrich.Disabled{}
	}
	return enrich.NewAnthropic(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
}

// loadSources reads and normalizes a JSON file of raw source payloads.
func loadSources(path string) ([]model.SourcedFacts, json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "read sources %s", path)
	}
	var sources []model.RawSource
	if err := json.Unmarshal(raw, &sources); err != nil {
		return nil, nil, eris.Wrap(err, "parse sources")
	}
	return normalize.All(sources), raw, nil
}

// finalize produces the site configuration from a finished (or abandoned)
// flow session.
func finalize(ctx context.Context, sess *flow.Session, profile industry.Profile, gen enrich.Generator, sessionID string) model.SiteConfig {
	sel := variant.Select(sess.Facts(), sess.Quality(), profile, sess.State().Answers)
	pop := &content.Populator{Profile: profile, Generator: gen}
	return pop.Populate(ctx, sessionID, sel, sess.Facts(), sess.Quality())
}
