package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/config"
	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/insights"
	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

// deps is everything a command needs, built once per invocation.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store

	// provider is nil when no model is configured.
	provider llm.Provider

	profiles    *profile.Service
	quizzes     *quizgen.Service
	assessments *assessment.Service
}

// loadBase reads .env and the environment and builds the logger.
func loadBase() (config.Config, *logger.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

// openStore opens the database selected by flags and environment.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// setup wires the store, the model provider and the services. resolver
// decides who "the current user" is: a fixed local id for the CLI or the
// request token for the server.
func setup(cmd *cobra.Command, resolver func(config.Config) identity.Resolver) (*deps, error) {
	cfg, log, err := loadBase()
	if err != nil {
		return nil, err
	}
	st, err := openStore(cmd, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	d := &deps{cfg: cfg, log: log, store: st}

	llmCfg, err := llm.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quizzes will use built-in questions, with no improvement tips or new industry insights.")
	} else {
		p, err := llm.NewProvider(cmd.Context(), llmCfg, st.EventRepo(), log)
		if err != nil {
			d.close()
			return nil, err
		}
		d.provider = p
	}

	var (
		tips *assessment.TipGenerator
		gen  *insights.Generator
	)
	if d.provider != nil {
		tips = assessment.NewTipGenerator(d.provider)
		gen = insights.NewGenerator(d.provider, log)
	}

	d.profiles = profile.NewService(st.UserRepo(), resolver(cfg), log).
		WithInsights(insights.NewService(st.InsightRepo(), gen, log))
	d.quizzes = quizgen.NewService(d.profiles, quizgen.New(d.provider, quizgen.DefaultConfig(), log))
	d.assessments = assessment.NewService(d.profiles, st.AssessmentRepo(), tips, log)
	return d, nil
}

// setupLocal is setup for the local CLI user, creating their row on first
// use.
func setupLocal(cmd *cobra.Command) (*deps, *store.User, error) {
	d, err := setup(cmd, func(cfg config.Config) identity.Resolver {
		return identity.StaticResolver{ID: localUser(cmd, cfg)}
	})
	if err != nil {
		return nil, nil, err
	}
	u, err := d.profiles.EnsureUser(cmd.Context(), store.NewUser{Name: localUser(cmd, d.cfg)})
	if err != nil {
		d.close()
		return nil, nil, err
	}
	return d, u, nil
}

func (d *deps) close() {
	if d.store != nil {
		_ = d.store.Close()
	}
	d.log.Sync()
}
