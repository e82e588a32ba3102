// Package app assembles the services shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/apollo"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/crunchbase"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/database"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/handler"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/llm"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/mailer"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/news"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/ratelimit"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/router"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/scraper"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service/aiscore"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service/scoring"
)

// Storage labels reported in API responses.
const (
	StorageDatabase = "database"
	StorageMemory   = "memory"
)

const (
	upstreamTimeout = 30 * time.Second
	llmTimeout      = 60 * time.Second
	mailTimeout     = 15 * time.Second
	migrateTimeout  = 30 * time.Second
)

// App holds the wired services.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Pool    *pgxpool.Pool
	Storage string
	JWT     *auth.JWTManager

	Hygiene   *service.ContactHygiene
	Discovery *discovery.Service
	Leads     *service.LeadsService
	Saved     *service.SavedService
	Campaigns *service.CampaignsService
	Analytics *service.AnalyticsService
	Auth      *service.AuthService
	Prompt    *service.PromptService
}

type repositories struct {
	leads      repository.LeadsRepository
	selections repository.SelectionsRepository
	campaigns  repository.CampaignsRepository
	analytics  repository.AnalyticsRepository
	users      repository.UsersRepository
}

// New connects storage and builds every service. Demo or live discovery,
// database or memory storage and the mail transport are decided here once.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Log: log, JWT: auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)}

	repos, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	weights, err := scoring.LoadWeights(cfg.ScoringConfigPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	var hygieneOpts []service.HygieneOption
	if cfg.EmailVerifyMX {
		hygieneOpts = append(hygieneOpts, service.WithSystemResolver())
	}
	a.Hygiene = service.NewContactHygiene("", hygieneOpts...)
	a.Leads = service.NewLeadsService(repos.leads, repos.selections, a.Hygiene, log.Named("leads"))
	a.Saved = service.NewSavedService(a.Leads)
	a.Analytics = service.NewAnalyticsService(repos.analytics, time.Now)
	a.Auth = service.NewAuthService(repos.users, a.JWT)
	a.Prompt = service.NewPromptService(0)

	scorer := aiscore.NewScorer(completer(cfg), aiscore.Sender{Name: cfg.Sender.Name, Company: cfg.Sender.Company}, log.Named("aiscore"))

	var primary discovery.DataSource
	if cfg.ApolloEnabled() {
		apolloHTTP := ratelimit.NewHTTPClient(upstreamTimeout, ratelimit.NewLimiter(cfg.ApolloRateLimit))
		primary = discovery.NewLive(apollo.NewClient(cfg.ApolloAPIKey, cfg.ApolloBaseURL, apolloHTTP), discovery.LiveOptions{
			ContactsPerCompany: cfg.ContactsPerCompany,
			Scoring:            weights,
			Suppliers:          suppliers(cfg, log),
			Scorer:             scorer,
			Existing:           a.Leads.ExistingIndex,
			Log:                log.Named("discovery"),
		})
		log.Info("live discovery enabled", zap.String("apollo_base_url", cfg.ApolloBaseURL))
	} else {
		log.Info("apollo not configured, serving curated demo data")
	}
	a.Discovery = discovery.NewService(primary, discovery.NewDemo(nil), a.Leads, log.Named("discovery"))

	m := mailer.New(cfg, &http.Client{Timeout: mailTimeout}, log.Named("mailer"))
	opts := []service.CampaignsOption{service.WithDrafter(scorer)}
	if limiter := ratelimit.NewLimiter(cfg.EmailRateLimit); limiter != nil {
		opts = append(opts, service.WithSendLimiter(limiter))
	}
	a.Campaigns = service.NewCampaignsService(repos.campaigns, repos.leads, m, mailer.SenderFromConfig(cfg.Sender), log.Named("campaigns"), opts...)
	log.Info("mail transport selected", zap.String("mode", m.Mode()))

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (repositories, error) {
	cfg := a.Config
	if !cfg.DatabaseEnabled() {
		if cfg.SupabaseURL != "" {
			a.Log.Warn("supabase url configured without DATABASE_URL, using in-memory storage")
		} else {
			a.Log.Info("no database configured, using in-memory storage")
		}
		a.Storage = StorageMemory
		store := repository.NewMemoryStore(time.Now)
		return repositories{leads: store, selections: store, campaigns: store, analytics: store, users: store}, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.Database, a.Log.Named("database"))
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}
	migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()
	if err := database.Migrate(migrateCtx, pool); err != nil {
		pool.Close()
		return repositories{}, fmt.Errorf("migrate database: %w", err)
	}
	a.Pool = pool
	a.Storage = StorageDatabase
	return repositories{
		leads:      repository.NewPGXLeadsRepository(pool),
		selections: repository.NewPGXSelectionsRepository(pool),
		campaigns:  repository.NewPGXCampaignsRepository(pool),
		analytics:  repository.NewPGXAnalyticsRepository(pool),
		users:      repository.NewPGXUsersRepository(pool),
	}, nil
}

// Handlers builds the HTTP handlers over the wired services.
func (a *App) Handlers() router.Handlers {
	return router.Handlers{
		Auth:      handler.NewAuthHandler(a.Auth),
		Discovery: handler.NewDiscoveryHandler(a.Discovery, a.Leads, a.Prompt, a.Log.Named("http")),
		Saved:     handler.NewSavedHandler(a.Saved, a.Log.Named("http")),
		Campaigns: handler.NewCampaignsHandler(a.Campaigns, a.Storage, a.Log.Named("http")),
		Analytics: handler.NewAnalyticsHandler(a.Analytics, a.Storage, a.Log.Named("http")),
		Import:    handler.NewImportHandler(a.Leads),
	}
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func completer(cfg *config.Config) aiscore.Completer {
	if !cfg.AIEnabled() {
		return nil
	}
	return llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "", &http.Client{Timeout: llmTimeout})
}

// suppliers returns the configured secondary lead sources.
func suppliers(cfg *config.Config, log *zap.Logger) []discovery.Supplier {
	var out []discovery.Supplier
	if cfg.CrunchbaseAPIKey != "" {
		client := crunchbase.NewClient(cfg.CrunchbaseAPIKey, "", ratelimit.NewHTTPClient(upstreamTimeout, ratelimit.NewLimiter(cfg.ApolloRateLimit)))
		out = append(out, discovery.Supplier{Name: crunchbase.SourceName, Search: client.Search})
	}
	if cfg.NewsAPIKey != "" {
		client := news.NewClient(cfg.NewsAPIKey, "", ratelimit.NewHTTPClient(upstreamTimeout, ratelimit.NewLimiter(cfg.ApolloRateLimit)))
		out = append(out, discovery.Supplier{Name: news.SourceName, Search: ignoreCriteria(client.Search)})
	}
	if len(cfg.NewsFeeds) > 0 {
		reader := news.NewFeedReader(cfg.NewsFeeds, &http.Client{Timeout: upstreamTimeout})
		out = append(out, discovery.Supplier{Name: news.FeedSourceName, Search: ignoreCriteria(reader.Search)})
	}
	if len(cfg.ScrapeSources) > 0 {
		s := scraper.New(cfg.ScrapeSources, &http.Client{Timeout: upstreamTimeout})
		out = append(out, discovery.Supplier{Name: scraper.SourceName, Search: ignoreCriteria(s.Search)})
	}
	names := make([]string, 0, len(out))
	for _, s := range out {
		names = append(names, s.Name)
	}
	if len(names) > 0 {
		log.Info("supplementary sources configured", zap.Strings("sources", names))
	}
	return out
}

func ignoreCriteria(search func(context.Context) ([]dto.Lead, error)) func(context.Context, discovery.Criteria) ([]dto.Lead, error) {
	return func(ctx context.Context, _ discovery.Criteria) ([]dto.Lead, error) {
		return search(ctx)
	}
}
