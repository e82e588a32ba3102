package discovery

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

const (
	messageApollo       = "Results from Apollo API"
	messageDemoOnly     = "Using curated biotech database - configure Apollo API for more companies"
	messageDemoFallback = "Apollo API available but returned no results - using curated biotech database"
)

// SearchRecorder persists a summary of each search. Failures are logged only.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, c Criteria, resultCount int, source string) error
}

// Service runs discovery against the primary source and falls back to the
// demo source when the primary is absent, fails, or finds nothing.
type Service struct {
	primary  DataSource
	demo     DataSource
	recorder SearchRecorder
	log      *zap.Logger
}

// NewService wires the sources. primary may be nil for demo-only mode.
func NewService(primary, demo DataSource, recorder SearchRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{primary: primary, demo: demo, recorder: recorder, log: log}
}

// LiveEnabled reports whether a primary source is configured.
func (s *Service) LiveEnabled() bool {
	return s.primary != nil
}

// Search executes one discovery run.
func (s *Service) Search(ctx context.Context, c Criteria) (dto.SearchResponse, error) {
	c = withDefaults(c)

	if s.primary != nil {
		res, err := s.primary.Discover(ctx, c)
		switch {
		case err != nil:
			s.log.Warn("live discovery failed, falling back to demo data", zap.Error(err))
		case len(res.Leads) == 0:
			s.log.Info("live discovery returned no results, falling back to demo data")
		default:
			return s.respond(ctx, c, res, SourceApollo, messageApollo), nil
		}
	}

	if s.demo == nil {
		return dto.SearchResponse{}, eris.New("no discovery source configured")
	}
	res, err := s.demo.Discover(ctx, c)
	if err != nil {
		return dto.SearchResponse{}, eris.Wrap(err, "demo discovery")
	}
	if s.primary == nil {
		return s.respond(ctx, c, res, SourceDemoOnly, messageDemoOnly), nil
	}
	return s.respond(ctx, c, res, SourceDemoFallback, messageDemoFallback), nil
}

func (s *Service) respond(ctx context.Context, c Criteria, res Result, source, message string) dto.SearchResponse {
	leads := res.Leads
	if leads == nil {
		leads = []dto.Lead{}
	}
	if s.recorder != nil {
		if err := s.recorder.RecordSearch(ctx, c, len(leads), source); err != nil {
			s.log.Warn("record search failed", zap.Error(err))
		}
	}
	s.log.Info("discovery completed",
		zap.String("source", source),
		zap.Int("results", len(leads)),
		zap.Int("vcs", len(res.VCs)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return dto.SearchResponse{
		Results:    leads,
		VCs:        res.VCs,
		TotalCount: len(leads),
		Source:     source,
		Message:    message,
		Warnings:   res.Warnings,
	}
}
