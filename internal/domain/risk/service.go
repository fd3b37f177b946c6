package risk

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	apperrors "github.com/yanqian/safeland/pkg/errors"
	"github.com/yanqian/safeland/pkg/util"
)

// Config tunes the lookup service.
type Config struct {
	SimulatedLatency time.Duration
}

// Observer is notified of every resolved lookup.
type Observer interface {
	ObserveRiskLookup(source string)
}

// Lookup resolves a location to a risk record.
type Lookup interface {
	Lookup(ctx context.Context, location string) Record
}

// Service exposes risk lookups and the public assessment payload.
type Service interface {
	Lookup
	Assess(ctx context.Context, location string) (Assessment, error)
}

type service struct {
	cfg         Config
	table       Table
	synthesizer *Synthesizer
	clock       clockwork.Clock
	observer    Observer
	logger      *slog.Logger
}

// NewService wires the curated table and the synthesizer.
func NewService(cfg Config, table Table, synthesizer *Synthesizer, clock clockwork.Clock, observer Observer, logger *slog.Logger) Service {
	if synthesizer == nil {
		synthesizer = NewSynthesizer()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &service{
		cfg:         cfg,
		table:       table,
		synthesizer: synthesizer,
		clock:       clock,
		observer:    observer,
		logger:      logger.With("component", "risk.service"),
	}
}

// NormalizeKey trims and lowercases a location for table lookups.
func NormalizeKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func (s *service) Lookup(ctx context.Context, location string) Record {
	util.SleepContext(ctx, s.clock, s.cfg.SimulatedLatency)

	trimmed := strings.TrimSpace(location)
	if record, ok := s.table[NormalizeKey(trimmed)]; ok {
		if record.Source == "" {
			record.Source = SourceDatabase
		}
		s.observe(record.Source)
		return record
	}

	record := s.synthesizer.Synthesize(trimmed)
	s.logger.Debug("synthesized risk", "location", trimmed, "flood", record.FloodRisk, "landslide", record.LandslideRisk)
	s.observe(record.Source)
	return record
}

func (s *service) Assess(ctx context.Context, location string) (Assessment, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return Assessment{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Location parameter is required", nil)
	}
	record := s.Lookup(ctx, trimmed)
	return Assessment{
		Location:       trimmed,
		FloodRisk:      record.FloodRisk,
		LandslideRisk:  record.LandslideRisk,
		FloodLevel:     Level(record.FloodRisk),
		LandslideLevel: Level(record.LandslideRisk),
		Description:    record.Description,
		Source:         record.Source,
		Coordinates:    record.Coordinates,
		LastUpdated:    record.LastUpdated,
		Timestamp:      util.Timestamp(s.clock),
	}, nil
}

func (s *service) observe(source string) {
	if s.observer != nil {
		s.observer.ObserveRiskLookup(source)
	}
}
