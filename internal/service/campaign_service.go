package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/pipeline"
	"campaignkit-go/pkg/storage"
	"campaignkit-go/pkg/structure"
)

const ContentTypeCSV = "text/csv; charset=utf-8"

// StatsFunc reports a snapshot of a collaborator's counters.
type StatsFunc func() interface{}

// Service backs every HTTP operation with one shared generator.
type Service struct {
	generator  *pipeline.Generator
	serializer *export.Serializer
	exports    *storage.BlobStore
	now        func() time.Time
	log        *logger.Logger

	started    time.Time
	campaigns  atomic.Int64
	exported   atomic.Int64
	keywordRun atomic.Int64
	extra      map[string]StatsFunc
}

func New(generator *pipeline.Generator, serializer *export.Serializer, exports *storage.BlobStore) *Service {
	return &Service{
		generator:  generator,
		serializer: serializer,
		exports:    exports,
		now:        time.Now,
		log:        logger.GetLogger().Component("service"),
		started:    time.Now(),
		extra:      make(map[string]StatsFunc),
	}
}

func (s *Service) SetLogger(l *logger.Logger) {
	s.log = l.Component("service")
}

// Register adds a named stats source to GetMetrics.
func (s *Service) Register(name string, fn StatsFunc) {
	s.extra[name] = fn
}

func (s *Service) GenerateKeywords(ctx context.Context, req *pipeline.Request) (*pipeline.KeywordResult, error) {
	res, err := s.generator.GenerateKeywords(ctx, req)
	if err != nil {
		return nil, err
	}
	s.keywordRun.Add(1)
	return res, nil
}

func (s *Service) BuildCampaign(ctx context.Context, req *pipeline.Request) (*pipeline.Result, error) {
	res, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	s.campaigns.Add(1)
	return res, nil
}

// ExportCampaign builds the campaign, renders the bulk CSV and keeps it
// for download by id.
func (s *Service) ExportCampaign(ctx context.Context, req *pipeline.Request) (*Export, error) {
	res, err := s.BuildCampaign(ctx, req)
	if err != nil {
		return nil, err
	}

	data, stats, err := s.serializer.Bytes(res.Campaign)
	if err != nil {
		return nil, fmt.Errorf("serialize campaign: %w", err)
	}

	now := s.now()
	out := &Export{
		Blob: storage.Blob{
			ID:          uuid.NewString(),
			Filename:    export.Filename(res.Campaign.Name, now),
			ContentType: ContentTypeCSV,
			Data:        data,
			CreatedAt:   now,
		},
		Stats:  stats,
		Result: res,
	}
	if s.exports != nil {
		if err := s.exports.Put(out.Blob); err != nil {
			s.log.WithError(err).Warn("Failed to keep export for download")
		}
	}
	s.exported.Add(1)

	s.log.WithFields(map[string]interface{}{
		"export_id": out.ID,
		"run_id":    res.RunID,
		"rows":      stats.Rows,
		"bytes":     len(data),
	}).Info("Campaign exported")
	return out, nil
}

func (s *Service) GetExport(_ context.Context, id string) (storage.Blob, error) {
	if s.exports == nil {
		return storage.Blob{}, fmt.Errorf("export %s: %w", id, storage.ErrNotFound)
	}
	return s.exports.Get(id)
}

func (s *Service) Strategies() []structure.Strategy {
	return append([]structure.Strategy(nil), structure.Strategies...)
}

func (s *Service) Rank(vertical, intent string) []structure.Ranked {
	return s.generator.Rank(vertical, intent)
}

func (s *Service) Verticals() []string {
	return s.generator.Catalog().Verticals()
}

func (s *Service) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (s *Service) GetMetrics(_ context.Context) (map[string]interface{}, error) {
	m := map[string]interface{}{
		"uptime_seconds": int64(s.now().Sub(s.started).Seconds()),
		"keyword_runs":   s.keywordRun.Load(),
		"campaigns":      s.campaigns.Load(),
		"exports":        s.exported.Load(),
	}
	if s.exports != nil {
		m["export_store"] = s.exports.Stats()
	}
	for name, fn := range s.extra {
		m[name] = fn()
	}
	return m, nil
}
