package service

import (
	"context"

	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/pipeline"
	"campaignkit-go/pkg/storage"
	"campaignkit-go/pkg/structure"
)

type KeywordService interface {
	GenerateKeywords(ctx context.Context, req *pipeline.Request) (*pipeline.KeywordResult, error)
}

type CampaignService interface {
	BuildCampaign(ctx context.Context, req *pipeline.Request) (*pipeline.Result, error)
	ExportCampaign(ctx context.Context, req *pipeline.Request) (*Export, error)
	GetExport(ctx context.Context, id string) (storage.Blob, error)
}

type StructureService interface {
	Strategies() []structure.Strategy
	Rank(vertical, intent string) []structure.Ranked
	Verticals() []string
}

type MonitorService interface {
	HealthCheck(ctx context.Context) error
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// Export is a rendered bulk file plus the run that produced it.
type Export struct {
	storage.Blob
	Stats  *export.Stats    `json:"stats"`
	Result *pipeline.Result `json:"-"`
}
