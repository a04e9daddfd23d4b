package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"campaignkit-go/internal/service"
	"campaignkit-go/pkg/pipeline"
)

type Controller struct {
	keywords   service.KeywordService
	campaigns  service.CampaignService
	structures service.StructureService
	monitor    service.MonitorService
}

type StatusResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics"`
	Health    map[string]bool        `json:"health"`
}

// ExportResponse describes a stored export when JSON is requested.
type ExportResponse struct {
	*service.Export
	DownloadURL string `json:"download_url"`
}

func NewController(
	keywords service.KeywordService,
	campaigns service.CampaignService,
	structures service.StructureService,
	monitor service.MonitorService,
) *Controller {
	return &Controller{
		keywords:   keywords,
		campaigns:  campaigns,
		structures: structures,
		monitor:    monitor,
	}
}

// Register mounts the API under router.
func (h *Controller) Register(router fiber.Router) {
	router.Post("/keywords", h.GenerateKeywords)
	router.Post("/campaigns", h.BuildCampaign)
	router.Post("/campaigns/export", h.ExportCampaign)
	router.Get("/exports/:id", h.DownloadExport)
	router.Get("/structures", h.ListStructures)
	router.Get("/structures/rank", h.RankStructures)
	router.Get("/verticals", h.ListVerticals)
	router.Get("/status", h.Status)
}

func (h *Controller) GenerateKeywords(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return err
	}
	res, err := h.keywords.GenerateKeywords(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Controller) BuildCampaign(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return err
	}
	res, err := h.campaigns.BuildCampaign(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ExportCampaign streams the CSV, or with ?format=json returns where to
// download it.
func (h *Controller) ExportCampaign(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return err
	}
	out, err := h.campaigns.ExportCampaign(c.UserContext(), req)
	if err != nil {
		return err
	}

	c.Set("X-Export-ID", out.ID)
	if c.Query("format") == "json" {
		return c.Status(fiber.StatusCreated).JSON(ExportResponse{
			Export:      out,
			DownloadURL: fmt.Sprintf("%s/exports/%s", APIPrefix, out.ID),
		})
	}
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Data)
}

func (h *Controller) DownloadExport(c *fiber.Ctx) error {
	blob, err := h.campaigns.GetExport(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Attachment(blob.Filename)
	c.Set(fiber.HeaderContentType, blob.ContentType)
	return c.Send(blob.Data)
}

func (h *Controller) ListStructures(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"structures": h.structures.Strategies()})
}

func (h *Controller) RankStructures(c *fiber.Ctx) error {
	ranked := h.structures.Rank(c.Query("vertical"), c.Query("intent"))
	resp := fiber.Map{"recommended": nil, "ranking": ranked}
	if len(ranked) > 0 {
		resp["recommended"] = ranked[0]
	}
	return c.JSON(resp)
}

func (h *Controller) ListVerticals(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"verticals": h.structures.Verticals()})
}

func (h *Controller) Status(c *fiber.Ctx) error {
	healthy := h.monitor.HealthCheck(c.UserContext()) == nil
	metrics, err := h.monitor.GetMetrics(c.UserContext())
	if err != nil {
		return err
	}
	status := "ok"
	if !healthy {
		status = "degraded"
	}
	return c.JSON(StatusResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metrics:   metrics,
		Health:    map[string]bool{"generator": healthy},
	})
}

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

func parseRequest(c *fiber.Ctx) (*pipeline.Request, error) {
	var req pipeline.Request
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body: "+err.Error())
	}
	return &req, nil
}
