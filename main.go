package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"campaignkit-go/internal/bootstrap"
	"campaignkit-go/internal/config"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/pipeline"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("CRITICAL ERROR: campaign export panicked: %v\n", r)
			os.Exit(1)
		}
	}()

	var (
		requestPath   = flag.String("request", getEnvOrDefault("CAMPAIGNKIT_REQUEST", ""), "Campaign request JSON file, - for stdin (env: CAMPAIGNKIT_REQUEST)")
		outDir        = flag.String("out", getEnvOrDefault("CAMPAIGNKIT_OUT", "."), "Directory for the CSV export (env: CAMPAIGNKIT_OUT)")
		configPath    = flag.String("config", getEnvOrDefault("CAMPAIGNKIT_CONFIG", ""), "Configuration file path (env: CAMPAIGNKIT_CONFIG)")
		structureID   = flag.String("structure", getEnvOrDefault("CAMPAIGNKIT_STRUCTURE", ""), "Structure strategy, empty for the recommended one (env: CAMPAIGNKIT_STRUCTURE)")
		schema        = flag.String("schema", getEnvOrDefault("CAMPAIGNKIT_SCHEMA", ""), "Export schema: standard or extended (env: CAMPAIGNKIT_SCHEMA)")
		maxKeywords   = flag.Int("max-keywords", getEnvIntOrDefault("CAMPAIGNKIT_MAX_KEYWORDS", 0), "Override the request's keyword cap (env: CAMPAIGNKIT_MAX_KEYWORDS)")
		metricsURL    = flag.String("metrics-url", getEnvOrDefault("CAMPAIGNKIT_METRICS_URL", ""), "Comma-separated keyword metrics API URLs (env: CAMPAIGNKIT_METRICS_URL)")
		metricsAPIKey = flag.String("metrics-api-key", getEnvOrDefault("CAMPAIGNKIT_METRICS_API_KEY", ""), "Keyword metrics API key (env: CAMPAIGNKIT_METRICS_API_KEY)")
		debug         = flag.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
		help          = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *requestPath == "" {
		fmt.Println("ERROR: a campaign request file is required.")
		fmt.Println("Use -request flag or CAMPAIGNKIT_REQUEST environment variable.")
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logger.Level = "debug"
	}
	if *schema != "" {
		cfg.Export.Schema = *schema
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().Component("main")

	req, err := readRequest(*requestPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to read campaign request")
	}
	if *structureID != "" {
		req.StructureID = *structureID
	}
	if *maxKeywords > 0 {
		req.MaxKeywords = *maxKeywords
	}

	builder := bootstrap.NewBuilder().WithConfig(cfg).WithLogger(logger.GetLogger())
	if *metricsURL != "" {
		builder = builder.WithMetricsAPI(*metricsURL, *metricsAPIKey)
	}
	kit, err := builder.Build()
	if err != nil {
		log.WithError(err).Fatal("Failed to assemble campaign kit")
	}
	defer kit.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	startTime := time.Now()

	exp, err := kit.Service.ExportCampaign(ctx, req)
	if err != nil {
		kit.Close()
		log.WithError(err).Fatal("Campaign export failed")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		kit.Close()
		log.WithError(err).Fatal("Failed to create output directory")
	}
	target := filepath.Join(*outDir, exp.Filename)
	if err := os.WriteFile(target, exp.Data, 0o644); err != nil {
		kit.Close()
		log.WithError(err).Fatal("Failed to write export")
	}

	res := exp.Result
	fmt.Printf("\n=== Campaign Export ===\n")
	fmt.Printf("Campaign: %s\n", res.Campaign.Name)
	fmt.Printf("Structure: %s\n", res.Structure.ID)
	fmt.Printf("Vertical: %s\n", res.Vertical)
	fmt.Printf("Keywords: %d (base %d, rejected %d)\n", len(res.Keywords), len(res.Base), res.Report.Rejected)
	fmt.Printf("Ad Groups: %d\n", len(res.Campaign.AdGroups))
	fmt.Printf("Ads: %d\n", res.Campaign.AdCount())
	fmt.Printf("Rows: %d (%s schema)\n", exp.Stats.Rows, exp.Stats.Schema)
	if res.MetricsSource != "" {
		fmt.Printf("Metrics: %s\n", res.MetricsSource)
	}
	fmt.Printf("Duration: %s\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Output: %s\n", target)

	if len(res.Warnings) > 0 {
		fmt.Printf("\n=== Warnings ===\n")
		for _, w := range res.Warnings {
			fmt.Printf("- %s\n", w.String())
		}
	}
}

func readRequest(path string) (*pipeline.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var req pipeline.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &req, nil
}

func printUsage() {
	fmt.Println("campaignkit: keyword, ad group and bulk CSV generator")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./campaignkit -request request.json [OPTIONS]")
	fmt.Println("    cat request.json | ./campaignkit -request -")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -request string         Campaign request JSON (env: CAMPAIGNKIT_REQUEST)")
	fmt.Println("    -out string             Output directory (default: ., env: CAMPAIGNKIT_OUT)")
	fmt.Println("    -config string          YAML configuration file (env: CAMPAIGNKIT_CONFIG)")
	fmt.Println("    -structure string       skag, stag, intent, match_type, geo, funnel, ... (env: CAMPAIGNKIT_STRUCTURE)")
	fmt.Println("    -schema string          standard or extended (env: CAMPAIGNKIT_SCHEMA)")
	fmt.Println("    -max-keywords int       Keyword cap override (env: CAMPAIGNKIT_MAX_KEYWORDS)")
	fmt.Println("    -metrics-url string     Keyword metrics API URLs (env: CAMPAIGNKIT_METRICS_URL)")
	fmt.Println("    -metrics-api-key string Keyword metrics API key (env: CAMPAIGNKIT_METRICS_API_KEY)")
	fmt.Println("    -debug                  Enable debug logging (env: DEBUG)")
	fmt.Println("    -help                   Show this help message")
	fmt.Println("")
	fmt.Println("Any configuration key can also be set as CAMPAIGNKIT_<SECTION>_<KEY>,")
	fmt.Println("e.g. CAMPAIGNKIT_KEYWORDS_DEFAULT_CPC=2.10.")
}
