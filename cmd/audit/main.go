package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"declaration_audit/pkg/core/ingest"
	"declaration_audit/pkg/core/pipeline"
	"declaration_audit/pkg/core/store"
)

// Config is the batch run configuration.
type Config struct {
	Declarants []Declarant `yaml:"declarants"`
	CacheDir   string      `yaml:"cache_dir"`
	OutputDir  string      `yaml:"output_dir"`
}

// Declarant is one audit target.
type Declarant struct {
	FullName    string `yaml:"full_name"`
	DeclarantID int    `yaml:"declarant_id"` // Optional namesake filter
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func main() {
	configPath := flag.String("config", "config/declarants.yaml", "batch configuration file")
	name := flag.String("name", "", "audit a single declarant by full name (skips the config file)")
	declarantID := flag.Int("id", 0, "declarant identifier, narrows namesake lists")
	outputDir := flag.String("out", "reports", "directory for markdown reports")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := &Config{OutputDir: *outputDir}
	if *name != "" {
		cfg.Declarants = []Declarant{{FullName: *name, DeclarantID: *declarantID}}
	} else {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			log.Fatalf("Error: no -name given and config unreadable: %v", err)
		}
		cfg = loaded
		if cfg.OutputDir == "" {
			cfg.OutputDir = *outputDir
		}
	}
	if len(cfg.Declarants) == 0 {
		log.Fatal("Error: nothing to audit, declarant list is empty.")
	}

	source := ingest.NewCachedRegistryClient(cfg.CacheDir)
	orchestrator := pipeline.NewOrchestrator(source)

	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Error: database configured but unreachable: %v", err)
		}
		defer store.Close()
		orchestrator.SetRepository(store.NewAuditRepo())
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Error: cannot create output directory %s: %v", cfg.OutputDir, err)
	}

	for _, target := range cfg.Declarants {
		rep, err := orchestrator.CheckPerson(ctx, target.FullName, target.DeclarantID)
		if err != nil {
			log.Printf("Warning: audit failed for %s: %v", target.FullName, err)
			continue
		}

		fmt.Println(rep.Text())

		outPath := filepath.Join(cfg.OutputDir, ingest.UnifyName(target.FullName)+".md")
		if err := os.WriteFile(outPath, []byte(rep.Markdown()), 0644); err != nil {
			log.Printf("Warning: failed to write %s: %v", outPath, err)
			continue
		}
		fmt.Printf("Report written to %s\n", outPath)
	}
}
