package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"declaration_audit/pkg/api/audit"
	"declaration_audit/pkg/core/ingest"
	"declaration_audit/pkg/core/pipeline"
	"declaration_audit/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	source := ingest.NewCachedRegistryClient(os.Getenv("DECLARATION_CACHE_DIR"))
	orchestrator := pipeline.NewOrchestrator(source)

	// Storage is optional: without DATABASE_URL the run endpoint still works,
	// the stored-report endpoint answers 503.
	var repo store.AuditRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[FATAL] Database configured but unreachable: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		repo = store.NewAuditRepo()
		orchestrator.SetRepository(repo)
	}

	audit.InitHandler(orchestrator, repo)
	http.HandleFunc("/api/audit/run", audit.HandleRunAudit)
	http.HandleFunc("/api/audit/report", audit.HandleGetReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/audit/run")
	fmt.Println("  - GET  /api/audit/report?key=<declarant key>")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
