package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/factfence/rag-controller/internal/audit"
	"github.com/factfence/rag-controller/internal/config"
)

// #endregion

// #region main

// Inspect dumps recent guardrail decisions from the audit log.
func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	limit := flag.Int("last", 20, "show N most recent decisions")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := audit.Open(cfg.Audit.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	records, err := log.ListRecent(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(records) == 0 {
		fmt.Println("no decisions recorded")
		return
	}
	for _, rec := range records {
		fmt.Printf("%s  %-18s %-9s sensitive=%-5v sufficient=%-5v cites=%d  %q\n",
			rec.CreatedAt.Format(time.RFC3339),
			rec.Policy, rec.Status, rec.Sensitive, rec.Sufficient,
			rec.CitationCount, rec.Question)
		if rec.Reason != "" {
			fmt.Printf("    reason: %s\n", rec.Reason)
		}
	}
}

// #endregion main
