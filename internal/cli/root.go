// Package cli implements the journal-memory CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/config"
	"github.com/pocketjournal/journal-memory/internal/extract"
	"github.com/pocketjournal/journal-memory/internal/model"
	"github.com/pocketjournal/journal-memory/internal/service"
	"github.com/pocketjournal/journal-memory/internal/store"
)

var (
	dbPath     string
	cfg        config.Config
	logCleanup func() error
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "journal-memory",
	Short: "Long-term memory for a journaling companion",
	Long:  "Stores facts about the user, retrieves the relevant subset, and formats them for prompt injection. SQLite-backed, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		godotenv.Load()
		cfg = config.Load()
		var logger *slog.Logger
		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $JOURNAL_MEMORY_DB or ~/.journal-memory/journal.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newService(s *store.SQLiteStore) *service.Service {
	return service.New(s, extract.NewFromEnv(), slog.Default())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// parseTypes turns a comma-separated list into memory types, rejecting
// unknown names.
func parseTypes(s string) ([]model.MemoryType, error) {
	if s == "" {
		return nil, nil
	}
	var types []model.MemoryType
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t := model.MemoryType(strings.ToLower(part))
		if !model.ValidTypes[t] {
			return nil, fmt.Errorf("invalid type %q (valid: fact, preference, event, mood, goal, trait, relationship)", part)
		}
		types = append(types, t)
	}
	return types, nil
}
