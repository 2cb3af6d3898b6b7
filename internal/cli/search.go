package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search memories by content substring",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by types (comma-separated)")
	cmd.Flags().Bool("include-inactive", false, "Include soft-deleted records")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	includeInactive, _ := cmd.Flags().GetBool("include-inactive")
	limit, _ := cmd.Flags().GetInt("limit")

	types, err := parseTypes(typeStr)
	if err != nil {
		exitErr("search", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	memories, err := s.Search(cmd.Context(), store.SearchParams{
		Query:           strings.Join(args, " "),
		Types:           types,
		IncludeInactive: includeInactive,
		Limit:           limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	b, _ := json.MarshalIndent(memories, "", "  ")
	fmt.Println(string(b))
}
