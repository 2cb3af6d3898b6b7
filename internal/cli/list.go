package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memories",
		Run:   runList,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by types (comma-separated)")
	cmd.Flags().Bool("include-inactive", false, "Include soft-deleted records")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	includeInactive, _ := cmd.Flags().GetBool("include-inactive")

	types, err := parseTypes(typeStr)
	if err != nil {
		exitErr("list", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	memories, err := newService(s).Retriever().GetAll(cmd.Context(), types, includeInactive)
	if err != nil {
		exitErr("list", err)
	}

	b, _ := json.MarshalIndent(memories, "", "  ")
	fmt.Println(string(b))
}
