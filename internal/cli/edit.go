package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a memory's content or category",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().String("content", "", "New content")
	cmd.Flags().StringP("category", "c", "", "New category")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	var p store.UpdateParams
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		p.Content = &content
	}
	if cmd.Flags().Changed("category") {
		category, _ := cmd.Flags().GetString("category")
		p.Category = &category
	}
	if p.Content == nil && p.Category == nil {
		exitErr("edit", fmt.Errorf("nothing to change (use --content or --category)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mem, err := s.Update(cmd.Context(), args[0], p)
	if err != nil {
		exitErr("edit", err)
	}

	b, _ := json.MarshalIndent(mem, "", "  ")
	fmt.Println(string(b))
}
