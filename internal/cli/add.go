package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/model"
	"github.com/pocketjournal/journal-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Store an explicit memory",
		Long:  "Store a memory the user directly stated. Content can be a positional arg or piped via stdin. Explicit memories always carry confidence 1.0.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("type", "t", "fact", "Type: fact, preference, event, mood, goal, trait, relationship")
	cmd.Flags().StringP("category", "c", "", "Optional sub-classification")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	memType := model.MemoryType(strings.ToLower(typeStr))
	if !model.ValidTypes[memType] {
		exitErr("add", fmt.Errorf("invalid type %q", typeStr))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mem, err := s.InsertExplicit(cmd.Context(), store.ExplicitParams{
		Type:     memType,
		Content:  strings.TrimSpace(content),
		Category: category,
	})
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(mem)
	fmt.Println(string(b))
}
