package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [query]",
		Short: "Print the memory context block for a prompt",
		Long:  "Retrieve the memories eligible for prompt injection and print the formatted context block. Prints nothing when no memory qualifies.",
		Run:   runContext,
	}

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	block := newService(s).BuildMemoryContext(cmd.Context(), query)
	if block != "" {
		fmt.Print(block)
	}
}
