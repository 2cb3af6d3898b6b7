package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/model"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all memories as JSON",
		Run:   runExport,
	}
	RootCmd.AddCommand(exportCmd)

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import memories from a JSON export",
		Long:  "Import memories from a file or stdin. Records go through the regular insertion contract, so fresh ids are assigned and confidence rules still apply.",
		Run:   runImport,
	}
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	memories, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(memories, "", "  ")
	fmt.Println(string(b))
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read import", err)
	}

	var memories []model.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		exitErr("parse import", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), memories)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
