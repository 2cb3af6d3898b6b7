package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/extract"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract inferred memories from a transcript on stdin",
		Long:  "Reads a transcript from stdin, one 'role: text' line per turn, runs the configured extractor, and stores the accepted candidates as inferred memories.",
		Run:   runExtract,
	}

	cmd.Flags().String("session", "", "Source session id recorded on inserted memories")
	cmd.Flags().String("message", "", "Source message id recorded on inserted memories")

	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	sessionID, _ := cmd.Flags().GetString("session")
	messageID, _ := cmd.Flags().GetString("message")

	turns, err := readTranscript(os.Stdin)
	if err != nil {
		exitErr("read transcript", err)
	}
	if len(turns) == 0 {
		fmt.Println("[]")
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	inserted, err := newService(s).IngestConversation(cmd.Context(), sessionID, messageID, turns)
	if err != nil {
		exitErr("extract", err)
	}

	b, _ := json.MarshalIndent(inserted, "", "  ")
	fmt.Println(string(b))
}

// readTranscript parses 'role: text' lines. Lines without a role prefix
// continue the previous turn.
func readTranscript(f *os.File) ([]extract.Turn, error) {
	var turns []extract.Turn
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		role, text, found := strings.Cut(line, ":")
		role = strings.ToLower(strings.TrimSpace(role))
		if found && (role == "user" || role == "assistant") {
			turns = append(turns, extract.Turn{Role: role, Text: strings.TrimSpace(text)})
			continue
		}
		if len(turns) > 0 {
			turns[len(turns)-1].Text += "\n" + line
		}
	}
	return turns, scanner.Err()
}
