package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketjournal/journal-memory/internal/store"
)

func init() {
	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Soft-delete a memory (mark inactive)",
		Long:  "Marks a memory inactive so it no longer reaches prompts, keeping the record for audit and undo. Also used to mark an achieved goal.",
		Args:  cobra.ExactArgs(1),
		Run:   runDone,
	}
	RootCmd.AddCommand(doneCmd)

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Permanently delete a memory",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}
	RootCmd.AddCommand(rmCmd)

	restoreCmd := &cobra.Command{
		Use:   "restore [id]",
		Short: "Reactivate a soft-deleted memory",
		Args:  cobra.ExactArgs(1),
		Run:   runRestore,
	}
	RootCmd.AddCommand(restoreCmd)
}

func setActive(cmd *cobra.Command, id string, active bool) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if _, err := s.Update(cmd.Context(), id, store.UpdateParams{IsActive: &active}); err != nil {
		exitErr("update", err)
	}
	fmt.Printf(`{"ok":true,"id":%q,"is_active":%v}`+"\n", id, active)
}

func runDone(cmd *cobra.Command, args []string) {
	setActive(cmd, args[0], false)
}

func runRestore(cmd *cobra.Command, args []string) {
	setActive(cmd, args[0], true)
}

func runRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}
