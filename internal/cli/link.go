package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "link [from-id] [to-id]",
		Short: "Record a weak relation between two memories",
		Args:  cobra.ExactArgs(2),
		Run:   runLink,
	}

	cmd.Flags().Bool("remove", false, "Remove the relation instead")

	RootCmd.AddCommand(cmd)
}

func runLink(cmd *cobra.Command, args []string) {
	remove, _ := cmd.Flags().GetBool("remove")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if remove {
		err = s.Unlink(cmd.Context(), args[0], args[1])
	} else {
		err = s.Link(cmd.Context(), args[0], args[1])
	}
	if err != nil {
		exitErr("link", err)
	}

	fmt.Printf(`{"ok":true,"from":%q,"to":%q,"removed":%v}`+"\n", args[0], args[1], remove)
}
