package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the connected wallet for this session scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Session.OnDisconnect(func() {
				fmt.Fprintln(cmd.OutOrStdout(), "Disconnected")
			})
			return appCtx.Session.Disconnect()
		},
	}
}
