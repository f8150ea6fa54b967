package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailbox/internal/util/display"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "register",
		Short:       "Publish the connected wallet on the mailbox contract",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationUnseal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Resume(cmd.Context()); err != nil {
				return err
			}
			contract, err := appCtx.Session.Contract()
			if err != nil {
				return err
			}

			// Already discoverable: a second Register event would be ignored by lookups.
			ev, err := appCtx.Registry.GetRegisteredEvent(cmd.Context(), contract, appCtx.Session.Wallet().Address)
			if err != nil {
				return err
			}
			if ev != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already registered in block %d (tx %s)\n", ev.BlockNumber, ev.TxHash.Hex())
				return nil
			}

			hash, err := appCtx.Registry.Register(cmd.Context(), contract)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s, tx %s\n", display.Address(appCtx.Session.Wallet().Address), hash.Hex())
			return nil
		},
	}
}
