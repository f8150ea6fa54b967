package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mailbox/internal/domain"
)

// decrypt <envelope.json|->: open an envelope with the connected wallet.
func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "decrypt <envelope.json|->",
		Short:       "Decrypt an envelope with the connected wallet",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationUnseal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var env domain.Envelope
			if err := json.NewDecoder(r).Decode(&env); err != nil {
				return fmt.Errorf("read envelope: %w", err)
			}

			if err := appCtx.Resume(cmd.Context()); err != nil {
				return err
			}
			msg, err := appCtx.Messages.Decrypt(appCtx.Session.Wallet(), env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
