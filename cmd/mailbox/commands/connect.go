package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailbox/internal/util/display"
)

// connect [secret]: connect a wallet and remember it for this session scope.
func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "connect [secret]",
		Short:       "Connect a wallet by private key (default $ETH_PRIVATE_KEY, else prompted)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationUnseal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := appCtx.Config.PrivateKey
			if len(args) == 1 {
				secret = args[0]
			}
			if secret == "" {
				var err error
				if secret, err = promptHidden("Private key: "); err != nil {
					return err
				}
			}

			w, err := appCtx.Session.Connect(cmd.Context(), secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected as %s (%s)\n", display.Address(w.Address), w.Address.Hex())
			return nil
		},
	}
}
