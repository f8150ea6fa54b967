package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"mailbox/internal/crypto"
	"mailbox/internal/util/display"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the connected wallet",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationUnseal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Resume(cmd.Context()); err != nil {
				return err
			}
			sess, err := appCtx.Session.Current()
			if err != nil {
				return err
			}
			pub := crypto.PublicKeyBytes(sess.Wallet.PublicKey())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wallet:      %s (%s)\n", display.Address(sess.Wallet.Address), sess.Wallet.Address.Hex())
			fmt.Fprintf(out, "Public key:  %s\n", hex.EncodeToString(pub))
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(pub))
			fmt.Fprintf(out, "Chain id:    %s\n", sess.ChainID)
			fmt.Fprintf(out, "Mailbox:     %s\n", sess.Contract.Address().Hex())
			return nil
		},
	}
}
