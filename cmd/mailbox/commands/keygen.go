package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailbox/internal/crypto"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "keygen",
		Short:       "Generate a new wallet key",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address:     %s\n", w.Address.Hex())
			fmt.Fprintf(out, "Private key: %s\n", crypto.PrivateKeyHex(w.PrivateKey))
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(crypto.PublicKeyBytes(w.PublicKey())))
			return nil
		},
	}
}
