package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// encrypt <address> <message>: print a JSON envelope only address can open.
func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <address> <message>",
		Short: "Encrypt a message for a registered address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			contract, release, err := appCtx.ReadContract(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			env, err := appCtx.Messages.EncryptFor(cmd.Context(), contract, to, args[1])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(env)
		},
	}
}
