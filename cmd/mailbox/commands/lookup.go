package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"mailbox/internal/crypto"
	"mailbox/internal/protocol/recovery"
)

// lookup <address>: show the first Register event of address and the public
// key recovered from it.
func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <address>",
		Short: "Show an address's registration and recovered public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			contract, release, err := appCtx.ReadContract(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			ev, err := appCtx.Registry.GetRegisteredEvent(cmd.Context(), contract, addr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ev == nil {
				fmt.Fprintf(out, "%s is not registered\n", addr.Hex())
				return nil
			}

			id, err := recovery.Recover(ev.Transaction)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Address:     %s\n", ev.Sender.Hex())
			fmt.Fprintf(out, "Block:       %d\n", ev.BlockNumber)
			fmt.Fprintf(out, "Tx:          %s (%s)\n", ev.TxHash.Hex(), ev.Transaction.Type)
			fmt.Fprintf(out, "Public key:  %s\n", hex.EncodeToString(id.PublicKey))
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(id.PublicKey))
			if id.Address != ev.Sender {
				fmt.Fprintf(out, "Warning: transaction was signed by %s\n", id.Address.Hex())
			}
			return nil
		},
	}
}
