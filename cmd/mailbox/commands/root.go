package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mailbox/internal/app"
	"mailbox/internal/domain"
	"mailbox/internal/util/display"
)

// Command annotations read by the root PersistentPreRunE.
const (
	// annotationNoConfig marks commands that run without environment config.
	annotationNoConfig = "mailbox/no-config"
	// annotationUnseal marks commands that read or write the sealed secret.
	annotationUnseal = "mailbox/unseal"
)

var (
	home       string
	passphrase string
	sessionID  string
	envFile    string

	appCtx *app.Wire
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "mailbox",
		Short:         "Encrypted messages to registered Ethereum addresses",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoConfig] == "true" {
				return nil
			}

			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := app.LoadConfig(files...)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if sessionID != "" {
				cfg.Session = sessionID
			}

			if cmd.Annotations[annotationUnseal] == "true" && passphrase == "" {
				if passphrase, err = promptHidden("Session passphrase: "); err != nil {
					return err
				}
			}

			appCtx, err = app.NewWire(cfg, passphrase, app.Overrides{})
			if err != nil {
				return err
			}
			appCtx.Session.OnConnect(func(w *domain.Wallet, isReconnect bool) {
				appCtx.Logger.WithFields(logrus.Fields{
					"address":   display.Address(w.Address),
					"reconnect": isReconnect,
				}).Debug("Session ready")
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default $MAILBOX_HOME or ~/.mailbox)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the session secret (prompted when empty)")
	root.PersistentFlags().StringVar(&sessionID, "session", "", "session scope (default $MAILBOX_SESSION or the parent shell's pid)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")

	root.AddCommand(
		keygenCmd(),
		connectCmd(),
		disconnectCmd(),
		whoamiCmd(),
		registerCmd(),
		lookupCmd(),
		encryptCmd(),
		decryptCmd(),
	)
	return root.ExecuteContext(ctx)
}
