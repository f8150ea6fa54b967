// Package commands defines the mailbox CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen      Generate a new wallet key
//   - connect     Connect a wallet and remember it for this terminal session
//   - disconnect  Forget the connected wallet
//   - whoami      Show the connected wallet
//   - register    Publish the connected wallet on the mailbox contract
//   - lookup      Show an address's registration and recovered public key
//   - encrypt     Encrypt a message for a registered address
//   - decrypt     Decrypt an envelope with the connected wallet
//
// # Implementation
//
// The root command loads configuration from the environment and builds the
// dependency graph (secret store, chain connector, session manager, services)
// before any subcommand runs. The connected wallet's secret is kept sealed
// under --home, scoped to --session, so that later invocations from the same
// shell resume it.
package commands
