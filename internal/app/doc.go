// Package app wires application dependencies for the CLI.
//
// LoadConfig reads the environment (and an optional .env file). NewWire then
// builds the secret store, chain connector, session manager and high-level
// services from it, exposing them via the Wire struct for commands to use.
package app
