// Package cli implements the botstat command tree.
//
// The root command runs the live dashboard. Subcommands take a single
// snapshot (once), export an HTML chart (chart), relay a session over HTTP
// and websockets (serve), write a starter config (init) and print build
// information (version). Every command resolves settings the same way:
// defaults, then the config file, then BOTSTAT_* environment variables,
// then flags.
package cli
