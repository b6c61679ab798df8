// Package app wires application dependencies for the CLI and the API.
//
// It builds the concrete stores, image sources and services from Config,
// exposing them via the Wire struct for commands and handlers to use.
package app
