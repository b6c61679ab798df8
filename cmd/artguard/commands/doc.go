// Package commands defines the artguard CLI and wires dependencies for subcommands.
//
// Commands
//
//   - records import  Validate and store a JSON array of image records
//   - records list    Print stored records with their fold ids
//   - split           Assign stratified folds and write a split manifest
//   - manifest        Print the stored split manifest of a run
//   - patch           Cut images into canonical patches
//   - plan            Print the patch geometry for an image size
//
// # Implementation
//
// The root command builds the logger and the dependency graph (stores, image
// sources, services) before any subcommand runs. The home directory comes from
// --home, then $ARTGUARD_HOME, then ~/.artguard.
package commands
