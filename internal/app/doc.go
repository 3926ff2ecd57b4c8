// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: loading a project,
// generating the node tree for its data and answering queries about it,
// decoupled from any specific entrypoint like a CLI.
package app
