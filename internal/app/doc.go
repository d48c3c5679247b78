// Package app contains the compile pipeline. It loads the mixture and paths
// documents, validates them, flattens and quantizes the mixture and emits
// the result, decoupled from any specific entrypoint like a CLI.
package app
