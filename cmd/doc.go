// Package cmd implements the command-line interface for the carton container
// library. It provides a hierarchical command structure for generating,
// inspecting and benchmarking serialized containers.
//
// The package is organized into several subpackages:
//
//   - fixture: Commands for writing container and value fixture files
//   - inspect: Commands for decoding and displaying fixture files
//   - perf: Benchmarks for the codec, the storage policies and the wrappers
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See carton -help for a list of all commands.
package cmd
