// Package cli holds helpers shared by the diffcheck and html2md commands:
// error codes for command line failures, config file loading and the
// rendering of errors for the terminal.
package cli
