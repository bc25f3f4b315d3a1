// Package output provides operator-facing output and exit-coded errors for
// the lunchlady CLI.
//
// # Printer
//
// Every command writes through a Printer, which switches between styled
// human output and JSON depending on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Info("Add Section cancelled")       // dim, informational
//	printer.Warn("theme %q has no css", name)   // yellow, stderr
//	printer.Success(map[string]any{"message": "Content saved"})
//	printer.Error(err)                          // red, stderr
//
// The editing engine and theme resolver only need Info and Warn, so they
// accept the narrow Reporter interface which *Printer satisfies.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: normal completion
//	output.ExitUserError   // 1: missing/malformed document, not configured, bad input
//	output.ExitSystemError // 2: read/write failure, git failure
//	output.ExitConflict    // 3: structural invariant violated (e.g. entry key collision)
//
// Errors built with NewUserError, NewSystemError and NewConflictError carry
// their code to both the JSON error payload and the process exit status.
package output
