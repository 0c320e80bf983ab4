// Package cli implements seatplan, the offline companion of the API.  It
// renders exported plans and checks hand-edited arrangements without a
// database or the allocation service.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// NewRootCmd builds the command tree.  Commands are built fresh on each
// call so flag values never leak between runs.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "seatplan",
		Version: version,
		Short:   "Offline tools for exam seating plans",
		Long: `seatplan works on seating plans exported from the API.

It renders a plan to PDF or text and validates an arrangement against
hall shapes before it is submitted as an override.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(newRenderCmd(), newValidateCmd())
	return root
}
