package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/exam-seating-planner/internal/render"
)

func newRenderCmd() *cobra.Command {
	var (
		planPath, outPath, format string
		opts                      render.Options
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a plan JSON file to PDF or text",
		Long: `Render a seating plan exported from the API.

Output goes to --out, or to stdout when --out is "-" or empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := readPlan(planPath)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				file, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer file.Close()
				bw := bufio.NewWriter(file)
				if err := render.Write(bw, p, f, opts); err != nil {
					return err
				}
				if err := bw.Flush(); err != nil {
					return fmt.Errorf("%w: %v", render.ErrRender, err)
				}
				return file.Close()
			}
			return render.Write(w, p, f, opts)
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan JSON file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "pdf or text")
	cmd.Flags().IntVar(&opts.LinesPerPage, "lines-per-page", 0, "lines per page (0 for default)")
	cmd.Flags().IntVar(&opts.MaxLineWidth, "max-line-width", 0, "runes per row line before wrapping (0 for default)")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
