package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
)

// errInvalid is returned after the violation has been printed, so main
// only sets the exit code.
var errInvalid = errors.New("arrangement is invalid")

func newValidateCmd() *cobra.Command {
	var hallsPath, arrPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an arrangement against hall shapes",
		Long: `Check every hall of an arrangement for out of bounds seats, duplicate
seats, capacity overruns and unknown halls.  The arrangement file may be a
bare allocation list, an override body or a whole plan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			halls, err := readHalls(hallsPath)
			if err != nil {
				return err
			}
			arr, err := readArrangement(arrPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var invalid *seating.InvalidAllocationError
			if err := seating.ValidateArrangement(arr, halls); err != nil {
				if !errors.As(err, &invalid) {
					return err
				}
				_, _ = errorColor.Fprintf(out, "✗ hall %d (%s): %v\n", invalid.HallID, invalid.HallName, invalid.Err)
				return errInvalid
			}
			_, _ = successColor.Fprintf(out, "✓ %d seats in %d halls\n", model.CountSeats(arr), len(arr))
			return nil
		},
	}
	cmd.Flags().StringVar(&hallsPath, "halls", "", "halls JSON file (GET /v1/halls output)")
	cmd.Flags().StringVarP(&arrPath, "arrangement", "a", "", "arrangement JSON file")
	_ = cmd.MarkFlagRequired("halls")
	_ = cmd.MarkFlagRequired("arrangement")
	return cmd
}
