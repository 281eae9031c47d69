package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/aidetect/internal/vizcmd"
)

func newVisualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render dataset and evaluation figures",
		Long: `Rendering tools for the image dataset and prediction results.

grid draws a sample of AI and real images side by side; predictions draws the
confusion matrices and recall-over-time chart.`,
	}

	cmd.AddCommand(vizcmd.NewGridCmd())
	cmd.AddCommand(vizcmd.NewPredictionsCmd())

	return cmd
}
