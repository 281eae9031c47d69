package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/aidetect/internal/evalcmd"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Generate and summarize AI-image predictions",
		Long: `Evaluation tools for vision-model AI-image detection.

predict classifies a folder of images with a vision model and saves the answers;
report prints confusion matrices, accuracy and recall per generation method for
a full prediction set.`,
	}

	cmd.AddCommand(evalcmd.NewPredictCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
