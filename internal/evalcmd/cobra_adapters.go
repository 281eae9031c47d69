package evalcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/aidetect/internal/classifier"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// NewPredictCmd creates the predict command for classifying a folder of images
func NewPredictCmd() *cobra.Command {
	var delayMs int
	var provider string
	var model string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "predict <folder> <experiment-name> <basic|detailed>",
		Short: "Ask a vision model whether each image in a folder is AI-generated",
		Long: `Send every image in a folder to a vision model with the basic or detailed prompt
and record the answers.

Answers starting with "yes" are recorded as Yes, answers starting with "no" as No,
anything else as Unsure. A failed request is recorded as Unsure and the run continues.
Results are written to <output>/<experiment-name>.json.`,
		Example: `  # Classify the AI images with the basic prompt
  aidetect eval predict data/images/ai img_ai-prompt_basic basic

  # Use a local model with no delay between calls
  aidetect eval predict data/images/real img_real-prompt_detailed detailed --provider ollama --delay 0`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := predictions.ParsePromptType(args[2])
			if err != nil {
				return err
			}
			if delayMs < 0 {
				return fmt.Errorf("delay must not be negative, got %d", delayMs)
			}

			svc, err := classifier.NewService(provider, model)
			if err != nil {
				return err
			}
			if err := classifier.CheckCredentials(svc.Provider()); err != nil {
				return err
			}

			opts := predictOptions{
				Folder:     args[0],
				Experiment: args[1],
				Prompt:     prompt,
				Delay:      time.Duration(delayMs) * time.Millisecond,
				OutputDir:  outputDir,
			}
			_, err = executePredict(cmd.Context(), cmd.OutOrStdout(), svc, opts)
			return err
		},
	}

	cmd.Flags().IntVar(&delayMs, "delay", 1000, "Delay between API calls in milliseconds")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (openai, ollama, or gemini; defaults to CLASSIFIER_PROVIDER or openai)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&outputDir, "output", "data/predictions", "Output directory for prediction files")

	return cmd
}

// NewReportCmd creates the report command for summarizing a prediction set
func NewReportCmd() *cobra.Command {
	var predictionsDir string
	var format string
	var strict bool
	var archive bool
	var parquetPath string
	var outputJSON string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print confusion matrices and recall by generation method",
		Long: `Load the four prediction files (ai/real x basic/detailed) and print the
confusion matrix and accuracy for each prompt type, plus recall on AI images per
generation method.`,
		Example: `  # Text report
  aidetect eval report

  # CSV for a spreadsheet, archived as YAML under evals/
  aidetect eval report --format csv --yaml

  # Export every prediction as parquet
  aidetect eval report --parquet predictions.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := reportOptions{
				PredictionsDir: predictionsDir,
				Format:         format,
				Strict:         strict,
				ParquetPath:    parquetPath,
				JSONPath:       outputJSON,
			}
			if archive {
				opts.YAMLDir = "evals"
			}
			return executeReport(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&predictionsDir, "predictions-dir", "data/predictions", "Directory containing prediction JSON files")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject prediction values other than Yes or No")
	cmd.Flags().BoolVar(&archive, "yaml", false, "Also save the evaluation to evals/<timestamp>.yaml")
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Also export every prediction to this parquet file")
	cmd.Flags().StringVar(&outputJSON, "output-json", "", "Also save the evaluation as JSON to this file")

	return cmd
}
