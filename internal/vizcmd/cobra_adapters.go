// Package vizcmd holds the visualize subcommands.
package vizcmd

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/grid"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/plots"
)

// defaultRoot is the working directory the command is launched from.
const defaultRoot = "."

// resolve joins a relative path onto root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// NewGridCmd creates the grid command for rendering a dataset contact sheet
func NewGridCmd() *cobra.Command {
	var root string
	var aiDir string
	var realDir string
	var output string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render a 10x10 sample of AI (red) and real (blue) images",
		Long: `Load every image from the AI and real directories, shuffle each group, and
render a 10x10 grid: AI images fill the left five columns with a red border, real
images the right five with a blue border. Cells with no image left stay blank.
Images that fail to decode are skipped with a warning.`,
		Example: `  # Default paths under the current directory
  aidetect visualize grid

  # Reproducible sample
  aidetect visualize grid --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := gridOptions{
				AIDir:   resolve(root, aiDir),
				RealDir: resolve(root, realDir),
				Output:  resolve(root, output),
				Seed:    seed,
			}
			_, err := executeGrid(cmd.OutOrStdout(), grid.NewRenderer(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", defaultRoot, "Project root that relative paths are resolved against, . being the working directory")
	cmd.Flags().StringVar(&aiDir, "ai-dir", "data/images/ai", "Directory of AI-generated images")
	cmd.Flags().StringVar(&realDir, "real-dir", "data/images/real", "Directory of real images")
	cmd.Flags().StringVar(&output, "output", "data/plots/image_grid_visualization.png", "Output PNG path")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Shuffle seed (0 for random)")

	return cmd
}

// NewPredictionsCmd creates the predictions command for plotting evaluation results
func NewPredictionsCmd() *cobra.Command {
	var root string
	var predictionsDir string
	var plotsDir string
	var strict bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Plot confusion matrices and recall over generation methods",
		Long: `Load the four prediction files (ai/real x basic/detailed), then write
confusion_matrices.png (one heatmap per prompt type, titled with accuracy) and
recall_over_time.png (recall on AI images per generation method, one line per
prompt type) to the plots directory.

With --watch the plots are re-rendered whenever a prediction file changes.`,
		Example: `  # Default paths under the current directory
  aidetect visualize predictions

  # Keep plots current while a prediction run is writing files
  aidetect visualize predictions --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := predictionsOptions{
				PredictionsDir: resolve(root, predictionsDir),
				PlotsDir:       resolve(root, plotsDir),
				Strict:         strict,
				ConfusionFig:   plots.ConfusionFigure,
				RecallFig:      plots.RecallFigure,
			}
			out := cmd.OutOrStdout()

			if _, err := renderPredictions(out, opts); err != nil {
				if !watch {
					return err
				}
				slog.Error("Initial render failed, waiting for changes", "error", err)
			}
			if !watch {
				return nil
			}

			return watchDir(cmd.Context(), opts.PredictionsDir, DebounceInterval, func() error {
				_, err := renderPredictions(out, opts)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&root, "root", defaultRoot, "Project root that relative paths are resolved against, . being the working directory")
	cmd.Flags().StringVar(&predictionsDir, "predictions-dir", "data/predictions", "Directory containing prediction JSON files")
	cmd.Flags().StringVar(&plotsDir, "plots-dir", "data/plots", "Output directory for plots")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject prediction values other than Yes or No")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render when prediction files change")

	return cmd
}
