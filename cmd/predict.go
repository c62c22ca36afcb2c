package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	predictConfig string
	predictTest   string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Posterior-predictive moments at new inputs",
	Long: `predict fits the configured model and prints the posterior-predictive
mean, variance, and central 95% interval for every row of the test CSV. Test
rows use the same task-major column layout as the training data, without the
target column.`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVarP(&predictConfig, "config", "c", "", "YAML problem description")
	predictCmd.Flags().StringVarP(&predictTest, "test", "t", "", "CSV of test rows")
}

func runPredict(cmd *cobra.Command, args []string) error {
	if predictConfig == "" || predictTest == "" {
		return errors.New("--config and --test are required")
	}
	p, err := loadProblem(predictConfig)
	if err != nil {
		return err
	}
	xs, err := readMatrixCSV(predictTest)
	if err != nil {
		return err
	}
	pred, err := p.model.Predict(p.hyp, p.x, p.t, xs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	n, _ := xs.Dims()
	for j := 0; j < n; j++ {
		lo, hi := pred.Interval(j, 0.95)
		fmt.Fprintf(out, "row %d: mean %8.4f  var %7.4f  95%% [%8.4f, %8.4f]\n",
			j+1, pred.Mean.AtVec(j), pred.Variance.AtVec(j), lo, hi)
	}
	return nil
}
