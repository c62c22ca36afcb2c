package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	evidenceConfig string
	evidenceGrad   bool
)

var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Negative log marginal likelihood of a configured model",
	Long: `evidence loads training data and kernels per a YAML config, evaluates the
negative log marginal likelihood at the config's hyperparameter point, and
optionally prints the gradient with respect to every log-scale
hyperparameter.`,
	RunE: runEvidence,
}

func init() {
	rootCmd.AddCommand(evidenceCmd)
	evidenceCmd.Flags().StringVarP(&evidenceConfig, "config", "c", "", "YAML problem description")
	evidenceCmd.Flags().BoolVarP(&evidenceGrad, "grad", "g", false, "also print the gradient")
}

func runEvidence(cmd *cobra.Command, args []string) error {
	if evidenceConfig == "" {
		return errors.New("--config is required")
	}
	p, err := loadProblem(evidenceConfig)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !evidenceGrad {
		nlZ, err := p.model.Evidence(p.hyp, p.x, p.t)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "nlZ  = %.6f\n", nlZ)
		return nil
	}
	ev, err := p.model.EvidenceGrad(p.hyp, p.x, p.t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "nlZ  = %.6f\n", ev.NegLogML)
	fmt.Fprintf(out, "dnlZ = %s\n", formatVec(ev.Gradient))
	return nil
}
