package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/EuroPOND/bayes-mtl-traj/blr"
	"github.com/EuroPOND/bayes-mtl-traj/kern"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Config describes one regression problem: the task layout, the log-scale
// hyperparameter vector, the training data file, and the extra coupling
// kernels.
type Config struct {
	Tasks       int          `yaml:"tasks"`
	DimsPerTask int          `yaml:"dims_per_task"`
	Hyp         []float64    `yaml:"hyp"`
	Data        string       `yaml:"data"`
	Kernels     []KernelSpec `yaml:"kernels"`
}

// KernelSpec selects one extra coupling kernel. File points at a CSV holding
// either the full tasks x tasks matrix (type "precomputed") or one feature
// row per task (types "linear", "rbf", "matern32"). Lengthscale applies to
// the rbf and matern32 types.
type KernelSpec struct {
	Type        string  `yaml:"type"`
	File        string  `yaml:"file"`
	Lengthscale float64 `yaml:"lengthscale"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Data == "" {
		return nil, fmt.Errorf("%s: missing data file", path)
	}
	return &cfg, nil
}

// readMatrixCSV reads a rectangular CSV of floats into a dense matrix.
func readMatrixCSV(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d, field %d: %w", path, i+1, j+1, err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records), cols, data), nil
}

// loadData splits a training CSV into the design matrix and the target,
// which is the last column.
func loadData(path string) (*mat.Dense, *mat.VecDense, error) {
	m, err := readMatrixCSV(path)
	if err != nil {
		return nil, nil, err
	}
	n, c := m.Dims()
	if c < 2 {
		return nil, nil, fmt.Errorf("%s: want at least one feature column plus the target", path)
	}
	X := mat.DenseCopyOf(m.Slice(0, n, 0, c-1))
	t := mat.VecDenseCopyOf(m.ColView(c - 1))
	return X, t, nil
}

func buildKernels(specs []KernelSpec) ([]kern.Kernel, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	kernels := make([]kern.Kernel, 0, len(specs))
	for i, ks := range specs {
		if ks.File == "" {
			return nil, fmt.Errorf("kernel %d: missing file", i+1)
		}
		m, err := readMatrixCSV(ks.File)
		if err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i+1, err)
		}
		var k kern.Kernel
		switch ks.Type {
		case "precomputed":
			k, err = kern.FromDense(m, 1e-9)
		case "linear":
			k, err = kern.NewLinear(m)
		case "rbf":
			k, err = kern.NewRBF(m, ks.Lengthscale)
		case "matern32":
			k, err = kern.NewMatern32(m, ks.Lengthscale)
		default:
			return nil, fmt.Errorf("kernel %d: unknown type %q", i+1, ks.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("kernel %d (%s): %w", i+1, ks.Type, err)
		}
		kernels = append(kernels, k)
	}
	return kernels, nil
}

// problem is a fully assembled run: the model, the hyperparameter point,
// and the training data.
type problem struct {
	model *blr.Model
	hyp   []float64
	x     *mat.Dense
	t     *mat.VecDense
}

func loadProblem(path string) (*problem, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	kernels, err := buildKernels(cfg.Kernels)
	if err != nil {
		return nil, err
	}
	model, err := blr.New(cfg.Tasks, cfg.DimsPerTask, kernels, blr.WithLogger(logger()))
	if err != nil {
		return nil, err
	}
	if len(cfg.Hyp) != model.NumHyp() {
		return nil, fmt.Errorf("%s: hyp has length %d, want 2+tasks+kernels = %d",
			path, len(cfg.Hyp), model.NumHyp())
	}
	X, t, err := loadData(cfg.Data)
	if err != nil {
		return nil, err
	}
	return &problem{model: model, hyp: cfg.Hyp, x: X, t: t}, nil
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
