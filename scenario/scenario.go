// SPDX-License-Identifier: MIT

// Package scenario loads model scenarios from YAML and reads and writes the
// tables they reference.
//
// A scenario names the table kind, where the table lives (an XLSX sheet, a
// CSV file, or inline values) and the optional K, τ and q(0) inputs and
// perturbation. Tables follow the spreadsheet layout analysts use: the first
// row holds the infrastructure labels, the rows below hold numbers. For
// input-output tables the last numeric row is the total output.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/mapping"
	"github.com/katalvlaran/diim/perturbation"
)

// ErrInvalidScenario is returned when a scenario file fails validation.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// DefaultTableSheet is the sheet read when a workbook source names no sheet.
const DefaultTableSheet = "A_matrix"

var validate = validator.New()

// Scenario is a parsed scenario file.
type Scenario struct {
	Model        ModelSpec         `yaml:"model" validate:"required"`
	Perturbation *PerturbationSpec `yaml:"perturbation,omitempty"`

	// dir resolves relative source paths.
	dir string
}

// ModelSpec describes how to build the model.
type ModelSpec struct {
	Kind      string   `yaml:"kind" validate:"required,oneof=interdependency consequence input-output"`
	Mode      string   `yaml:"mode,omitempty" validate:"omitempty,oneof=demand supply"`
	Scale     string   `yaml:"scale,omitempty" validate:"omitempty,oneof=4-point 5-point"`
	Table     Source   `yaml:"table" validate:"required"`
	TimeSteps int      `yaml:"time_steps,omitempty" validate:"gte=0"`
	Lambda    *float64 `yaml:"lambda,omitempty" validate:"omitempty,gt=0,lt=1"`
	K         *Source  `yaml:"k,omitempty"`
	Tau       *Source  `yaml:"tau,omitempty"`
	Q0        *Source  `yaml:"q0,omitempty"`
}

// Source locates a numeric table. Exactly one of File and Inline is set.
type Source struct {
	File   string      `yaml:"file,omitempty" validate:"required_without=Inline,excluded_with=Inline"`
	Sheet  string      `yaml:"sheet,omitempty"`
	Inline [][]float64 `yaml:"inline,omitempty" validate:"required_without=File"`
	Labels []string    `yaml:"labels,omitempty"`
}

// PerturbationSpec is the initial perturbation. Windows may be omitted.
type PerturbationSpec struct {
	Sectors    []string     `yaml:"sectors" validate:"required,min=1,dive,required"`
	Windows    [][2]float64 `yaml:"windows,omitempty"`
	Magnitudes []float64    `yaml:"magnitudes" validate:"required,min=1,dive,gte=0,lte=1"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)

	return sc, nil
}

// Parse decodes and validates scenario YAML. Relative paths resolve against
// the working directory.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Validate checks struct constraints and cross-field counts.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	if p := s.Perturbation; p != nil {
		if len(p.Magnitudes) != len(p.Sectors) {
			return fmt.Errorf("%w: %d magnitudes for %d sectors", ErrInvalidScenario, len(p.Magnitudes), len(p.Sectors))
		}
		if p.Windows != nil && len(p.Windows) != len(p.Sectors) {
			return fmt.Errorf("%w: %d windows for %d sectors", ErrInvalidScenario, len(p.Windows), len(p.Sectors))
		}
	}
	if len(s.Model.Table.Inline) > 0 && len(s.Model.Table.Labels) == 0 {
		return fmt.Errorf("%w: inline table needs labels", ErrInvalidScenario)
	}

	return nil
}

// Build resolves every source and builds the model.
func (s *Scenario) Build(logger *slog.Logger) (*iim.Model, error) {
	labels, raw, err := s.readSource(s.Model.Table, DefaultTableSheet)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	kind, err := iim.ParseKind(s.Model.Kind)
	if err != nil {
		return nil, err
	}
	mode, err := iim.ParseMode(s.Model.Mode)
	if err != nil {
		return nil, err
	}
	scale, err := mapping.ParseScale(s.Model.Scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", iim.ErrInvalidConfig, err)
	}
	table, err := iim.ParseTable(kind, raw, mode, scale)
	if err != nil {
		return nil, err
	}

	opts := []iim.Option{iim.WithTimeSteps(s.Model.TimeSteps)}
	if logger != nil {
		opts = append(opts, iim.WithLogger(logger))
	}
	if s.Model.Lambda != nil {
		opts = append(opts, iim.WithLambda(*s.Model.Lambda))
	}
	if s.Model.K != nil {
		_, k, err := s.readSource(*s.Model.K, "")
		if err != nil {
			return nil, fmt.Errorf("k: %w", err)
		}
		opts = append(opts, iim.WithK(k))
	}
	if s.Model.Tau != nil {
		tau, err := s.readVector(*s.Model.Tau)
		if err != nil {
			return nil, fmt.Errorf("tau: %w", err)
		}
		opts = append(opts, iim.WithRecoveryTimes(tau))
	}
	if s.Model.Q0 != nil {
		q0, err := s.readVector(*s.Model.Q0)
		if err != nil {
			return nil, fmt.Errorf("q0: %w", err)
		}
		opts = append(opts, iim.WithInitialInoperability(q0))
	}
	if p := s.Perturbation; p != nil {
		var windows []perturbation.Window
		for _, w := range p.Windows {
			windows = append(windows, perturbation.Window{Start: w[0], End: w[1]})
		}
		opts = append(opts, iim.WithPerturbation(p.Sectors, windows, p.Magnitudes))
	}

	return iim.Build(labels, table, opts...)
}

// Workbook returns the resolved path of the table workbook, or "" when the
// table is not read from an XLSX file.
func (s *Scenario) Workbook() string {
	f := s.Model.Table.File
	if f == "" || !isWorkbook(f) {
		return ""
	}

	return s.resolve(f)
}

func (s *Scenario) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}

	return filepath.Join(s.dir, path)
}

func (s *Scenario) readSource(src Source, defaultSheet string) ([]string, [][]float64, error) {
	if src.File == "" {
		return src.Labels, src.Inline, nil
	}
	sheet := src.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	return ReadTable(s.resolve(src.File), sheet)
}

// readVector returns the first numeric row of a source.
func (s *Scenario) readVector(src Source) ([]float64, error) {
	_, rows, err := s.readSource(src, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no values", ErrInvalidScenario)
	}

	return rows[0], nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalidScenario, field)
		case "required_without":
			return fmt.Errorf("%w: %s: either file or inline is required", ErrInvalidScenario, field)
		case "excluded_with":
			return fmt.Errorf("%w: %s: file and inline are mutually exclusive", ErrInvalidScenario, field)
		case "oneof":
			return fmt.Errorf("%w: %s: must be one of [%s], got %v", ErrInvalidScenario, field, e.Param(), e.Value())
		default:
			return fmt.Errorf("%w: %s: validation failed (%s=%s)", ErrInvalidScenario, field, e.Tag(), e.Param())
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
}
