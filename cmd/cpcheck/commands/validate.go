package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// errInvalid makes the process exit non-zero for an exercise with errors
var errInvalid = errors.New("exercise has errors")

var (
	validateFile     string
	validateSpecies  string
	validateCF       string
	validateCantus   string
	validateCP       string
	validateKey      string
	validateMode     string
	validatePosition string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a counterpoint against a cantus firmus",
	Long: `Check a counterpoint against a cantus firmus.

The exercise comes either from flags or from a YAML file (-f) with the
same fields as the HTTP API:

  species: 2
  cantus_slug: fux-dorian      # or cantus_firmus: [D4, F4, ...]
  counterpoint: [rest, A4, ...]
  key: D
  mode: dorian
  cp_position: upper

Flags override values read from the file. The command exits non-zero when
the exercise has errors.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFile, "file", "f", "", "exercise YAML file")
	f.StringVarP(&validateSpecies, "species", "s", "", "species: 1, 2, 3 or first, second, third")
	f.StringVar(&validateCF, "cf", "", "cantus firmus pitches, space or comma separated")
	f.StringVar(&validateCantus, "cantus", "", "slug of a built-in cantus firmus")
	f.StringVar(&validateCP, "cp", "", "counterpoint pitches, space or comma separated")
	f.StringVarP(&validateKey, "key", "k", "", "tonic, e.g. D or F#")
	f.StringVarP(&validateMode, "mode", "m", "", "mode, e.g. major or dorian")
	f.StringVarP(&validatePosition, "position", "p", "", "counterpoint voice: upper or lower")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	req, err := loadRequest()
	if err != nil {
		return err
	}

	if err := services.CheckCantusSource(req); err != nil {
		return err
	}

	var cantus *models.CantusFirmus
	if req.CantusSlug != "" {
		entries, err := catalog()
		if err != nil {
			return err
		}
		entry, ok := services.FindEntry(entries, req.CantusSlug)
		if !ok {
			return fmt.Errorf("no cantus firmus %q in the catalog (see 'cpcheck cantus list')", req.CantusSlug)
		}
		m := entry.Model()
		cantus = &m
	}

	ex, err := services.ExerciseFor(req, cantus)
	if err != nil {
		var inputErr *services.InputError
		if errors.As(err, &inputErr) && inputErr.Hint != "" {
			return fmt.Errorf("%w (%s)", err, inputErr.Hint)
		}
		return err
	}

	res, err := counterpoint.Validate(ex)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	done, err := printStructured(out, res)
	if err != nil {
		return err
	}
	if !done {
		fmt.Fprint(out, newRenderer(noColor).Result(ex, res))
	}

	if !res.Valid {
		return errInvalid
	}
	return nil
}

// loadRequest merges the YAML file, if any, with the command line flags
func loadRequest() (models.ValidateRequest, error) {
	var req models.ValidateRequest
	if validateFile != "" {
		data, err := os.ReadFile(validateFile)
		if err != nil {
			return req, fmt.Errorf("read exercise: %w", err)
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("parse %s: %w", validateFile, err)
		}
	}

	if validateSpecies != "" {
		species, err := counterpoint.ParseSpecies(validateSpecies)
		if err != nil {
			return req, err
		}
		req.Species = int(species)
	}
	if validateCF != "" {
		req.CantusFirmus = splitNotes(validateCF)
	}
	if validateCantus != "" {
		req.CantusSlug = validateCantus
	}
	if validateCP != "" {
		req.Counterpoint = splitNotes(validateCP)
	}
	if validateKey != "" {
		req.Key = validateKey
	}
	if validateMode != "" {
		req.Mode = validateMode
	}
	if validatePosition != "" {
		req.Position = validatePosition
	}

	if req.Species == 0 {
		return req, fmt.Errorf("species is required (--species or 'species:' in the file)")
	}
	if len(req.Counterpoint) == 0 {
		return req, fmt.Errorf("counterpoint is required (--cp or 'counterpoint:' in the file)")
	}
	return req, nil
}

func splitNotes(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
