package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// Output formats
const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var (
	// Global flags
	formatOutput string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "cpcheck",
	Short: "Species counterpoint checker",
	Long: `cpcheck - check first, second and third species counterpoint.

Pitches use scientific notation (C4 is middle C, sharps '#', flats 'b').
A counterpoint slot may be "rest" where the species allows an opening rest.

Examples:
  # Check a first species line against an inline cantus firmus
  cpcheck validate -s 1 --cf "C4 D4 E4 D4 C4" --cp "C5 B4 G4 B4 C5"

  # Use a cantus firmus from the built-in catalog
  cpcheck validate -s 2 --cantus fux-dorian --cp "rest A4 ..."

  # Read the exercise from a YAML file and print JSON
  cpcheck validate -f exercise.yaml -o json

  # Browse the catalog
  cpcheck cantus list --mode dorian
  cpcheck cantus show fux-dorian`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatOutput, "output", "o", formatTable, "output format: table, yaml or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// printStructured writes v as YAML or JSON. It reports false for the table
// format so the caller can render its own view.
func printStructured(w io.Writer, v any) (bool, error) {
	switch formatOutput {
	case formatTable, "":
		return false, nil
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return true, err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	default:
		return true, fmt.Errorf("unknown output format %q (want table, yaml or json)", formatOutput)
	}
}
