package commands

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/Conceptual-Machines/counterpoint-api/pkg/embedded"
	"github.com/spf13/cobra"
)

var cantusMode string

var cantusCmd = &cobra.Command{
	Use:   "cantus",
	Short: "Browse the built-in cantus firmus catalog",
}

var cantusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries, err := catalog()
		if err != nil {
			return err
		}

		var out []services.CatalogEntry
		for _, e := range entries {
			if cantusMode == "" || strings.EqualFold(e.Mode, cantusMode) {
				out = append(out, e)
			}
		}

		w := cmd.OutOrStdout()
		done, err := printStructured(w, out)
		if err != nil || done {
			return err
		}
		fmt.Fprint(w, newRenderer(noColor).Catalog(out))
		return nil
	},
}

var cantusShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := catalog()
		if err != nil {
			return err
		}
		entry, ok := services.FindEntry(entries, args[0])
		if !ok {
			return fmt.Errorf("no cantus firmus %q in the catalog", args[0])
		}

		w := cmd.OutOrStdout()
		done, err := printStructured(w, entry)
		if err != nil || done {
			return err
		}
		fmt.Fprint(w, newRenderer(noColor).Entry(entry))
		return nil
	},
}

func init() {
	cantusListCmd.Flags().StringVarP(&cantusMode, "mode", "m", "", "only list entries in this mode")

	cantusCmd.AddCommand(cantusListCmd)
	cantusCmd.AddCommand(cantusShowCmd)
	rootCmd.AddCommand(cantusCmd)
}

func catalog() ([]services.CatalogEntry, error) {
	return services.LoadCatalog(embedded.CantusFirmiYAML)
}
