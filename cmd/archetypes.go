package cmd

import (
	"os"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/internal/outwriter"
	"github.com/spf13/cobra"
)

// archetypesCmd prints the reference table of known work patterns.
var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "Print the reference table of known work patterns.",
	Long: `Show the built-in reference table of work-pattern archetypes, from
955 (9am-5pm, five days) up to 9126 (9am-12am, six days), with the
weekly hours and overtime index each one implies.

Analysis output ranks your project against this same table.`,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteArchetypeReference(os.Stdout); err != nil {
			contract.LogFatal("Cannot print archetype table", err)
		}
	},
}
