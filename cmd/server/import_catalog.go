package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/catalog"
)

var importKinds catalog.ImportInput

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog",
	Short: "Import SRD items, spells, classes and races",
	Long: `Pull SRD reference data from the D&D 5e API into the catalog database.
With no kind flags every kind is imported.`,
	RunE: runImportCatalog,
}

func init() {
	importCatalogCmd.Flags().BoolVar(&importKinds.Items, "items", false, "Import equipment as items")
	importCatalogCmd.Flags().BoolVar(&importKinds.Spells, "spells", false, "Import spells")
	importCatalogCmd.Flags().BoolVar(&importKinds.Classes, "classes", false, "Import classes")
	importCatalogCmd.Flags().BoolVar(&importKinds.Races, "races", false, "Import races")
}

func runImportCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	input := importKinds
	out, err := a.catalogService.Import(cmd.Context(), &input)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	fmt.Printf("Imported %d items, %d spells, %d classes, %d races (%d skipped)\n",
		out.Items, out.Spells, out.Classes, out.Races, out.Skipped)
	return nil
}
