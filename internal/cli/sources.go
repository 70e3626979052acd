package cli

import (
	"github.com/spf13/cobra"

	"github.com/deusflow/campusnews/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and categories",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	renderCatalog(cmd.OutOrStdout(), cat)
	return nil
}
