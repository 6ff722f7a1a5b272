package cli

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/portfolio/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tables and stored procedures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.loggerService.Shutdown()

			return database.Migrate(cmd.Context(), &rt.logger, rt.cfg)
		},
	}
}
