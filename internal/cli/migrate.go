package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VS237/momshop/internal/infrastructure/database"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				c.log.Info("migrations applied")
				return nil
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *database.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				c.log.Info("migrations rolled back", "steps", steps)
				return nil
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *database.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	})

	return cmd
}

func (c *cli) withMigrator(fn func(m *database.Migrator) error) error {
	m, err := database.NewMigrator(c.cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
