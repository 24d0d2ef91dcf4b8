package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/VS237/momshop/internal/service"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var username, email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}

			u, err := service.NewAuthService(st, nil, c.cfg.Shop.City, c.log).BootstrapAdmin(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			return c.printJSON(u)
		},
	}
	create.Flags().StringVar(&username, "username", "", "login name")
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	cmd.AddCommand(create)

	return cmd
}
