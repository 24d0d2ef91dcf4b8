// Package cli implements momshopctl, the operations tool for schema
// migrations, report runs and admin accounts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/bootstrap"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// systemActor runs back-office operations started from the command line
var systemActor = service.Actor{UserID: "momshopctl", Role: user.RoleAdmin}

type cli struct {
	v   *viper.Viper
	cfg *config.Config
	log logger.Logger
	out io.Writer

	// store is opened on first use unless injected
	store     store.Store
	publisher messaging.Publisher
}

// Execute runs momshopctl with the process arguments
func Execute() error {
	return NewRootCmd(os.Stdout, nil).Execute()
}

// NewRootCmd builds the command tree. A non-nil st replaces the store
// selected by the configuration.
func NewRootCmd(out io.Writer, st store.Store) *cobra.Command {
	c := &cli{out: out, store: st}

	root := &cobra.Command{
		Use:           "momshopctl",
		Short:         "MomShop operations tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.publisher != nil {
				c.publisher.Close()
			}
			if c.store != nil && st == nil {
				c.store.Close()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().String("config", "", "config file (env format)")
	root.PersistentFlags().String("store", "", "store driver: postgres|memory")
	root.PersistentFlags().String("log-level", "", "log level")

	root.AddCommand(c.migrateCmd(), c.reportCmd(), c.adminCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] .env file not loaded: %v\n", err)
	}

	c.v = config.NewViper()
	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		c.v.SetConfigType("env")
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := c.v.BindPFlag("STORE_DRIVER", flags.Lookup("store")); err != nil {
		return err
	}
	if err := c.v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level")); err != nil {
		return err
	}

	cfg, err := config.FromViper(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return nil
}

func (c *cli) openStore(ctx context.Context) (store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	st, err := bootstrap.OpenStore(ctx, *c.cfg, false, c.log)
	if err != nil {
		return nil, err
	}
	c.store = st
	return st, nil
}

func (c *cli) openPublisher() messaging.Publisher {
	if c.publisher == nil {
		c.publisher = bootstrap.OpenPublisher(c.cfg.AMQP, c.log)
	}
	return c.publisher
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
