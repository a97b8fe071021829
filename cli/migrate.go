package main

import (
	"errors"
	"fmt"

	"PrettyHelp/config"
	"PrettyHelp/store"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the disabled commands table",
	Long:  `Connects to DATABASE_URL and creates the schema if it does not exist yet.`,
	RunE:  runMigrate,
}

var migrateDSN string

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "Database to migrate instead of DATABASE_URL")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dsn := migrateDSN
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dsn = cfg.DatabaseURL
	}
	if dsn == "" {
		return errors.New("no database, set DATABASE_URL or pass --dsn")
	}

	st, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Schema is up to date")
	return nil
}
