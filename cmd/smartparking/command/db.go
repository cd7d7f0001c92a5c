// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used. Both of them drop the existing
tables, so all parking places and the booking state are lost.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
that is, the mock parking lot and its six parking places (the last one
being employed), for the database schema version which is specified in
the configuration file. The database connection information and the
mutable settings are also read from the config file.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
that is, empty parking lots and places tables, for the database schema
version which is specified in the configuration file. The database
connection information and the mutable settings are also read from the
config file. No changes will be made to the config file itself.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	return initDB(func(ctx context.Context, muc *migrationuc.InitDBUseCase) error {
		return muc.InitDev(ctx)
	})
}

func initProd(_ *cobra.Command, _ []string) error {
	return initDB(func(ctx context.Context, muc *migrationuc.InitDBUseCase) error {
		return muc.InitProd(ctx)
	})
}

func initDB(f func(context.Context, *migrationuc.InitDBUseCase) error) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = f(ctx, migrationuc.NewInitDB(c)); err != nil {
		return fmt.Errorf("initializing DB: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
