package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/database/seeders"
	"github.com/shashiranjanraj/dressshop/pkg/database"
)

// withDB loads config, connects to MongoDB, runs fn, and disconnects.
func withDB(fn func(ctx context.Context) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	return fn(ctx)
}

// dressshop seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			fmt.Println("Seeding database…")
			return seeders.RunAll(ctx, database.Client.Database(config.MongoDB()))
		})
	},
}

// dressshop admin:create — create the default admin account.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create the default admin account from ADMIN_EMAIL / ADMIN_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			if err := seeders.SeedAdmin(ctx, database.Client.Database(config.MongoDB())); err != nil {
				return err
			}
			fmt.Printf("Admin ready: %s\n", config.AdminEmail())
			return nil
		})
	},
}
