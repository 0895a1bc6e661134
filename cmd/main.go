package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Recipe-Box/cmd/config"
	migration "Recipe-Box/cmd/database/migrate"
	"Recipe-Box/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "recipe-box",
	Short:         "Recipe Box API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfigFile(configPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := config.ConnectDB(ctx)
		if err != nil {
			return err
		}
		defer closeDB(db)

		if migrateOnStart {
			if err := migration.Migrate(ctx, db); err != nil {
				return err
			}
		}

		app, logFile, err := config.NewApp(db)
		if err != nil {
			return err
		}
		defer logFile.Close()

		go func() {
			<-ctx.Done()
			log.Info("Shutting down")
			_ = app.Shutdown()
		}()

		return app.Listen(":" + utils.GetConfig("APP_PORT"))
	},
}

var migrateOnStart bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func migrateAction(use, short string, run func(context.Context, *gorm.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)
			return run(cmd.Context(), db)
		},
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")

	migrateCmd.AddCommand(
		migrateAction("up", "Apply all pending migrations", migration.Migrate),
		migrateAction("down", "Roll back the latest migration", migration.Rollback),
		migrateAction("status", "Show migration status", migration.Status),
	)
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
