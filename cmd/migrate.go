package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"wms.GO/config"
)

var (
	migrationsPath string
	migrateDown    bool
	migrateSteps   int
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrationsPath, "mysql://"+config.MysqlDSN())
		if err != nil {
			fmt.Printf("Migration setup failed: %v\n", err)
			return
		}
		defer m.Close()

		switch {
		case migrateDown:
			err = m.Steps(-1)
		case migrateSteps > 0:
			err = m.Steps(migrateSteps)
		default:
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Database already up to date.")
			return
		}
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}

		version, dirty, _ := m.Version()
		fmt.Printf("Migrations applied. Version: %d, dirty: %v\n", version, dirty)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Directory containing migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Apply only N pending migrations")
	rootCmd.AddCommand(migrateCmd)
}
