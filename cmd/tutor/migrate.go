package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WilliamWisten/japaneseLessons/internal/database"
	"github.com/WilliamWisten/japaneseLessons/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			entries, err := schemas.Migrations.ReadDir("migrations")
			if err != nil {
				return fmt.Errorf("schemas.Migrations.ReadDir() > %w", err)
			}
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				names = append(names, entry.Name())
			}
			sort.Strings(names)

			for _, name := range names {
				content, err := schemas.Migrations.ReadFile("migrations/" + name)
				if err != nil {
					return fmt.Errorf("schemas.Migrations.ReadFile(%s) > %w", name, err)
				}
				for _, statement := range strings.Split(string(content), ";") {
					statement = strings.TrimSpace(statement)
					if statement == "" {
						continue
					}
					if _, err := db.ExecContext(cmd.Context(), statement); err != nil {
						return fmt.Errorf("migration %s failed > %w", name, err)
					}
				}
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	}
}
