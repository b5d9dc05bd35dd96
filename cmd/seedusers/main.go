// seedusers is a standalone maintenance tool that seeds the user
// directory. Users are created only here or via the server's bootstrap
// config section; there is no public route for it.
package main

import (
	"fmt"
	"os"
	"strings"

	"budget-tracker/internal/config"
	"budget-tracker/internal/database"

	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		userSpecs  []string
	)

	root := &cobra.Command{
		Use:   "seedusers",
		Short: "Seed budget-tracker users",
		Long: "Seeds the user directory from the bootstrap section of the config file,\n" +
			"plus any --user email:role pairs given on the command line. Existing\n" +
			"emails are skipped, so re-running is safe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, userSpecs)
		},
	}

	root.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the config file")
	root.Flags().StringArrayVar(&userSpecs, "user", nil, "Extra user as email:role (may be repeated)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, userSpecs []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	users := cfg.Bootstrap.Users
	for _, spec := range userSpecs {
		email, role, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("invalid --user %q, want email:role", spec)
		}
		users = append(users, config.BootstrapUser{Email: email, Role: role})
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	created, err := database.SeedUsers(db, users)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d user(s), %d already present\n", created, len(users)-created)
	return nil
}
