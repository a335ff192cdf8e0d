package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remind/internal/client"
	"remind/internal/logging"
)

// Color definitions for CLI output
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "remind",
		Short: "Personal reminder manager",
		Long: fmt.Sprintf(`%s keeps track of what you need to do and when.

It works against a remind server when one is configured and otherwise
keeps reminders in a local database, so it is useful offline too.

%s
  remind add "Buy milk" --at "2026-09-01 18:00"
  remind list
  remind list --upcoming
  remind done 3f1c…
  remind rm 3f1c…

  remind register you@example.com      # Create a server account
  remind login you@example.com         # Sign in and store the token
  remind config show                   # Show configuration`,
			bold("remind"),
			bold("EXAMPLES:")),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newDoneCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newRegisterCommand())
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newConfigCommand())

	// Configure viper
	viper.SetConfigName("remind-cli")
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	return rootCmd
}

// loadCLIConfig reads the CLI config file if one exists. A missing file is
// fine; everything has a default.
func loadCLIConfig() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// saveCLIConfig writes the current viper state back to the config file,
// creating $HOME/remind-cli.json on first use.
func saveCLIConfig() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(home, "remind-cli.json"))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "remind.db"
	}
	return filepath.Join(home, ".remind", "reminders.db")
}

// buildService assembles the client service from configuration: remote when
// a server URL is set, local sqlite otherwise.
func buildService() (*client.Service, func(), error) {
	if err := loadCLIConfig(); err != nil {
		return nil, nil, err
	}

	serverURL := viper.GetString("server_url")
	opts := []client.Option{
		client.WithLogger(logging.NewComponentLogger("CLI")),
	}
	if webhook := viper.GetString("agent_webhook_url"); webhook != "" {
		opts = append(opts, client.WithEventPublisher(client.NewWebhookPublisher(webhook)))
	}

	if serverURL != "" {
		opts = append(opts, client.WithToken(viper.GetString("token")))
		service, err := client.NewService(serverURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		return service, func() {}, nil
	}

	dbPath := viper.GetString("db_path")
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	store, err := client.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, client.WithStore(store))
	service, err := client.NewService("", opts...)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return service, func() { _ = store.Close() }, nil
}

// parseWhen accepts RFC3339 plus a couple of human-friendly local formats.
func parseWhen(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q; use RFC3339 or \"YYYY-MM-DD HH:MM\"", raw)
}

func statusLabel(status string) string {
	switch status {
	case "overdue":
		return red(status)
	case "completed":
		return green(status)
	case "upcoming":
		return cyan(status)
	default:
		return yellow(status)
	}
}
