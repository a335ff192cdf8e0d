package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// readPassword prompts without echo when a terminal is attached and falls
// back to plain stdin otherwise, so piped input still works.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newRegisterCommand() *cobra.Command {
	var displayName string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account on the configured server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			if err := service.Register(context.Background(), args[0], password, displayName); err != nil {
				return err
			}
			fmt.Printf("%s account created for %s\n", green("OK"), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	return cmd
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			token, err := service.Login(context.Background(), args[0], password)
			if err != nil {
				return err
			}
			viper.Set("token", token)
			if err := saveCLIConfig(); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Printf("%s signed in as %s\n", green("OK"), args[0])
			return nil
		},
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadCLIConfig(); err != nil {
				return err
			}
			serverURL := viper.GetString("server_url")
			if serverURL == "" {
				serverURL = gray("(local mode)")
			}
			dbPath := viper.GetString("db_path")
			if dbPath == "" {
				dbPath = defaultDBPath()
			}
			token := gray("(not set)")
			if viper.GetString("token") != "" {
				token = green("(stored)")
			}
			webhook := viper.GetString("agent_webhook_url")
			if webhook == "" {
				webhook = gray("(not set)")
			}
			fmt.Printf("%s %s\n", bold("server_url:"), serverURL)
			fmt.Printf("%s %s\n", bold("db_path:"), dbPath)
			fmt.Printf("%s %s\n", bold("token:"), token)
			fmt.Printf("%s %s\n", bold("agent_webhook_url:"), webhook)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Keys: server_url, db_path, agent_webhook_url",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadCLIConfig(); err != nil {
				return err
			}
			switch args[0] {
			case "server_url", "db_path", "agent_webhook_url":
			default:
				return fmt.Errorf("unknown key %q", args[0])
			}
			viper.Set(args[0], args[1])
			if err := saveCLIConfig(); err != nil {
				return err
			}
			fmt.Printf("%s %s = %s\n", green("OK"), args[0], args[1])
			return nil
		},
	})

	return cmd
}
