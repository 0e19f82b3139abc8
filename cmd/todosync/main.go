package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todosync/internal/config"
)

type rootFlags struct {
	configPath string
	userID     int
	baseURL    string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "todosync failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "todosync",
		Short: "Keyboard-driven todo list kept in sync with a remote collection",
		Long: `todosync shows the todos of one user and writes every change straight to the
remote collection. Settings come from defaults, then the config file, then
TODOSYNC_* environment variables, then flags.

Examples:
  todosync --user-id 970
  TODOSYNC_USER_ID=970 todosync --base-url http://localhost:3000
  todosync serve --addr :3000 --db todos.db`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&flags.userID, "user-id", 0, "id of the user whose todos are shown")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", config.DefaultBaseURL, "base URL of the todo collection")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "write a debug log to the configured log file")

	cmd.AddCommand(newServeCmd(flags))
	return cmd
}

// resolveConfig layers defaults, the config file, the environment and explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Runtime, error) {
	cfg, err := config.Load(flags.configPath, config.Default())
	if err != nil {
		return config.Runtime{}, err
	}
	cfg = config.FromEnv(cfg)
	if f := cmd.Flags().Lookup("user-id"); f != nil && f.Changed {
		cfg.UserID = flags.userID
	}
	if f := cmd.Flags().Lookup("base-url"); f != nil && f.Changed {
		cfg.BaseURL = flags.baseURL
	}
	if f := cmd.Flags().Lookup("debug"); f != nil && f.Changed {
		cfg.Debug = flags.debug
	}
	if err := cfg.Validate(); err != nil {
		return config.Runtime{}, err
	}
	return cfg, nil
}
