package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	xcmd "github.com/sagikazarmark/flowx/cmd"
	"github.com/sagikazarmark/flowx/internal/config"
)

// version is set at build time.
var version = "dev"

func main() {
	cli := xcmd.NewCli()

	cmd := &cobra.Command{
		Use:     "flowx <command>",
		Short:   "flowx - expand control-flow constructs into plain Go",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cli.Init(cfg)

			return nil
		},
	}

	cmd.AddCommand(
		xcmd.NewExpandCommand(cli),
		xcmd.NewCheckCommand(cli),
		xcmd.NewPrintCommand(cli),
	)

	err := cmd.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("Unable to determine home directory: %w", err)
	}

	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, fmt.Errorf("Unable to load config: %w", err)
	}

	return cfg, nil
}
