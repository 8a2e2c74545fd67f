package cli

import (
	"log/slog"

	"github.com/siherrmann/ranker/config"
	"github.com/siherrmann/ranker/helper"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands
type app struct {
	version    string
	configPath string
	logLevel   string

	config *config.Config
	log    *slog.Logger
}

// NewRootCommand creates the ranker command with all subcommands
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "ranker",
		Short:         "Personalized rank and neighborhood queries over labeled directed graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(a),
		newRankCommand(a),
		newNeighborsCommand(a),
		newLoadCommand(a),
		newVersionCommand(a),
	)

	return root
}

// setup loads the configuration and creates the logger
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.config = cfg
	} else {
		a.config = config.Default()
	}

	if a.logLevel != "" {
		if _, err := config.ParseLevel(a.logLevel); err != nil {
			return err
		}
		a.config.LogLevel = a.logLevel
	}

	a.log = helper.NewLogger(cmd.ErrOrStderr(), a.config.Level())
	return nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(a.version)
		},
	}
}
