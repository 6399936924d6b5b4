package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/RootAccess/backend/internal/api/http"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shell"
)

type options struct {
	catalogPath string
	logFile     string
	logLevel    string
	plain       bool
	noTerminal  bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "rootaccess",
		Short: "RootAccess desktop in the terminal",
		Long: `Runs one RootAccess desktop session locally: the app launcher, draggable
windows, taskbar and the command terminal, all drawn in the terminal.`,
		Version:       apihttp.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.catalogPath, "catalog", os.Getenv("COMMAND_CATALOG"), "command catalog file (yaml, toml or json)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file; logging is off when empty")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level")
	flags.BoolVar(&opts.plain, "plain", false, "render without colors")
	flags.BoolVar(&opts.noTerminal, "no-terminal", false, "start with an empty desktop")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	commands := catalog.DefaultCommands()
	if opts.catalogPath != "" {
		loaded, err := catalog.LoadCommands(opts.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		commands = loaded
	}

	logger := zap.NewNop()
	if opts.logFile != "" {
		cfg := logging.DevelopmentConfig()
		cfg.Level = opts.logLevel
		cfg.OutputPaths = []string{opts.logFile}
		l, err := logging.New(cfg)
		if err != nil {
			return err
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shellOpts := []shell.Option{shell.WithContext(ctx), shell.WithLogger(logger)}
	if opts.plain {
		shellOpts = append(shellOpts, shell.WithTheme(shell.PlainTheme()))
	}
	if !opts.noTerminal {
		shellOpts = append(shellOpts, shell.WithOpen(types.AppTerminal))
	}

	model := shell.New(catalog.DefaultApps(), commands, shellOpts...)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("Desktop started", zap.Int("commands", commands.Len()))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("Desktop closed")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rootaccess: %v\n", err)
		os.Exit(1)
	}
}
