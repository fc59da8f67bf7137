package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/container-registry/devicekey/internal/config"
	"github.com/container-registry/devicekey/internal/devicekey"
	"github.com/container-registry/devicekey/internal/identity"
	"github.com/container-registry/devicekey/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share once the root command has initialised.
type app struct {
	cfg      *config.Config
	resolver *devicekey.Resolver
	audit    io.Closer
}

func NewRootCommand() *cobra.Command {
	a := &app{}
	var configPath, logLevel, platformName string

	rootCmd := &cobra.Command{
		Use:           "devicekey",
		Short:         "devicekey derives a stable, pseudo-anonymous key for this device",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, configPath, logLevel, platformName)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the configuration file (json, yaml or toml)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&platformName, "platform", "", "Override the detected platform (windows, xbox, android, linux, osx, ios, other)")

	rootCmd.AddCommand(newKeyCommand(a))
	rootCmd.AddCommand(newUUIDCommand())
	rootCmd.AddCommand(newSealCommand(a))
	rootCmd.AddCommand(newUnsealCommand(a))
	return rootCmd
}

func (a *app) init(cmd *cobra.Command, configPath, logLevel, platformName string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("platform") {
		cfg.Platform = platformName
	}
	warnings = append(warnings, config.Validate(cfg)...)

	ctx, log := logger.InitLogger(cmd.Context(), cfg.LogLevel, warnings)
	cmd.SetContext(ctx)

	if cfg.AuditLogFile != "" {
		w, err := logger.NewFileAuditWriter(cfg.AuditLogFile)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		logger.InitAuditLogger(w)
		a.audit = w
	}

	a.cfg = cfg
	a.resolver = devicekey.New(
		devicekey.WithPlatform(cfg.PlatformTag()),
		devicekey.WithSources(identity.Sources{
			MachineIDPaths:     cfg.MachineIDPaths,
			GetpropPath:        cfg.GetpropPath,
			SystemProfilerPath: cfg.SystemProfilerPath,
		}),
		devicekey.WithLogger(log),
	)
	return nil
}

func (a *app) close() error {
	if a.audit == nil {
		return nil
	}
	err := a.audit.Close()
	a.audit = nil
	if err != nil {
		return fmt.Errorf("close audit log: %w", err)
	}
	return nil
}
