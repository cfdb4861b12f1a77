// Package main is the entry point for tablestorm, a terminal editor for
// resizing and classifying HTML tables.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// cli holds the state shared by every command.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func main() {
	c := &cli{}
	err := c.root().Execute()
	c.close()
	if err != nil {
		os.Exit(1)
	}
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:          "tablestorm",
		Short:        "Resize and classify HTML tables",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config)")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format: text or json (overrides the config)")
	flags.StringVar(&c.logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.AddCommand(
		c.editCmd(),
		c.classifyCmd(),
		c.exportCmd(),
		c.dialogCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}
	c.cfg = cfg

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	switch {
	case c.logFile != "":
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		c.closers = append(c.closers, f)
		lc.Output = f
	case cmd.Name() == "edit":
		// The screen owns the terminal.
		lc.Output = io.Discard
	}
	c.logger = logging.New(lc)
	return nil
}

func (c *cli) close() {
	for _, cl := range c.closers {
		_ = cl.Close()
	}
	c.closers = nil
}
