// Package cli implements the sdsctl command line interface. Commands run
// either against a remote API server or fully in-process, so a data sheet
// can be generated on a laptop with no infrastructure running.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/config"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/render"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources/pubchem"
	"github.com/turtacn/ChemSDS/pkg/client"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	NoColor      bool
	Timeout      time.Duration
	ServerAddr   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Runner       Runner
	OutputFormat string
	Verbose      bool
	NoColor      bool
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "sdsctl",
		Short:   "ChemSDS CLI — generate Safety Data Sheets from molecular structures",
		Long:    "ChemSDS assembles GHS-style 16-section Safety Data Sheets from SMILES\ninput, combining computed molecular properties with fetched reference data\nand rule-based hazard classification.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./chemsds.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 60*time.Second, "global operation timeout")
	pf.StringVar(&opts.ServerAddr, "server", "", "API server address; when empty the pipeline runs in-process")

	cmd.AddCommand(
		NewGenerateCmd(),
		NewSectionCmd(),
		NewCatalogCmd(),
		NewExportCmd(),
		NewHistoryCmd(),
		NewMigrateCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// persistentPreRun initializes config, logger, and the runner, then stores
// CLIContext on the command.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	runner, err := initRunner(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("runner initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Runner:       runner,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
		NoColor:      opts.NoColor,
	}

	cmd.SetContext(withCLIContext(cmd.Context(), cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{
		"./chemsds.yaml",
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".chemsds", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/chemsds/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}

	// No config file found; env vars and defaults still apply.
	return config.LoadFromEnv()
}

// initLogger creates a logger configured for CLI usage (output to stderr so
// stdout stays parseable).
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}

	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// initRunner wires either the remote API client or the in-process pipeline.
func initRunner(cfg *config.Config, logger logging.Logger, opts *RootOptions) (Runner, error) {
	if opts.ServerAddr != "" {
		api, err := client.NewClient(opts.ServerAddr, client.WithTimeout(opts.Timeout))
		if err != nil {
			return nil, err
		}
		return NewRemoteRunner(api), nil
	}
	return newLocalRunner(cfg, logger), nil
}

// newLocalRunner assembles the generation pipeline in-process. History and
// event publishing need backing services and stay disabled here.
func newLocalRunner(cfg *config.Config, logger logging.Logger) Runner {
	var fetched property.FetchedSource
	if cfg.Sources.FetchEnabled {
		fetched = pubchem.NewClient(logger,
			pubchem.WithBaseURL(cfg.Sources.PubChemBaseURL),
			pubchem.WithRateLimit(cfg.Sources.PubChemRPS, cfg.Sources.PubChemBurst),
		)
	}

	svc := sdsapp.NewService(sdsapp.Config{
		Computed: sources.NewComputed(),
		Fetched:  fetched,
		Renderers: map[sdstypes.DocumentFormat]sdsapp.Renderer{
			sdstypes.FormatJSON: render.NewJSONRenderer(),
			sdstypes.FormatPDF:  render.NewPDFRenderer(),
		},
		Logger: logger,
		Options: []property.AdapterOption{
			property.WithKeyTimeout(cfg.Sources.KeyTimeout),
			property.WithMaxConcurrency(cfg.Sources.MaxConcurrency),
		},
	})

	return NewLocalRunner(svc)
}

// withCLIContext stores a CLIContext on a context.
func withCLIContext(ctx context.Context, cliCtx *CLIContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cliContextKey{}, cliCtx)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}

	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}

	return nil
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// outputFormat returns the requested output format, defaulting to text when
// the CLIContext is unavailable.
func outputFormat(cmd *cobra.Command) string {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return "text"
	}
	return strings.ToLower(cliCtx.OutputFormat)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("Error:"), err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("OK:"), msg)
}

//Personal.AI order the ending
