package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor-mcp/internal/config"
	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// load reads the configuration, letting --log-level win over file and
// environment.
func (g *globalOptions) load() (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "image-editor-mcp",
		Short: "MCP server and CLI for 8-bit image editing",
		Long: `image-editor-mcp runs pixel arithmetic, filters, edge detection and
binary morphology on images.

Without a subcommand it serves MCP over stdin/stdout; configure it in your
MCP client (e.g., Claude Desktop).

Environment variables:
  IMAGE_MCP_LOG_LEVEL    debug, info, warn, error or disabled
  IMAGE_MCP_WORKERS      files processed at once by apply (0 = CPUs)
  IMAGE_MCP_OUTPUT_DIR   directory results are written to
  IMAGE_MCP_THRESHOLD    default threshold level`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newServeCommand(opts),
		newApplyCommand(opts),
		newOpsCommand(),
		newVersionCommand(),
	)
	return root
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runServe(opts *globalOptions, in io.Reader, out io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	log.Debug("main", "starting", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	})

	srv := server.New(
		server.WithLogger(log),
		server.WithConfig(cfg),
		server.WithIO(in, out),
		server.WithVersion(Version),
	)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-editor-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
