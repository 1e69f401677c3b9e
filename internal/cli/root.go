// Package cli implements the shirt-mockup-mcp command line.
package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/shirt-mockup-mcp/internal/config"
	"github.com/ironsheep/shirt-mockup-mcp/internal/server"
	"github.com/spf13/cobra"
)

// EnvLogLevel enables debug logging when set to "debug".
const EnvLogLevel = "MOCKUP_MCP_LOG_LEVEL"

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "shirt-mockup-mcp",
	Short: "MCP server that places designs onto t-shirt templates",
	Long: `shirt-mockup-mcp finds the printable area of a shirt photographed on a
near-white background and pastes a design onto it.

Run without a subcommand to serve the MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Examples:
  shirt-mockup-mcp
  shirt-mockup-mcp generate -d cat.png -t Plain_White.png -t Model_Navy.png -o ./mockups
  shirt-mockup-mcp detect Plain_White.png`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.shirt-mockup/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (or MOCKUP_MCP_LOG_LEVEL=debug)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging()
	}
}

// SetVersion sets the version reported by the server and the version command.
func SetVersion(v string) {
	version = v
}

// SetBuildInfo records ldflags build metadata.
func SetBuildInfo(built, commit string) {
	buildTime = built
	gitCommit = commit
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging sends log output to stderr; stdout carries the MCP protocol.
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if config.GetEnvOrDefault(EnvLogLevel, "") == "debug" {
		debug = true
	}
}

// loadConfig reads the --config file, or the default location.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if debug {
		log.Printf("Shirt Mockup MCP Server v%s (built %s, commit %s)", version, buildTime, gitCommit)
	}

	ctx, stop := signalContext()
	defer stop()

	srv := server.New(cfg, server.WithVersion(version), server.WithDebug(debug))
	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
