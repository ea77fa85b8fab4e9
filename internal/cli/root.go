// Package cli implements the ctrlcore command-line front end: running
// the control loop against either the bench simulator or a real LCD
// serial link, and bench-debug commands for inspecting configuration.
// Grounded on the teacher's internal/cli/root.go persistent-flag and
// slog-handler wiring.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ebike-foss/ctrlcore/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgPort      string
	cfgBaud      int
	cfgSettings  string
	cfgMonitor   string
	cfgSimulate  bool
	cfgVerbose   bool
	cfgLogFile   string
	cfgLogFormat string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "ebikecore",
	Short:   "ctrlcore — application-layer control core for an e-bike motor controller",
	Version: version.FullVersion(),
	Long: fmt.Sprintf(`%s v%s
%s

Use subcommands for headless operation (run, dump-config, about).`,
		version.Name, version.Version, version.Description),
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show build and version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s v%s\n", version.Name, version.FullVersion())
		fmt.Println()
		fmt.Println(version.Description)
		fmt.Println()
		fmt.Printf("License: %s\n", version.License)
		fmt.Printf("Source:  %s\n", version.URL)
		fmt.Printf("Git hash: %s\n", version.GitHash)
		fmt.Printf("Built:    %s\n", version.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPort, "port", "p", "", "LCD serial port (e.g. /dev/ttyUSB0, COM3); overrides config file")
	rootCmd.PersistentFlags().IntVarP(&cfgBaud, "baud", "b", 0, "LCD serial baud rate; overrides config file")
	rootCmd.PersistentFlags().StringVarP(&cfgSettings, "settings", "s", "", "Path to the persisted rider-settings file; overrides config file")
	rootCmd.PersistentFlags().StringVarP(&cfgMonitor, "monitor-addr", "m", "", "Bind address for the bench telemetry websocket; empty disables it")
	rootCmd.PersistentFlags().BoolVar(&cfgSimulate, "simulate", false, "Drive the control loop from the bench motor simulator instead of a real LCD link")
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgLogFile, "log-file", "", "Write log output to file in addition to stderr")
	rootCmd.PersistentFlags().StringVar(&cfgLogFormat, "log-format", "text", "Log output format: text or json")
	rootCmd.AddCommand(aboutCmd)

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level := slog.LevelInfo
	if cfgVerbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if cfgLogFile != "" {
		f, err := os.OpenFile(cfgLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v\n", cfgLogFile, err)
		} else {
			w = io.MultiWriter(os.Stderr, f)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfgLogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
