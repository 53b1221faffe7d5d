// poseplay is a webcam runner game controlled by making a fist.
//
// Usage:
//
//	poseplay play            - Open the camera and play
//	poseplay scores          - Show the best recorded sessions
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.poseplay/config.yaml, ./configs/poseplay.yaml)
//	--debug          - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ayusman/poseplay/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "poseplay",
	Short: "PosePlay - a runner game you control with your hand",
	Long: `PosePlay watches your webcam for a hand and makes the runner jump
whenever you close it into a fist.

Controls:
  fist     - start, jump, restart
  space    - start
  r        - restart after game over
  q / Esc  - quit

Examples:
  poseplay play
  poseplay play --camera 1 --mute
  poseplay play --serve :8090
  poseplay scores --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the config selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "poseplay",
		Level:           cfg.LogLevel(),
	})
	log.SetDefault(logger)
	return logger
}
