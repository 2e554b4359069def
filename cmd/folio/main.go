// folio opens the portfolio scene in a desktop window.
//
// Controls:
//
//	Left drag   - Turn the camera
//	Right drag  - Turn the camera, even while a section is open
//	Click       - Open the section under the pointer
//	Esc         - Close the open section
//	- / =       - Volume down / up
//	M           - Toggle mute
//	F           - Toggle profiler output
//	Q           - Quit
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	assetsDir  string
	profile    bool
	mute       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Interactive 3D portfolio",
		Long: `folio - Interactive 3D portfolio

Four models in a garage scene each open a section of the portfolio.

Controls:
  Left drag   - Turn the camera
  Right drag  - Turn the camera, even while a section is open
  Click       - Open the section under the pointer
  Esc         - Close the open section
  - / =       - Volume down / up
  M           - Toggle mute
  F           - Toggle profiler output
  Q           - Quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file (watched for changes)")
	cmd.Flags().StringVar(&opts.assetsDir, "assets", ".", "Directory the configured model and sound paths are relative to")
	cmd.Flags().BoolVar(&opts.profile, "profile", false, "Log tick rate, frame rate and memory once per second")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "Start muted")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "info <model.gltf|model.glb>",
			Short: "Display model information",
			Long:  "Display the name, node, mesh and triangle counts, bounds and animation clips of a glTF model.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInfo(cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(opts.configPath)
				if err != nil {
					return err
				}
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
	)
	return cmd
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
