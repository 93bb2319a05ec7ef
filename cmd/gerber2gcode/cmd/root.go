package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
)

const (
	appName    = "Gerber to pen plotter G-code translation tool"
	appVersion = "0.2.0"
)

// configuration base
var viperConfig = newConfig()

func newConfig() *viper.Viper {
	v := viper.New()
	configurator.SetDefaults(v)
	return v
}

var rootCmd = &cobra.Command{
	Use:   "gerber2gcode",
	Short: appName,
	Long: appName + ` ` + appVersion + `

Draws PCB traces and pads of a Gerber file with a pen plotter. Pads are
plotted as squares and rectangles, drilled pads get a second square around
the hole. Settings come from ./config.toml and the command line flags.

Examples:
  gerber2gcode convert board-F_Cu.gbr board.drl
  gerber2gcode convert --pen-width 0.3 --draw-feed 800 board-F_Cu.gbr`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	// glog flags: -v, --logtostderr, --log_dir ...
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}
