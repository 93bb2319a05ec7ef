package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
	"github.com/VasiliyTurchenko/gerber2gcode/conversion"
)

var printConfig bool

var convertCmd = &cobra.Command{
	Use:   "convert <gerber-file> [drill-file]",
	Short: "Convert a Gerber file and an optional drill file to G-code",
	Long: `Convert a copper layer Gerber file to pen plotter G-code.
Holes of the drill file are matched with the pads, holes without a pad
become vias. Without --out the result goes to <gerber-file>.gcode.

Examples:
  gerber2gcode convert board-F_Cu.gbr
  gerber2gcode convert board-F_Cu.gbr board.drl --out board.gcode
  gerber2gcode convert -v 2 --logtostderr board-F_Cu.gbr board.drl`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.Float64("pen-width", configurator.DefaultPenWidth, "pen width, mm")
	flags.Float64("pen-up", configurator.DefaultPenUpHeight, "pen up Z height, mm")
	flags.Float64("pen-down", configurator.DefaultPenDownHeight, "pen down Z height, mm")
	flags.Int("rapid-feed", configurator.DefaultRapidFeed, "rapid move feed rate, mm/min")
	flags.Int("draw-feed", configurator.DefaultDrawFeed, "drawing feed rate, mm/min")
	flags.StringP("out", "o", "", "output G-code file")
	flags.BoolVar(&printConfig, "print-config", false, "print all the settings before converting")

	if err := bindFlags(flags); err != nil {
		panic(err)
	}
}

// bindFlags makes every plotter flag override the same key of the config file
func bindFlags(flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		configurator.CfgPlotterPenWidth:      "pen-width",
		configurator.CfgPlotterPenUpHeight:   "pen-up",
		configurator.CfgPlotterPenDownHeight: "pen-down",
		configurator.CfgPlotterRapidFeed:     "rapid-feed",
		configurator.CfgPlotterDrawFeed:      "draw-feed",
		configurator.CfgOutputOutFile:        "out",
	} {
		if err := viperConfig.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// outFileName is <gerber file without extension>.gcode unless configured
func outFileName(gerberFile string) string {
	if name := viperConfig.GetString(configurator.CfgOutputOutFile); name != "" {
		return name
	}
	return strings.TrimSuffix(gerberFile, filepath.Ext(gerberFile)) + ".gcode"
}

func runConvert(cmd *cobra.Command, args []string) error {
	timeStamp := time.Now()
	out := cmd.OutOrStdout()

	if err := configurator.ProcessConfigFile(viperConfig); err != nil {
		glog.Warningln(err)
		fmt.Fprintln(out, "An error has occured:", err)
		fmt.Fprintln(out, "Using built-in defaults.")
	}
	if printConfig {
		configurator.DiagnosticAllCfgPrint(viperConfig, out)
	}

	gerberFile := args[0]
	gerberText, err := os.ReadFile(gerberFile)
	if err != nil {
		return fmt.Errorf("failed to read gerber file: %w", err)
	}
	var drillText []byte
	if len(args) > 1 {
		drillText, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read drill file: %w", err)
		}
	}

	settings := configurator.SettingsFromViper(viperConfig)
	res, err := conversion.NewConverter(settings).Convert(string(gerberText), string(drillText))
	if err != nil {
		return fmt.Errorf("%s: %w", gerberFile, err)
	}

	outFile := outFileName(gerberFile)
	if err := os.WriteFile(outFile, []byte(res.Gcode), 0644); err != nil {
		return fmt.Errorf("failed to write G-code: %w", err)
	}

	if viperConfig.GetBool(configurator.CfgCommonPrintStatistic) {
		fmt.Fprint(out, res.Stats.String())
	}
	fmt.Fprintln(out, "G-code is saved to the file", outFile)
	glog.V(1).Infoln("conversion took", time.Since(timeStamp))
	return nil
}
