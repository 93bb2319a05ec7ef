package configurator

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/golang/glog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	CfgCommonPrintStatistic string = "common.PrintStatistic"

	CfgPlotterPenWidth      string = "plotter.PenWidth"
	CfgPlotterPenUpHeight   string = "plotter.PenUpHeight"
	CfgPlotterPenDownHeight string = "plotter.PenDownHeight"
	CfgPlotterRapidFeed     string = "plotter.RapidFeed"
	CfgPlotterDrawFeed      string = "plotter.DrawFeed"

	CfgOutputOutFile string = "output.OutFile"
)

const (
	DefaultPenWidth      float64 = 0.5
	DefaultPenUpHeight   float64 = 1.0
	DefaultPenDownHeight float64 = 0.0
	DefaultRapidFeed     int     = 3000
	DefaultDrawFeed      int     = 1000
)

// Settings of one conversion. Heights and widths are millimeters,
// feeds are mm/min.
type Settings struct {
	PenWidth      float64
	PenUpHeight   float64
	PenDownHeight float64
	RapidFeed     int
	DrawFeed      int
}

func DefaultSettings() Settings {
	return Settings{
		PenWidth:      DefaultPenWidth,
		PenUpHeight:   DefaultPenUpHeight,
		PenDownHeight: DefaultPenDownHeight,
		RapidFeed:     DefaultRapidFeed,
		DrawFeed:      DefaultDrawFeed,
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetConfigName("config") // no need to include file extension
	v.AddConfigPath(".")      // set the path of your config file
	v.SetConfigType("toml")

	// diagnostic messages
	v.SetDefault(CfgCommonPrintStatistic, true)

	// pen plotter
	v.SetDefault(CfgPlotterPenWidth, DefaultPenWidth)
	v.SetDefault(CfgPlotterPenUpHeight, DefaultPenUpHeight)
	v.SetDefault(CfgPlotterPenDownHeight, DefaultPenDownHeight)
	v.SetDefault(CfgPlotterRapidFeed, DefaultRapidFeed)
	v.SetDefault(CfgPlotterDrawFeed, DefaultDrawFeed)

	// empty means <gerber file name>.gcode
	v.SetDefault(CfgOutputOutFile, "")
}

// ProcessConfigFile reads the optional config file.
// A missing file is not an error, the defaults stay in force.
func ProcessConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		glog.V(2).Infoln("config file:", v.ConfigFileUsed())
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		glog.V(2).Infoln("no config file, using defaults")
		return nil
	}
	return fmt.Errorf("configuration file error: %w", err)
}

// SettingsFromViper reads the five plotter settings. A value which can not
// be converted to a number is replaced by its default.
func SettingsFromViper(v *viper.Viper) Settings {
	return Settings{
		PenWidth:      toFloat64(v, CfgPlotterPenWidth, DefaultPenWidth),
		PenUpHeight:   toFloat64(v, CfgPlotterPenUpHeight, DefaultPenUpHeight),
		PenDownHeight: toFloat64(v, CfgPlotterPenDownHeight, DefaultPenDownHeight),
		RapidFeed:     toInt(v, CfgPlotterRapidFeed, DefaultRapidFeed),
		DrawFeed:      toInt(v, CfgPlotterDrawFeed, DefaultDrawFeed),
	}
}

func toFloat64(v *viper.Viper, key string, def float64) float64 {
	retVal, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		glog.Warningf("%s: %v, using %v", key, err, def)
		return def
	}
	return retVal
}

func toInt(v *viper.Viper, key string, def int) int {
	raw := v.Get(key)
	retVal, err := cast.ToIntE(raw)
	if err != nil {
		// "1500.0" and 1500.0 are fine feeds too
		f, ferr := cast.ToFloat64E(raw)
		if ferr != nil {
			glog.Warningf("%s: %v, using %v", key, err, def)
			return def
		}
		retVal = int(f)
	}
	return retVal
}

// DiagnosticAllCfgPrint dumps every known setting, sorted by key
func DiagnosticAllCfgPrint(v *viper.Viper, w io.Writer) {
	keys := v.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(w, key, ":", v.Get(key))
	}
	fmt.Fprintln(w)
}
