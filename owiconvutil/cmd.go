/*
Copyright © 2026 the OWIConv authors.
This file is part of OWIConv.

OWIConv is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

OWIConv is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with OWIConv.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package owiconvutil wires the owiconv library into a command-line
// program.
package owiconvutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coastalmodel/owiconv"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to OWIConv.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies the name of the output file to be created.
              A ".nc" extension is appended when missing.`,
			shorthand:  "o",
			defaultVal: "fort",
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "format",
			usage: `
              format specifies the format of the output file.
              "netcdf" is currently the only supported format.`,
			shorthand:  "f",
			defaultVal: "netcdf",
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "bbox",
			usage: `
              bbox requests output regridding onto an equidistant grid,
              given as six comma-separated numbers "x1,y1,x2,y2,dx,dy":
              the lower-left corner, the upper-right corner, and the grid
              spacing. The default is no regridding.`,
			shorthand:  "b",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "timeoffset",
			usage: `
              timeoffset specifies the wind-series sample at which
              pressure record 0 begins.`,
			defaultVal: owiconv.DefaultTimeOffset,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "stride",
			usage: `
              stride specifies the number of wind-series samples per
              pressure record interval.`,
			defaultVal: owiconv.DefaultWindStride,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "numtimes",
			usage: `
              numtimes specifies the number of time slices to convert.
              The default of 0 derives the count from the input files.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OWICONV")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	Root.AddCommand(versionCmd)
}

// outChan returns a channel printing to standard output.
func outChan() chan string {
	outChan := make(chan string)
	go func() {
		for {
			msg := <-outChan
			fmt.Printf(msg)
		}
	}()
	return outChan
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("owiconv: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "owiconv [flags] ufile vfile prefile",
	Short: "Convert HBL wind and OWI pressure output to OWI-NWS13 format.",
	Long: `owiconv converts HBL 10 m wind velocity (NetCDF) and OWI-NWS12 ASCII
surface pressure into a single OWI-NWS13 NetCDF archive for storm-surge
and wave model forcing. Exactly three input files must be given: the
u-velocity file first, the v-velocity file second, and the pressure file
third.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'OWICONV_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := convertConfig(Cfg, args)
		if err != nil {
			return err
		}
		return owiconv.Convert(cfg, outChan())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of OWIConv.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("OWIConv v%s\n", owiconv.Version)
	},
	DisableAutoGenTag: true,
}

// convertConfig assembles a conversion configuration from the given
// settings and positional arguments.
func convertConfig(cfg *viper.Viper, args []string) (owiconv.ConvertConfig, error) {
	c := owiconv.ConvertConfig{
		Format:     cast.ToString(cfg.Get("format")),
		Output:     checkOutputFile(cast.ToString(cfg.Get("output"))),
		TimeOffset: cast.ToInt(cfg.Get("timeoffset")),
		WindStride: cast.ToInt(cfg.Get("stride")),
		NumTimes:   cast.ToInt(cfg.Get("numtimes")),
	}
	if len(args) != 3 {
		return c, &owiconv.ConfigurationError{Reason: fmt.Sprintf(
			"expected exactly three input files (u-wind, v-wind, pressure, in that order); got %d",
			len(args))}
	}
	c.UFile, c.VFile, c.PressureFile = args[0], args[1], args[2]
	bounds, err := parseBounds(cast.ToString(cfg.Get("bbox")))
	if err != nil {
		return c, err
	}
	c.Bounds = bounds
	return c, nil
}

// checkOutputFile appends the ".nc" extension when missing.
func checkOutputFile(name string) string {
	if name != "" && !strings.HasSuffix(name, ".nc") {
		name += ".nc"
	}
	return name
}

// parseBounds decodes a bounding box given as "x1,y1,x2,y2,dx,dy".
// An empty string means no regridding.
func parseBounds(s string) (*owiconv.Bounds, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return nil, &owiconv.ConfigurationError{Reason: fmt.Sprintf(
			"bounding box %q must have 6 comma-separated values (x1,y1,x2,y2,dx,dy); got %d",
			s, len(parts))}
	}
	vals := make([]float64, 6)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, &owiconv.ConfigurationError{Reason: fmt.Sprintf(
				"bounding box value %q: %v", p, err)}
		}
		vals[i] = v
	}
	b := &owiconv.Bounds{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3], Dx: vals[4], Dy: vals[5]}
	if err := b.Check(); err != nil {
		return nil, err
	}
	return b, nil
}
