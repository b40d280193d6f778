// Package display defines the pluggable video backend contract used to
// present a PPU's frame output. The PPU core never imports this package;
// it only produces pixels through ppu.PixelSink. This package is how a
// concrete windowing toolkit (SDL2, GLFW) gets plugged into the harness
// that drives the PPU.
package display

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/SuperC03/fpgaboy/pkg/display/event"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Start opens the backend's window and pumps its event loop until the
	// window is closed or quit is closed, forwarding completed frames read
	// from fb. events carries window-level occurrences (title changes,
	// quit requests) back to the caller.
	Start(fb <-chan [144][160][3]uint8, events chan<- event.Event, quit <-chan struct{}) error
	// Stop releases any resources the driver is holding onto.
	Stop() error
}

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed. This is
// used to allow drivers to register their name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers. This
// variable is exported so that it can be used by the main
// program to determine which drivers can be used. Drivers should
// call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if
// no driver with that name is installed.
func GetDriver(name string) Driver {
	if name == "auto" {
		if len(InstalledDrivers) == 0 {
			return nil
		}
		return InstalledDrivers[0]
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver
		}
	}

	return nil
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	if InstalledDrivers == nil {
		InstalledDrivers = make([]*InstalledDriver, 0)
	}

	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags iterates through all the display driver
// options and registers them with the flag package. Options that share a
// name across multiple installed drivers (e.g. "scale") are merged into a
// single flag that fans out to every driver that declared it.
func RegisterFlags() {
	optionCounts := make(map[string]int)
	opts := make(map[string][]DriverOption)
	prefixes := make(map[DriverOption]string)

	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			optionCounts[opt.Name]++
			opts[opt.Name] = append(opts[opt.Name], opt)
			prefixes[opt] = driver.Name
		}
	}

	for o, count := range optionCounts {
		if count > 1 {
			opt := opts[o][0]
			switch opt.Type {
			case "string":
				multi := &multiValue{values: make([]any, 0), defaultValue: opt.Default}
				for _, mOpt := range opts[o] {
					multi.values = append(multi.values, mOpt.Value.(*string))
				}
				flag.Var(multi, o, opt.Description)
			case "bool":
				multi := &multiValue{values: make([]any, 0), defaultValue: opt.Default}
				for _, mOpt := range opts[o] {
					multi.values = append(multi.values, mOpt.Value.(*bool))
				}
				flag.Var(multi, o, opt.Description)
			case "float":
				multi := &multiValue{values: make([]any, 0), defaultValue: opt.Default}
				for _, mOpt := range opts[o] {
					multi.values = append(multi.values, mOpt.Value.(*float64))
				}
				flag.Var(multi, o, opt.Description)
			}
			continue
		}

		opt := opts[o][0]
		optName := fmt.Sprintf("%s-%s", prefixes[opt], opt.Name)
		switch opt.Type {
		case "string":
			flag.StringVar(opt.Value.(*string), optName, opt.Default.(string), opt.Description)
		case "bool":
			flag.BoolVar(opt.Value.(*bool), optName, opt.Default.(bool), opt.Description)
		case "float":
			flag.Float64Var(opt.Value.(*float64), optName, opt.Default.(float64), opt.Description)
		case "int":
			flag.IntVar(opt.Value.(*int), optName, opt.Default.(int), opt.Description)
		}
	}
}

type multiValue struct {
	values       []any
	defaultValue any
}

func (m *multiValue) String() string {
	switch v := m.defaultValue.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%t", v)
	case float64:
		return fmt.Sprintf("%f", v)
	default:
		return ""
	}
}

func (m *multiValue) Set(value string) error {
	for _, ptr := range m.values {
		switch p := ptr.(type) {
		case *string:
			*p = value
		case *bool:
			*p = true
		case *float64:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*p = f
		default:
			return fmt.Errorf("display: unsupported flag value type %T", ptr)
		}
	}
	return nil
}

func (m *multiValue) IsBoolFlag() bool {
	_, isBool := m.defaultValue.(bool)
	return isBool
}
