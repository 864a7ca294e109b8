// Package config holds the runtime configuration for the steering wheel:
// the physical model of the wheel, the pen source and the virtual device
// identity.  The controller treats a Config as an immutable snapshot for the
// duration of one tick.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/pensteer/pensteer/pkg/mapping"
)

// SourceKind selects where pen samples come from.
type SourceKind string

const (
	SourceNone  SourceKind = "none"
	SourceNet   SourceKind = "net"
	SourceWS    SourceKind = "ws"
	SourceEvdev SourceKind = "evdev"
)

// DeviceKind selects the virtual controller backend.
type DeviceKind string

const (
	DeviceNone   DeviceKind = "none"
	DeviceUInput DeviceKind = "uinput"
)

type Config struct {
	// How many controller updates per second.
	UpdateFrequency uint32 `yaml:"update_frequency"`
	// Lock-to-lock angular range of the wheel, in degrees.
	Range float32 `yaml:"range"`
	// Distance from the centre within which touching triggers the horn.
	HornRadius float32 `yaml:"horn_radius"`
	// Minimum pressure for the pen to count as touching.
	PressureThreshold uint32 `yaml:"pressure_threshold"`
	// Smallest radius at which angular displacement is applied in full;
	// closer to the centre the displacement is damped.
	BaseRadius float32 `yaml:"base_radius"`

	// Rotational inertia of the simulated wheel, kg m².
	Inertia float32 `yaml:"inertia"`
	// Rotational friction coefficient.
	Friction float32 `yaml:"friction"`
	// Centring spring factor.
	Spring float32 `yaml:"spring"`
	// Maximum force-feedback torque, Nm.
	MaxTorque float32 `yaml:"max_torque"`

	// UDP listen address for the net source.
	NetListenAddr string `yaml:"net_listen_addr"`
	// Bridge websocket URL for the ws source.
	BridgeURL string `yaml:"bridge_url"`

	// Absolute axis resolution presented by the virtual device.
	DeviceResolution uint32 `yaml:"device_resolution"`
	DeviceName       string `yaml:"device_name"`
	DeviceVendor     uint16 `yaml:"device_vendor"`
	DeviceProduct    uint16 `yaml:"device_product"`
	DeviceVersion    uint16 `yaml:"device_version"`

	// Name of the preferred tablet for the evdev source, if any.
	PreferredTablet string `yaml:"preferred_tablet"`

	Source SourceKind `yaml:"source"`
	Device DeviceKind `yaml:"device"`

	Map mapping.Mapping `yaml:"mapping"`
}

// Default mimics a Logitech G29 so games detect the virtual device as a
// real wheel.
func Default() Config {
	return Config{
		UpdateFrequency:   125,
		Range:             1800,
		HornRadius:        0.3,
		PressureThreshold: 10,
		BaseRadius:        0.6,
		Inertia:           1,
		Friction:          25,
		Spring:            0,
		MaxTorque:         300,
		NetListenAddr:     "127.0.0.1:16027",
		BridgeURL:         "ws://127.0.0.1:16028/pen",
		DeviceResolution:  32768,
		DeviceName:        "G29 Driving Force Racing Wheel [PS3]",
		DeviceVendor:      0x46D,
		DeviceProduct:     0xC24F,
		DeviceVersion:     0x3,
		Source:            SourceNet,
		Device:            DeviceUInput,
		Map:               mapping.Default(),
	}
}

// Path returns the location of the config file under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating user config dir")
	}
	return filepath.Join(dir, "pensteer", "config.yaml"), nil
}

// Load reads a YAML config file.  Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory if needed.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config dir")
	}
	return errors.Wrap(os.WriteFile(path, raw, 0o644), "writing config file")
}
