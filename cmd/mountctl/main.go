// Command mountctl is an interactive control shell for TVM MotionMount
// devices.
//
// Usage:
//
//	mountctl [flags]
//
// Flags:
//
//	-address string      Device address as host:port
//	-config string       Configuration file path (YAML)
//	-capture string      Protocol capture file path (CBOR)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-max-preset int      Highest user preset index (default 9)
//
// Examples:
//
//	# Discover mounts on the local network, then connect from the shell
//	mountctl
//
//	# Connect directly and record the protocol exchange
//	mountctl -address 192.168.1.34:23 -capture session.cbor
//
//	# Use a config file
//	mountctl -config ~/.mountctl.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	mmlog "github.com/tvm-protocol/motionmount-go/pkg/log"
	"github.com/tvm-protocol/motionmount-go/pkg/mount"
)

// fileConfig is the YAML configuration file schema. Flags override any
// value set here. Timeouts are duration strings such as "15s".
type fileConfig struct {
	Address        string `yaml:"address"`
	ConnectTimeout string `yaml:"connect_timeout"`
	RequestTimeout string `yaml:"request_timeout"`
	MaxPresetIndex int    `yaml:"max_preset_index"`
	Capture        string `yaml:"capture"`
	LogLevel       string `yaml:"log_level"`
}

func (c *fileConfig) timeout(value, name string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

func main() {
	var (
		addressFlag   = flag.String("address", "", "Device address as host:port")
		configFlag    = flag.String("config", "", "Configuration file path (YAML)")
		captureFlag   = flag.String("capture", "", "Protocol capture file path (CBOR)")
		logLevelFlag  = flag.String("log-level", "", "Log level: debug, info, warn, error")
		maxPresetFlag = flag.Int("max-preset", 0, "Highest user preset index")
	)
	flag.Parse()

	cfg := fileConfig{LogLevel: "info"}
	if *configFlag != "" {
		if err := loadConfigFile(*configFlag, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}
	if *captureFlag != "" {
		cfg.Capture = *captureFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if *maxPresetFlag != 0 {
		cfg.MaxPresetIndex = *maxPresetFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	var plog mmlog.Logger = mmlog.NoopLogger{}
	if cfg.Capture != "" {
		fl, err := mmlog.NewFileLogger(cfg.Capture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open capture file: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		plog = fl
		logger.Info("capturing protocol events", "path", cfg.Capture)
	}

	connectTimeout, err := cfg.timeout(cfg.ConnectTimeout, "connect_timeout")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	requestTimeout, err := cfg.timeout(cfg.RequestTimeout, "request_timeout")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sh, err := newShell(mount.Config{
		Address:        cfg.Address,
		ConnectTimeout: connectTimeout,
		RequestTimeout: requestTimeout,
		MaxPresetIndex: cfg.MaxPresetIndex,
		Logger:         logger,
		ProtocolLogger: plog,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start shell: %v\n", err)
		os.Exit(1)
	}

	sh.run()
}

func loadConfigFile(path string, cfg *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
