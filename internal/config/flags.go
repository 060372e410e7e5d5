package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
	flagZstd    = flag.Bool("zstd", false, "Allow zstd-compressed layer data")
	flagWorkers = flag.Int("workers", 0, "Maps loaded in parallel")
	flagLenient = flag.Bool("skip-missing", false, "Keep loading when an external tileset is missing")
	flagFormat  = flag.String("format", "", "Output format: text or yaml")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagZstd {
		cfg.Decode.AllowZstd = true
	}
	if *flagWorkers > 0 {
		cfg.Decode.Workers = *flagWorkers
	}
	if *flagLenient {
		cfg.Decode.SkipMissingTilesets = true
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
