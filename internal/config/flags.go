package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagRoot      = flag.String("root", "", "Project root directory")
	flagConverter = flag.String("converter", "", "Path to the tes3conv binary")
	flagEdges     = flag.String("edges", "", "Landscape edge policy: overwrite, warn or strict")
	flagLogFile   = flag.String("log", "", "Also write logs to this file")
	flagSample    = flag.Int("sample", -1, "new: radius in cells of generated sample landscape (0 = none)")
)

// ParseFlags parses command-line flags that follow the command name.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after ParseFlags.
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
	if *flagRoot != "" {
		cfg.Project.Root = *flagRoot
	}
	if *flagConverter != "" {
		cfg.Converter.Path = *flagConverter
	}
	if *flagEdges != "" {
		cfg.Landscape.EdgePolicy = *flagEdges
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSample >= 0 {
		cfg.Project.SampleRadius = *flagSample
	}
}
