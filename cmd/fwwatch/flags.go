package main

import "flag"

// cliFlags holds parsed command line flags
type cliFlags struct {
	ConfigFile string
}

func parseFlags() cliFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")
	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	return cliFlags{ConfigFile: *configFile}
}
