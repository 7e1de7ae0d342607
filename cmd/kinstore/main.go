package main

import (
	"flag"
	"kinstore/internal/di"
	"kinstore/internal/structures"
	"log"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.StringVar(&flags.EnvPath, "env", ".env", "optional .env file with KIN_* overrides")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.Parse()

	// InitApp blocks until the server has shut down.
	_, cleanup, err := di.InitApp(flags)
	if err != nil {
		log.Fatalf("kinstore stopped: %v", err)
	}
	cleanup()
}
