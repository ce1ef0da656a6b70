package main

import (
	"log"

	"github.com/spf13/viper"
)

// loadConfig wires env/file resolution for the CLI's operational
// paths. GEOFR_RAW_DIR / GEOFR_DATABASE_DIR override the built-in
// defaults; a geofr.yaml in the working directory is read if present
// but never required. No command-line flags are bound here.
func loadConfig() {
	viper.SetConfigName("geofr")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("raw_dir", "./data/raw")
	viper.SetDefault("database_dir", "./data/database")
	viper.SetDefault("cache_size", 4096)

	viper.SetEnvPrefix("GEOFR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Printf("warning: cannot read geofr.yaml: %v", err)
		}
	}
}
