package main

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// initLogger builds a development logger unless GEOFR_ENV=production,
// matching the teacher's environment-switched zap configuration.
func initLogger() *zap.Logger {
	env := os.Getenv("GEOFR_ENV")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	return logger
}
