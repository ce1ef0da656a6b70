package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/banfr/geofr"
	"github.com/spf13/viper"
)

func viperString(key string) string { return viper.GetString(key) }

// runGeocode implements `geofr geocode --postal 91120 --commune Palaiseau --adresse "12 Rue de Paris"`.
func runGeocode(ctx context.Context, dbDir string, args []string) error {
	fs := flag.NewFlagSet("geocode", flag.ExitOnError)
	postal := fs.String("postal", "", "postal code")
	commune := fs.String("commune", "", "commune name")
	adresse := fs.String("adresse", "", "free-form street address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var codePostal *int
	if *postal != "" {
		n, err := strconv.Atoi(*postal)
		if err != nil {
			return fmt.Errorf("invalid --postal %q: %w", *postal, err)
		}
		codePostal = &n
	}

	db, err := geofr.Open(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	r := db.Position(ctx, codePostal, *commune, *adresse)
	return printJSON(r)
}

// runLocate implements `geofr locate --lon 2.21 --lat 48.0`.
func runLocate(ctx context.Context, dbDir string, args []string) error {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	lon := fs.Float64("lon", 0, "longitude")
	lat := fs.Float64("lat", 0, "latitude")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := geofr.Open(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	r := db.Reverse(ctx, *lon, *lat)
	return printJSON(r)
}

func printJSON(r geofr.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
