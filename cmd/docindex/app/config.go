/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable docindex reads.
const EnvPrefix = "DOCINDEX"

// Config is the resolved docindex configuration.
type Config struct {
	LogLevel  string
	LogFormat string
	Table     string
	Region    string
	AccessKey string
	SecretKey string
}

// configKeys maps viper keys to the persistent flags that override them.
var configKeys = map[string]string{
	"log_level":  "log-level",
	"log_format": "log-format",
	"ddb_table":  "table",
	"aws_region": "region",
}

// loadDotEnv loads the given env files into the process environment.
// Missing files are ignored.
func loadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// newViper returns a viper reading DOCINDEX_* variables, with flags taking
// precedence where they are set.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("aws_region", "us-east-1")

	for key, name := range configKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
		}
	}
	return v, nil
}

// configFrom reads the resolved configuration out of v.
func configFrom(v *viper.Viper) Config {
	return Config{
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		Table:     v.GetString("ddb_table"),
		Region:    v.GetString("aws_region"),
		AccessKey: v.GetString("aws_access_key_id"),
		SecretKey: v.GetString("aws_secret_access_key"),
	}
}
