/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads dweb settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Environment variable names.
const (
	EnvDebug           = "DWEB_DEBUG"
	EnvLocale          = "DWEB_LOCALE"
	EnvRequestIDHeader = "DWEB_REQUEST_ID_HEADER"
	EnvPerPage         = "DWEB_PER_PAGE"
	EnvMaxPerPage      = "DWEB_MAX_PER_PAGE"
	EnvLogLevel        = "DWEB_LOG_LEVEL"
	EnvLogPretty       = "DWEB_LOG_PRETTY"
	EnvDSN             = "DWEB_DSN"
	EnvAddr            = "DWEB_ADDR"
)

// Config is the resolved configuration.
type Config struct {
	// Debug exposes unclassified errors in responses.
	Debug bool
	// Locale is the fallback language for messages.
	Locale language.Tag
	// RequestIDHeader is read and echoed by the request id middleware.
	RequestIDHeader string
	// PerPage is the default page size; MaxPerPage caps per_page.
	PerPage    int
	MaxPerPage int
	LogLevel   string
	LogPretty  bool
	// DSN is the postgres connection string of the example service.
	DSN  string
	Addr string
}

// Default returns the configuration used for unset variables.
func Default() Config {
	return Config{
		Locale:          language.English,
		RequestIDHeader: "X-Request-ID",
		PerPage:         15,
		MaxPerPage:      100,
		LogLevel:        "info",
		Addr:            ":8080",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// resolves the configuration. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration from lookup. All invalid values
// are reported together.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = b
	}
	positive := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("%s: must be a positive integer, got %q", name, v))
			return
		}
		*dst = n
	}

	boolean(EnvDebug, &cfg.Debug)
	boolean(EnvLogPretty, &cfg.LogPretty)
	positive(EnvPerPage, &cfg.PerPage)
	positive(EnvMaxPerPage, &cfg.MaxPerPage)
	str(EnvRequestIDHeader, &cfg.RequestIDHeader)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvDSN, &cfg.DSN)
	str(EnvAddr, &cfg.Addr)

	if v, ok := lookup(EnvLocale); ok && v != "" {
		tag, err := language.Parse(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLocale, err))
		} else {
			cfg.Locale = tag
		}
	}

	if cfg.PerPage > cfg.MaxPerPage {
		errs = append(errs, fmt.Errorf("%s (%d) exceeds %s (%d)", EnvPerPage, cfg.PerPage, EnvMaxPerPage, cfg.MaxPerPage))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}
