package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration for the back-office
// service. All variables are optional; defaults favour local development.
type Config struct {
	HTTPPort       int
	SQLiteDSN      string
	LogLevel       string
	LogFormat      string
	RateLimit      int
	AllowedOrigins []string
	// TenantModules maps a tenant id to its enabled module set. A tenant
	// absent from the map has every module enabled.
	TenantModules map[string]map[string]bool
}

// Load parses configuration values from the current process environment.
//
// Defaults are applied for unset variables; invalid values are accumulated
// and reported together so an operator can fix them in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		LogLevel:       "info",
		LogFormat:      "json",
		RateLimit:      120,
		AllowedOrigins: []string{"*"},
		TenantModules:  map[string]map[string]bool{},
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("BACKOFFICE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "BACKOFFICE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	// An empty DSN selects the in-memory store.
	cfg.SQLiteDSN = strings.TrimSpace(os.Getenv("BACKOFFICE_SQLITE_DSN"))

	if level := strings.TrimSpace(os.Getenv("BACKOFFICE_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
	if format := strings.TrimSpace(os.Getenv("BACKOFFICE_LOG_FORMAT")); format != "" {
		if format != "json" && format != "console" {
			invalid = append(invalid, "BACKOFFICE_LOG_FORMAT")
		} else {
			cfg.LogFormat = format
		}
	}

	if limitValue := strings.TrimSpace(os.Getenv("BACKOFFICE_RATE_LIMIT")); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "BACKOFFICE_RATE_LIMIT")
		} else {
			cfg.RateLimit = limit
		}
	}

	if origins := strings.TrimSpace(os.Getenv("BACKOFFICE_ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins, ",")
	}

	if modules := strings.TrimSpace(os.Getenv("BACKOFFICE_TENANT_MODULES")); modules != "" {
		parsed, err := parseTenantModules(modules)
		if err != nil {
			invalid = append(invalid, "BACKOFFICE_TENANT_MODULES")
		} else {
			cfg.TenantModules = parsed
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// ModuleEnabled reports whether the named module is turned on for the tenant.
// Tenants without an explicit entry get every module.
func (c Config) ModuleEnabled(tenantID, module string) bool {
	modules, ok := c.TenantModules[tenantID]
	if !ok {
		return true
	}
	return modules[module]
}

// parseTenantModules parses entries of the form
// "resort-a=shifts|staff;resort-b=shifts".
func parseTenantModules(value string) (map[string]map[string]bool, error) {
	result := map[string]map[string]bool{}
	for _, entry := range splitAndTrim(value, ";") {
		tenant, list, ok := strings.Cut(entry, "=")
		tenant = strings.TrimSpace(tenant)
		if !ok || tenant == "" {
			return nil, fmt.Errorf("config: malformed tenant module entry %q", entry)
		}
		modules := map[string]bool{}
		for _, module := range splitAndTrim(list, "|") {
			modules[module] = true
		}
		result[tenant] = modules
	}
	return result, nil
}

func splitAndTrim(value, separator string) []string {
	parts := strings.Split(value, separator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
