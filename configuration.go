package lanelet

import (
	"strconv"
)

// Configuration Carries format specific options for a single load or write
// call. Handlers look their options up with a documented default and must
// never fail because of an unknown or missing option.
type Configuration map[string]interface{}

// StringOr Returns option value as string or fallback if option is missing
func (cfg Configuration) StringOr(key, fallback string) string {
	raw, ok := cfg[key]
	if !ok {
		return fallback
	}
	if v, ok := raw.(string); ok {
		return v
	}
	log.Warnf("configuration option '%s' holds %T, expected string; using default", key, raw)
	return fallback
}

// IntOr Returns option value as int or fallback if option is missing
func (cfg Configuration) IntOr(key string, fallback int) int {
	raw, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	log.Warnf("configuration option '%s' holds %T, expected int; using default", key, raw)
	return fallback
}

// Float64Or Returns option value as float64 or fallback if option is missing
func (cfg Configuration) Float64Or(key string, fallback float64) float64 {
	raw, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	log.Warnf("configuration option '%s' holds %T, expected float64; using default", key, raw)
	return fallback
}

// BoolOr Returns option value as bool or fallback if option is missing
func (cfg Configuration) BoolOr(key string, fallback bool) bool {
	raw, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	log.Warnf("configuration option '%s' holds %T, expected bool; using default", key, raw)
	return fallback
}
