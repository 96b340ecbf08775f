// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, defaults are applied for unset fields, and the
// result is validated using struct tags.
package config
