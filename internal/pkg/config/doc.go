// Package config loads and validates the settings of the docsign binaries.
//
// Settings come from a YAML file read with viper, overridden by DOCSIGN_
// environment variables, and are checked with validator struct tags.
package config
