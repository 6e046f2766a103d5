// Package config loads the fileformat configuration file.
//
// The file is YAML, validated against an embedded JSON schema before it is
// decoded. Missing sections are filled with defaults, so an empty document
// (apart from apiVersion and kind) is a valid configuration.
package config
