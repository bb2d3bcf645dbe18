// Package plugin carries the registration metadata a host plugin loader
// consumes at application startup. The sampler itself never reads it at
// runtime.
package plugin

import (
	apperrors "github.com/agbru/heapwatch/internal/errors"
)

// Descriptor identifies the plugin to the host loader.
type Descriptor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Author  string `json:"author"`
	// Frontend is the path to the plugin's front-end asset, served by the
	// host. The sampler has no dependency on it.
	Frontend string `json:"frontend"`
}

// Default returns the descriptor registered for this plugin.
func Default(version string) Descriptor {
	return Descriptor{
		Name:     "heapwatch",
		Version:  version,
		Author:   "agbru",
		Frontend: "frontend/index.html",
	}
}

// Validate checks the descriptor fields the host loader requires.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return apperrors.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if d.Version == "" {
		return apperrors.ValidationError{Field: "version", Message: "must not be empty"}
	}
	return nil
}
