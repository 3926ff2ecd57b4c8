// Package config defines the format-agnostic project model of the
// application, along with the Loader interface for reading it from a
// project file.
//
// The `config.Project` is the single source of truth for the `app` package.
// Concrete loaders, such as the HCL one, are provided in separate packages.
package config
