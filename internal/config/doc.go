// Package config holds the options shared by the diffcheck and html2md
// commands, their defaults and the optional YAML configuration file.
package config
