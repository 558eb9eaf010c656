// Package config provides layered configuration for the sz tool.
//
// Settings are resolved from four layers, lowest priority first:
//
//  1. Built-in defaults
//  2. A config file (TOML or YAML, chosen by extension)
//  3. Environment variables prefixed with SZ_
//  4. Overrides set from command-line flags
//
// Each layer is a nested map; layers are combined with loader.DeepMerge and
// the result is read into a typed Config and validated.
//
// # Settings
//
//	log.level         debug | info | warn | error
//	input.delimiters  record delimiter bytes, escaped ("\n")
//	output.escape     escape non-printable output bytes
//	output.color      auto | always | never
//	grep.ignoreCase   fold ASCII case when matching
//	watch.debounce    delay before re-reading a followed file
//	store.maxBytes    largest buffer a line may use; 0 is unlimited
package config
