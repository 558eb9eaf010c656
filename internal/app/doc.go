// Package app holds the run context shared by sz commands: resolved
// configuration, the logger, run metrics and the string stores each input
// is processed with.
package app
