// Package environment defines the application environment enum and context
// helpers used to select logger presets and other environment-driven wiring.
package environment
