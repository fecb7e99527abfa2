// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - TOML catalogs, viper config, headless render and list commands
// 0.2.0 - Dropdown menus, mouse drag orbit, texture generations
// 0.1.0 - Initial release: ray-cast planet view, ringed bodies, orbit controls

// String returns the version as shown by the CLI.
func String() string {
	return "planetview v" + Version
}
