//go:build linux
// +build linux

package adapter

// resetCommands returns the command lines to disable and then enable the
// adapter, in execution order.
func resetCommands(name string) [][]string {
	return [][]string{
		{"ip", "link", "set", "dev", name, "down"},
		{"ip", "link", "set", "dev", name, "up"},
	}
}
