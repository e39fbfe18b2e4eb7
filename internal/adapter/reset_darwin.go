//go:build darwin
// +build darwin

package adapter

// resetCommands returns the command lines to disable and then enable the
// adapter, in execution order.
func resetCommands(name string) [][]string {
	return [][]string{
		{"ifconfig", name, "down"},
		{"ifconfig", name, "up"},
	}
}
