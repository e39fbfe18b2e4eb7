//go:build windows
// +build windows

package adapter

// resetCommands returns the command lines to disable and then enable the
// adapter, in execution order.
func resetCommands(name string) [][]string {
	return [][]string{
		{"netsh", "interface", "set", "interface", "name=" + name, "admin=disable"},
		{"netsh", "interface", "set", "interface", "name=" + name, "admin=enable"},
	}
}
