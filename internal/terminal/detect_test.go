package terminal

import "testing"

func TestIsInteractive(t *testing.T) {
	// Test runners have no TTY attached, so this only verifies the check
	// runs without panic; the value depends on the environment.
	result := IsInteractive()
	_ = result
}
