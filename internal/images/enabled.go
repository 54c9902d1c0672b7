//go:build !nowelcomeimage

package images

// Enabled reports if welcome image support is compiled in. Build with the nowelcomeimage tag
// to disable it.
const Enabled = true
