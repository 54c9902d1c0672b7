//go:build nowelcomeimage

package images

// Enabled reports if welcome image support is compiled in.
const Enabled = false
