// Package io provides the program image loader and the console output
// channel for the LS-8 emulator.
package io

// Channel defines the interface for the machine's output channel.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Print writes a single register value to the channel.
	Print(value uint8) error
}
