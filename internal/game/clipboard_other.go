//go:build !windows

package game

import "errors"

// writeClipboardNative exists as a Windows fallback for the report copy.
// Everywhere else the portable clipboard package is the only path.
func writeClipboardNative(string) error {
	return errors.New("no native clipboard on this platform")
}
