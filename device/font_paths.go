// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package device

import "runtime"

// DefaultFontSearchPaths returns the platform-specific fallback list
// of system font file candidates, branched by runtime.GOOS.
func DefaultFontSearchPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Windows\Fonts\segoeui.ttf`,
			`C:\Windows\Fonts\arial.ttf`,
			`C:\Windows\Fonts\tahoma.ttf`,
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/SFNS.ttf",
			"/System/Library/Fonts/Helvetica.ttc",
			"/Library/Fonts/Arial.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	}
}

// FirstReadablePath returns the first candidate path that exists and
// is readable, in order. Platform-specific existence checks live in
// font_paths_unix.go / font_paths_windows.go.
func FirstReadablePath(candidates []string) (string, bool) {
	for _, path := range candidates {
		if pathReadable(path) {
			return path, true
		}
	}
	return "", false
}
