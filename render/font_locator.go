// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"os"

	"github.com/galvanized/enginecore/device"
)

// SystemFontLocator discovers a system font using device's
// platform-specific path lists and existence checks.
type SystemFontLocator struct{}

func (SystemFontLocator) Locate(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		candidates = device.DefaultFontSearchPaths()
	}
	return device.FirstReadablePath(candidates)
}

func (SystemFontLocator) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
