// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

//go:build windows

package device

import "golang.org/x/sys/windows"

// pathReadable reports whether path exists and is a regular,
// non-directory file, via windows.GetFileAttributes rather than
// os.Stat, matching the native-layer style of gazed-vu's
// platform-specific device files.
func pathReadable(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0
}
