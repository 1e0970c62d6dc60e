// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

//go:build !windows

package device

import "golang.org/x/sys/unix"

// pathReadable reports whether path exists and is readable, via a
// direct unix.Access syscall rather than os.Stat, matching the
// native-layer style of gazed-vu's platform-specific device files.
func pathReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
