// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import "golang.org/x/sys/unix"

// hasDiskSpace checks free space on the current directory's filesystem
// before accepting a DESCRIPTOR, the Go equivalent of
// client/src/context.c's has_disk_space() with the reference's bug fixed:
// the original multiplies f_bsize (the preferred I/O block size) by
// f_bavail, overstating free space on filesystems where the fragment size
// differs from the block size; this uses f_frsize, the actual allocation
// unit, as the reference's own REDESIGN FLAGS note directs.
func hasDiskSpace(required uint64) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(".", &st); err != nil {
		return false
	}
	available := uint64(st.Frsize) * st.Bavail
	return available >= required
}
