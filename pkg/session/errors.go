// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "errors"

// Sentinel errors for the failure kinds spec.md's error-handling design
// names, following the teacher's package-level sentinel convention.
var (
	// ErrResourceUnavailable is returned when a requested asset cannot be
	// opened (missing file, missing directory, path escapes the asset root).
	ErrResourceUnavailable = errors.New("session: requested resource unavailable")
	// ErrDiskFull names the insufficient-disk-space failure kind. The
	// Requester does not return it: when the disk-space precheck rejects an
	// announced DESCRIPTOR size, it answers with a NACK and keeps waiting.
	ErrDiskFull = errors.New("session: insufficient disk space for download")
	// ErrAborted is returned when a finalization handshake exhausts its
	// retry budget without a confirming ACK.
	ErrAborted = errors.New("session: aborted after exhausting finalization retries")
)
