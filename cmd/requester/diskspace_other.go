// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

// hasDiskSpace has no portable statfs equivalent outside Linux; admit
// every download rather than reject on an unknown basis.
func hasDiskSpace(required uint64) bool {
	return true
}
