//go:build !windows
// +build !windows

package vos

import (
	"os"
	"syscall"
)

// searchable reports whether the current user may enter the directory
// described by info.
func searchable(info os.FileInfo) bool {
	uid := os.Geteuid()
	if uid == 0 {
		return true
	}

	perm := info.Mode().Perm()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		// No owner, e.g. an in-memory file system.
		return perm&0111 != 0
	}

	switch {
	case int(st.Uid) == uid:
		return perm&0100 != 0
	case inGroup(int(st.Gid)):
		return perm&0010 != 0
	default:
		return perm&0001 != 0
	}
}

func inGroup(gid int) bool {
	if gid == os.Getegid() {
		return true
	}
	groups, _ := os.Getgroups()
	for _, g := range groups {
		if g == gid {
			return true
		}
	}
	return false
}
