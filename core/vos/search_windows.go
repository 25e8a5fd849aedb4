package vos

import "os"

func searchable(os.FileInfo) bool { return true }
