package utils

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the number of regular files under root and their total size in bytes.
func DirSize(root string) (files int, size uint64, err error) {
	err = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		size += uint64(info.Size())
		return nil
	})
	return files, size, err
}
