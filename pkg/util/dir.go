package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// MkDirAllInheritPerm creates the directory path, inheriting the permissions
// of the closest existing ancestor directory.
func MkDirAllInheritPerm(path string) (fs.FileMode, error) {
	var stat os.FileInfo
	var err error
	cwpath := path
	for {
		parent := filepath.Dir(cwpath)
		stat, err = os.Stat(parent)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				cwpath = parent
				continue
			}
			return 0, err
		}
		break
	}

	perm := stat.Mode().Perm()
	return perm, os.MkdirAll(path, perm)
}
