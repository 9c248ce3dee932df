// Package fsutil provides shared filesystem helpers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oliworks/devbed/internal/messages"
)

// WriteFileAtomic writes data to filename atomically by writing to a temporary
// file in the same directory and renaming it into place.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp*")
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFileFmt, filename, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf(messages.FsutilWriteTempFileFmt, filename, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf(messages.FsutilSetPermissionsFmt, filename, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(messages.FsutilCloseTempFileFmt, filename, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(messages.FsutilRenameTempFileFmt, filename, err)
	}
	return nil
}
