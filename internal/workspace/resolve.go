// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve returns the absolute workspace directory for dir. An empty dir
// means the process working directory.
func Resolve(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrWorkingDirectory, err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkingDirectory, err)
	}
	return abs, nil
}

// HasMarker reports whether dir contains the layout's workspace marker.
func HasMarker(dir string, layout Layout) bool {
	return exists(filepath.Join(dir, layout.Marker))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
