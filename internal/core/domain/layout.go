package domain

import "path/filepath"

const (
	// RewindDirName is the name of the internal workspace directory.
	RewindDirName = ".rewind"

	// StoreDirName is the name of the timeline store directory.
	StoreDirName = "store"

	// ScenarioFileName is the default scenario file name.
	ScenarioFileName = "rewind.yaml"

	// ScenarioExt is the extension used to discover scenarios in a directory.
	ScenarioExt = ".yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default location of recorded timelines.
func DefaultStorePath() string {
	return filepath.Join(RewindDirName, StoreDirName)
}
