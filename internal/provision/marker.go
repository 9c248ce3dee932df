package provision

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oliworks/devbed/internal/messages"
)

const markerSchemaVersion = 1

// MarkerLink records one installed symlink. Path is relative to the
// repository root; Target is the link content, relative to the link's
// parent directory, so the marker stays valid if the repository moves.
type MarkerLink struct {
	Path   string `json:"path"`
	Target string `json:"target"`
}

// MarkerPatch records one applied patch file and the hash of its contents
// at apply time.
type MarkerPatch struct {
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
}

// Marker records a completed provisioning run. Its presence alongside the
// destination tree is what makes repeated ensure runs no-ops.
type Marker struct {
	SchemaVersion      int           `json:"schema_version"`
	URL                string        `json:"url"`
	Revision           string        `json:"revision"`
	ConfiguredRevision string        `json:"configured_revision"`
	Subdir             string        `json:"subdir"`
	Dest               string        `json:"dest"`
	ProvisionedAtUTC   string        `json:"provisioned_at_utc"`
	Links              []MarkerLink  `json:"links"`
	Patches            []MarkerPatch `json:"patches,omitempty"`
}

// Validate checks the marker for structural problems. It runs on both read
// and write so a corrupted or future-version marker is caught before any
// decision is made from it.
func (m *Marker) Validate() error {
	if m.SchemaVersion != markerSchemaVersion {
		return fmt.Errorf(messages.MarkerSchemaVersionFmt, m.SchemaVersion, markerSchemaVersion)
	}
	if m.Revision == "" {
		return errors.New(messages.MarkerRevisionRequired)
	}
	if m.Dest == "" {
		return errors.New(messages.MarkerDestRequired)
	}
	if _, err := time.Parse(time.RFC3339, m.ProvisionedAtUTC); err != nil {
		return errors.New(messages.MarkerProvisionedAtInvalid)
	}
	return nil
}

// readMarker loads and validates the marker at path. A missing file is
// reported as os.ErrNotExist so callers can tell absence from corruption.
func readMarker(sys System, path string) (*Marker, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf(messages.MarkerReadFmt, path, err)
	}
	var marker Marker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf(messages.MarkerParseFmt, path, err)
	}
	if err := marker.Validate(); err != nil {
		return nil, fmt.Errorf(messages.MarkerInvalidFmt, path, err)
	}
	return &marker, nil
}

func writeMarker(sys System, path string, marker *Marker) error {
	if err := marker.Validate(); err != nil {
		return fmt.Errorf(messages.MarkerInvalidFmt, path, err)
	}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.MarkerWriteFmt, path, err)
	}
	data = append(data, '\n')
	if err := sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.MarkerWriteFmt, path, err)
	}
	if err := sys.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.MarkerWriteFmt, path, err)
	}
	return nil
}
