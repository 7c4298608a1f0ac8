package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	reportgen "github.com/KosukeOnishi/reportgen"
	"github.com/KosukeOnishi/reportgen/internal/yamlutil"
)

// ErrBadDescriptors indicates a malformed figure or diagram descriptor
// value. Malformed descriptors abort the run instead of being skipped so
// a typo cannot silently drop images from the report.
var ErrBadDescriptors = errors.New("malformed image descriptors")

// parseDescriptors parses a descriptor flag value: an inline JSON array,
// or a path to a .json or .yaml file holding the same structure.
func parseDescriptors(value string) ([]reportgen.Descriptor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	var (
		descs []reportgen.Descriptor
		err   error
	)
	if strings.HasPrefix(value, "[") {
		err = json.Unmarshal([]byte(value), &descs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDescriptors, err)
		}
	} else {
		descs, err = readDescriptorFile(value)
		if err != nil {
			return nil, err
		}
	}

	for _, d := range descs {
		if d.Path == "" {
			return nil, fmt.Errorf("%w: descriptor without a path", ErrBadDescriptors)
		}
	}
	return descs, nil
}

func readDescriptorFile(path string) ([]reportgen.Descriptor, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDescriptors, err)
	}

	var descs []reportgen.Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(content, &descs)
	case ".yaml", ".yml":
		err = yamlutil.Unmarshal(content, &descs)
	default:
		return nil, fmt.Errorf("%w: unsupported descriptor file %s", ErrBadDescriptors, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDescriptors, err)
	}
	return descs, nil
}
