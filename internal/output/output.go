// Package output writes assembled export units to files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteUnits writes the header and implementation units under dir
// using base as the file stem. Empty unit text means the unit was not
// requested. Returns the paths written, in write order.
func WriteUnits(dir, base, header, impl string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("output: mkdir %s: %w", dir, err)
	}

	var paths []string
	if header != "" {
		p := filepath.Join(dir, base+".h")
		if err := os.WriteFile(p, []byte(header), 0644); err != nil {
			return nil, fmt.Errorf("output: write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	if impl != "" {
		p := filepath.Join(dir, base+".c")
		if err := os.WriteFile(p, []byte(impl), 0644); err != nil {
			return paths, fmt.Errorf("output: write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteDOT writes a rendered call graph next to the export units.
func WriteDOT(dir, base, dot string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("output: mkdir %s: %w", dir, err)
	}
	p := filepath.Join(dir, base+".dot")
	if err := os.WriteFile(p, []byte(dot), 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", p, err)
	}
	return p, nil
}
