package resolvectx

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PackageManifest is a minimal representation of package.json, covering
// every field C1-C3 consult (spec §4.1-§4.3).
type PackageManifest struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	Module          string            `json:"module"`
	Source          string            `json:"source"`
	Exports         json.RawMessage   `json:"exports"`
	Bin             json.RawMessage   `json:"bin"`
	Workspaces      json.RawMessage   `json:"workspaces"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// LoadManifest reads and parses package.json in dir. A missing or
// malformed manifest yields (nil, false) and is never an error (spec §7).
func LoadManifest(dir string) (*PackageManifest, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, false
	}
	var pkg PackageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, false
	}
	return &pkg, true
}

// parseWorkspacePatterns accepts either an array of globs or an object with
// a "packages" key (spec §4.1).
func parseWorkspacePatterns(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Packages
	}
	return nil
}

// BinFiles normalizes the `bin` field, which package.json allows as either
// a single string (implicit bin name = package name) or a map of
// bin-name -> path.
func BinFiles(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		out := make([]string, 0, len(obj))
		for _, v := range obj {
			out = append(out, v)
		}
		return out
	}
	return nil
}
