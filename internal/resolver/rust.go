package resolver

import "strings"

// resolveRust implements the Rust strategy (spec §4.5 "Rust"): "::" path
// separators become "/", and resolution tries "path.rs" then
// "path/mod.rs" relative to the crate. mod declarations are resolved
// separately by the reachability walker (spec §4.6 step 5); this handles
// `use` specifiers.
func (r *Resolver) resolveRust(fromFile, specifier string) []string {
	specifier = strings.TrimPrefix(specifier, "crate::")
	specifier = strings.TrimPrefix(specifier, "self::")

	path := strings.ReplaceAll(specifier, "::", "/")
	if strings.HasPrefix(specifier, "super::") {
		dir := dirOf(fromFile)
		path = strings.ReplaceAll(strings.TrimPrefix(specifier, "super::"), "::", "/")
		return r.probeRust(dir + "/" + path)
	}

	crateRoot := findRustCrateRoot(fromFile)
	if crateRoot != "" {
		if resolved := r.probeRust(crateRoot + "/" + path); resolved != nil {
			return resolved
		}
	}
	return r.probeRust(path)
}

// probeRust tries base.rs then base/mod.rs.
func (r *Resolver) probeRust(base string) []string {
	if rec, ok := r.idx.ByPath[base+".rs"]; ok {
		return []string{rec.RelativePath}
	}
	if rec, ok := r.idx.ByPath[base+"/mod.rs"]; ok {
		return []string{rec.RelativePath}
	}
	return nil
}

// findRustCrateRoot returns the nearest directory named src, walking up
// from fromFile's own directory (where a crate's lib.rs or main.rs
// conventionally lives); it does not check that either file exists.
func findRustCrateRoot(fromFile string) string {
	dir := dirOf(fromFile)
	for {
		if strings.HasSuffix(dir, "/src") || dir == "src" {
			return dir
		}
		parent := dirOf(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
