package model

// AliasRule is one alias-prefix → target-directory-prefix mapping,
// rooted at the project. Rules are stored already sorted by descending
// prefix length so "@site/" is tried before "@/" (spec §4.1, §9).
type AliasRule struct {
	Prefix string // e.g. "@/" or "@site/"
	Target string // project-relative directory prefix, e.g. "src/"
}

// WorkspacePackage is one monorepo package discovered by the indexer (C2).
type WorkspacePackage struct {
	Name       string
	Dir        string            // package directory, project-relative
	EntryPoint string            // resolved primary entry file, project-relative
	ExportsMap map[string]string // subpath -> repo-relative path of the known file the target resolved to
	BinFiles   []string

	// DependsOnInternal is true when this package's own manifest declares a
	// dependency on another workspace package by name, or when another
	// workspace package depends on this one (used by the
	// abandoned-workspace rule in entrypoint detection, spec §4.3).
	DependsOnInternal bool
}

// ResolutionContext is the read-only output of C1+C2, built once per scan
// and consulted by the resolver (C5) throughout the BFS.
type ResolutionContext struct {
	// GlobalAliases is ordered by descending prefix length.
	GlobalAliases []AliasRule

	// PackageAliases overrides GlobalAliases for files under a given
	// package directory. Keyed by package directory; each value is
	// already sorted by descending prefix length.
	PackageAliases map[string][]AliasRule

	// PackageBaseURLs maps package directory (empty string = project root)
	// to the baseUrl prefix used for bare-specifier resolution.
	PackageBaseURLs map[string]string

	// WorkspacePackages maps package name -> package metadata.
	WorkspacePackages map[string]*WorkspacePackage

	// GoModulePath is the module path declared in the root go.mod, empty
	// if none was found.
	GoModulePath string

	// JavaSourceRoots is an ordered list of directories under which FQNs
	// resolve (e.g. "src/main/java", "src/main/kotlin").
	JavaSourceRoots []string
}

// NewResolutionContext returns a ResolutionContext with all maps
// initialized, ready for incremental population by internal/resolvectx.
func NewResolutionContext() *ResolutionContext {
	return &ResolutionContext{
		PackageAliases:    make(map[string][]AliasRule),
		PackageBaseURLs:   make(map[string]string),
		WorkspacePackages: make(map[string]*WorkspacePackage),
	}
}

// ReverseIndex is the output of C4: lookup tables over the parsed file set,
// read-only during reachability.
type ReverseIndex struct {
	// ByPath maps an exact project-relative path to its file record.
	ByPath map[string]*FileRecord

	// ByStem maps a path without its extension to every file record that
	// stem could plausibly refer to (supports extensionless imports and
	// platform-suffix fallback, e.g. "src/widget.ios" -> widget.ios.tsx,
	// which a lookup of "src/widget" reaches by trying the ".ios" suffix).
	ByStem map[string][]*FileRecord

	// JavaFQNMap maps a fully-qualified class name ("com.x.Foo") to the
	// file path that declares it.
	JavaFQNMap map[string]string

	// JavaPackageDirMap maps a package directory ("com/x") to every file
	// path declared in that package.
	JavaPackageDirMap map[string][]string
}

// NewReverseIndex returns an empty, initialized ReverseIndex.
func NewReverseIndex() *ReverseIndex {
	return &ReverseIndex{
		ByPath:            make(map[string]*FileRecord),
		ByStem:            make(map[string][]*FileRecord),
		JavaFQNMap:        make(map[string]string),
		JavaPackageDirMap: make(map[string][]string),
	}
}
