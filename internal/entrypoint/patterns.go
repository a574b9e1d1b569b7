package entrypoint

import "regexp"

// antiEntryRegex matches directory or file name segments marking a file as
// intentionally retired; it overrides every other pattern match in this
// package (spec §9 "Anti-entry regex is a safety rail").
var antiEntryRegex = regexp.MustCompile(`(?i)(^|/)(dead|deprecated|legacy|old|unused)([._-]|/|$)`)

// namedPattern pairs a regex with a label so callers/tests can tell which
// convention fired.
type namedPattern struct {
	name string
	re   *regexp.Regexp
}

// fileNamePatterns is the ordered list of conventional entry-file shapes
// (spec §4.3 source 5). Order doesn't affect the result (every match
// contributes to the same union) but groups related conventions together
// for readability.
var fileNamePatterns = []namedPattern{
	// Framework routing roots.
	{"next-app-router", regexp.MustCompile(`(^|/)app/.*/(page|layout|route|loading|error|not-found)\.(tsx?|jsx?)$`)},
	{"next-pages-router", regexp.MustCompile(`(^|/)pages/.*\.(tsx?|jsx?)$`)},
	{"remix-routes", regexp.MustCompile(`(^|/)app/routes/.*\.(tsx?|jsx?)$`)},
	{"sveltekit-routes", regexp.MustCompile(`(^|/)src/routes/.*\.(svelte|ts|js)$`)},
	{"nuxt-pages", regexp.MustCompile(`(^|/)pages/.*\.vue$`)},

	// Serverless function conventions.
	{"aws-lambda-handler", regexp.MustCompile(`(^|/)(handler|index)\.(ts|js)$`)},
	{"netlify-function", regexp.MustCompile(`(^|/)netlify/functions/.*\.(ts|js)$`)},
	{"vercel-api", regexp.MustCompile(`(^|/)api/.*\.(ts|js)$`)},
	{"gcp-function", regexp.MustCompile(`(^|/)functions/.*\.(ts|js|py)$`)},

	// Test and benchmark files (multiple language suffix conventions).
	{"js-test", regexp.MustCompile(`\.(test|spec)\.(tsx?|jsx?)$`)},
	{"py-test", regexp.MustCompile(`(^|/)test_[^/]+\.py$|_test\.py$`)},
	{"go-test", regexp.MustCompile(`_test\.go$`)},
	{"rust-test", regexp.MustCompile(`(^|/)tests/[^/]+\.rs$`)},
	{"java-test", regexp.MustCompile(`(Test|Tests|IT)\.(java|kt)$`)},
	{"csharp-test", regexp.MustCompile(`(Test|Tests)\.cs$`)},
	{"bench", regexp.MustCompile(`\.bench\.(tsx?|jsx?)$|(^|/)benches/[^/]+\.rs$`)},

	// Storybook.
	{"storybook-stories", regexp.MustCompile(`\.stories\.(tsx?|jsx?|mdx)$`)},

	// Monorepo package entry paths.
	{"monorepo-pkg-entry", regexp.MustCompile(`(^|/)(packages|apps|libs)/[^/]+/src/(index|main)\.(tsx?|jsx?|ts|js)$`)},

	// Root-level conventional entries.
	{"root-main", regexp.MustCompile(`^main\.(tsx?|jsx?|go|rs|py)$`)},
	{"root-lib", regexp.MustCompile(`^lib\.rs$`)},
	{"root-mod", regexp.MustCompile(`^mod\.(rs|ts)$`)},

	// Migration / seed files.
	{"migration", regexp.MustCompile(`(^|/)migrations?/[^/]+\.(ts|js|py|go|sql)$`)},
	{"seed", regexp.MustCompile(`(^|/)seeds?/[^/]+\.(ts|js|py)$`)},

	// Plugin files.
	{"plugin", regexp.MustCompile(`\.plugin\.(tsx?|jsx?)$`)},

	// Docusaurus theme and docs.
	{"docusaurus-theme", regexp.MustCompile(`(^|/)src/theme/[^/]+\.(tsx?|jsx?)$`)},
	{"docusaurus-docs", regexp.MustCompile(`(^|/)docs/.*\.mdx?$`)},

	// Web workers.
	{"worker", regexp.MustCompile(`\.worker\.(tsx?|jsx?)$`)},
}

// providedInRegex extracts the providedIn argument of a parameterized
// injectable decorator (e.g. Angular's @Injectable({providedIn: 'root'})),
// spec §4.3 source 7's "special rule".
var providedInRegex = regexp.MustCompile(`providedIn\s*:\s*['"]([\w-]+)['"]`)

// providedInRootValues are the enumerated providedIn values that make the
// declaring file a root outright (module-scoped providedIn values instead
// name a module that must itself be reachable, which is out of scope here).
var providedInRootValues = map[string]bool{
	"root":     true,
	"platform": true,
	"any":      true,
}

// defaultDIDecorators is the built-in seed list of decorator/annotation
// names that make a file a root (spec §4.3 source 7); project config can
// extend this via diDecorators.
var defaultDIDecorators = []string{
	"Controller", "RestController", "RequestMapping", "GetMapping", "PostMapping",
	"Component", "Service", "Repository", "Injectable", "Entity",
	"Test", "TestFactory", "ParameterizedTest",
	"BuildStep", "Recorder",
}

// defaultDIContainerPatterns is the built-in seed list of regexes matching
// a DI-container lookup whose following token is a class name (spec §4.3
// source 8); project config can extend this via diContainerPatterns.
var defaultDIContainerPatterns = []string{
	`Container\.get<([A-Za-z_][\w]*)>\(`,
	`container\.resolve\(\s*([A-Za-z_][\w]*)\s*\)`,
	`services\.AddScoped<([A-Za-z_][\w]*)`,
	`services\.AddSingleton<([A-Za-z_][\w]*)`,
	`services\.AddTransient<([A-Za-z_][\w]*)`,
}

// autoLoaderTokenRegex matches content markers indicating an index file
// directory-requires its siblings, making every sibling a root (spec §4.3
// source 9).
var autoLoaderTokenRegex = regexp.MustCompile(`require-dir|readdirSync\(\s*__dirname\s*\)|fs\.readdir\(\s*\.\s*\)|glob\(\s*['"]\./\*`)
