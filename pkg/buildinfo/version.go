// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/viewstack/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/viewstack/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/viewstack/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/viewstack
//
// Version also scopes shared cache keys, so results written by one release
// are never read back by another.
package buildinfo

var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit
	Date    = "unknown" // build timestamp (RFC 3339)
)

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} version " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
}
