package dsbridge

var (
	// Set at build time, i.e.:
	// go install -ldflags "-X github.com/Skyrin/go-dsbridge.Sha=$(git rev-parse HEAD) -X github.com/Skyrin/go-dsbridge.Build=42" ./cmd/dsbridge

	// Sha the commit sha
	Sha string
	// Build the build number
	Build string
)

// Version returns the version/build
func Version() (string, string) {
	return Sha, Build
}

// VersionString returns the version as shown by the CLI
func VersionString() string {
	sha, build := Version()
	if sha == "" {
		sha = "dev"
	}
	if build == "" {
		return sha
	}

	return sha + " (build " + build + ")"
}
