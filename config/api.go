package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only listing endpoints and GraphQL are public, mutations are not
	return []string{"/api/warehouse-stocks", "/graphql", "/healthz"}
}
