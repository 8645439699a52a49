package search

// Config holds configuration for the Meilisearch connection.
type Config struct {
	// Host is the URL of the Meilisearch instance.
	Host string `mapstructure:"host" default:"http://localhost:7700"`
	// APIKey is the master or admin API key.
	APIKey string `mapstructure:"api_key" default:""`
}
