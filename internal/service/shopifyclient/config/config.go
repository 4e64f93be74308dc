package config

type Config struct {
	BaseURL     string
	AccessToken string
	MaxRetries  int
}
