package config

type Config struct {
	DatabaseURL  string
	OpenAIKey    string
	AnthropicKey string
	JWTSecret    string
	Environment  string
}
