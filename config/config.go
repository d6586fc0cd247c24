package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// SourcePath is the phone/URL list: a local XML file or an http(s) URL.
	SourcePath string
	// OutputDir is where the date-stamped CSV report is written.
	OutputDir string

	MaxRetries   int
	RetryDelayMs int
	// HTTPTimeoutMs of 0 leaves requests without a deadline.
	HTTPTimeoutMs int

	PricingAPIBase string
	UserAgent      string

	// PageFallback enables the rendered product-page extractor when the
	// pricing API fails on every attempt.
	PageFallback bool
	ChromeBin    string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourcePath: getEnv("SOURCE_PATH", "./bestbuymobile.xml"),
		OutputDir:  getEnv("OUTPUT_DIR", "."),

		MaxRetries:    getEnvInt("MAX_RETRIES", 3),
		RetryDelayMs:  getEnvInt("RETRY_DELAY_MS", 2000),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 0),

		PricingAPIBase: getEnv("PRICING_API_BASE", "https://www.bestbuy.ca"),
		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),

		PageFallback: getEnvBool("PAGE_FALLBACK", false),
		ChromeBin:    getEnv("CHROME_BIN", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
