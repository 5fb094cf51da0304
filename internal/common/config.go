package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig
	LLM    LLMConfig
	Output OutputConfig
	Ledger LedgerConfig
}

// OCRConfig holds rendering and page-OCR configuration
type OCRConfig struct {
	Pdftoppm        string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract       string // binary name or absolute path; if empty -> "tesseract"
	Lang            string // default "pol"
	DPI             int    // rasterization DPI, default 300
	MaxPages        int    // 0 = no limit
	PageConcurrency int    // concurrent page OCR calls per document
	ImagesDir       string // working dir for intermediate page images
	TextDir         string // sidecar OCR text output
	Timeout         time.Duration
}

// LLMConfig holds model backend configuration
type LLMConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float32
	Timeout      time.Duration
	AzureKeyAuth bool // send api-key header instead of Authorization: Bearer
}

// OutputConfig holds output sink configuration
type OutputConfig struct {
	JSONDir      string
	WorkbookPath string
	SheetName    string
}

// LedgerConfig holds the job ledger location
type LedgerConfig struct {
	Path string // sqlite database file; empty disables the ledger
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftoppm:        getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:       getEnv("TESSERACT_BIN", "tesseract"),
			Lang:            getEnv("OCR_LANG", "pol"),
			DPI:             getEnvAsInt("OCR_DPI", 300),
			MaxPages:        getEnvAsInt("OCR_MAX_PAGES", 0),
			PageConcurrency: getEnvAsInt("OCR_PAGE_CONCURRENCY", 4),
			ImagesDir:       getEnv("IMAGES_DIR", "./images"),
			TextDir:         getEnv("OUTPUT_TEXT_DIR", "./output-text"),
			Timeout:         getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		LLM: LLMConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o"),
			Temperature:  getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:      getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			AzureKeyAuth: getEnvAsBool("OPENAI_AZURE_KEY_AUTH", false),
		},
		Output: OutputConfig{
			JSONDir:      getEnv("JSON_DATA_DIR", "./json-data"),
			WorkbookPath: getEnv("WORKBOOK_PATH", "./enforcement.xlsx"),
			SheetName:    getEnv("SHEET_NAME", "Dane"),
		},
		Ledger: LedgerConfig{
			Path: getEnv("LEDGER_PATH", ""),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Output.WorkbookPath == "" {
		return NewAppError("CONFIG_ERROR", "WORKBOOK_PATH is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
