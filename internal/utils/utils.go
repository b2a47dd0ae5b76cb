package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

const configTemplate = `# Optional log level, default "info"
loglevel = "info"

[gett]
# Required. Ge.tt API key, created at http://ge.tt/developers
api_key = "MYAPIKEY"

# Required. Email address of the Ge.tt account
email = "me@example.com"

# Optional. When omitted the CLI prompts for the password instead of
# reading it from this file.
password = ""

# Optional API base URL override, default "https://open.ge.tt/1"
# base_url = "https://open.ge.tt/1"
`

// GenerateConfig writes a starter configuration file, backing up any
// existing one first
func GenerateConfig(configPath string) error {
	fmt.Printf("Generating config %s\n", configPath)

	// Check if config file already exists and back it up
	if _, err := os.Stat(configPath); err == nil {
		backupPath := configPath + ".bak"
		fmt.Printf("Backing up config %s\n", configPath)
		if err := os.Rename(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	fmt.Printf("Writing %s\n", configPath)
	if err := os.WriteFile(configPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// FormatSize renders a byte count for terminal output
func FormatSize(size int64) string {
	if size < 0 {
		return "-"
	}
	return humanize.Bytes(uint64(size))
}
