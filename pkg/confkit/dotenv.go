package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads environment variables from a .env file next to the
// repository root. The first call wins; existing environment variables are
// never overridden. Set NO_DOTENV=1 to skip, or ENV_FILE to point at a
// specific file.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	if root, err := ProjectRoot(); err == nil {
		if p := filepath.Join(root, ".env"); fileExists(p) {
			_ = godotenv.Load(p)
			return
		}
	}
	_ = godotenv.Load()
}
