// Package config manages the process-wide cache-directory setting: an
// environment variable override, a persisted plain-text file under the
// per-user config directory, and a lazily-initialized singleton guarded by
// a reader-writer lock. Modeled on the Rust original's
// CACHE_DIR_CACHE: LazyLock<RwLock<Option<PathBuf>>> in config.rs.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	envCacheDir  = "MFT_CACHE_DIR"
	appConfigDir = "ntfsview"
	cacheDirFile = "cache-dir.txt"
)

var (
	mu       sync.RWMutex
	cacheDir string
	loaded   bool
)

// cacheDirFilePath returns the path to the persisted cache-dir.txt file.
func cacheDirFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving user config directory")
	}
	return filepath.Join(dir, appConfigDir, cacheDirFile), nil
}

// canonicalize resolves p to an absolute, symlink-free path, matching the
// original's fs::canonicalize: it errors if p does not exist.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, "canonicalizing %s", p)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, "canonicalizing %s", p)
	}
	return resolved, nil
}

func readEnvCacheDir() (string, bool, error) {
	val, ok := os.LookupEnv(envCacheDir)
	if !ok {
		return "", false, nil
	}
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return "", false, nil
	}
	canon, err := canonicalize(trimmed)
	if err != nil {
		return "", false, err
	}
	return canon, true, nil
}

func readCacheDirFile() (string, bool, error) {
	path, err := cacheDirFilePath()
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading %s", path)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "", false, nil
	}
	canon, err := canonicalize(trimmed)
	if err != nil {
		return "", false, err
	}
	return canon, true, nil
}

func readInitialCacheDir() (string, bool, error) {
	if dir, ok, err := readEnvCacheDir(); err != nil || ok {
		return dir, ok, err
	}
	return readCacheDirFile()
}

// GetCacheDir returns the configured cache directory, consulting the
// environment and the persisted config file only on the first call; after
// that the cached value is returned until SetCacheDir or Reset is called.
func GetCacheDir() (string, error) {
	mu.RLock()
	if loaded {
		dir := cacheDir
		mu.RUnlock()
		if dir == "" {
			return "", errors.New("cache-dir is not configured; use: ntfsview config set cache-dir .")
		}
		return dir, nil
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if loaded {
		if cacheDir == "" {
			return "", errors.New("cache-dir is not configured; use: ntfsview config set cache-dir .")
		}
		return cacheDir, nil
	}
	dir, ok, err := readInitialCacheDir()
	if err != nil {
		return "", err
	}
	loaded = true
	if !ok {
		cacheDir = ""
		return "", errors.New("cache-dir is not configured; use: ntfsview config set cache-dir .")
	}
	cacheDir = dir
	return cacheDir, nil
}

// SetCacheDir canonicalizes dir, persists it to cache-dir.txt, and updates
// the in-memory singleton.
func SetCacheDir(dir string) (string, error) {
	canon, err := canonicalize(dir)
	if err != nil {
		return "", err
	}

	path, err := cacheDirFilePath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(canon), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	mu.Lock()
	cacheDir = canon
	loaded = true
	mu.Unlock()

	return canon, nil
}

// Reset invalidates the in-memory singleton, forcing the next GetCacheDir
// call to re-read the environment and config file. Exposed for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = false
	cacheDir = ""
}
