package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntries appends each path not already listed in the repo's
// .gitignore. Empty paths are skipped.
func addGitignoreEntries(repoRoot string, paths ...string) (bool, error) {
	var entries []string
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		entry, err := normalizeGitignorePath(repoRoot, path)
		if err != nil {
			return false, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return false, nil
	}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	present := map[string]struct{}{}
	for _, line := range strings.Split(string(existing), "\n") {
		present[strings.TrimSpace(line)] = struct{}{}
	}

	updated := string(existing)
	changed := false
	for _, entry := range entries {
		if _, ok := present[entry]; ok {
			continue
		}
		if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
			updated += "\n"
		}
		updated += entry + "\n"
		present[entry] = struct{}{}
		changed = true
	}
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

func normalizeGitignorePath(repoRoot, path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", path, err)
		}
		clean = rel
	}
	clean = strings.TrimPrefix(clean, "."+string(filepath.Separator))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path %q is outside the repo root", path)
	}
	return filepath.ToSlash(clean), nil
}
