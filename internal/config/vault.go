package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnknownVault is returned when the requested vault is not configured.
	ErrUnknownVault = errors.New("unknown vault")
	// ErrNoVault is returned when no vault is selected and the choice is ambiguous.
	ErrNoVault = errors.New("no vault selected")
)

// Vault is a named pair of directories: the encrypted store and the restore target.
type Vault struct {
	Name      string `mapstructure:"name"      validate:"required"`
	Encrypted string `mapstructure:"encrypted" validate:"required"`
	Decrypted string `mapstructure:"decrypted" validate:"required"`
}

// Vaults is the list of configured vaults.
type Vaults []Vault

// Names returns the configured vault names in configuration order.
func (vs Vaults) Names() []string {
	names := make([]string, 0, len(vs))

	for _, v := range vs {
		names = append(names, v.Name)
	}

	return names
}

// Lookup returns the vault called name. An empty name selects the only configured vault.
func (vs Vaults) Lookup(name string) (Vault, error) {
	if name == "" {
		if len(vs) == 1 {
			return vs[0], nil
		}

		return Vault{}, fmt.Errorf("%w: choose one of [%s] with --vault", ErrNoVault, strings.Join(vs.Names(), ", "))
	}

	for _, v := range vs {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}

	return Vault{}, fmt.Errorf("%w: %q", ErrUnknownVault, name)
}

// Resolve makes both directories absolute, relative to base, and checks that they exist.
func (v Vault) Resolve(base string) (Vault, error) {
	encrypted, err := sanitizeDir(v.Encrypted, base)
	if err != nil {
		return Vault{}, fmt.Errorf("vault %q: encrypted: %w", v.Name, err)
	}

	decrypted, err := sanitizeDir(v.Decrypted, base)
	if err != nil {
		return Vault{}, fmt.Errorf("vault %q: decrypted: %w", v.Name, err)
	}

	return Vault{Name: v.Name, Encrypted: encrypted, Decrypted: decrypted}, nil
}

func sanitizeDir(path, base string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("empty path")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("folder %q does not exist: %w", path, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a folder", path)
	}

	return path, nil
}

// ResolveFile makes path absolute relative to the config directory.
func (c Config) ResolveFile(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.Dir, path)
}

// SelectedVault looks up the selected vault and resolves its directories.
func (c Config) SelectedVault() (Vault, error) {
	v, err := c.Vaults.Lookup(c.Vault)
	if err != nil {
		return Vault{}, err
	}

	return v.Resolve(c.Dir)
}
