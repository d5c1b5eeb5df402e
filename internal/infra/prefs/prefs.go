// Package prefs guarda as preferências locais do operador (hoje só o tema).
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	fileName = "prefs.yaml"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

type Prefs struct {
	Theme string `yaml:"theme,omitempty"`
}

// Store lê e grava o arquivo YAML de preferências.
type Store struct {
	Path   string
	getenv func(string) string
}

func NewStore(path string) *Store {
	return &Store{Path: path, getenv: os.Getenv}
}

// DefaultPath fica em ~/.config/ligue-crm/prefs.yaml (ou equivalente do SO).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("erro ao localizar diretório de config: %w", err)
	}
	return filepath.Join(dir, "ligue-crm", fileName), nil
}

func (s *Store) Load() (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("erro ao ler preferências: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("erro ao decodificar preferências: %w", err)
	}
	return p, nil
}

// Theme devolve o tema salvo; sem valor salvo, segue a dica do terminal.
func (s *Store) Theme() (string, error) {
	p, err := s.Load()
	if err != nil {
		return "", err
	}
	if p.Theme == ThemeLight || p.Theme == ThemeDark {
		return p.Theme, nil
	}
	return s.terminalTheme(), nil
}

func (s *Store) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}

	p, err := s.Load()
	if err != nil {
		return err
	}
	p.Theme = theme

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("erro ao codificar preferências: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("erro ao gravar preferências: %w", err)
	}
	return nil
}

// COLORFGBG vem como "fg;bg" (às vezes "fg;x;bg"); fundo 0-6 ou 8 é escuro.
func (s *Store) terminalTheme() string {
	hint := s.getenv("COLORFGBG")
	if hint == "" {
		return ThemeLight
	}
	parts := strings.Split(hint, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ThemeLight
	}
	if (bg >= 0 && bg <= 6) || bg == 8 {
		return ThemeDark
	}
	return ThemeLight
}
