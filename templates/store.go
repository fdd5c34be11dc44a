package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Default template names recognized by the selector
const (
	SeriesA         = "series_a"
	SeriesB         = "series_b"
	SeriesC         = "series_c"
	Safe            = "safe"
	ConvertibleNote = "convertible_note"
)

// ErrTemplateNotFound is returned when a named template is not registered
var ErrTemplateNotFound = errors.New("template not found")

// Store holds named term-sheet templates supporting named-variable
// substitution. The five defaults are always present; callers may register
// custom templates or override from a directory of .tmpl files.
type Store struct {
	templates map[string]*template.Template
}

// NewStore creates a store populated with the default templates
func NewStore() *Store {
	s := &Store{templates: make(map[string]*template.Template)}
	for name, text := range defaultTemplates {
		// Defaults are compile-time constants; parse errors are programmer errors
		if err := s.Register(name, text); err != nil {
			panic(fmt.Sprintf("invalid default template %s: %v", name, err))
		}
	}
	return s
}

// Register parses and stores a template under the given name
func (s *Store) Register(name, text string) error {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	s.templates[name] = tmpl
	return nil
}

// LoadDir registers every .tmpl file in dir, overriding defaults by name.
// A missing directory is not an error; the defaults stay in effect.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tmpl" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		if err := s.Register(name, string(data)); err != nil {
			return err
		}
	}

	return nil
}

// Render executes the named template against the given data
func (s *Store) Render(name string, data interface{}) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var builder strings.Builder
	if err := tmpl.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return builder.String(), nil
}

// Names returns the registered template names
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	return names
}
