// Package store loads and saves YAML statement definitions, the editable
// source from which camt.053 files are generated.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"

	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mock_store

// DefinitionStore is the interface commands load and save definitions through.
type DefinitionStore interface {
	LoadDefinition(name string) (*models.Document, error)
	SaveDefinition(name string, doc *models.Document) error
}

// FileStore reads definitions from YAML files. Relative names are looked up
// in the working directory, then in Dir, then in ~/.config/camt053.
type FileStore struct {
	Dir    string
	logger logging.Logger
}

// NewFileStore creates a store rooted at dir. dir may be empty.
func NewFileStore(dir string, logger logging.Logger) *FileStore {
	return &FileStore{Dir: dir, logger: logger}
}

// FindDefinitionFile returns the first existing location of name.
func (s *FileStore) FindDefinitionFile(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}

	locations := []string{name}
	if s.Dir != "" {
		locations = append(locations, filepath.Join(s.Dir, name))
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "camt053", name))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", fmt.Errorf("definition %s: %w", name, fs.ErrNotExist)
}

// LoadDefinition reads name and builds the document it describes.
func (s *FileStore) LoadDefinition(name string) (*models.Document, error) {
	path, err := s.FindDefinitionFile(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading definition file: %w", err)
	}

	doc, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Debug("Loaded statement definition",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldMessageID, doc.Statement.GroupHeader.MessageID),
		logging.F(logging.FieldStatementCount, len(doc.Statement.Statements)))
	return doc, nil
}

// SaveDefinition writes doc as YAML. Relative names go below Dir when set.
func (s *FileStore) SaveDefinition(name string, doc *models.Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	path := name
	if !filepath.IsAbs(name) && s.Dir != "" {
		path = filepath.Join(s.Dir, name)
	}

	data, err := MarshalDefinition(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing definition file: %w", err)
	}

	s.logger.Debug("Saved statement definition", logging.F(logging.FieldFile, path))
	return nil
}

// ParseDefinition decodes YAML and builds the document. Unknown keys are
// rejected so typos do not silently drop fields.
func ParseDefinition(data []byte) (*models.Document, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("error parsing definition: %w", err)
	}
	return def.ToDocument()
}

// MarshalDefinition renders doc in the definition format.
func MarshalDefinition(doc *models.Document) ([]byte, error) {
	data, err := yaml.Marshal(FromDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("error marshaling definition: %w", err)
	}
	return data, nil
}

var _ DefinitionStore = (*FileStore)(nil)
