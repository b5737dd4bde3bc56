// Package fields loads field definitions from JSON/YAML configuration
// documents. Definitions describe the form the reactive pipeline operates
// on; the embedded defaults cover the full meta-tag form.
package fields

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metagen/pkg/model"
)

var knownTypes = map[model.FieldType]struct{}{
	model.FieldTypeText:     {},
	model.FieldTypeTextarea: {},
	model.FieldTypeURL:      {},
	model.FieldTypeEmail:    {},
	model.FieldTypeNumber:   {},
	model.FieldTypeSelect:   {},
	model.FieldTypeCheckbox: {},
	model.FieldTypeColor:    {},
	model.FieldTypeDate:     {},
}

type documentFile struct {
	Fields []model.Field `json:"fields" yaml:"fields"`
}

// Default returns the embedded field definitions.
func Default() ([]model.Field, error) {
	return LoadFS(EmbeddedFS())
}

// LoadFS walks the provided filesystem and parses JSON/YAML definition
// files, concatenating their fields in file walk order. Duplicate field
// names across files are rejected.
func LoadFS(fsys fs.FS) ([]model.Field, error) {
	if fsys == nil {
		return nil, nil
	}

	var fields []model.Field
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fields: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, field := range doc.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return fmt.Errorf("fields: file %s defines a field with an empty name", path)
			}
			if origin, exists := seen[name]; exists {
				return fmt.Errorf("fields: duplicate field %q (files %s and %s)", name, origin, path)
			}
			if _, known := knownTypes[field.Type]; !known {
				return fmt.Errorf("fields: field %q (file %s) has unknown type %q", name, path, field.Type)
			}
			seen[name] = path
			field.Name = name
			fields = append(fields, field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkConditions(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// checkConditions verifies every visibility condition references a defined
// field.
func checkConditions(fields []model.Field) error {
	names := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		names[field.Name] = struct{}{}
	}
	for _, field := range fields {
		if field.Condition == nil {
			continue
		}
		if _, ok := names[field.Condition.Field]; !ok {
			return fmt.Errorf("fields: field %q condition references unknown field %q",
				field.Name, field.Condition.Field)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fields: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("fields: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
