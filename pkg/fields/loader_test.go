package fields

import (
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-metagen/pkg/model"
)

func TestDefaultDefinitionsLoad(t *testing.T) {
	t.Parallel()

	fields, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if len(fields) == 0 {
		t.Fatalf("expected embedded definitions")
	}

	byName := make(map[string]model.Field, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	title, ok := byName["title"]
	if !ok {
		t.Fatalf("expected title field")
	}
	if !title.Required || title.Category != model.CategoryBasic {
		t.Fatalf("unexpected title definition: %+v", title)
	}

	author, ok := byName["article_author"]
	if !ok {
		t.Fatalf("expected article_author field")
	}
	if author.Condition == nil || author.Condition.Field != "og_type" || author.Condition.Value != "article" {
		t.Fatalf("unexpected article_author condition: %+v", author.Condition)
	}
}

func TestDefaultCoversEveryCategory(t *testing.T) {
	t.Parallel()

	fields, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	present := make(map[string]bool)
	for _, field := range fields {
		present[field.Category] = true
	}
	for _, category := range model.Categories() {
		if !present[category] {
			t.Fatalf("no default field in category %q", category)
		}
	}
}

func TestLoadFSRejectsDuplicates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("fields:\n  - name: title\n    type: text\n")},
		"b.yaml": {Data: []byte("fields:\n  - name: title\n    type: text\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate field error")
	}
}

func TestLoadFSRejectsUnknownType(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("fields:\n  - name: x\n    type: rocket\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestLoadFSRejectsDanglingCondition(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(
			"fields:\n  - name: x\n    type: text\n    condition: {field: missing, value: y}\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected dangling condition error")
	}
}

func TestLoadFSAcceptsJSON(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"fields": [{"name": "x", "type": "text"}]}`)},
	}
	fields, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "x" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}
