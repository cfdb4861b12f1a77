package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/tablestorm/internal/config"
)

const document = `<html><body><div contenteditable="true"><table>
<thead><tr><th>h1</th><th>h2</th></tr></thead>
<tbody><tr class="wide"><td data-mce-selected="1" data-mce-first-selected="1">a</td><td data-mce-selected="2" data-mce-last-selected="1">b</td></tr></tbody>
</table></div></body></html>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := &cli{}
	defer c.close()
	root := c.root()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", writeTemp(t, "doc.html", document))
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	for _, want := range []string{
		"selection: multiple (2 cells)",
		"mergeable: rows 1-1, columns 0-1",
		"unmergeable: no",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClassifyMissingTable(t *testing.T) {
	_, err := execute(t, "classify", "--table", "3", writeTemp(t, "doc.html", document))
	if err == nil || !strings.Contains(err.Error(), "table 3 not found") {
		t.Errorf("error = %v", err)
	}
}

func TestExport(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.xlsx")
	out, err := execute(t, "export", "-o", output, writeTemp(t, "doc.html", document))
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("workbook missing: %v", err)
	}
	if !strings.Contains(out, output) {
		t.Errorf("output = %q", out)
	}
}

func TestDialogWithConfig(t *testing.T) {
	cfgPath := writeTemp(t, "tablestorm.yaml", "row_class_list: '[\"wide\", \"narrow\"]'\n")
	out, err := execute(t, "--config", cfgPath, "dialog", "--row", "1", writeTemp(t, "doc.html", document))
	if err != nil {
		t.Fatalf("dialog error = %v", err)
	}
	if got := gjson.Get(out, "items.#").Int(); got != 4 {
		t.Errorf("items = %d, want 4", got)
	}
	if got := gjson.Get(out, "data.class").String(); got != "wide" {
		t.Errorf("data.class = %q, want wide", got)
	}
	if got := gjson.Get(out, "data.type").String(); got != "body" {
		t.Errorf("data.type = %q, want body", got)
	}
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "classify", writeTemp(t, "doc.html", document))
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}
