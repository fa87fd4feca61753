package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/treykane/cli-mindmap/internal/logging"
	"github.com/treykane/cli-mindmap/internal/tree"
)

// FilePermission is the mode of documents and exports written to disk.
const FilePermission = 0o644

var docLog = logging.New("document")

// IOError reports a document or export file that could not be read or
// written. The in-memory tree is never touched when it is returned.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Load reads and parses the document at path. A missing file is reported
// as an *IOError wrapping os.ErrNotExist.
func (c Codec) Load(path string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	t, err := c.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	docLog.Debug("loaded document", "path", path, "nodes", t.Len())
	return t, nil
}

// Save writes the document to path and clears the modified flag. The file
// is written to a temporary sibling first and renamed into place.
func (c Codec) Save(path string, t *tree.Tree) error {
	if strings.TrimSpace(path) == "" {
		return &IOError{Op: "write", Path: path, Err: errors.New("no file name")}
	}
	if err := writeFileAtomic(path, []byte(c.Serialize(t))); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	t.Modified = false
	docLog.Debug("saved document", "path", path, "nodes", t.Len())
	return nil
}

// ExportHTML converts the tree to a nested Markdown list and renders it with
// goldmark. The root becomes the page heading.
func (c Codec) ExportHTML(t *tree.Tree, showHidden bool) ([]byte, error) {
	var md strings.Builder
	md.WriteString("# " + escapeMarkdown(t.Title(t.Root())) + "\n\n")
	var walk func(id, depth int)
	walk = func(id, depth int) {
		for _, child := range t.VisibleChildren(id, showHidden) {
			n, err := t.Get(child)
			if err != nil {
				continue
			}
			label := strings.TrimPrefix(c.encodeTitle(n), hiddenMarker)
			md.WriteString(strings.Repeat("  ", depth) + "- " + escapeMarkdown(label) + "\n")
			walk(child, depth+1)
		}
	}
	walk(t.Root(), 0)

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>")
	out.WriteString(htmlEscaper.Replace(t.Title(t.Root())))
	out.WriteString("</title></head>\n<body>\n")
	if err := goldmark.Convert([]byte(md.String()), &out); err != nil {
		return nil, fmt.Errorf("convert markdown to html: %w", err)
	}
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// WriteHTML exports the tree next to docPath with an .html extension and
// returns the written path.
func (c Codec) WriteHTML(docPath string, t *tree.Tree, showHidden bool) (string, error) {
	data, err := c.ExportHTML(t, showHidden)
	if err != nil {
		return "", err
	}
	htmlPath := HTMLPath(docPath)
	if err := writeFileAtomic(htmlPath, data); err != nil {
		return "", &IOError{Op: "write", Path: htmlPath, Err: err}
	}
	return htmlPath, nil
}

// HTMLPath returns the export path for a document path.
func HTMLPath(docPath string) string {
	if docPath == "" {
		return "mindmap.html"
	}
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".html"
}

var (
	htmlEscaper     = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	markdownEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, "#", `\#`)
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, FilePermission); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
