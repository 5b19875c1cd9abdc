package esbuild

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlPage is a parsed HTML entry and the local scripts and stylesheets it references.
type htmlPage struct {
	doc  *html.Node
	refs []htmlRef
}

// htmlRef is one attribute pointing at a local module.
type htmlRef struct {
	node   *html.Node
	attr   string
	module string
}

// pageOutput is what a referenced module compiled to.
type pageOutput struct {
	file      string
	cssBundle string
}

func isHTML(entry string) bool {
	switch strings.ToLower(filepath.Ext(entry)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// readHTMLPage parses the HTML file at file. Root-relative references ("/src/x.ts")
// resolve against root, other relative references against the file's directory.
func readHTMLPage(file, root string) (*htmlPage, error) {
	//nolint:gosec // Entry path comes from the manifest of the project being built
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHTMLReadFailed.Error()), "path", file)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHTMLParseFailed.Error()), "path", file)
	}

	page := &htmlPage{doc: doc}
	dir := filepath.Dir(file)
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}

		var attr string
		switch {
		case n.DataAtom == atom.Script:
			attr = "src"
		case n.DataAtom == atom.Link && isStylesheet(n):
			attr = "href"
		default:
			continue
		}

		ref, ok := attrValue(n, attr)
		if !ok || !isLocal(ref) {
			continue
		}
		page.refs = append(page.refs, htmlRef{node: n, attr: attr, module: localPath(ref, dir, root)})
	}
	return page, nil
}

// entryPoints returns the referenced modules in document order without repeats.
func (p *htmlPage) entryPoints() []string {
	modules := make([]string, 0, len(p.refs))
	for _, ref := range p.refs {
		if !slices.Contains(modules, ref.module) {
			modules = append(modules, ref.module)
		}
	}
	return modules
}

// render rewrites every reference to the root-relative output file of its module
// and links the CSS bundles of scripts that import styles.
func (p *htmlPage) render(outputs map[string]pageOutput) ([]byte, error) {
	var styles []string
	for _, ref := range p.refs {
		out, ok := outputs[ref.module]
		if !ok {
			continue
		}
		setAttr(ref.node, ref.attr, "/"+out.file)
		if out.cssBundle != "" && !slices.Contains(styles, out.cssBundle) {
			styles = append(styles, out.cssBundle)
		}
	}

	if head := findElement(p.doc, atom.Head); head != nil {
		for _, css := range styles {
			head.AppendChild(&html.Node{
				Type:     html.ElementNode,
				Data:     "link",
				DataAtom: atom.Link,
				Attr: []html.Attribute{
					{Key: "rel", Val: "stylesheet"},
					{Key: "href", Val: "/" + css},
				},
			})
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, p.doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrHTMLRenderFailed.Error())
	}
	return buf.Bytes(), nil
}

func isStylesheet(n *html.Node) bool {
	rel, _ := attrValue(n, "rel")
	return slices.Contains(strings.Fields(strings.ToLower(rel)), "stylesheet")
}

func isLocal(ref string) bool {
	switch {
	case ref == "":
		return false
	case strings.HasPrefix(ref, "//"), strings.Contains(ref, "://"), strings.HasPrefix(ref, "data:"):
		return false
	default:
		return true
	}
}

func localPath(ref, dir, root string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if strings.HasPrefix(ref, "/") {
		return filepath.Join(root, filepath.FromSlash(ref))
	}
	return filepath.Join(dir, filepath.FromSlash(ref))
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
}

func findElement(doc *html.Node, a atom.Atom) *html.Node {
	for n := range doc.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
	}
	return nil
}
