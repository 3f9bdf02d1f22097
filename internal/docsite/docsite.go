// Package docsite generates the HTML documentation site from Markdown files.
//
// Source files may open with a YAML front matter block:
//
//	---
//	title: Dispatcher
//	summary: Slots, callbacks, and broadcast order.
//	weight: 2
//	---
//
// Front matter feeds the page title and the ordering of the navigation
// sidebar; files without it fall back to their first H1 heading and sort
// after every weighted page.
package docsite

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

//go:embed default.html
var defaultTemplate string

// Generator generates HTML documentation from Markdown files.
type Generator struct {
	SourceDir    string
	OutputDir    string
	TemplateFile string
	md           goldmark.Markdown
	tmpl         *template.Template
}

// frontmatter is the YAML block at the top of a Markdown source file.
type frontmatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Weight  int    `yaml:"weight"`
}

// Page is one generated page.
type Page struct {
	Title   string
	Summary string
	Weight  int // 0 means unweighted; unweighted pages sort last
	Href    string
	Content template.HTML

	outputPath string
}

// NavItem is one entry in the navigation sidebar.
type NavItem struct {
	Title  string
	Href   string
	Active bool
}

// PageData holds data passed to the HTML template.
type PageData struct {
	Title   string
	Summary string
	Content template.HTML
	Nav     []NavItem
}

// NewGenerator creates a new documentation generator. An empty templateFile
// selects the built-in template.
func NewGenerator(sourceDir, outputDir, templateFile string) (*Generator, error) {
	g := &Generator{
		SourceDir:    sourceDir,
		OutputDir:    outputDir,
		TemplateFile: templateFile,
	}

	// Configure goldmark with tables and autolinks
	g.md = goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	tmplContent := defaultTemplate
	if templateFile != "" {
		raw, err := os.ReadFile(templateFile)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		tmplContent = string(raw)
	}

	var err error
	g.tmpl, err = template.New("docs").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	return g, nil
}

// Generate walks the source directory and generates HTML files in the
// output directory. It collects every page first so the navigation sidebar
// can list all of them on each page.
func (g *Generator) Generate() error {
	// Ensure output directory exists
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var pages []*Page
	err := filepath.WalkDir(g.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		page, err := g.loadPage(path)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return err
	}

	SortPages(pages)

	for _, page := range pages {
		if err := g.renderPage(page, pages); err != nil {
			return err
		}
	}
	return nil
}

// loadPage reads and converts a single Markdown file.
func (g *Generator) loadPage(inputPath string) (*Page, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}

	var meta frontmatter
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("%s: parse front matter: %w", inputPath, err)
		}
	}

	// Convert markdown to HTML
	var htmlBuf bytes.Buffer
	if err := g.md.Convert(body, &htmlBuf); err != nil {
		return nil, fmt.Errorf("converting %s: %w", inputPath, err)
	}

	// Rewrite internal .md links to pretty URLs
	htmlContent := RewriteLinks(htmlBuf.String())

	// Front matter title wins; otherwise the first H1, then the filename
	title := meta.Title
	if title == "" {
		title = ExtractTitle(body, inputPath)
	}

	return &Page{
		Title:      title,
		Summary:    meta.Summary,
		Weight:     meta.Weight,
		Href:       MapHref(g.SourceDir, inputPath),
		Content:    template.HTML(htmlContent),
		outputPath: MapPath(g.SourceDir, g.OutputDir, inputPath),
	}, nil
}

// renderPage writes one page through the template, with the full page list
// as its navigation. Nav hrefs are rebased per page, since a page renders
// into its own directory.
func (g *Generator) renderPage(page *Page, all []*Page) error {
	nav := make([]NavItem, 0, len(all))
	for _, p := range all {
		nav = append(nav, NavItem{
			Title:  p.Title,
			Href:   relHref(page.Href, p.Href),
			Active: p == page,
		})
	}

	data := PageData{
		Title:   page.Title,
		Summary: page.Summary,
		Content: page.Content,
		Nav:     nav,
	}

	var outBuf bytes.Buffer
	if err := g.tmpl.Execute(&outBuf, data); err != nil {
		return fmt.Errorf("executing template for %s: %w", page.Href, err)
	}

	if err := os.MkdirAll(filepath.Dir(page.outputPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", page.outputPath, err)
	}
	if err := os.WriteFile(page.outputPath, outBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", page.outputPath, err)
	}
	return nil
}

// SortPages orders pages by weight, then title. Unweighted pages come after
// every weighted one.
func SortPages(pages []*Page) {
	sort.Slice(pages, func(i, j int) bool {
		wi, wj := effectiveWeight(pages[i]), effectiveWeight(pages[j])
		if wi != wj {
			return wi < wj
		}
		return pages[i].Title < pages[j].Title
	})
}

func effectiveWeight(p *Page) int {
	if p.Weight == 0 {
		return math.MaxInt
	}
	return p.Weight
}

// splitFrontmatter separates an optional YAML front matter block from the
// Markdown body. Files that do not open with --- are returned whole.
func splitFrontmatter(data []byte) (fm, body []byte, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, data, nil
	}

	// Collect front matter until closing ---
	var fmLines []string
	foundClose := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			foundClose = true
			break
		}
		fmLines = append(fmLines, line)
	}
	if !foundClose {
		return nil, nil, fmt.Errorf("missing closing front matter delimiter")
	}

	var bodyLines []string
	for scanner.Scan() {
		bodyLines = append(bodyLines, scanner.Text())
	}

	fm = []byte(strings.Join(fmLines, "\n"))
	body = []byte(strings.Join(bodyLines, "\n"))
	return fm, body, scanner.Err()
}

var h1Regex = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// mdLinkRegex matches href attributes that point to .md files.
// Captures: (1) path before .md (2) .md extension (3) optional anchor
var mdLinkRegex = regexp.MustCompile(`href="([^"]*?)(\.md)(#[^"]*)?"`)

// RewriteLinks transforms internal .md links in HTML content to pretty URLs.
// For example: href="./guide/scenarios.md#section" becomes href="./guide/scenarios/#section"
// Links to index.md are handled specially: ./foo/index.md becomes ./foo/
func RewriteLinks(html string) string {
	return mdLinkRegex.ReplaceAllStringFunc(html, func(match string) string {
		submatches := mdLinkRegex.FindStringSubmatch(match)
		if len(submatches) < 3 {
			return match
		}

		path := submatches[1] // Path before .md
		anchor := ""          // Optional anchor
		if len(submatches) > 3 {
			anchor = submatches[3]
		}

		// Check if the path ends with /index or is just "index"
		if strings.HasSuffix(path, "/index") {
			// ./foo/index.md -> ./foo/
			path = strings.TrimSuffix(path, "index")
		} else if path == "index" {
			// index.md -> ./
			path = "./"
		} else {
			// ./foo.md -> ./foo/
			path = path + "/"
		}

		return fmt.Sprintf(`href="%s%s"`, path, anchor)
	})
}

// ExtractTitle extracts the title from markdown content.
// It looks for the first H1 heading and falls back to the filename.
func ExtractTitle(content []byte, filePath string) string {
	matches := h1Regex.FindSubmatch(content)
	if len(matches) > 1 {
		return strings.TrimSpace(string(matches[1]))
	}

	// Fallback to filename without extension
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MapPath converts a source markdown path to an output HTML path using pretty URLs.
// Files named "index.md" stay as index.html, other files become directories with index.html.
// Example: docs/foo.md -> site/foo/index.html
// Example: docs/index.md -> site/index.html
func MapPath(sourceDir, outputDir, inputPath string) string {
	// Get the relative path from source directory
	relPath, err := filepath.Rel(sourceDir, inputPath)
	if err != nil {
		// Fallback: use the filename
		relPath = filepath.Base(inputPath)
	}

	// Remove .md extension
	relPath = strings.TrimSuffix(relPath, ".md")

	// Get the base filename
	base := filepath.Base(relPath)

	// If it's already "index", just add .html extension
	if base == "index" {
		return filepath.Join(outputDir, relPath+".html")
	}

	// Otherwise, create a directory with the same name and put index.html inside
	return filepath.Join(outputDir, relPath, "index.html")
}

// MapHref converts a source markdown path to its pretty URL, relative to the
// site root. Example: docs/foo.md -> ./foo/, docs/index.md -> ./
func MapHref(sourceDir, inputPath string) string {
	relPath, err := filepath.Rel(sourceDir, inputPath)
	if err != nil {
		relPath = filepath.Base(inputPath)
	}
	relPath = strings.TrimSuffix(filepath.ToSlash(relPath), ".md")

	if relPath == "index" {
		return "./"
	}
	if strings.HasSuffix(relPath, "/index") {
		return "./" + strings.TrimSuffix(relPath, "index")
	}
	return "./" + relPath + "/"
}

// relHref rebases a site-root-relative href (as returned by MapHref) so it
// resolves from the directory the page at from renders into.
// Example: relHref("./foo/", "./bar/") -> "../bar/"
func relHref(from, to string) string {
	up := strings.Repeat("../", strings.Count(strings.TrimPrefix(from, "./"), "/"))
	rest := strings.TrimPrefix(to, "./")
	if up == "" {
		return "./" + rest
	}
	if rest == "" {
		return up
	}
	return up + rest
}
