// Package mkdocs contains a mkdocs site config generator for discovery
// documents. The emitted navigation mirrors the resource tree of the API and
// names the same pages the doc generator writes.
package mkdocs

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
)

// Options contains the options for the mkdocs generator.
type Options struct {
	Title   string `json:"title"`
	SiteURL string `json:"site_url"`
	RepoURL string `json:"repo_url"`
	Theme   string `json:"theme"`
}

// config is the subset of a mkdocs config the generator emits.
type config struct {
	SiteName        string    `yaml:"site_name"`
	SiteURL         string    `yaml:"site_url,omitempty"`
	SiteDescription string    `yaml:"site_description,omitempty"`
	RepoURL         string    `yaml:"repo_url,omitempty"`
	DocsDir         string    `yaml:"docs_dir"`
	Theme           theme     `yaml:"theme"`
	Nav             []navItem `yaml:"nav"`
}

type theme struct {
	Name string `yaml:"name"`
}

// navItem is one nav entry: a page, or a titled section of nested entries.
type navItem struct {
	title    string
	page     string
	children []navItem
}

func (n navItem) MarshalYAML() (interface{}, error) {
	if len(n.children) > 0 {
		return map[string][]navItem{n.title: n.children}, nil
	}
	return map[string]string{n.title: n.page}, nil
}

// Generator generates mkdocs site configs for discovery documents. It is
// stateless and safe for concurrent use.
type Generator struct{}

// Generate generates a mkdocs.yml for the given document.
func (g *Generator) Generate(ctx context.Context, doc *disco.Document, opts map[string]interface{}) (err error) {
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: "mkdocs",
				Msg:     err.Error(),
			}
		}
	}()

	gOpts, err := getOptions(opts)
	if err != nil {
		return err
	}

	title := gOpts.Title
	if title == "" {
		title = doc.DisplayTitle() + " " + doc.Version
	}
	cfg := config{
		SiteName:        title,
		SiteURL:         gOpts.SiteURL,
		SiteDescription: firstSentence(doc.Description),
		RepoURL:         gOpts.RepoURL,
		DocsDir:         "docs",
		Theme:           theme{Name: gOpts.Theme},
		Nav:             buildNav(doc),
	}

	f, err := gen.Context(ctx).Open("mkdocs.yml")
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err = enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// buildNav builds the nav tree: the index and schemas pages, then one entry
// per activity nested per the resource tree.
func buildNav(doc *disco.Document) []navItem {
	nav := []navItem{{title: "Home", page: "index.md"}}
	if len(doc.Schemas) > 0 {
		nav = append(nav, navItem{title: "Schemas", page: "schemas.md"})
	}
	for _, m := range doc.SortedMethods() {
		nav = append(nav, navItem{
			title: disco.Camel(m.Name),
			page:  disco.PageName(nil, m.Name) + ".md",
		})
	}

	var path []string
	var build func(r *disco.Resource) navItem
	build = func(r *disco.Resource) navItem {
		path = append(path, r.Name)
		n := navItem{title: disco.Camel(r.Name)}
		for _, m := range r.SortedMethods() {
			n.children = append(n.children, navItem{
				title: disco.Camel(m.Name),
				page:  disco.PageName(path, m.Name) + ".md",
			})
		}
		for _, sub := range r.SortedResources() {
			n.children = append(n.children, build(sub))
		}
		path = path[:len(path)-1]
		return n
	}
	for _, r := range doc.SortedResources() {
		nav = append(nav, build(r))
	}
	return nav
}

// firstSentence cuts a description at its first sentence end.
func firstSentence(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}
		if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\n' {
			return s[:i+1]
		}
	}
	return strings.TrimSpace(s)
}

// getOptions builds the generator options from the cli option map.
func getOptions(opts map[string]interface{}) (*Options, error) {
	gOpts := &Options{Theme: "readthedocs"}
	for k, v := range opts {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s option must be a string: %v", k, v)
		}
		switch k {
		case "title":
			gOpts.Title = s
		case "site_url":
			gOpts.SiteURL = s
		case "repo_url":
			gOpts.RepoURL = s
		case "theme":
			gOpts.Theme = s
		default:
			return nil, fmt.Errorf("unknown option: %s", k)
		}
	}
	return gOpts, nil
}
