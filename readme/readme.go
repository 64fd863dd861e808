// Package readme contains a README generator for discovery documents. The
// emitted README is the boilerplate every generated client library in a
// family shares: builder pattern usage, library structure, error handling
// and upload semantics.
package readme

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
)

//go:embed readme.tmpl
var readmeTmpl string

var tmpl = template.Must(template.New("readme").Parse(readmeTmpl))

// Options contains the options for the README generator.
type Options struct {
	Prefix  string `json:"package_prefix"`
	License string `json:"license"`
}

// data is the template view built from one document.
type data struct {
	Title         string
	Package       string
	Service       string
	GenLine       string
	DocsLink      string
	Resources     []resourceItem
	Uploads       string
	Downloads     string
	Subscriptions string
	Example       string
	HasMedia      bool
	HasParts      bool
	License       string
}

type resourceItem struct {
	Name       string
	Activities string
}

// Generator generates README boilerplate for discovery documents. It is
// stateless and safe for concurrent use.
type Generator struct{}

// Generate generates a README.md for the given document.
func (g *Generator) Generate(ctx context.Context, doc *disco.Document, opts map[string]interface{}) (err error) {
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: "readme",
				Msg:     err.Error(),
			}
		}
	}()

	gOpts, err := getOptions(opts)
	if err != nil {
		return err
	}

	f, err := gen.Context(ctx).Open("README.md")
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, build(doc, gOpts))
}

func build(doc *disco.Document, opts *Options) *data {
	d := &data{
		Title:    doc.DisplayTitle() + " " + doc.Version,
		Package:  opts.Prefix + disco.PkgName(doc.Name, doc.Version),
		Service:  doc.DisplayTitle(),
		GenLine:  genLine(doc),
		DocsLink: doc.DocumentationLink,
		HasMedia: doc.HasMediaUpload() || doc.HasMediaDownload(),
		License:  opts.License,
	}
	for _, s := range doc.SortedSchemas() {
		if doc.Use(s.Name).Kind() == disco.UsePart {
			d.HasParts = true
			break
		}
	}

	d.Resources = buildResources(doc)
	d.Example = exampleCall(doc)

	var uploads, downloads, subs []string
	doc.Walk(func(path []string, m *disco.Method) {
		name := "*" + display(path, m.Name) + "*"
		if m.SupportsMediaUpload {
			uploads = append(uploads, name)
		}
		if m.SupportsMediaDownload {
			downloads = append(downloads, name)
		}
		if m.SupportsSubscription {
			subs = append(subs, name)
		}
	})
	d.Uploads = joinAnd(uploads)
	d.Downloads = joinAnd(downloads)
	d.Subscriptions = joinAnd(subs)
	return d
}

// buildResources lists each top level resource with its activities, nested
// method names flattened into space separated words. API level methods are
// grouped under a synthetic methods entry.
func buildResources(doc *disco.Document) []resourceItem {
	var items []resourceItem
	if len(doc.Methods) > 0 {
		var acts []string
		for _, m := range doc.SortedMethods() {
			acts = append(acts, "*"+m.Name+"*")
		}
		items = append(items, resourceItem{Name: "methods", Activities: joinAnd(acts)})
	}

	for _, top := range doc.SortedResources() {
		var acts []string
		var rel []string
		var walk func(r *disco.Resource)
		walk = func(r *disco.Resource) {
			for _, m := range r.SortedMethods() {
				name := m.Name
				if len(rel) > 0 {
					name = strings.Join(rel, " ") + " " + name
				}
				acts = append(acts, "*"+name+"*")
			}
			for _, sub := range r.SortedResources() {
				rel = append(rel, sub.Name)
				walk(sub)
				rel = rel[:len(rel)-1]
			}
		}
		walk(top)
		items = append(items, resourceItem{Name: top.Name, Activities: joinAnd(acts)})
	}
	return items
}

// exampleCall renders the builder chain for the first activity, the shape
// shown in the usage section.
func exampleCall(doc *disco.Document) string {
	var call string
	doc.Walk(func(path []string, m *disco.Method) {
		if call != "" {
			return
		}
		res := "methods"
		var rest []string
		if len(path) > 0 {
			res = snake(path[0])
			rest = path[1:]
		}
		parts := append(append([]string{}, rest...), m.Name)

		args := make([]string, 0, len(m.ParameterOrder)+1)
		if m.Request != nil && m.Request.Ref != "" {
			args = append(args, "req")
		}
		for _, p := range m.ParameterOrder {
			args = append(args, fmt.Sprintf("%q", p))
		}
		call = res + "()." + snake(strings.Join(parts, " ")) + "(" + strings.Join(args, ", ") + ")"
	})
	return call
}

func display(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, " ") + " " + name
}

func snake(s string) string {
	return strings.ReplaceAll(disco.Kebab(s), "-", "_")
}

func joinAnd(s []string) string {
	switch len(s) {
	case 0:
		return ""
	case 1:
		return s[0]
	}
	return strings.Join(s[:len(s)-1], ", ") + " and " + s[len(s)-1]
}

func genLine(doc *disco.Document) string {
	id := doc.ID
	if id == "" {
		id = doc.Name + ":" + doc.Version
	}
	line := "This file was generated by discogen from " + id
	if doc.Revision != "" {
		line += ", revision " + doc.Revision
	}
	return line + "."
}

// getOptions builds the generator options from the cli option map.
func getOptions(opts map[string]interface{}) (*Options, error) {
	gOpts := &Options{Prefix: "google-", License: "MIT"}
	for k, v := range opts {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s option must be a string: %v", k, v)
		}
		switch k {
		case "package_prefix":
			gOpts.Prefix = s
		case "license":
			gOpts.License = s
		default:
			return nil, fmt.Errorf("unknown option: %s", k)
		}
	}
	return gOpts, nil
}
