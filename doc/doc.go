// Package doc contains a CommonMark documentation generator for discovery
// documents. It emits an index page, a schemas page, and one page per
// activity, mirroring the resource tree of the API.
package doc

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
)

// Options contains the options for the documentation generator.
type Options struct {
	Title string `json:"title"`
	TOC   bool   `json:"toc"`
}

// Generator generates CommonMark documentation for discovery documents.
type Generator struct {
	sync.Mutex
	bytes.Buffer

	indent []byte
}

// Reset overrides the bytes.Buffer Reset method to assist in cleaning up some
// Generator state.
func (g *Generator) Reset() {
	g.Buffer.Reset()
	if g.indent == nil {
		g.indent = make([]byte, 0, 2)
	}
	g.indent = g.indent[0:0]
}

// Generate generates CommonMark documentation for the given document.
func (g *Generator) Generate(ctx context.Context, doc *disco.Document, opts map[string]interface{}) (err error) {
	g.Lock()
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: "doc",
				Msg:     err.Error(),
			}
		}
	}()
	defer g.Unlock()

	gOpts, err := getOptions(opts)
	if err != nil {
		return err
	}

	gCtx := gen.Context(ctx)

	g.Reset()
	g.generateIndex(doc, gOpts)
	if err = g.writeFile(gCtx, "index.md"); err != nil {
		return
	}

	if len(doc.Schemas) > 0 {
		g.Reset()
		g.generateSchemas(doc)
		if err = g.writeFile(gCtx, "schemas.md"); err != nil {
			return
		}
	}

	doc.Walk(func(path []string, m *disco.Method) {
		if err != nil {
			return
		}
		g.Reset()
		g.generateActivity(m)
		err = g.writeFile(gCtx, disco.PageName(path, m.Name)+".md")
	})
	return
}

func (g *Generator) writeFile(gCtx gen.GeneratorContext, name string) error {
	f, err := gCtx.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(g.Bytes())
	return err
}

func (g *Generator) generateIndex(doc *disco.Document, opts *Options) {
	title := opts.Title
	if title == "" {
		title = doc.DisplayTitle() + " " + doc.Version
	}
	g.P("# ", title)
	g.P(generatedLine(doc))

	if doc.Description != "" {
		g.WriteByte('\n')
		g.P(doc.Description)
	}
	if doc.DocumentationLink != "" {
		g.WriteByte('\n')
		g.P("* [Official documentation](", doc.DocumentationLink, ")")
	}

	if opts.TOC {
		g.writeToC(doc)
	}

	if scopes := doc.Scopes(); len(scopes) > 0 {
		g.section("Scopes")
		for _, s := range scopes {
			g.P("- **", disco.ScopeIdent(doc.Name, s.URL), "** `", s.URL, "`")
			if s.Description != "" {
				g.In()
				g.P(s.Description)
				g.Out()
			}
		}
	}

	if params := doc.SortedParameters(); len(params) > 0 {
		g.section("Standard Parameters")
		for _, p := range params {
			g.generateParam(p)
		}
	}

	g.section("Activities")
	g.writeTree(doc)
}

// writeToC writes the table of contents, skipping sections the document will
// not have.
func (g *Generator) writeToC(doc *disco.Document) {
	g.section("Table of Contents")
	if len(doc.Scopes()) > 0 {
		g.P("- [Scopes](#scopes)")
	}
	if len(doc.Parameters) > 0 {
		g.P("- [Standard Parameters](#standard-parameters)")
	}
	g.P("- [Activities](#activities)")
	if len(doc.Schemas) > 0 {
		g.P("- [Schemas](schemas.md)")
	}
}

// writeTree writes the resource tree with a link to every activity page.
func (g *Generator) writeTree(doc *disco.Document) {
	for _, m := range doc.SortedMethods() {
		g.P("- [", m.Name, "](", disco.PageName(nil, m.Name), ".md)")
	}

	var path []string
	var walk func(r *disco.Resource)
	walk = func(r *disco.Resource) {
		g.P("- **", r.Name, "**")
		path = append(path, r.Name)
		g.In()
		for _, m := range r.SortedMethods() {
			g.P("- [", m.Name, "](", disco.PageName(path, m.Name), ".md)")
		}
		for _, sub := range r.SortedResources() {
			walk(sub)
		}
		g.Out()
		path = path[:len(path)-1]
	}
	for _, r := range doc.SortedResources() {
		walk(r)
	}
}

func (g *Generator) generateActivity(m *disco.Method) {
	g.P("# ", m.FullName)
	if m.Deprecated {
		g.WriteByte('\n')
		g.P("**Deprecated.**")
	}
	if m.Description != "" {
		g.WriteByte('\n')
		g.P(m.Description)
	}

	g.WriteByte('\n')
	g.P("```")
	g.P(m.HTTPMethod, " ", m.Path)
	g.P("```")

	required, optional := splitParams(m)
	if len(required) > 0 {
		g.section("Required Parameters")
		for _, p := range required {
			g.generateParam(p)
		}
	}
	if len(optional) > 0 {
		g.section("Optional Parameters")
		for _, p := range optional {
			g.generateParam(p)
		}
	}

	if m.Request != nil && m.Request.Ref != "" {
		g.section("Request")
		g.P("- **[", m.Request.Ref, "](schemas.md#", strings.ToLower(m.Request.Ref), ")**")
	}
	if m.Response != nil && m.Response.Ref != "" {
		g.section("Response")
		g.P("- **[", m.Response.Ref, "](schemas.md#", strings.ToLower(m.Response.Ref), ")**")
	}

	if len(m.Scopes) > 0 {
		g.section("Scopes")
		for _, s := range m.Scopes {
			g.P("- `", s, "`")
		}
	}

	if m.SupportsMediaUpload {
		g.section("Media Upload")
		g.writeUpload(m.MediaUpload)
	}
	if m.SupportsMediaDownload {
		g.section("Media Download")
		g.P("This method supports media download.")
	}
}

func (g *Generator) writeUpload(u *disco.MediaUpload) {
	if u == nil {
		g.P("This method supports media upload.")
		return
	}
	if len(u.Accept) > 0 {
		g.P("- *Accepted MIME types*: ", strings.Join(u.Accept, ", "))
	}
	if u.MaxSize != "" {
		g.P("- *Max size*: ", u.MaxSize)
	}
	if u.Protocols == nil {
		return
	}
	if p := u.Protocols.Simple; p != nil {
		g.P("- *Simple upload path*: `", p.Path, "`", multipart(p))
	}
	if p := u.Protocols.Resumable; p != nil {
		g.P("- *Resumable upload path*: `", p.Path, "`", multipart(p))
	}
}

func multipart(p *disco.UploadProtocol) string {
	if p.Multipart {
		return " (multipart)"
	}
	return ""
}

func (g *Generator) generateSchemas(doc *disco.Document) {
	g.P("# Schemas")
	for _, s := range doc.SortedSchemas() {
		g.WriteByte('\n')
		g.P("## ", s.Name)
		g.WriteByte('\n')

		desc := s.Description
		if desc == "" {
			desc = "There is no detailed description."
		}
		g.P(desc)

		if props := s.SortedProperties(); len(props) > 0 {
			g.WriteByte('\n')
			g.P("*Fields*:")
			for _, p := range props {
				g.generateField(p)
			}
		}

		g.writeUse(doc.Use(s.Name))
	}
}

// writeUse writes the activity and part cross references for one schema.
func (g *Generator) writeUse(u *disco.SchemaUse) {
	switch u.Kind() {
	case disco.UseActivity:
		g.WriteByte('\n')
		g.P("*Used in activities*:")
		for _, name := range u.Requests {
			g.P("- [", name, "](", pageFor(name), ") (request)")
		}
		for _, name := range u.Responses {
			g.P("- [", name, "](", pageFor(name), ") (response)")
		}
	case disco.UsePart:
		g.WriteByte('\n')
		g.P("*This type is not used in any activity, and only used as part of another schema*:")
		for _, name := range u.PartOf {
			g.P("- [", name, "](#", strings.ToLower(name), ")")
		}
	case disco.UseOrphan:
		g.WriteByte('\n')
		g.P("*This type is not used in any activity or part of another schema.*")
	}
}

// pageFor returns the page file for a full method name.
func pageFor(full string) string {
	parts := strings.Split(full, ".")
	return disco.PageName(parts[:len(parts)-1], parts[len(parts)-1]) + ".md"
}

func (g *Generator) generateParam(p *disco.Schema) {
	g.P("- ", p.Name, " **(", typeName(p), ")**")
	g.In()
	if p.Description != "" {
		g.P(p.Description)
	}
	if len(p.Enum) > 0 {
		g.P("*Values*:")
		for i, v := range p.Enum {
			g.P("- ", v)
			if i < len(p.EnumDescriptions) && p.EnumDescriptions[i] != "" {
				g.In()
				g.P(p.EnumDescriptions[i])
				g.Out()
			}
		}
	}
	if p.Default != "" {
		g.P("*Default Value*: `", p.Default, "`")
	}
	if p.Pattern != "" {
		g.P("*Pattern*: `", p.Pattern, "`")
	}
	if p.Minimum != "" || p.Maximum != "" {
		g.P("*Range*: ", p.Minimum, "..", p.Maximum)
	}
	g.Out()
}

func (g *Generator) generateField(p *disco.Schema) {
	g.P("- ", p.Name, " **(", propType(p), ")**")
	g.In()
	if p.Description != "" {
		g.P(p.Description)
	}
	if p.ReadOnly {
		g.P("*Output only.*")
	}
	if p.Default != "" {
		g.P("*Default Value*: `", p.Default, "`")
	}
	if len(p.Enum) > 0 {
		g.P("*Values*:")
		for i, v := range p.Enum {
			g.P("- ", v)
			if i < len(p.EnumDescriptions) && p.EnumDescriptions[i] != "" {
				g.In()
				g.P(p.EnumDescriptions[i])
				g.Out()
			}
		}
	}
	if p.Annotations != nil && len(p.Annotations.Required) > 0 {
		g.P("*Required for*: ", strings.Join(p.Annotations.Required, ", "))
	}
	if p.Ref == "" && len(p.Properties) > 0 {
		g.P("*Fields*:")
		for _, sub := range p.SortedProperties() {
			g.generateField(sub)
		}
	}
	g.Out()
}

// typeName renders a parameter type, preferring the narrower format name.
func typeName(s *disco.Schema) string {
	t := s.Type
	if s.Format != "" {
		t = s.Format
	}
	if s.Ref != "" {
		t = s.Ref
	}
	if s.Repeated {
		t = "repeated " + t
	}
	return t
}

// propType renders a schema property type, linking schema references to
// their sections.
func propType(s *disco.Schema) string {
	switch {
	case s.Ref != "":
		return "[" + s.Ref + "](#" + strings.ToLower(s.Ref) + ")"
	case s.Items != nil:
		return "[]" + propType(s.Items)
	case s.AdditionalProperties != nil:
		return "map of " + propType(s.AdditionalProperties)
	case s.Format != "":
		return s.Format
	case s.Type != "":
		return s.Type
	}
	return "any"
}

func generatedLine(doc *disco.Document) string {
	id := doc.ID
	if id == "" {
		id = doc.Name + ":" + doc.Version
	}
	line := "*This was generated by discogen from " + id
	if doc.Revision != "" {
		line += ", revision " + doc.Revision
	}
	return line + ".*"
}

// section writes a section header preceded by a blank line.
func (g *Generator) section(name string) {
	g.WriteByte('\n')
	g.P("## ", name)
	g.WriteByte('\n')
}

// splitParams splits a method's parameters into required, ordered per the
// method's parameter order hint, and optional.
func splitParams(m *disco.Method) (required, optional []*disco.Schema) {
	seen := make(map[string]bool, len(m.ParameterOrder))
	for _, name := range m.ParameterOrder {
		required = append(required, m.Parameters[name])
		seen[name] = true
	}
	for _, p := range m.SortedParameters() {
		switch {
		case seen[p.Name]:
		case p.Required:
			required = append(required, p)
		default:
			optional = append(optional, p)
		}
	}
	return
}

// P prints the arguments to the generated output.
func (g *Generator) P(str ...interface{}) {
	g.Write(g.indent)
	for _, s := range str {
		switch v := s.(type) {
		case string:
			g.WriteString(v)
		case bool:
			fmt.Fprint(g, v)
		case int:
			fmt.Fprint(g, v)
		case float64:
			fmt.Fprint(g, v)
		}
	}
	g.WriteByte('\n')
}

// In increases the indent.
func (g *Generator) In() {
	g.indent = append(g.indent, '\t')
}

// Out decreases the indent.
func (g *Generator) Out() {
	if len(g.indent) > 0 {
		g.indent = g.indent[:len(g.indent)-1]
	}
}

// getOptions builds the generator options from the cli option map.
func getOptions(opts map[string]interface{}) (*Options, error) {
	gOpts := &Options{TOC: true}
	for k, v := range opts {
		switch k {
		case "title":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("title option must be a string: %v", v)
			}
			gOpts.Title = s
		case "toc":
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("toc option must be a bool: %v", v)
			}
			gOpts.TOC = b
		default:
			return nil, fmt.Errorf("unknown option: %s", k)
		}
	}
	return gOpts, nil
}
