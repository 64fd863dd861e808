package disco

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Error describes a fault found while decoding or linking a discovery
// document. Path is the dotted location of the offending element.
type Error struct {
	Doc  string
	Path string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("disco: %s: %s: %s", e.Doc, e.Path, e.Msg)
}

// ReadDocument decodes and links a discovery document from r. name
// identifies the source in errors, typically the file name or the api id.
func ReadDocument(name string, r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("disco: reading %s: %w", name, err)
	}
	return ParseDocument(name, src)
}

// ParseDocument decodes and links a discovery document from src.
func ParseDocument(name string, src []byte) (*Document, error) {
	d := new(Document)
	if err := json.Unmarshal(src, d); err != nil {
		return nil, fmt.Errorf("disco: parsing %s: %w", name, err)
	}
	if err := d.link(name); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadDirectory decodes a discovery directory list from r.
func ReadDirectory(r io.Reader) (*Directory, error) {
	dir := new(Directory)
	if err := json.NewDecoder(r).Decode(dir); err != nil {
		return nil, fmt.Errorf("disco: parsing directory: %w", err)
	}
	return dir, nil
}

// link validates the document and computes the derived state the accessors
// expose: names from map keys, full method names, schema use, scopes and
// media support. It reports the first fault found, in deterministic order.
func (d *Document) link(src string) error {
	if d.Name == "" {
		return &Error{Doc: src, Path: "name", Msg: "missing api name"}
	}
	if d.Version == "" {
		return &Error{Doc: src, Path: "version", Msg: "missing api version"}
	}

	d.use = make(map[string]*SchemaUse, len(d.Schemas))
	for _, name := range sortedKeys(d.Schemas) {
		s := d.Schemas[name]
		s.Name = name
		if s.ID != "" && s.ID != name {
			return &Error{
				Doc:  src,
				Path: "schemas." + name + ".id",
				Msg:  fmt.Sprintf("id %q does not match schema key", s.ID),
			}
		}
		d.use[name] = &SchemaUse{}
	}
	for _, name := range sortedKeys(d.Schemas) {
		if err := d.embed(src, d.Schemas[name], "schemas."+name, name); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(d.Parameters) {
		d.Parameters[name].Name = name
	}

	for _, name := range sortedKeys(d.Methods) {
		if err := d.linkMethod(src, d.Methods[name], name, "", "methods."+name); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(d.Resources) {
		if err := d.linkResource(src, d.Resources[name], name, "", "resources."+name); err != nil {
			return err
		}
	}

	for _, u := range d.use {
		u.Requests = dedup(u.Requests)
		u.Responses = dedup(u.Responses)
		u.PartOf = dedup(u.PartOf)
	}
	d.linkScopes()
	return nil
}

// embed records, for every schema reference inside s, that the target is
// used as part of the named owner schema. Self references are validated but
// not recorded.
func (d *Document) embed(src string, s *Schema, path, owner string) error {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		if _, ok := d.Schemas[s.Ref]; !ok {
			return &Error{
				Doc:  src,
				Path: path + ".$ref",
				Msg:  fmt.Sprintf("unresolved schema reference %q", s.Ref),
			}
		}
		if s.Ref != owner {
			u := d.use[s.Ref]
			u.PartOf = append(u.PartOf, owner)
		}
	}
	if s.Variant != nil {
		for i, v := range s.Variant.Map {
			if v.Ref == "" {
				continue
			}
			if _, ok := d.Schemas[v.Ref]; !ok {
				return &Error{
					Doc:  src,
					Path: fmt.Sprintf("%s.variant.map[%d].$ref", path, i),
					Msg:  fmt.Sprintf("unresolved schema reference %q", v.Ref),
				}
			}
			if v.Ref != owner {
				u := d.use[v.Ref]
				u.PartOf = append(u.PartOf, owner)
			}
		}
	}
	for _, name := range sortedKeys(s.Properties) {
		p := s.Properties[name]
		p.Name = name
		if err := d.embed(src, p, path+".properties."+name, owner); err != nil {
			return err
		}
	}
	if err := d.embed(src, s.Items, path+".items", owner); err != nil {
		return err
	}
	return d.embed(src, s.AdditionalProperties, path+".additionalProperties", owner)
}

func (d *Document) linkResource(src string, r *Resource, name, prefix, path string) error {
	r.Name = name
	full := name
	if prefix != "" {
		full = prefix + "." + name
	}
	for _, mname := range sortedKeys(r.Methods) {
		if err := d.linkMethod(src, r.Methods[mname], mname, full, path+".methods."+mname); err != nil {
			return err
		}
	}
	for _, sub := range sortedKeys(r.Resources) {
		if err := d.linkResource(src, r.Resources[sub], sub, full, path+".resources."+sub); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) linkMethod(src string, m *Method, name, prefix, path string) error {
	m.Name = name
	m.FullName = name
	if prefix != "" {
		m.FullName = prefix + "." + name
	}

	for _, pname := range sortedKeys(m.Parameters) {
		p := m.Parameters[pname]
		p.Name = pname
		if p.Ref == "" {
			continue
		}
		if _, ok := d.Schemas[p.Ref]; !ok {
			return &Error{
				Doc:  src,
				Path: path + ".parameters." + pname + ".$ref",
				Msg:  fmt.Sprintf("unresolved schema reference %q", p.Ref),
			}
		}
	}
	for _, pname := range m.ParameterOrder {
		if _, ok := m.Parameters[pname]; !ok {
			return &Error{
				Doc:  src,
				Path: path + ".parameterOrder",
				Msg:  fmt.Sprintf("parameter %q not defined", pname),
			}
		}
	}

	if m.Request != nil && m.Request.Ref != "" {
		if _, ok := d.Schemas[m.Request.Ref]; !ok {
			return &Error{
				Doc:  src,
				Path: path + ".request.$ref",
				Msg:  fmt.Sprintf("unresolved schema reference %q", m.Request.Ref),
			}
		}
		u := d.use[m.Request.Ref]
		u.Requests = append(u.Requests, m.FullName)
	}
	if m.Response != nil && m.Response.Ref != "" {
		if _, ok := d.Schemas[m.Response.Ref]; !ok {
			return &Error{
				Doc:  src,
				Path: path + ".response.$ref",
				Msg:  fmt.Sprintf("unresolved schema reference %q", m.Response.Ref),
			}
		}
		u := d.use[m.Response.Ref]
		u.Responses = append(u.Responses, m.FullName)
	}

	if m.SupportsMediaUpload {
		d.upload = true
	}
	if m.SupportsMediaDownload {
		d.download = true
	}
	return nil
}

// linkScopes builds the scope inventory: declared scopes with their
// descriptions, then any scope only named by a method.
func (d *Document) linkScopes() {
	declared := make(map[string]string)
	if d.Auth != nil && d.Auth.OAuth2 != nil {
		for url, info := range d.Auth.OAuth2.Scopes {
			declared[url] = info.Description
		}
	}
	strays := make(map[string]bool)
	d.Walk(func(_ []string, m *Method) {
		for _, s := range m.Scopes {
			if _, ok := declared[s]; !ok {
				strays[s] = true
			}
		}
	})

	d.scopes = make([]Scope, 0, len(declared)+len(strays))
	for url, desc := range declared {
		d.scopes = append(d.scopes, Scope{URL: url, Description: desc, Declared: true})
	}
	for url := range strays {
		d.scopes = append(d.scopes, Scope{URL: url})
	}
	sort.Slice(d.scopes, func(i, j int) bool { return d.scopes[i].URL < d.scopes[j].URL })
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedup(s []string) []string {
	if len(s) < 2 {
		return s
	}
	sort.Strings(s)
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
