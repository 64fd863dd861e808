// Package disco models Google API discovery documents.
//
// A discovery document is the machine readable description every Google REST
// API publishes: identity, OAuth scopes, schemas, and the resource/method
// tree client libraries are generated from. ReadDocument decodes one and
// links it, resolving schema references and classifying each schema by how
// the API surface reaches it. Generators consume the linked Document through
// the Sorted* accessors and Walk, which guarantee a deterministic order.
package disco

import "sort"

// A Document is a parsed and linked discovery document.
type Document struct {
	Kind             string `json:"kind,omitempty"`
	ID               string `json:"id,omitempty"`
	Name             string `json:"name,omitempty"`
	Version          string `json:"version,omitempty"`
	Revision         string `json:"revision,omitempty"`
	Etag             string `json:"etag,omitempty"`
	DiscoveryVersion string `json:"discoveryVersion,omitempty"`

	Title             string   `json:"title,omitempty"`
	CanonicalName     string   `json:"canonicalName,omitempty"`
	Description       string   `json:"description,omitempty"`
	DocumentationLink string   `json:"documentationLink,omitempty"`
	Labels            []string `json:"labels,omitempty"`
	Features          []string `json:"features,omitempty"`
	Icons             *Icons   `json:"icons,omitempty"`

	Protocol    string `json:"protocol,omitempty"`
	RootURL     string `json:"rootUrl,omitempty"`
	ServicePath string `json:"servicePath,omitempty"`
	BasePath    string `json:"basePath,omitempty"`
	BaseURL     string `json:"baseUrl,omitempty"`
	BatchPath   string `json:"batchPath,omitempty"`

	OwnerDomain string `json:"ownerDomain,omitempty"`
	OwnerName   string `json:"ownerName,omitempty"`
	PackagePath string `json:"packagePath,omitempty"`

	Auth       *Auth                `json:"auth,omitempty"`
	Parameters map[string]*Schema   `json:"parameters,omitempty"`
	Schemas    map[string]*Schema   `json:"schemas,omitempty"`
	Methods    map[string]*Method   `json:"methods,omitempty"`
	Resources  map[string]*Resource `json:"resources,omitempty"`

	use      map[string]*SchemaUse
	scopes   []Scope
	upload   bool
	download bool
}

// Icons holds links to the 16x16 and 32x32 API icons.
type Icons struct {
	X16 string `json:"x16,omitempty"`
	X32 string `json:"x32,omitempty"`
}

// Auth describes the authentication information for an API.
type Auth struct {
	OAuth2 *OAuth2 `json:"oauth2,omitempty"`
}

// OAuth2 lists the OAuth 2.0 scopes an API declares.
type OAuth2 struct {
	Scopes map[string]ScopeInfo `json:"scopes,omitempty"`
}

// ScopeInfo describes a single declared scope.
type ScopeInfo struct {
	Description string `json:"description,omitempty"`
}

// A Scope is one OAuth 2.0 scope accepted somewhere in the API, declared at
// the top level or referenced only by a method.
type Scope struct {
	URL         string
	Description string
	Declared    bool
}

// A Schema is the JSON Schema variant used by discovery documents. The same
// shape describes named schemas, their properties, and method parameters.
type Schema struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`

	Default  string `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
	Repeated bool   `json:"repeated,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`
	Location string `json:"location,omitempty"`

	Pattern string `json:"pattern,omitempty"`
	Minimum string `json:"minimum,omitempty"`
	Maximum string `json:"maximum,omitempty"`

	Enum             []string `json:"enum,omitempty"`
	EnumDescriptions []string `json:"enumDescriptions,omitempty"`

	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`

	Annotations *Annotations `json:"annotations,omitempty"`
	Variant     *Variant     `json:"variant,omitempty"`

	Deprecated bool `json:"deprecated,omitempty"`

	// Name is the key the schema was declared under, filled at link time.
	Name string `json:"-"`
}

// Annotations carry additional information about a property.
type Annotations struct {
	Required []string `json:"required,omitempty"`
}

// A Variant marks a discriminated union: one property selects which schema
// interprets the entity.
type Variant struct {
	Discriminant string        `json:"discriminant,omitempty"`
	Map          []*VariantMap `json:"map,omitempty"`
}

// VariantMap binds one discriminant value to a schema.
type VariantMap struct {
	TypeValue string `json:"type_value,omitempty"`
	Ref       string `json:"$ref,omitempty"`
}

// A Resource is a named group of methods and sub-resources.
type Resource struct {
	Methods   map[string]*Method   `json:"methods,omitempty"`
	Resources map[string]*Resource `json:"resources,omitempty"`

	// Name is the key the resource was declared under, filled at link time.
	Name string `json:"-"`
}

// A Method is one REST method, the unit client libraries surface as an
// activity with a call builder.
type Method struct {
	ID             string             `json:"id,omitempty"`
	Description    string             `json:"description,omitempty"`
	HTTPMethod     string             `json:"httpMethod,omitempty"`
	Path           string             `json:"path,omitempty"`
	FlatPath       string             `json:"flatPath,omitempty"`
	Parameters     map[string]*Schema `json:"parameters,omitempty"`
	ParameterOrder []string           `json:"parameterOrder,omitempty"`
	Request        *SchemaRef         `json:"request,omitempty"`
	Response       *SchemaRef         `json:"response,omitempty"`
	Scopes         []string           `json:"scopes,omitempty"`

	SupportsMediaDownload   bool         `json:"supportsMediaDownload,omitempty"`
	SupportsMediaUpload     bool         `json:"supportsMediaUpload,omitempty"`
	SupportsSubscription    bool         `json:"supportsSubscription,omitempty"`
	UseMediaDownloadService bool         `json:"useMediaDownloadService,omitempty"`
	MediaUpload             *MediaUpload `json:"mediaUpload,omitempty"`

	EtagRequired bool `json:"etagRequired,omitempty"`
	Deprecated   bool `json:"deprecated,omitempty"`

	// Name and FullName are filled at link time. FullName is the dotted
	// resource path plus the method name, e.g. "billingAccounts.budgets.create".
	Name     string `json:"-"`
	FullName string `json:"-"`
}

// A SchemaRef points a method request or response at a named schema.
type SchemaRef struct {
	Ref           string `json:"$ref,omitempty"`
	ParameterName string `json:"parameterName,omitempty"`
}

// MediaUpload describes the upload parameters of a method.
type MediaUpload struct {
	Accept    []string         `json:"accept,omitempty"`
	MaxSize   string           `json:"maxSize,omitempty"`
	Protocols *UploadProtocols `json:"protocols,omitempty"`
}

// UploadProtocols lists the supported upload protocols.
type UploadProtocols struct {
	Simple    *UploadProtocol `json:"simple,omitempty"`
	Resumable *UploadProtocol `json:"resumable,omitempty"`
}

// UploadProtocol describes one upload protocol endpoint.
type UploadProtocol struct {
	Multipart bool   `json:"multipart,omitempty"`
	Path      string `json:"path,omitempty"`
}

// A Directory is the discovery directory list, one item per API version.
type Directory struct {
	Kind             string           `json:"kind,omitempty"`
	DiscoveryVersion string           `json:"discoveryVersion,omitempty"`
	Items            []*DirectoryItem `json:"items,omitempty"`
}

// A DirectoryItem names one API version and where its description lives.
type DirectoryItem struct {
	Kind              string   `json:"kind,omitempty"`
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	Version           string   `json:"version,omitempty"`
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	DiscoveryRestURL  string   `json:"discoveryRestUrl,omitempty"`
	DiscoveryLink     string   `json:"discoveryLink,omitempty"`
	Icons             *Icons   `json:"icons,omitempty"`
	DocumentationLink string   `json:"documentationLink,omitempty"`
	Labels            []string `json:"labels,omitempty"`
	Preferred         bool     `json:"preferred,omitempty"`
}

// UseKind classifies how the API surface reaches a schema.
type UseKind int

const (
	// UseOrphan marks a schema nothing references.
	UseOrphan UseKind = iota

	// UsePart marks a schema only embedded in other schemas.
	UsePart

	// UseActivity marks a schema some method uses as request or response.
	UseActivity
)

// A SchemaUse records every place a named schema appears. All slices are
// sorted and duplicate free.
type SchemaUse struct {
	Requests  []string // full method names using the schema as request
	Responses []string // full method names using the schema as response
	PartOf    []string // schema names embedding the schema
}

// Kind reports the schema classification. Method use wins over embedding.
func (u *SchemaUse) Kind() UseKind {
	switch {
	case len(u.Requests) > 0 || len(u.Responses) > 0:
		return UseActivity
	case len(u.PartOf) > 0:
		return UsePart
	}
	return UseOrphan
}

// DisplayTitle returns the API title, falling back to its name.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Canonical returns the canonical API name, falling back to title then name.
func (d *Document) Canonical() string {
	if d.CanonicalName != "" {
		return d.CanonicalName
	}
	return d.DisplayTitle()
}

// Use returns where the named schema appears. It returns an empty use for
// unknown names so callers can classify unconditionally.
func (d *Document) Use(schema string) *SchemaUse {
	if u, ok := d.use[schema]; ok {
		return u
	}
	return &SchemaUse{}
}

// Scopes returns every scope the document accepts, sorted by URL.
func (d *Document) Scopes() []Scope { return d.scopes }

// HasMediaUpload reports whether any method supports media upload.
func (d *Document) HasMediaUpload() bool { return d.upload }

// HasMediaDownload reports whether any method supports media download.
func (d *Document) HasMediaDownload() bool { return d.download }

// SortedSchemas returns the named schemas sorted by name.
func (d *Document) SortedSchemas() []*Schema { return sortSchemas(d.Schemas) }

// SortedParameters returns the standard parameters sorted by name.
func (d *Document) SortedParameters() []*Schema { return sortSchemas(d.Parameters) }

// SortedMethods returns the API level methods sorted by name.
func (d *Document) SortedMethods() []*Method { return sortMethods(d.Methods) }

// SortedResources returns the top level resources sorted by name.
func (d *Document) SortedResources() []*Resource { return sortResources(d.Resources) }

// SortedMethods returns the resource's methods sorted by name.
func (r *Resource) SortedMethods() []*Method { return sortMethods(r.Methods) }

// SortedResources returns the sub-resources sorted by name.
func (r *Resource) SortedResources() []*Resource { return sortResources(r.Resources) }

// SortedParameters returns the method's parameters sorted by name.
func (m *Method) SortedParameters() []*Schema { return sortSchemas(m.Parameters) }

// SortedProperties returns the schema's properties sorted by name, each with
// its Name filled from the property key.
func (s *Schema) SortedProperties() []*Schema { return sortSchemas(s.Properties) }

// Walk visits every method depth-first, API level methods before resources,
// resources and methods each in sorted name order. path holds the resource
// names leading to the method and is shared between calls; callers must copy
// it to retain it.
func (d *Document) Walk(fn func(path []string, m *Method)) {
	for _, m := range d.SortedMethods() {
		fn(nil, m)
	}
	var path []string
	var walk func(r *Resource)
	walk = func(r *Resource) {
		path = append(path, r.Name)
		for _, m := range r.SortedMethods() {
			fn(path, m)
		}
		for _, sub := range r.SortedResources() {
			walk(sub)
		}
		path = path[:len(path)-1]
	}
	for _, r := range d.SortedResources() {
		walk(r)
	}
}

func sortSchemas(m map[string]*Schema) []*Schema {
	s := make([]*Schema, 0, len(m))
	for name, sc := range m {
		if sc.Name == "" {
			sc.Name = name
		}
		s = append(s, sc)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	return s
}

func sortMethods(m map[string]*Method) []*Method {
	s := make([]*Method, 0, len(m))
	for name, mt := range m {
		if mt.Name == "" {
			mt.Name = name
		}
		s = append(s, mt)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	return s
}

func sortResources(m map[string]*Resource) []*Resource {
	s := make([]*Resource, 0, len(m))
	for name, r := range m {
		if r.Name == "" {
			r.Name = name
		}
		s = append(s, r)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	return s
}
