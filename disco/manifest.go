package disco

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DirectoryURL is the discovery service endpoint listing every public API.
const DirectoryURL = "https://www.googleapis.com/discovery/v1/apis"

// RestURL returns the discovery service endpoint for one API version.
func RestURL(name, version string) string {
	return fmt.Sprintf("%s/%s/%s/rest", DirectoryURL, name, version)
}

// A Manifest pins the APIs of a client library family, read by fetch.
type Manifest struct {
	SpecDir string        `yaml:"spec_dir,omitempty"`
	APIs    []ManifestAPI `yaml:"apis"`
}

// A ManifestAPI pins one API version, optionally overriding where its
// discovery document is fetched from.
type ManifestAPI struct {
	Name             string `yaml:"name"`
	Version          string `yaml:"version"`
	Title            string `yaml:"title,omitempty"`
	DiscoveryRestURL string `yaml:"discovery_rest_url,omitempty"`
}

// URL returns the discovery document URL for the api, preferring an explicit
// override.
func (a ManifestAPI) URL() string {
	if a.DiscoveryRestURL != "" {
		return a.DiscoveryRestURL
	}
	return RestURL(a.Name, a.Version)
}

// ReadManifest loads a manifest. Unknown keys and entries missing a name or
// version are errors.
func ReadManifest(fs afero.Fs, name string) (*Manifest, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("disco: opening manifest: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	m := new(Manifest)
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("disco: parsing manifest %s: %w", name, err)
	}
	for i, a := range m.APIs {
		if a.Name == "" || a.Version == "" {
			return nil, fmt.Errorf("disco: manifest %s: apis[%d]: name and version are required", name, i)
		}
	}
	return m, nil
}
