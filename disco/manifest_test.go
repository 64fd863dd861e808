package disco

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "apis.yaml", []byte(`spec_dir: specs
apis:
  - name: books
    version: v1
  - name: urlshortener
    version: v1
    title: URL Shortener
    discovery_rest_url: https://urlshortener.example.com/discovery/rest
`), 0644))

	m, err := ReadManifest(fs, "apis.yaml")
	require.NoError(t, err)

	assert.Equal(t, "specs", m.SpecDir)
	require.Len(t, m.APIs, 2)
	assert.Equal(t, "https://www.googleapis.com/discovery/v1/apis/books/v1/rest", m.APIs[0].URL())
	assert.Equal(t, "https://urlshortener.example.com/discovery/rest", m.APIs[1].URL())
	assert.Equal(t, "URL Shortener", m.APIs[1].Title)
}

func TestReadManifest_Errors(t *testing.T) {
	testCases := []struct {
		Name string
		src  string
	}{
		{
			Name: "UnknownKey",
			src:  "apis:\n  - name: books\n    version: v1\n    url: https://example.com\n",
		},
		{
			Name: "MissingVersion",
			src:  "apis:\n  - name: books\n",
		},
		{
			Name: "NotYAML",
			src:  "apis: [}\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "apis.yaml", []byte(testCase.src), 0644))

			_, err := ReadManifest(fs, "apis.yaml")
			assert.Error(t, err)
		})
	}
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(afero.NewMemMapFs(), "nope.yaml")
	assert.Error(t, err)
}

func TestRestURL(t *testing.T) {
	assert.Equal(t, "https://www.googleapis.com/discovery/v1/apis/books/v1/rest", RestURL("books", "v1"))
}
