package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/discogen/discogen/disco"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type fetchCmd struct {
	*baseCmd
}

func (c *CommandLine) newFetchCmd() *fetchCmd {
	headers := make(http.Header)

	cmd := &cobra.Command{
		Use:   "fetch [apis]",
		Short: "Fetch discovery documents",
		Long: `fetch downloads the discovery documents generation runs on, so later runs
are offline and reproducible.

APIs are named as name:version pairs, e.g. books:v1. With --manifest the
pairs are read from a YAML manifest instead, and with --all every api listed
by the discovery directory is fetched. Documents are written to --spec_dir
as <name>-<version>.json.`,
		Example: "discogen fetch --spec_dir specs books:v1 drive:v3",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			if err = initLogger(verbose); err != nil {
				return err
			}

			return fetchRun(c.fs, cmd, args, &fetchClient{Client: http.DefaultClient}, headers)
		},
	}

	flags := cmd.Flags()
	flags.String("spec_dir", ".", "Directory to write discovery documents to.")
	flags.String("manifest", "", "Read the apis to fetch from a YAML manifest.")
	flags.Bool("all", false, "Fetch every api listed by the discovery directory.")
	flags.Bool("preferred", true, "Restrict --all to the preferred version of each api.")
	flags.String("directory_url", disco.DirectoryURL, "Discovery directory endpoint.")
	flags.Int("concurrency", 8, "Maximum concurrent downloads.")
	flags.Var(&headerFlag{value: &headers}, "header", "Additional HTTP headers, formatted as key=value pairs.")
	flags.BoolP("verbose", "v", false, "Output logging")

	return &fetchCmd{&baseCmd{Command: cmd}}
}

func fetchRun(fs afero.Fs, cmd *cobra.Command, args []string, client *fetchClient, headers http.Header) error {
	flags := cmd.Flags()

	specDir, err := flags.GetString("spec_dir")
	if err != nil {
		return err
	}
	manifest, err := flags.GetString("manifest")
	if err != nil {
		return err
	}
	all, err := flags.GetBool("all")
	if err != nil {
		return err
	}
	preferred, err := flags.GetBool("preferred")
	if err != nil {
		return err
	}
	dirURL, err := flags.GetString("directory_url")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("concurrency")
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var apis []disco.ManifestAPI
	switch {
	case all:
		if len(args) > 0 {
			return errors.New("discogen: fetch: --all takes no api arguments")
		}

		dir, err := client.directory(ctx, dirURL, preferred, headers)
		if err != nil {
			return err
		}
		for _, item := range dir.Items {
			apis = append(apis, disco.ManifestAPI{
				Name:             item.Name,
				Version:          item.Version,
				DiscoveryRestURL: item.DiscoveryRestURL,
			})
		}
	case manifest != "":
		m, err := disco.ReadManifest(fs, manifest)
		if err != nil {
			return err
		}
		if m.SpecDir != "" && !flags.Changed("spec_dir") {
			specDir = m.SpecDir
		}

		extra, err := parseAPIArgs(args)
		if err != nil {
			return err
		}
		apis = append(m.APIs, extra...)
	default:
		if apis, err = parseAPIArgs(args); err != nil {
			return err
		}
		if len(apis) == 0 {
			return cmd.Help()
		}
	}

	if err = fs.MkdirAll(specDir, 0755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, api := range apis {
		api := api
		g.Go(func() error {
			return client.download(ctx, fs, specDir, api, headers)
		})
	}

	return g.Wait()
}

// parseAPIArgs parses name:version pairs.
func parseAPIArgs(args []string) ([]disco.ManifestAPI, error) {
	apis := make([]disco.ManifestAPI, 0, len(args))
	for _, arg := range args {
		name, version, ok := strings.Cut(arg, ":")
		if !ok || name == "" || version == "" {
			return nil, fmt.Errorf("discogen: fetch: apis must be name:version pairs: %s", arg)
		}

		apis = append(apis, disco.ManifestAPI{Name: name, Version: version})
	}
	return apis, nil
}

// fetchClient wraps the http client the fetch command downloads through.
type fetchClient struct {
	*http.Client
}

// directory fetches the discovery directory list.
func (c *fetchClient) directory(ctx context.Context, url string, preferred bool, headers http.Header) (*disco.Directory, error) {
	if preferred {
		url += "?preferred=true"
	}

	zap.L().Info("fetching discovery directory", zap.String("url", url))

	body, err := c.get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("discogen: fetch directory: %w", err)
	}
	defer body.Close()

	return disco.ReadDirectory(body)
}

// download fetches one discovery document and writes it to dir as
// <name>-<version>.json. Bodies that do not parse as a discovery document,
// such as an HTML error page, are rejected before anything is written.
func (c *fetchClient) download(ctx context.Context, fs afero.Fs, dir string, api disco.ManifestAPI, headers http.Header) error {
	url := api.URL()

	zap.L().Info("fetching discovery document",
		zap.String("api", api.Name+":"+api.Version),
		zap.String("url", url))

	body, err := c.get(ctx, url, headers)
	if err != nil {
		return fmt.Errorf("discogen: fetch %s:%s: %w", api.Name, api.Version, err)
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("discogen: fetch %s:%s: %w", api.Name, api.Version, err)
	}

	if _, err = disco.ParseDocument(api.Name+":"+api.Version, b); err != nil {
		return err
	}

	name := filepath.Join(dir, fmt.Sprintf("%s-%s.json", api.Name, api.Version))
	if err = afero.WriteFile(fs, name, b, 0644); err != nil {
		return fmt.Errorf("discogen: fetch %s:%s: %w", api.Name, api.Version, err)
	}

	zap.L().Info("wrote discovery document", zap.String("file", name))
	return nil
}

func (c *fetchClient) get(ctx context.Context, url string, headers http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header = headers

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return resp.Body, nil
}
