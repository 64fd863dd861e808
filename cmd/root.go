package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"text/scanner"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type discogenCmd struct {
	*baseCmd
}

func (c *CommandLine) newDiscogenCmd(gens []genConfig, fs afero.Fs, prefix string) *discogenCmd {
	geners := new([]*genFlag)
	dirs := new([]string)
	fp := &fparser{Scanner: new(scanner.Scanner)}

	cmd := &cobra.Command{
		Use:   "discogen",
		Short: "A Google API discovery document compiler",
		Long: `discogen turns the discovery documents published by Google REST APIs into
the documentation artifacts of a generated client library: reference pages,
mkdocs site configs and README boilerplate.

Generators are specified by using a *_out flag. The argument given to this
type of flag can be either:
	1) *_out=some/directory/to/output/file(s)/to
	2) *_out=comma=separated,key=val,generator=option,pairs=then:some/directory/to/output/file(s)/to

An additional flag, *_opt, can be used to pass options to a generator. The
argument given to this type of flag is the same format as the *_opt
key=value pairs above.`,
		Example:            "discogen -I specs --doc_out ./docs --mkdocs_out . --readme_out . books-v1.json",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			registerPluginFlags(cmd.Flags(), prefix, args, geners, dirs, fp)

			if err := cmd.Flags().Parse(args); err != nil {
				return err
			}

			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			if err = initLogger(verbose); err != nil {
				return err
			}

			preRunE := chainPreRunEs(
				validateFilenames,
				initGenDirs(fs, dirs),
			)
			if err = preRunE(cmd, cmd.Flags().Args()); err != nil {
				return err
			}

			return root(fs, geners)(cmd, cmd.Flags().Args())
		},
	}

	flags := cmd.Flags()
	flags.StringSliceP("import_path", "I", []string{"."}, `Specify the directory in which to search for
specs.  May be specified multiple times;
directories will be searched in order.  If not
given, the current working directory is used.`)
	flags.BoolP("verbose", "v", false, "Output logging")

	for _, g := range gens {
		opts := make(map[string]interface{})

		flags.Var(&genFlag{
			Generator: g.g,
			opts:      opts,
			outDir:    new(string),
			geners:    geners,
			dirs:      dirs,
			fp:        fp,
		}, g.name, g.help)

		if g.opt != "" {
			flags.Var(&genFlag{opts: opts, fp: fp, isOpt: true}, g.opt, "Pass additional options to the generator.")
		}
	}

	cmd.SetUsageTemplate(usageTmpl)

	return &discogenCmd{&baseCmd{Command: cmd}}
}

// registerPluginFlags registers any unknown *_out and *_opt flags found in
// args as plugin generators. Plugins must have been enabled with a prefix.
func registerPluginFlags(flags *pflag.FlagSet, prefix string, args []string, geners *[]*genFlag, dirs *[]string, fp *fparser) {
	if prefix == "" {
		return
	}

	popts := make(map[string]map[string]interface{})
	optsFor := func(name string) map[string]interface{} {
		opts, ok := popts[name]
		if !ok {
			opts = make(map[string]interface{})
			popts[name] = opts
		}
		return opts
	}

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if i := strings.Index(name, "="); i > -1 {
			name = name[:i]
		}

		isOut := strings.HasSuffix(name, "_out")
		isOpt := strings.HasSuffix(name, "_opt")
		if !isOut && !isOpt || flags.Lookup(name) != nil {
			continue
		}

		pname := name[:len(name)-len("_out")]
		if isOpt {
			flags.Var(&genFlag{opts: optsFor(pname), fp: fp, isOpt: true}, name, "")
			continue
		}

		flags.Var(&genFlag{
			Generator: &pluginGenerator{Name: pname, Prefix: prefix},
			opts:      optsFor(pname),
			outDir:    new(string),
			geners:    geners,
			dirs:      dirs,
			fp:        fp,
		}, name, fmt.Sprintf("Invoke the %s%s plugin.", prefix, pname))
	}
}

// initLogger installs the global zap logger. Non verbose runs only log
// errors.
func initLogger(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)
	return nil
}

type genCtx struct {
	fs  afero.Fs
	dir string
}

func (ctx *genCtx) Open(name string) (io.WriteCloser, error) {
	return ctx.fs.OpenFile(filepath.Join(ctx.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func root(fs afero.Fs, geners *[]*genFlag) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) (err error) {
		if len(cmd.Flags().Args()) == 0 || cmd.Flags().Lookup("help").Changed {
			return cmd.Help()
		}

		importPaths, err := cmd.Flags().GetStringSlice("import_path")
		if err != nil {
			return
		}

		// Parse specs
		docs, err := parseInputFiles(fs, importPaths, cmd.Flags().Args())
		if err != nil {
			return
		}

		// Run artifact generators
		return generate(context.Background(), fs, *geners, docs)
	}
}

// generate runs every selected generator over every document. Pairs run
// concurrently; the backends serialize internally, so one generator instance
// may serve all documents. When more than one document is generated, each
// document's artifacts land in a package named subdirectory of the
// generator's out dir.
func generate(ctx context.Context, fs afero.Fs, geners []*genFlag, docs []*disco.Document) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, gener := range geners {
		gener := gener
		for _, doc := range docs {
			doc := doc
			dir := *gener.outDir
			if len(docs) > 1 {
				dir = filepath.Join(dir, disco.PkgName(doc.Name, doc.Version))
				if err := fs.MkdirAll(dir, 0755); err != nil {
					return err
				}
			}

			ctx := gen.WithContext(gctx, &genCtx{fs: fs, dir: dir})

			g.Go(func() error {
				zap.L().Debug("running generator",
					zap.String("doc", doc.ID),
					zap.String("dir", dir))

				return gener.Generate(ctx, doc, gener.opts)
			})
		}
	}

	return g.Wait()
}

// parseInputFiles parses all the discovery documents named by the command
// line args, in a deterministic order.
func parseInputFiles(fs afero.Fs, importPaths []string, args []string) ([]*disco.Document, error) {
	docMap := make(map[string]*disco.Document, len(args))
	for _, filename := range args {
		f, err := openFile(fs, importPaths, filename)
		if err != nil {
			return nil, err
		}

		name := filepath.Base(filename)
		doc, err := disco.ReadDocument(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}

		zap.L().Info("parsed discovery document",
			zap.String("name", name),
			zap.String("api", doc.ID))

		docMap[name] = doc
	}

	names := make([]string, 0, len(docMap))
	for name := range docMap {
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]*disco.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, docMap[name])
	}

	return docs, nil
}

// openFile is just a helper for opening files
func openFile(fs afero.Fs, importPaths []string, filename string) (f afero.File, err error) {
	// Check if filename if Abs
	var exists bool
	if !filepath.IsAbs(filename) {
		for _, iPath := range importPaths {
			fname := filepath.Join(iPath, filename)
			exists, err = afero.Exists(fs, fname)
			if err != nil {
				return
			}

			if exists {
				filename = fname
				break
			}
		}
	}

	f, err = fs.Open(filename)
	return
}
