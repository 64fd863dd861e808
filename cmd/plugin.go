package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
	"go.uber.org/zap"
)

// pluginRequest is the JSON message a plugin reads from stdin.
type pluginRequest struct {
	Document  *disco.Document        `json:"document"`
	Options   map[string]interface{} `json:"options,omitempty"`
	OutputDir string                 `json:"output_dir,omitempty"`
}

// pluginResponse is the JSON message a plugin writes to stdout. Files are
// written into the plugin's out dir by discogen, not by the plugin.
type pluginResponse struct {
	Files []pluginFile `json:"files"`
	Error string       `json:"error,omitempty"`
}

type pluginFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// pluginGenerator runs an external generator executable, Prefix+Name.
type pluginGenerator struct {
	Name   string
	Prefix string
}

func (g *pluginGenerator) Generate(ctx context.Context, doc *disco.Document, opts map[string]interface{}) (err error) {
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: doc.Name,
				GenName: g.Name,
				Msg:     err.Error(),
			}
		}
	}()

	gCtx := gen.Context(ctx)

	req := pluginRequest{
		Document: doc,
		Options:  opts,
	}
	if c, ok := gCtx.(*genCtx); ok {
		req.OutputDir = c.dir
	}

	var in, out, errb bytes.Buffer
	if err = json.NewEncoder(&in).Encode(req); err != nil {
		return
	}

	pluginName := g.Prefix + g.Name
	zap.L().Debug("executing plugin", zap.String("name", pluginName))

	c := exec.CommandContext(ctx, pluginName)
	c.Stdin = &in
	c.Stdout = &out
	c.Stderr = &errb

	if err = c.Run(); err != nil {
		if msg := strings.TrimSpace(errb.String()); msg != "" {
			err = errors.New(msg)
		}
		return
	}

	var resp pluginResponse
	if err = json.Unmarshal(out.Bytes(), &resp); err != nil {
		return
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}

	for _, f := range resp.Files {
		w, ferr := gCtx.Open(f.Name)
		if ferr != nil {
			err = ferr
			return
		}

		_, err = w.Write([]byte(f.Content))
		w.Close()
		if err != nil {
			return
		}
	}
	return
}
