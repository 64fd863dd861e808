// Command discogen-gen-echo is a discogen plugin that writes a short summary
// of the document it receives. It exists to exercise the plugin protocol.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

type request struct {
	Document struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Version  string `json:"version"`
		Revision string `json:"revision"`
	} `json:"document"`
	Options   map[string]interface{} `json:"options"`
	OutputDir string                 `json:"output_dir"`
}

type response struct {
	Files []file `json:"files"`
	Error string `json:"error,omitempty"`
}

type file struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatal(err)
	}

	content := fmt.Sprintf("api: %s\nname: %s\nversion: %s\nrevision: %s\noptions: %d\n",
		req.Document.ID, req.Document.Name, req.Document.Version, req.Document.Revision, len(req.Options))

	resp := response{
		Files: []file{{Name: "echo.txt", Content: content}},
	}
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		log.Fatal(err)
	}
}
