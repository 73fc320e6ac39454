package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// ParseTemplate parses a page template from the embedded filesystem.
func ParseTemplate(name string) (*template.Template, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(sub, name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

func FileServerHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("Failed to create static sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
