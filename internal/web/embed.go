package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// embeddedDir returns the named top level directory of an embedded tree as http.FileSystem.
func embeddedDir(content embed.FS, dir string) http.FileSystem {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		// the directories are fixed at compile time
		panic(err)
	}

	return http.FS(sub)
}
