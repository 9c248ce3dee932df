// Package templates provides the embedded files devbed init writes into a repository.
package templates

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed all:files
var content embed.FS

// ReadFunc reads a template by name. It is a variable so tests can stub
// read failures.
var ReadFunc = readFile

// Read returns the contents of the named template.
func Read(name string) ([]byte, error) {
	return ReadFunc(name)
}

func readFile(name string) ([]byte, error) {
	return content.ReadFile(path.Join("files", name))
}

// Walk walks the named template directory. Paths passed to fn are relative
// to the template root and valid arguments for Read.
func Walk(dir string, fn fs.WalkDirFunc) error {
	sub, err := fs.Sub(content, "files")
	if err != nil {
		return err
	}
	return fs.WalkDir(sub, dir, fn)
}
