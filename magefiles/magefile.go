//go:build mage

// Package main contains Mage build targets for scholar-fetch developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories fetch runs write into.
var projectDirs = []string{
	"output",
	"archive",
	"metrics",
}

// Init creates the working directories used by the Fetch target.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "scholar-fetch"
	cmdPkg  = "./cmd/scholar-fetch"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Fetch builds the binary and runs one fetch of the configured profile,
// writing the document, the archive run and the metrics textfile under the
// Init directories.
func Fetch() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "fetch",
		"--output", filepath.Join("output", "publications.json"),
		"--archive-db", filepath.Join("archive", "scholar-archive.db"),
		"--metrics-file", filepath.Join("metrics", "scholar_fetch.prom"),
	)
}

// Stats prints Go production and test line counts and the word count of the
// repository's Markdown documents.
func Stats() error {
	var prodLines, testLines, docWords int
	err := walkSources(".", func(path string) error {
		switch {
		case strings.HasSuffix(path, "_test.go"):
			n, err := countLines(path)
			testLines += n
			return err
		case filepath.Ext(path) == ".go":
			n, err := countLines(path)
			prodLines += n
			return err
		case filepath.Ext(path) == ".md":
			n, err := countWords(path)
			docWords += n
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (Markdown):                %d\n", docWords)
	return nil
}

// walkSources calls fn for every regular file under root, skipping hidden
// directories, bin/ and directories starting with an underscore.
func walkSources(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path)
	})
}

// countLines counts the non-blank lines of a file.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// countWords counts whitespace-separated words in a file.
func countWords(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return len(strings.Fields(string(data))), nil
}
