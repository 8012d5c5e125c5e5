package main

import (
	"io"
	"os"
	"os/exec"

	graphviz "github.com/alnah/go-mdbook-graphviz"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin    io.Reader
	Stdout   io.Writer // Carries the book JSON when preprocessing
	Stderr   io.Writer // Logs, errors and usage
	Getenv   func(string) string
	Environ  func() []string
	LookPath func(string) (string, error)
	Renderer graphviz.Renderer // Overrides the configured command when set
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
	}
}

func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

func (e *Environment) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath(file)
	}
	return e.LookPath(file)
}
