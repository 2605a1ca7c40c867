//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the querydesk binary into the bin/ directory.
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", "./bin/querydesk", "./cmd/querydesk")
}

// BuildNoCgo compiles querydesk without cgo. The DuckDB engine is unavailable in this build.
func BuildNoCgo() error {
	fmt.Println("Building without cgo...")
	return sh.RunWith(map[string]string{"CGO_ENABLED": "0"},
		"go", "build", "-o", "./bin/querydesk-nocgo", "./cmd/querydesk")
}

// Install copies the querydesk binary to /usr/local/bin.
func Install() error {
	mg.Deps(Build)
	fmt.Println("Installing...")
	return sh.Run("cp", "bin/querydesk", "/usr/local/bin/querydesk")
}

// Test runs all tests with the race detector and writes a coverage profile.
func Test() error {
	fmt.Println("Running Tests...")
	return sh.RunV("go", "test", "-race", "-cover", "-coverprofile=cover.out", "./...")
}

// TestNoCgo runs the tests with cgo disabled.
func TestNoCgo() error {
	fmt.Println("Running Tests without cgo...")
	return sh.RunWith(map[string]string{"CGO_ENABLED": "0"}, "go", "test", "./...")
}

// Clean removes the bin directory and coverage output.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	return os.RemoveAll("cover.out")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Check runs formatting and linting checks (fmt, vet).
func Check() error {
	mg.Deps(Fmt, Vet)
	return nil
}

// Fmt runs go fmt ./...
func Fmt() error {
	fmt.Println("Running go fmt...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet ./...
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.Run("go", "vet", "./...")
}
