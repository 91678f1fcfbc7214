//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "glossarymaker"
	mainPkg = "./cmd/glossarymaker"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the glossarymaker binary; cgo is needed for sqlite
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"}, "go", "build", "-o", binary, mainPkg)
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Integration runs the tests that call real APIs (needs GEMINI_API_KEY)
func Integration() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return sh.RunV("go", "test", "-run", "Integration", "-v", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", mainPkg)
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
