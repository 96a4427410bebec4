//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

func command(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Build builds the nagcheck binary.
func Build() error {
	mg.Deps(Generate)
	fmt.Println("Building...")
	return command("go", "build", "-o", "nagcheck", "./cmd/nagcheck").Run()
}

// Generate regenerates the Status string table.
func Generate() error {
	fmt.Println("Generating...")
	return command("go", "generate", "./...").Run()
}

// Vet runs go vet on all go files.
func Vet() error {
	fmt.Println("Vetting...")
	return command("go", "vet", "./...").Run()
}

// Test runs all unit tests.
func Test() error {
	mg.Deps(Vet)
	fmt.Println("Running tests...")
	return command("go", "test", "-race", "./...").Run()
}
