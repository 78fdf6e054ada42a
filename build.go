//go:build ignore

// build.go - Arrears Report Build System
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, web, cli, test, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var (
	distDir = "dist"

	// Executable names (key = source dir name, value = output name)
	executables = map[string]string{
		"web":            "arrears-web",
		"arrears-report": "arrears-report",
	}

	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	switch *target {
	case "all":
		buildExecutable("arrears-report", *verbose)
		buildExecutable("web", *verbose)
	case "web":
		buildExecutable("web", *verbose)
	case "cli":
		buildExecutable("arrears-report", *verbose)
	case "test":
		runTests(*verbose)
	case "clean":
		clean()
	default:
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "     Arrears Report - Build System         " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func buildExecutable(name string, verbose bool) {
	exeName := executables[name]
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	printInfo(fmt.Sprintf("Building %s...", name))

	outputPath := filepath.Join(distDir, exeName)
	args := []string{"build", "-ldflags", "-s -w", "-o", outputPath, "./cmd/" + name}
	if verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Failed to build %s: %v", name, err))
		os.Exit(1)
	}

	if info, err := os.Stat(outputPath); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", exeName, sizeMB))
	}
}

func runTests(verbose bool) {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Go tests failed: %v", err))
		os.Exit(1)
	}
	printSuccess("All tests passed")
}

func clean() {
	printInfo("Cleaning build artifacts and logs...")
	for _, dir := range []string{distDir, "logs"} {
		if err := os.RemoveAll(dir); err != nil {
			printError(fmt.Sprintf("Failed to clean %s: %v", dir, err))
		}
	}
	printSuccess("Build artifacts cleaned")
}

func showHelp() {
	fmt.Println("Usage: go run build.go -target=TARGET [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  all    Build every executable (default)")
	fmt.Println("  web    Build the dashboard server")
	fmt.Println("  cli    Build the arrears-report command")
	fmt.Println("  test   Run go test -race ./...")
	fmt.Println("  clean  Remove dist/ and logs/")
}
