//go:build ignore

// build.go - SG Job Market Insight build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, dashboard, jobstats, snapshot, test, clean, help

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

	"github.com/pterm/pterm"
)

const module = "github.com/kurniaw/sg-job-market-insight"

// commands are built from cmd/<name> into dist/<name>
var commands = []string{"dashboard", "jobstats", "snapshot"}

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	pterm.DefaultHeader.Println("SG Job Market Insight build")
	start := time.Now()

	var err error
	switch *target {
	case "all":
		for _, name := range commands {
			if err = buildCommand(name, *verbose); err != nil {
				break
			}
		}
	case "dashboard", "jobstats", "snapshot":
		err = buildCommand(*target, *verbose)
	case "test":
		err = runTests(*verbose)
	case "clean":
		err = os.RemoveAll("dist")
	case "help":
		showHelp()
		return
	default:
		pterm.Error.Printfln("Unknown target: %s", *target)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Success.Printfln("Target %s finished in %s", *target, time.Since(start).Round(time.Millisecond))
}

func buildCommand(name string, verbose bool) error {
	output := filepath.Join("dist", name)
	if runtime.GOOS == "windows" {
		output += ".exe"
	}

	args := []string{"build", "-trimpath", "-ldflags", ldflags(), "-o", output}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./cmd/"+name)

	pterm.Info.Printfln("Building %s", output)
	return run("go", args...)
}

// ldflags stamps the build metadata reported by /api/version
func ldflags() string {
	vars := map[string]string{
		"BuildTime": time.Now().UTC().Format(time.RFC3339),
		"GitCommit": gitOutput("rev-parse", "--short", "HEAD"),
		"GitBranch": gitOutput("rev-parse", "--abbrev-ref", "HEAD"),
	}

	flags := []string{"-s", "-w"}
	for name, value := range vars {
		flags = append(flags, fmt.Sprintf("-X %s/pkg/contracts.%s=%s", module, name, value))
	}
	return strings.Join(flags, " ")
}

func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func runTests(verbose bool) error {
	args := []string{"test", "-race", "./..."}
	if verbose {
		args = append(args, "-v")
	}
	pterm.Info.Println("Running tests")
	return run("go", args...)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func showHelp() {
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Target", "Description"},
		{"all", "build every command into dist/"},
		{"dashboard", "build the HTTP dashboard API"},
		{"jobstats", "build the terminal report"},
		{"snapshot", "build the CSV to Parquet converter"},
		{"test", "run all tests with the race detector"},
		{"clean", "remove dist/"},
	}).Render()
}
