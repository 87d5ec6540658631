//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName  = "gxhighlight"
	mainPackage = "./cmd/" + binaryName
	coverFile   = "coverage.out"
	coverHTML   = "coverage.html"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"tt":  Test.Tables,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"bt":  Bench.Tokenizer,
	"fz":  Fuzz.Default,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
	Fuzz  st.Namespace
)

// Build compiles bin/gxhighlight with version info. The embedded language
// tables under pkg/lang/languages count as sources.
func Build() error {
	output := filepath.Join("bin", binaryName)
	rebuild, err := target.Dir(output, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Printf("%s is up to date\n", output)
		return nil
	}
	fmt.Printf("Building %s...\n", output)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", output, mainPackage)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", coverFile, coverHTML} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install for the CLI.
func Install() error {
	fmt.Printf("Installing %s...\n", binaryName)
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPackage)
}

// Uninstall removes the binary that Install placed.
func Uninstall() error {
	binPath, err := installedBinary()
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("%s is not installed\n", binaryName)
			return nil
		}
		return fmt.Errorf("remove %s: %w", binPath, err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps downloads and tidies module dependencies.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders the test coverage report to coverage.html. Set
// COVERAGE_OPEN=1 to open it afterwards.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html="+coverFile, "-o", coverHTML); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", coverHTML)
	if os.Getenv("COVERAGE_OPEN") == "" {
		return nil
	}
	return sh.RunV("open", coverHTML)
}

// Default runs every test with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs every test with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Tables checks that every built-in language table loads, compiles and
// covers its sample input.
func (Test) Tables() error {
	fmt.Println("Checking built-in language tables...")
	return sh.RunV("go", "test",
		"-run", "Builtin|EveryBuiltin|Warm",
		"./pkg/lang/", "./pkg/registry/",
	)
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", procs,
		"-parallel", procs,
		"./...",
		"-coverprofile="+coverFile,
		"-covermode=atomic",
	)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without modifying files.
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	fmt.Println("✓ formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs the checks a pull request must pass.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	files := []string{"go.mod", "go.sum"}

	before, err := readAll(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll(files)
	if err != nil {
		return err
	}

	for i, name := range files {
		if !bytes.Equal(before[i], after[i]) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// releasePlatforms are the GOOS/GOARCH pairs the CLI ships for.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64", "freebsd/arm64",
	"openbsd/amd64", "netbsd/amd64",
}

// Cross compiles the CLI for every release platform without cgo.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPackage); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Printf("✓ %d platforms build\n", len(releasePlatforms))
	return nil
}

// Default runs every benchmark in the module.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Tokenizer benchmarks the scanning hot path: the priority tokenizer, the
// pattern cache, per-language dispatch and detection. BENCH_COUNT sets -count.
func (Bench) Tokenizer() error {
	fmt.Println("Running tokenizer benchmarks...")
	return sh.RunV("go", "test",
		"-run=^$",
		"-bench=.", "-benchmem",
		"-count", cmp.Or(os.Getenv("BENCH_COUNT"), "5"),
		"./pkg/highlight/", "./pkg/pattern/", "./pkg/registry/", "./pkg/langdetect/",
	)
}

// fuzzTargets lists the fuzz tests by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/csvscan/", "FuzzScan"},
	{"./pkg/fsutil/", "FuzzWriteAtomicReadInput"},
}

// Default runs every fuzz test for FUZZ_TIME each (default 30s).
func (Fuzz) Default() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s in %s for %s...\n", ft.name, ft.pkg, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime", fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

func readAll(paths []string) ([][]byte, error) {
	contents := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		contents = append(contents, data)
	}
	return contents, nil
}

// gitOutput returns the trimmed output of a git command, or "" on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into package main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// installedBinary returns where go install places the CLI.
func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binaryName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binaryName), nil
}
