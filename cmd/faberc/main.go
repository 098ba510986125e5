// Command faberc compiles Faber source into C++, Rust, Python, Zig,
// TypeScript, or canonical Faber.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faberlang/faber/internal/cliui"
	"github.com/faberlang/faber/internal/compiler"
	"github.com/faberlang/faber/internal/config"
)

const version = "0.1.0"

var (
	flagTarget  string
	flagOutput  string
	flagForce   bool
	flagVerbose bool
	logger      *zap.Logger
)

func newLogger(verbose bool) *zap.Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func extFor(target string) string {
	switch target {
	case "cpp":
		return ".cpp"
	case "rs":
		return ".rs"
	case "py":
		return ".py"
	case "zig":
		return ".zig"
	case "ts":
		return ".ts"
	case "fab":
		return ".fab"
	default:
		return ".out"
	}
}

func defaultOutputPath(inputPath, target, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base + extFor(target)
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "faberc",
		Short:   "Compiler for the Faber source language",
		Long:    "faberc parses Faber source and emits equivalent C++, Rust, Python, Zig, TypeScript, or canonical Faber.",
		Version: version,
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose structured logging")
	root.AddCommand(buildCmd(), checkCmd(), fmtCmd(), targetsCmd())
	return root
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <file.fab>",
		Short: "Compile a Faber source file to the selected target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0])
		},
	}
	cmd.Flags().StringVarP(&flagTarget, "target", "t", "", "output target: cpp, rs, py, zig, ts, fab (default from faber.toml or \"fab\")")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path (default derived from input name and target)")
	cmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite the output file if it already exists")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.fab>",
		Short: "Parse, check, and lint a Faber source file without generating output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func fmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file.fab>",
		Short: "Pretty-print a Faber source file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing to stdout")
	return cmd
}

func targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the registered output targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := compiler.Targets()
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func runBuild(inputPath string) error {
	cfg, err := config.Load(&config.Config{
		Build: config.BuildConfig{DefaultTarget: flagTarget},
	})
	if err != nil {
		cliui.PrintError(err.Error())
		return err
	}
	target := cfg.Build.DefaultTarget

	out := cliui.NewBuildOutput(inputPath, target)
	out.PrintHeader(version)
	out.PrintBuildStart()

	logger.Debug("loaded configuration", zap.String("target", target), zap.String("strictness", string(cfg.Build.Strictness)))

	src, err := readSource(inputPath)
	if err != nil {
		out.PrintStep(cliui.Step{Name: "read", Status: cliui.StepError, Message: err.Error()})
		out.PrintSummary(false, err.Error())
		return err
	}
	out.PrintStep(cliui.Step{Name: "read", Status: cliui.StepSuccess})

	start := time.Now()
	res := compiler.Compile(src, target)
	elapsed := time.Since(start)

	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		msg := res.Diagnostics.Format(inputPath)
		out.PrintStep(cliui.Step{Name: "compile", Status: cliui.StepError, Duration: elapsed})
		out.PrintSummary(false, msg)
		logger.Error("compilation failed", zap.String("input", inputPath), zap.Int("errors", res.Diagnostics.ErrorCount()))
		return fmt.Errorf("compilation failed")
	}
	if res.Diagnostics != nil && res.Diagnostics.WarningCount() > 0 {
		out.PrintStep(cliui.Step{Name: "compile", Status: cliui.StepWarning, Duration: elapsed,
			Message: fmt.Sprintf("%d warning(s)", res.Diagnostics.WarningCount())})
		if cfg.Build.Strictness != config.StrictOff {
			msg := res.Diagnostics.Format(inputPath)
			out.PrintSummary(false, msg)
			return fmt.Errorf("warnings treated as errors under strictness %q", cfg.Build.Strictness)
		}
	} else {
		out.PrintStep(cliui.Step{Name: "compile", Status: cliui.StepSuccess, Duration: elapsed})
	}

	outPath := flagOutput
	if outPath == "" {
		outPath = defaultOutputPath(inputPath, target, cfg.Output.Dir)
	}

	if !flagForce && !cfg.Output.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			writeErr := fmt.Errorf("%s already exists (use -f to overwrite)", outPath)
			out.PrintStep(cliui.Step{Name: "write", Status: cliui.StepError, Message: writeErr.Error()})
			out.PrintSummary(false, writeErr.Error())
			return writeErr
		}
	}

	if err := os.WriteFile(outPath, []byte(res.Source), 0644); err != nil {
		out.PrintStep(cliui.Step{Name: "write", Status: cliui.StepError, Message: err.Error()})
		out.PrintSummary(false, err.Error())
		return err
	}
	out.PrintStep(cliui.Step{Name: "write", Status: cliui.StepSuccess, Message: outPath})
	out.PrintSummary(true, "")
	return nil
}

func runCheck(inputPath string) error {
	src, err := readSource(inputPath)
	if err != nil {
		cliui.PrintError(err.Error())
		return err
	}
	diags := compiler.Lint(src)
	if diags.Count() == 0 {
		cliui.PrintInfo(fmt.Sprintf("%s: no issues found", inputPath))
		return nil
	}
	fmt.Println(diags.Format(inputPath))
	if diags.HasErrors() {
		return fmt.Errorf("%d error(s)", diags.ErrorCount())
	}
	return nil
}

func runFmt(inputPath string, write bool) error {
	src, err := readSource(inputPath)
	if err != nil {
		cliui.PrintError(err.Error())
		return err
	}
	res := compiler.Compile(src, "fab")
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		fmt.Println(res.Diagnostics.Format(inputPath))
		return fmt.Errorf("cannot format %s: compilation errors", inputPath)
	}
	if write {
		return os.WriteFile(inputPath, []byte(res.Source), 0644)
	}
	fmt.Print(res.Source)
	return nil
}

func main() {
	root := rootCmd()
	cobra.OnInitialize(func() {
		logger = newLogger(flagVerbose)
	})
	if err := root.Execute(); err != nil {
		if logger != nil {
			logger.Sync()
		}
		os.Exit(1)
	}
	if logger != nil {
		logger.Sync()
	}
}
