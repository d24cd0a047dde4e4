// Command scenectl inspects scene containers and loads them into an engine.
//
//	scenectl inspect scenes.mc
//	scenectl symbols scenes.mc
//	scenectl browse scenes.mc
//	scenectl load -frames 3 scenes.mc
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/scene-runtime/abi/native"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/linker"
	"github.com/wippyai/scene-runtime/loader"
)

const usage = `Usage: scenectl [-config file] [-v] <command> [flags] <file.mc>

Commands:
  inspect   print the records of a container
  symbols   list external symbols and check them against the host
  browse    interactive container browser
  load      load the container into an engine and render frames offscreen
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scenectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile = fs.String("config", "", "Configuration file (default "+config.DefaultFile+" if present)")
		verbose    = fs.Bool("v", false, "Verbose logging")
	)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, *verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()
	setPackageLoggers(logger)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "inspect":
		path, err := fileArg(cmd, rest, stderr)
		if err != nil {
			return err
		}
		f, err := readContainer(path)
		if err != nil {
			return err
		}
		return inspect(stdout, f, isTerminal(stdout))

	case "symbols":
		path, err := fileArg(cmd, rest, stderr)
		if err != nil {
			return err
		}
		f, err := readContainer(path)
		if err != nil {
			return err
		}
		missing := checkSymbols(stdout, f, availableSymbols(cfg))
		if missing > 0 {
			return fmt.Errorf("%d unresolved symbols", missing)
		}
		return nil

	case "browse":
		path, err := fileArg(cmd, rest, stderr)
		if err != nil {
			return err
		}
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("browse needs a terminal")
		}
		f, err := readContainer(path)
		if err != nil {
			return err
		}
		return runBrowser(path, f)

	case "load":
		lf := flag.NewFlagSet("load", flag.ContinueOnError)
		lf.SetOutput(stderr)
		frames := lf.Int("frames", 1, "Frames to update and render")
		width := lf.Int("width", 640, "Framebuffer width")
		height := lf.Int("height", 480, "Framebuffer height")
		if err := lf.Parse(rest); err != nil {
			return err
		}
		if lf.NArg() != 1 {
			return fmt.Errorf("load: expected one container file")
		}
		return runPreview(stdout, cfg, logger, previewOptions{
			path:   lf.Arg(0),
			frames: *frames,
			width:  *width,
			height: *height,
		})

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func fileArg(cmd string, args []string, stderr io.Writer) (string, error) {
	if len(args) != 1 {
		fmt.Fprint(stderr, usage)
		return "", fmt.Errorf("%s: expected one container file", cmd)
	}
	return args[0], nil
}

// loadConfig reads path, or the default file when path is empty and the
// default exists.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			return config.Default(), nil
		}
		path = config.DefaultFile
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

// setPackageLoggers routes the loggers of the runtime packages through
// logger. The engine gets its logger as an option.
func setPackageLoggers(logger *zap.Logger) {
	linker.SetLogger(logger.Named("linker"))
	loader.SetLogger(logger.Named("loader"))
	native.SetLogger(logger.Named("native"))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
