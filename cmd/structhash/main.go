package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	structhash "github.com/mattkeenan/structhash/pkg"
)

type arguments struct {
	Hasher    string
	Base      string
	Types     bool
	JSON      bool
	Blocksize string
	Stride    int
	MaxBytes  int64
	Overrides []string
	Targets   []string
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	if os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help" {
		showHelp()
		return
	}

	if os.Args[1] == "--list-hashers" {
		for _, name := range structhash.AvailableHashers() {
			fmt.Println(name)
		}
		return
	}

	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "structhash: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(args.Overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "structhash: %v\n", err)
		os.Exit(1)
	}

	if err := run(args, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "structhash: %v\n", err)
		os.Exit(1)
	}
}

func parseArguments(argv []string) (*arguments, error) {
	args := &arguments{Stride: 0, MaxBytes: structhash.NoLimit}
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--types":
			args.Types = true
		case arg == "--json":
			args.JSON = true
		case arg == "--verbose" || arg == "-v":
			structhash.SetVerboseLevel(structhash.GetVerboseLevel() + 1)
		case strings.HasPrefix(arg, "--debug="):
			structhash.SetDebugFlags(strings.TrimPrefix(arg, "--debug="))
		case arg == "--hasher", arg == "--base", arg == "--blocksize", arg == "--stride", arg == "--maxbytes", arg == "--override":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			value := argv[i]
			switch arg {
			case "--hasher":
				args.Hasher = value
			case "--base":
				args.Base = value
			case "--blocksize":
				args.Blocksize = value
			case "--stride":
				stride, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("invalid stride %q: %w", value, err)
				}
				args.Stride = stride
			case "--maxbytes":
				maxBytes, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid maxbytes %q: %w", value, err)
				}
				args.MaxBytes = maxBytes
			case "--override":
				args.Overrides = append(args.Overrides, value)
			}
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option %s", arg)
		default:
			args.Targets = append(args.Targets, arg)
		}
		i++
	}
	if len(args.Targets) == 0 {
		return nil, fmt.Errorf("no files or values to hash")
	}
	return args, nil
}

func loadConfig(overrides []string) (*structhash.Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// No user config dir (rare); run on built-in defaults.
		return nil, nil
	}
	cfg, err := structhash.LoadConfig(filepath.Join(configDir, "structhash"))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args *arguments, cfg *structhash.Config) error {
	fileOpts := structhash.DefaultFileOptions()
	hasher := ""
	base := ""
	if cfg != nil {
		opts, err := cfg.FileOptions()
		if err != nil {
			return err
		}
		fileOpts = opts
		hasher = opts.Hasher
		base = opts.Base
	}
	if args.Hasher != "" {
		hasher = args.Hasher
	}
	if args.Base != "" {
		base = args.Base
	}
	if args.Blocksize != "" {
		blocksize, err := structhash.ParseHumanSize(args.Blocksize)
		if err != nil {
			return err
		}
		fileOpts.Blocksize = blocksize
	}
	if args.Stride > 0 {
		fileOpts.Stride = args.Stride
	}
	if args.MaxBytes != structhash.NoLimit {
		fileOpts.MaxBytes = args.MaxBytes
	}
	fileOpts.Hasher = hasher
	fileOpts.Base = base

	for _, target := range args.Targets {
		var digest string
		var err error
		if args.JSON {
			var value any
			if jerr := json.Unmarshal([]byte(target), &value); jerr != nil {
				return fmt.Errorf("invalid JSON value %q: %w", target, jerr)
			}
			digest, err = structhash.HashData(value, &structhash.Options{
				Hasher:       hasher,
				Base:         base,
				IncludeTypes: args.Types,
			})
		} else {
			digest, err = structhash.HashFile(target, fileOpts)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", digest, target)
	}
	return nil
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: structhash [options] <files...>\n")
	fmt.Fprintf(os.Stderr, "       structhash --json [options] <values...>\n")
	fmt.Fprintf(os.Stderr, "Try 'structhash --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("structhash - deterministic structural and file hashing\n\n")
	fmt.Printf("Usage: structhash [options] <files...>\n")
	fmt.Printf("       structhash --json [options] <values...>\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  --hasher NAME     Hash algorithm (see --list-hashers)\n")
	fmt.Printf("  --base NAME       Output base: hex, abc, alphanum, dec\n")
	fmt.Printf("  --types           Include type tags in structural hashing\n")
	fmt.Printf("  --json            Treat arguments as JSON values, not file paths\n")
	fmt.Printf("  --blocksize SIZE  File read chunk size, e.g. 1M, 64K\n")
	fmt.Printf("  --stride N        Sample every Nth block of the file\n")
	fmt.Printf("  --maxbytes N      Cap total hashed bytes at N\n")
	fmt.Printf("  --override K:V    Config override, e.g. default:sha256\n")
	fmt.Printf("  --list-hashers    Print available algorithm names\n")
	fmt.Printf("  --verbose, -v     Increase verbosity (repeatable)\n")
	fmt.Printf("  --debug=FLAGS     Enable debug flags\n")
	fmt.Printf("  --help, -h        Show this help\n")
}
