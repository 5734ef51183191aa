package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	html "github.com/terawatthour/strict-html"
)

var errCheckFailed = errors.New("one or more inputs failed to parse")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	format  string
	indent  int
	verbose bool

	cfg    Config
	logger *slog.Logger
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil && !errors.Is(err, errCheckFailed) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "strict-html",
		Short: "Strict markup tokenizer and tree builder",
		Long: `strict-html reads a restricted, XML-like markup and either dumps its
tokens or tree, re-renders it, or only checks that it is well formed.

Input is read from the named file, or from stdin when the file is "-" or
omitted. Anything outside the grammar is rejected with a line:column
position; there is no error recovery.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file with format and indent defaults")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", formatJSON, "output format for dumps: json or yaml")
	root.PersistentFlags().IntVar(&a.indent, "indent", 2, "indentation width for dumps")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(a.tokensCmd(), a.treeCmd(), a.fmtCmd(), a.checkCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = a.format
	}
	if cmd.Flags().Changed("indent") {
		cfg.Indent = a.indent
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.Debug("configuration loaded", "config", a.cfgFile, "format", cfg.Format, "indent", cfg.Indent)
	return nil
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, markup, err := a.read(args)
			if err != nil {
				return err
			}

			start := time.Now()
			tokens, err := html.Tokenize(markup)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.logger.Debug("tokenized", "input", name, "tokens", len(tokens), "elapsed", time.Since(start))

			return encode(a.stdout, a.cfg, tokenViews(tokens))
		},
	}
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file]",
		Short: "Dump the document tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, nodes, err := a.parse(args)
			if err != nil {
				return err
			}
			return encode(a.stdout, a.cfg, nodeViews(nodes))
		},
	}
}

func (a *app) fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Re-render the markup with sorted attributes and self-closed empty elements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, nodes, err := a.parse(args)
			if err != nil {
				return err
			}
			if err := html.Render(a.stdout, nodes); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Report whether each input is well formed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			failed := 0
			for _, arg := range args {
				name, _, err := a.parse([]string{arg})
				if err != nil {
					failed++
					fmt.Fprintln(a.stdout, err)
					continue
				}
				fmt.Fprintf(a.stdout, "%s: ok\n", name)
			}

			if failed > 0 {
				a.logger.Debug("check finished", "inputs", len(args), "failed", failed)
				return errCheckFailed
			}
			return nil
		},
	}
}

func (a *app) parse(args []string) (string, []html.Node, error) {
	name, markup, err := a.read(args)
	if err != nil {
		return name, nil, err
	}

	start := time.Now()
	nodes, err := html.Parse(markup)
	if err != nil {
		return name, nil, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Debug("parsed", "input", name, "nodes", len(nodes), "elapsed", time.Since(start))
	return name, nodes, nil
}

func (a *app) read(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(a.stdin); err != nil {
			return "<stdin>", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		a.logger.Debug("read input", "input", "<stdin>", "bytes", buf.Len())
		return "<stdin>", buf.String(), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return args[0], "", fmt.Errorf("failed to read input: %w", err)
	}
	a.logger.Debug("read input", "input", args[0], "bytes", len(data))
	return args[0], string(data), nil
}
