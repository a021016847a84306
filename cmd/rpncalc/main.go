package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/rpncalc"
)

// errFailed reports that at least one non-interactive line failed. The
// failures themselves have already been printed.
var errFailed = errors.New("some lines failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		inname     string
		given      []string
	)
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "rpncalc [line...]",
		Short: "Evaluate arithmetic with variables and functions",
		Long: `rpncalc evaluates arithmetic expressions, variable declarations
("var x = 2 ^ 10"), and function declarations ("function f a b = a * b + 1").
Each argument is executed as one line. With no arguments and no input file,
rpncalc starts an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			s := newSession(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := s.prelude(given); err != nil {
				return err
			}
			switch {
			case len(args) > 0:
				return s.batch(args)
			case inname == "-":
				return s.script(os.Stdin)
			case inname != "":
				f, err := os.Open(inname)
				if err != nil {
					return err
				}
				defer f.Close()
				return s.script(f)
			default:
				return s.repl()
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path (default $HOME/.rpncalc.yaml)")
	flags.StringVarP(&inname, "file", "f", "", "execute each line of a file (- for stdin)")
	flags.StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	flags.String("fmt", "%g", "result formatting string")
	flags.Bool("echo", false, "print the grouping of each expression")
	flags.String("log-level", "warning", "log level (debug, info, warning, error)")
	flags.Int("max-depth", rpncalc.DefaultMaxDepth, "maximum function call depth")
	flags.String("history", "", "REPL history file")
	_ = v.BindPFlag("format", flags.Lookup("fmt"))
	_ = v.BindPFlag("echo", flags.Lookup("echo"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("max_depth", flags.Lookup("max-depth"))
	_ = v.BindPFlag("history", flags.Lookup("history"))
	return cmd
}

// session executes lines against one context and reports the results.
type session struct {
	cfg *config
	ctx *rpncalc.Context
	log *logrus.Logger
	out io.Writer
	err io.Writer
}

func newSession(cfg *config, out, errw io.Writer) *session {
	log := logrus.New()
	log.SetOutput(errw)
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &session{
		cfg: cfg,
		ctx: rpncalc.NewContext(rpncalc.MaxDepth(cfg.MaxDepth), rpncalc.Log(log)),
		log: log,
		out: out,
		err: errw,
	}
}

// prelude executes the configured prelude lines and --given definitions.
// Any failure is fatal.
func (s *session) prelude(given []string) error {
	for _, line := range s.cfg.Prelude {
		if _, err := s.ctx.Exec(line); err != nil {
			return fmt.Errorf("prelude %q: %w", line, err)
		}
		s.log.WithField("line", line).Info("prelude")
	}
	for _, g := range given {
		d := strings.SplitN(g, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, g)
		}
		line := "var " + strings.TrimSpace(d[0]) + " = " + strings.TrimSpace(d[1])
		if _, err := s.ctx.Exec(line); err != nil {
			return fmt.Errorf("setting %s: %w", strings.TrimSpace(d[0]), err)
		}
	}
	return nil
}

// line executes one line and prints its result or error. Blank lines do
// nothing. Returns false if the line failed.
func (s *session) line(src string) bool {
	if strings.TrimSpace(src) == "" {
		return true
	}
	toks, err := rpncalc.TokenizeString(src)
	if err != nil {
		s.fail(src, err)
		return false
	}
	if s.cfg.Echo && (len(toks) == 0 || toks[0].Kind != rpncalc.TokenKeyword) {
		s.echo(toks)
	}
	r, err := s.ctx.ExecTokens(toks)
	if err != nil {
		s.fail(src, err)
		return false
	}
	switch r.Kind {
	case rpncalc.ResultExpr:
		fmt.Fprintf(s.out, s.cfg.Format+"\n", r.Value)
	case rpncalc.ResultVar:
		fmt.Fprintf(s.out, "%v = "+s.cfg.Format+"\n", r.Name, r.Value)
	case rpncalc.ResultFunc:
		fmt.Fprintln(s.out, r.Func)
	}
	return true
}

func (s *session) echo(toks []rpncalc.Token) {
	rpn, err := rpncalc.ParseRPN(toks, s.ctx)
	if err != nil {
		// Evaluation reports it.
		return
	}
	t, err := rpncalc.BuildTree(rpn)
	if err != nil {
		fmt.Fprintf(s.out, "%s : ", rpncalc.FormatTokens(rpn))
		return
	}
	fmt.Fprintf(s.out, "%v : ", t)
}

func (s *session) fail(src string, err error) {
	s.log.WithFields(logrus.Fields{"line": src, "phase": rpncalc.Phase(err)}).Debug(err)
	fmt.Fprintln(s.err, err)
}

// batch executes each argument as a line.
func (s *session) batch(lines []string) error {
	ok := true
	for _, line := range lines {
		ok = s.line(line) && ok
	}
	if !ok {
		return errFailed
	}
	return nil
}

// script executes each line of r.
func (s *session) script(r io.Reader) error {
	sc := bufio.NewScanner(r)
	ok := true
	for sc.Scan() {
		ok = s.line(sc.Text()) && ok
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if !ok {
		return errFailed
	}
	return nil
}
