package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/rpncalc"
)

const replHelp = `  var x = expr          define a variable
  function f a b = expr define a function
  :vars                 list variables
  :funcs                list functions
  :quit                 exit`

// repl runs an interactive session until EOF or :quit.
func (s *session) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if s.cfg.History != "" {
		if f, err := os.Open(s.cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(s.cfg.History)
			if err != nil {
				s.log.WithError(err).Warn("could not save history")
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		line, err := ln.Prompt(s.cfg.Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if s.command(strings.TrimSpace(line)) {
				return nil
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.line(line)
		ln.AppendHistory(line)
	}
}

// command handles a REPL command. Returns true to exit.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":vars":
		for _, name := range s.ctx.Vars() {
			v, _ := s.ctx.Lookup(name)
			fmt.Fprintf(s.out, "%v = "+s.cfg.Format+"\n", name, v)
		}
	case ":funcs":
		for _, f := range s.ctx.Funcs() {
			fmt.Fprintln(s.out, f)
		}
		fmt.Fprintln(s.out, "builtin:", strings.Join(rpncalc.Builtins(), " "))
	case ":help":
		fmt.Fprintln(s.out, replHelp)
	default:
		fmt.Fprintln(s.out, "unknown command. Type :help for help or :quit to exit.")
	}
	return false
}
