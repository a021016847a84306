package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func testSession(echo bool) (*session, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	cfg := &config{
		LogLevel: logrus.WarnLevel,
		MaxDepth: 100,
		Format:   "%g",
		Echo:     echo,
	}
	return newSession(cfg, &out, &errw), &out, &errw
}

func TestSessionBatch(t *testing.T) {
	s, out, errw := testSession(false)
	err := s.batch([]string{
		"var x = 2 ^ 10",
		"function f a b = a * b + 1",
		"",
		"f(x, 2)",
		"min(3, -4)",
	})
	if err != nil {
		t.Fatalf("batch failed: %v\n%s", err, errw)
	}
	want := "x = 1024\nfunction f a b = a * b + 1\n2049\n-4\n"
	if got := out.String(); got != want {
		t.Errorf("wrong output:\n\twant %q\n\tgot  %q", want, got)
	}
	if errw.Len() != 0 {
		t.Errorf("unexpected error output %q", errw)
	}
}

func TestSessionFailures(t *testing.T) {
	s, out, errw := testSession(false)
	err := s.batch([]string{"1 +", "2 * 3", "y", "1.2.3"})
	if !errors.Is(err, errFailed) {
		t.Errorf("want errFailed, got %v", err)
	}
	if got := out.String(); got != "6\n" {
		t.Errorf("wrong output %q", got)
	}
	lines := strings.Split(strings.TrimSpace(errw.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 error lines, got %q", errw)
	}
	for i, want := range []string{"not enough items", `unknown identifier "y"`, "unexpected '.'"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("error line %d %q does not mention %q", i, lines[i], want)
		}
	}
}

func TestSessionEcho(t *testing.T) {
	s, out, _ := testSession(true)
	if !s.line("1 + 2 * 3") {
		t.Fatal("line failed")
	}
	if !s.line("var a = 1") {
		t.Fatal("declaration failed")
	}
	want := "([1] + [(2) * (3)]) : 7\na = 1\n"
	if got := out.String(); got != want {
		t.Errorf("wrong output:\n\twant %q\n\tgot  %q", want, got)
	}
}

func TestSessionScript(t *testing.T) {
	s, out, errw := testSession(false)
	src := "var r = 2\n\nfunction area x = 3 * x ^ 2\narea r\n"
	if err := s.script(strings.NewReader(src)); err != nil {
		t.Fatalf("script failed: %v\n%s", err, errw)
	}
	want := "r = 2\nfunction area x = 3 * x ^ 2\n12\n"
	if got := out.String(); got != want {
		t.Errorf("wrong output:\n\twant %q\n\tgot  %q", want, got)
	}
}

func TestSessionPrelude(t *testing.T) {
	s, out, _ := testSession(false)
	s.cfg.Prelude = []string{"function double x = 2 * x"}
	if err := s.prelude([]string{"x=3", " y = x + 1 "}); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("prelude printed %q", out)
	}
	if !s.line("double y - x") {
		t.Fatal("line failed")
	}
	if got := out.String(); got != "5\n" {
		t.Errorf("wrong output %q", got)
	}

	for _, bad := range [][]string{{"x"}, {"x=("}, {"3=4"}} {
		s, _, _ := testSession(false)
		if err := s.prelude(bad); err == nil {
			t.Errorf("%q should fail", bad)
		}
	}
	s, _, _ = testSession(false)
	s.cfg.Prelude = []string{"var = 1"}
	if err := s.prelude(nil); err == nil {
		t.Error("bad prelude line should fail")
	}
}

func TestSessionCommand(t *testing.T) {
	s, out, _ := testSession(false)
	s.batch([]string{"var b = 2", "var a = 1", "function f = a"})
	out.Reset()
	if s.command(":vars") {
		t.Error(":vars exited")
	}
	if got := out.String(); got != "a = 1\nb = 2\n" {
		t.Errorf("wrong :vars output %q", got)
	}
	out.Reset()
	s.command(":funcs")
	want := "function f = a\nbuiltin: acos asin atan cos max min sin tan\n"
	if got := out.String(); got != want {
		t.Errorf("wrong :funcs output:\n\twant %q\n\tgot  %q", want, got)
	}
	out.Reset()
	s.command(":wat")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("wrong output for unknown command %q", out)
	}
	if !s.command(":quit") || !s.command(":Q") {
		t.Error(":quit did not exit")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "rpncalc.yaml")
	if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(viper.New(), "")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.LogLevel != logrus.WarnLevel || cfg.MaxDepth != 1000 || cfg.Prompt != "> " || cfg.Format != "%g" {
			t.Errorf("wrong defaults %+v", cfg)
		}
		if cfg.History != filepath.Join(home, ".rpncalc_history") {
			t.Errorf("wrong history %q", cfg.History)
		}
	})
	t.Run("file", func(t *testing.T) {
		name := writeConfig(t, `
log_level: debug
max_depth: 5
format: "%.2f"
history: /tmp/h
prelude:
  - var tau = 6.28
  - function half x = x / 2
`)
		cfg, err := loadConfig(viper.New(), name)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.LogLevel != logrus.DebugLevel || cfg.MaxDepth != 5 || cfg.Format != "%.2f" || cfg.History != "/tmp/h" {
			t.Errorf("wrong config %+v", cfg)
		}
		if len(cfg.Prelude) != 2 || cfg.Prelude[1] != "function half x = x / 2" {
			t.Errorf("wrong prelude %q", cfg.Prelude)
		}
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv("RPNCALC_MAX_DEPTH", "7")
		name := writeConfig(t, "max_depth: 5\n")
		cfg, err := loadConfig(viper.New(), name)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.MaxDepth != 7 {
			t.Errorf("environment did not override file: %d", cfg.MaxDepth)
		}
	})
	t.Run("bad", func(t *testing.T) {
		for _, body := range []string{"max_depth: 0\n", "log_level: loud\n", "max_depth: [\n"} {
			if cfg, err := loadConfig(viper.New(), writeConfig(t, body)); err == nil {
				t.Errorf("%q gave no error, got %+v", body, cfg)
			}
		}
		if _, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("missing explicit config gave no error")
		}
	})
}

func TestRootCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	name := writeConfig(t, "prelude:\n  - var k = 4\n")
	var out, errw bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs([]string{"--config", name, "--given", "n=2", "--fmt", "%.1f", "k ^ n", "max(k, n)"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v\n%s", err, errw.String())
	}
	if got := out.String(); got != "16.0\n4.0\n" {
		t.Errorf("wrong output %q", got)
	}

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs([]string{"--config", name, "1 / 0 * 0"})
	if err := cmd.Execute(); !errors.Is(err, errFailed) {
		t.Errorf("want errFailed, got %v", err)
	}
}
