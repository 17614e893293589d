package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/scriptexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, varsname, verb string
		with                   [][2]string
		echo, verbose          bool
		prec                   int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one statement per line (- for stdin)")
	flag.StringVar(&varsname, "vars", "", "YAML file mapping variable names to values")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=expr variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of numbers in bits")
	flag.BoolVar(&echo, "echo", false, "print evaluation order")
	flag.BoolVar(&verbose, "v", false, "log context diagnostics to stderr")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	lg := zerolog.Nop()
	if verbose {
		lg = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	ctx := scriptexpr.NewContext(
		scriptexpr.Prec(uint(prec)),
		scriptexpr.Logger(lg),
		scriptexpr.Funcs(scriptexpr.DefaultFuncs()...),
	)
	if varsname != "" {
		if err := loadVars(ctx, varsname); err != nil {
			log.Fatal(err)
		}
	}
	for _, d := range with {
		r, err := scriptexpr.Eval(ctx, d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ctx.PushVar(scriptexpr.NewVariable(d[0], r))
	}

	h := &host{ctx: ctx, verb: verb + "\n", echo: echo, out: os.Stdout}
	switch {
	case inname != "":
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		if !h.run(f) {
			os.Exit(1)
		}
	case flag.NArg() > 0:
		if !h.run(strings.NewReader(strings.Join(flag.Args(), "\n"))) {
			os.Exit(1)
		}
	default:
		repl(h)
	}
}

func infile(inname string) (io.Reader, error) {
	if inname == "-" {
		return os.Stdin, nil
	}
	return os.Open(inname)
}

// loadVars declares a variable for each entry of a YAML mapping.
func loadVars(ctx *scriptexpr.Context, name string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	for k, v := range m {
		var val scriptexpr.Value
		switch v := v.(type) {
		case nil:
			// none
		case bool:
			val = scriptexpr.Bool(v)
		case int:
			val = scriptexpr.Number(new(big.Float).SetPrec(ctx.Prec()).SetInt64(int64(v)))
		case float64:
			val = scriptexpr.Number(new(big.Float).SetPrec(ctx.Prec()).SetFloat64(v))
		case string:
			val = scriptexpr.String(v)
		default:
			return fmt.Errorf("reading %s: %s has unsupported value %v", name, k, v)
		}
		ctx.PushVar(scriptexpr.NewVariable(k, val))
	}
	return nil
}

const (
	historyFile = ".scriptexpr_history"
	prompt      = "> "
)

func repl(h *host) {
	h.color = true
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// Ctrl+D, Ctrl+C, or a broken terminal.
			fmt.Println()
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.exec(line)
		ln.AppendHistory(line)
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
}

// host is a minimal statement interpreter around the expression evaluator.
type host struct {
	ctx   *scriptexpr.Context
	verb  string
	echo  bool
	color bool
	out   io.Writer
}

// run executes each line of r. It reports whether every statement succeeded.
func (h *host) run(r io.Reader) bool {
	ok := true
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ok = h.exec(line) && ok
	}
	if err := sc.Err(); err != nil {
		h.fail(err)
		return false
	}
	return ok
}

// exec executes one statement:
//
//	let NAME EXPR         declare a variable
//	set NAME EXPR         assign an existing variable
//	def NAME P,Q,... EXPR define a function of parameters P, Q, ...
//	call NAME EXPR...     call a function
//	EXPR                  print the value of an expression
func (h *host) exec(line string) bool {
	f := strings.Fields(line)
	var (
		r   scriptexpr.Value
		err error
	)
	switch {
	case (f[0] == "let" || f[0] == "set") && len(f) == 3:
		r, err = h.eval(h.ctx, f[2])
		if err != nil {
			break
		}
		if f[0] == "let" {
			h.ctx.PushVar(scriptexpr.NewVariable(f[1], r))
		} else {
			err = h.ctx.SetVar(f[1], r)
		}
		if err == nil {
			return true
		}
	case f[0] == "def" && len(f) == 4:
		var params []string
		if f[2] != "_" {
			params = strings.Split(f[2], ",")
		}
		h.ctx.PushFunc(scriptexpr.NewUserFunc(f[1], params, f[3], scriptexpr.Value{}))
		return true
	case f[0] == "call" && len(f) >= 2:
		r, err = h.call(f[1], f[2:])
	case len(f) == 1:
		r, err = h.eval(h.ctx, f[0])
	default:
		err = fmt.Errorf("cannot understand statement %q", line)
	}
	if err != nil {
		h.fail(err)
		return false
	}
	s := fmt.Sprintf(h.verb, r)
	if h.color {
		s = color.CyanString("%s", s)
	}
	io.WriteString(h.out, s)
	return true
}

func (h *host) eval(ctx *scriptexpr.Context, src string) (scriptexpr.Value, error) {
	n, err := scriptexpr.Parse(strings.NewReader(src), ctx)
	if err != nil {
		return scriptexpr.Value{}, err
	}
	if h.echo {
		fmt.Fprintf(h.out, "%v : ", n)
	}
	return n.Eval()
}

func (h *host) call(name string, exprs []string) (scriptexpr.Value, error) {
	fn, ok := h.ctx.GetFunc(name)
	if !ok {
		return scriptexpr.Value{}, fmt.Errorf("undefined function %q", name)
	}
	args := make([]scriptexpr.Value, len(exprs))
	for i, e := range exprs {
		v, err := h.eval(h.ctx, e)
		if err != nil {
			return scriptexpr.Value{}, err
		}
		args[i] = v
	}
	switch fn := fn.(type) {
	case *scriptexpr.NativeFunc:
		return fn.Call(h.ctx, args)
	case *scriptexpr.UserFunc:
		params, err := fn.Bind(args)
		if err != nil {
			return scriptexpr.Value{}, err
		}
		return h.eval(h.ctx.Frame(params...), fn.Body())
	default:
		panic("unknown function type")
	}
}

func (h *host) fail(err error) {
	if h.color {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
