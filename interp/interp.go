package interp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Interpreter is the top-level handle a host program drives: one
// runtime state (pool/gc/symbols/stack/lib) plus the I/O and
// cancellation plumbing every Eval call shares.
type Interpreter struct {
	id uint64 // bumped by stop() to invalidate in-flight cancellable ops

	name string
	rt *runtimeState

	stdin io.Reader
	stdout, stderr io.Writer
	args []string
	env map[string]string
	fsys fs.FS
	unrestricted bool

	// sem serializes concurrent Eval/EvalWithContext calls to 1 in flight,
	// the same role a bare mutex would play (golang.org/x/sync/semaphore).
	// eval acquires it with context.Background(), so a waiting evaluation
	// is not cancelled by the caller's ctx; EvalWithContext itself still
	// returns as soon as its ctx is done.
	sem *semaphore.Weighted

	done chan struct{}
	cancelChan bool
}

const (
	// DefaultSourceName is used when Eval's caller has no path of its own.
	DefaultSourceName = "<eval>"
)

// Options configure a New Interpreter.
type Options struct {
	// Standard input, output and error streams, defaulting to os.Stdin,
	// os.Stdout, os.Stderr.
	Stdin io.Reader
	Stdout, Stderr io.Writer

	// Args are the command-line arguments exposed to evaluated code.
	Args []string

	// Env holds "key=value" entries exposed to evaluated code.
	Env []string

	// BallastCells presets the pool's manual-allocation ballast before the
	// first recycle (0 uses the pool's own default).
	BallastCells int

	// FS is where EvalPath and any future script-loading native read
	// boot/script sources from. Defaults to the OS filesystem.
	FS fs.FS

	// Unrestricted gates FFI/process/env access a host embeds this
	// interpreter for untrusted code would otherwise want to deny.
	// Env above is always exposed regardless of this setting; it is up
	// to the embedding host to leave Env empty for a sandboxed run.
	Unrestricted bool
}

// New returns a ready-to-use Interpreter: a fresh pool, GC, symbol
// table, data stack, and "lib" module seeded with the core generics
// (interp/native.go).
func New(options Options) *Interpreter {
	interp := &Interpreter{
		stdin: options.Stdin,
		stdout: options.Stdout,
		stderr: options.Stderr,
		args: options.Args,
		env: map[string]string{},
		fsys: options.FS,
		unrestricted: options.Unrestricted,
		sem: semaphore.NewWeighted(1),
	}
	if interp.stdin == nil {
		interp.stdin = os.Stdin
	}
	if interp.stdout == nil {
		interp.stdout = os.Stdout
	}
	if interp.stderr == nil {
		interp.stderr = os.Stderr
	}
	if interp.args == nil {
		interp.args = os.Args
	}
	for _, e := range options.Env {
		a := strings.SplitN(e, "=", 2)
		if len(a) == 2 {
			interp.env[a[0]] = a[1]
		} else {
			interp.env[a[0]] = ""
		}
	}

	pool := NewPool(options.BallastCells)
	syms := NewSymbolTable()
	lib := NewContext(pool, ContextModule, 0)
	pool.Manage(lib.Varlist)
	interp.rt = &runtimeState{
		pool: pool,
		gc: NewGC(pool),
		symbols: syms,
		stack: NewDataStack(),
		lib: lib,
	}
	registerNatives(interp)
	return interp
}

// Eval scans and evaluates ember source, returning the value produced
// by the last expression and a non-nil error on failure.
func (interp *Interpreter) Eval(src string) (Cell, error) {
	return interp.eval(src, DefaultSourceName)
}

// EvalPath reads the file at path (via the interpreter's configured
// fs.FS, or the OS filesystem if none was given) and evaluates it.
func (interp *Interpreter) EvalPath(path string) (Cell, error) {
	var b []byte
	var err error
	if interp.fsys != nil {
		b, err = fs.ReadFile(interp.fsys, path)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return Cell{}, err
	}
	return interp.eval(string(b), path)
}

func (interp *Interpreter) eval(src, name string) (Cell, error) {
	if !interp.sem.TryAcquire(1) {
		if err := interp.sem.Acquire(context.Background(), 1); err != nil {
			return Cell{}, err
		}
	}
	defer interp.sem.Release(1)

	sc := newScanner(interp.rt.pool, interp.rt.symbols, src, name)
	block, fail := sc.scanTop()
	if fail != nil {
		return Cell{}, fail
	}

	specifier := &Specifier{Overlay: interp.rt.lib}
	feed := NewFeed(block, specifier)
	root := &Frame{Feed: feed, Baseline: interp.rt.stack.Len()}
	out, fail := interp.EvalFeed(feed, root)
	roots := Roots{
		ModuleRoots: []*Stub{interp.rt.lib.Varlist},
		GlobalRoots: []*Stub{out.Node1, out.Node2},
	}
	for _, sym := range interp.rt.symbols.byName {
		if p := LookupHitch(sym, interp.rt.lib); p != nil {
			roots.ModuleRoots = append(roots.ModuleRoots, p.Value.Node1, p.Value.Node2)
		}
	}
	interp.rt.gc.Recycle(roots)
	if fail != nil {
		return Cell{}, fail
	}
	return out, nil
}

// EvalWithContext evaluates src, unblocking early if ctx is cancelled.
func (interp *Interpreter) EvalWithContext(ctx context.Context, src string) (Cell, error) {
	var v Cell
	var err error

	interp.done = make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err = interp.Eval(src)
	}()

	select {
	case <-ctx.Done():
		interp.stop()
		return Cell{}, ctx.Err()
	case <-done:
	}
	return v, err
}

// stop invalidates the current run and releases anything waiting on
// interp.done. stop may only be called once per EvalWithContext call.
func (interp *Interpreter) stop() {
	atomic.AddUint64(&interp.id, 1)
	close(interp.done)
}

func (interp *Interpreter) runid() uint64 { return atomic.LoadUint64(&interp.id) }

// REPL reads successive lines from interp's configured stdin and
// evaluates them until stdin closes. Ctrl-C cancels the evaluation in
// progress and the loop continues. Errors go to stderr; after a
// successful evaluation the prompt prints the result's datatype, when
// stdin is a terminal or EMBER_PROMPT is set.
func (interp *Interpreter) REPL() (Cell, error) {
	in, out, errs := interp.stdin, interp.stdout, interp.stderr
	ctx, cancel := context.WithCancel(context.Background())
	end := make(chan struct{})
	sig := make(chan os.Signal, 1)
	lines := make(chan string)
	prompt := getPrompt(in, out)
	s := bufio.NewScanner(in)
	var v Cell
	var err error
	src := ""

	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	prompt(v, false)

	go func() {
		defer close(end)
		for s.Scan() {
			lines <- s.Text()
		}
	}()

	go func() {
		for {
			select {
			case <-sig:
				cancel()
				lines <- ""
			case <-end:
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-end:
			cancel()
			return v, err
		case line = <-lines:
			src += line + "\n"
		}

		v, err = interp.EvalWithContext(ctx, src)
		if err != nil {
			if fail, ok := err.(*Failure); ok && ignoreIncompleteInput(fail) {
				continue
			}
			fmt.Fprintln(errs, err)
		}
		if err == context.Canceled {
			ctx, cancel = context.WithCancel(context.Background())
		}
		src = ""
		prompt(v, err == nil)
	}
}

// ignoreIncompleteInput reports whether a scan failure looks like the
// user simply hasn't closed a block/string yet, so the REPL should
// grab one more line instead of reporting an error.
func ignoreIncompleteInput(f *Failure) bool {
	return f.ID == ErrMissing && strings.HasPrefix(f.Message, "unterminated")
}

func doPrompt(out io.Writer) func(v Cell, valid bool) {
	return func(v Cell, valid bool) {
		if valid {
			fmt.Fprintln(out, ":", v.Heart)
		}
		fmt.Fprint(out, "> ")
	}
}

// getPrompt returns a function which prints a prompt only if input is a terminal.
func getPrompt(in io.Reader, out io.Writer) func(Cell, bool) {
	forcePrompt, _ := strconv.ParseBool(os.Getenv("EMBER_PROMPT"))
	if forcePrompt {
		return doPrompt(out)
	}
	s, ok := in.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		return func(Cell, bool) {}
	}
	stat, err := s.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		return doPrompt(out)
	}
	return func(Cell, bool) {}
}
