package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// StdinName labels content read from standard input.
const StdinName = "<stdin>"

// Input is one document to process.
type Input struct {
	Name    string
	Content string
}

// ReadInputs reads every named file. No arguments, or "-", reads stdin.
func ReadInputs(args []string, stdin io.Reader) ([]Input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]Input, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			if stdin == nil {
				stdin = os.Stdin
			}
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			inputs = append(inputs, Input{Name: StdinName, Content: string(data)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		inputs = append(inputs, Input{Name: arg, Content: string(data)})
	}
	return inputs, nil
}

// ForEach runs fn over inputs concurrently and returns the results in input
// order. The first error cancels the remaining work.
func ForEach[T any](ctx context.Context, inputs []Input, fn func(context.Context, Input) (T, error)) ([]T, error) {
	results := make([]T, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			// Each goroutine owns its index.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseVars parses repeated --var values of the form ns:key=value.
func ParseVars(vars []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, v := range vars {
		ref, value, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q: expected ns:key=value", v)
		}
		ns, key, ok := strings.Cut(ref, ":")
		if !ok || ns == "" || key == "" {
			return nil, fmt.Errorf("invalid --var %q: expected ns:key=value", v)
		}
		if out[ns] == nil {
			out[ns] = make(map[string]string)
		}
		out[ns][key] = value
	}
	return out, nil
}
