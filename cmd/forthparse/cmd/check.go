package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/forthsyntax/internal/logio"
)

type checkResult struct {
	forms  int
	failed bool
	diag   bytes.Buffer
}

func newCheckCmd(opts *options) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <file...>",
		Short: "Syntax-check files",
		Long: `Parses every file as a whole program, several at a time, and reports
each failure. Exits non-zero if any file fails to parse.

Examples:
  forthparse check lib/*.fs
  forthparse check --jobs 2 a.fs b.fs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs <= 0 {
				jobs = opts.cfg.Check.Jobs
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.Check.Timeout.Duration)
			defer cancel()

			results, err := opts.checkFiles(ctx, args, jobs)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			log := logio.New(errOut)
			for i, res := range results {
				if res.failed {
					log.Failf("", "%s", res.diag.String())
					continue
				}
				fmt.Fprintf(out, "ok   %s (%d forms)\n", args[i], res.forms)
			}
			if n := log.Errors(); n > 0 {
				fmt.Fprintf(errOut, "%d of %d files failed\n", n, len(args))
				return errParseFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files parsed concurrently (default from config)")
	return cmd
}

// checkFiles parses each path concurrently. Results are in argument order;
// only I/O failures and cancellation abort the batch.
func (o *options) checkFiles(ctx context.Context, paths []string, jobs int) ([]*checkResult, error) {
	results := make([]*checkResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			res := &checkResult{}
			f, _ := o.frontend(&res.diag, path, string(src))
			prog, err := f.TryParse(string(src))
			if err != nil {
				f.Report(err)
			} else {
				res.forms = len(prog.Forms)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
