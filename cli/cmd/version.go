package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ardnew/lox/pkg"
	"github.com/ardnew/lox/profile"
)

// Version prints the version of the lox command.
type Version struct {
	Verbose bool `help:"Include build details." short:"v"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	out := streamsFrom(ctx).Out

	if _, err := fmt.Fprintln(out, pkg.Name, pkg.Version()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if !v.Verbose {
		return nil
	}

	_, err := fmt.Fprintf(out, "  go:      %s %s/%s\n  pprof:   %t\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, profile.Enabled())
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	for _, a := range pkg.Author {
		if _, err := fmt.Fprintf(out, "  author:  %s <%s>\n", a.Name, a.Email); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
