package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/lox/log"
)

// parseCache stores parse results keyed by the xxh3 hash of the source.
var parseCache sync.Map

// parsed is the memoized outcome of parsing one source text.
type parsed struct {
	once   sync.Once
	source string
	stmts  []Stmt
	diags  Diagnostics
	err    error
}

// ReadSource reads all of r into a string using an asynchronous read-ahead
// buffer.
func ReadSource(ctx context.Context, r io.Reader, logger log.Logger) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return string(data), nil
}

// ParseReader reads source from r and parses it with [ParseCached].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	report Reporter,
	logger log.Logger,
) ([]Stmt, error) {
	source, err := ReadSource(ctx, r, logger)
	if err != nil {
		return nil, err
	}

	return ParseCached(ctx, source, report, logger)
}

// ParseCached behaves like [Parse] but memoizes the result per distinct
// source text. On a cache hit the diagnostics found by the original parse are
// replayed to report in their original order, so callers observe the same
// output either way.
//
// The returned statements are shared between callers and must not be
// modified. A hash collision with a different cached source falls back to an
// uncached [Parse].
func ParseCached(
	ctx context.Context,
	source string,
	report Reporter,
	logger log.Logger,
) ([]Stmt, error) {
	key := xxh3.HashString(source)

	value, hit := parseCache.LoadOrStore(key, &parsed{source: source})

	entry, ok := value.(*parsed)
	if !ok || entry.source != source {
		logger.DebugContext(
			ctx,
			"cache collision",
			slog.String("source_hash", strconv.FormatUint(key, 16)),
		)

		return Parse(source, report)
	}

	logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(key, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.stmts, entry.err = Parse(source, &entry.diags)
	})

	report = reporterOrDiscard(report)
	for _, d := range entry.diags {
		report.Report(d)
	}

	return entry.stmts, entry.err
}

// ClearCache removes all memoized parse results.
func ClearCache() {
	parseCache.Clear()
}
