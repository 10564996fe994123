package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the lipgloss styles of a pretty handler, bound to the
// color profile of its output.
type prettyStyles struct {
	key, time, source, msg lipgloss.Style
	str, num, yes, no      lipgloss.Style
	levels                 map[Level]lipgloss.Style
}

func makePrettyStyles(w io.Writer) *prettyStyles {
	r := lipgloss.NewRenderer(w)

	return &prettyStyles{
		key:    r.NewStyle().Faint(true),
		time:   r.NewStyle().Faint(true),
		source: r.NewStyle().Faint(true).Italic(true),
		msg:    r.NewStyle().Bold(true),
		str:    r.NewStyle().Foreground(lipgloss.Color("6")),
		num:    r.NewStyle().Foreground(lipgloss.Color("3")),
		yes:    r.NewStyle().Foreground(lipgloss.Color("2")),
		no:     r.NewStyle().Foreground(lipgloss.Color("1")),
		levels: map[Level]lipgloss.Style{
			LevelTrace: r.NewStyle().Foreground(lipgloss.Color("5")),
			LevelDebug: r.NewStyle().Foreground(lipgloss.Color("4")),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("2")),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// prettyHandler writes one styled key=value line per record.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	styles     *prettyStyles
	mu         *sync.Mutex
	w          io.Writer
	attrs      string // preformatted attributes from WithAttrs
	group      string // dotted group prefix from WithGroup
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		styles:     makePrettyStyles(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			sb.WriteString(h.styles.time.Render(ts))
			sb.WriteByte(' ')
		}
	}

	sb.WriteString(h.levelString(Level(r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			sb.WriteByte(' ')
			sb.WriteString(h.styles.source.Render(
				src.File + ":" + strconv.Itoa(src.Line)))
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(h.styles.msg.Render(r.Message))
	sb.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&sb, h.group, a)

		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, sb.String())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder

	sb.WriteString(h.attrs)

	for _, a := range attrs {
		h.writeAttr(&sb, h.group, a)
	}

	c := *h
	c.attrs = sb.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group = h.group + name + "."

	return &c
}

func (h *prettyHandler) levelString(level Level) string {
	name := strings.ToUpper(level.String())
	if len(name) < 5 {
		name += strings.Repeat(" ", 5-len(name))
	}

	style, ok := h.styles.levels[level]
	if !ok {
		return name
	}

	return style.Render(name)
}

func (h *prettyHandler) writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(sb, prefix, ga)
		}

		return
	}

	sb.WriteByte(' ')
	sb.WriteString(h.styles.key.Render(prefix + a.Key))
	sb.WriteByte('=')
	sb.WriteString(h.valueString(a.Value))
}

func (h *prettyHandler) valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.styles.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.styles.yes.Render("true")
		}

		return h.styles.no.Render("false")

	case slog.KindTime:
		if ts := h.formatTime(v.Time()); ts != "" {
			return h.styles.time.Render(ts)
		}

		return h.styles.time.Render(v.String())

	default:
		return h.styles.str.Render(v.String())
	}
}
