package prometheus

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/metrics/export/internaldefs"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

// Source is what the exporter scrapes. *goGuard.Engine satisfies it.
type Source interface {
	MetricsSnapshot() goGuard.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter renders a Source on demand.
type Exporter struct {
	source Source
}

// NewExporter returns an exporter reading from engine.
func NewExporter(engine *goGuard.Engine) *Exporter {
	return NewExporterFromSource(engine)
}

// NewExporterFromSource returns an exporter reading from source.
func NewExporterFromSource(source Source) *Exporter {
	return &Exporter{source: source}
}

// Handler serves Render on every request.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render returns the current exposition text, or "" when metrics are
// disabled and nothing was dropped.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snap := e.source.MetricsSnapshot()
	dropped := e.source.AuditDropped()
	if len(snap.Counters) == 0 && len(snap.Histograms) == 0 && dropped == 0 {
		return ""
	}

	w := textWriter{}
	w.b.Grow(4096)

	for _, def := range internaldefs.Counters {
		w.counter(def, snap.Counters[def.ID])
	}
	for _, def := range internaldefs.Histograms {
		w.histogram(def, internaldefs.Cumulative(snap.Histograms[def.ID]), snap.HistogramSums[def.ID])
	}
	w.counter(internaldefs.AuditDropped, dropped)

	return w.b.String()
}

type textWriter struct {
	b strings.Builder
}

func (w *textWriter) header(def internaldefs.Def, kind string) {
	w.b.WriteString("# HELP ")
	w.b.WriteString(def.Name)
	w.b.WriteByte(' ')
	w.b.WriteString(escapeHelp(def.Help))
	w.b.WriteString("\n# TYPE ")
	w.b.WriteString(def.Name)
	w.b.WriteByte(' ')
	w.b.WriteString(kind)
	w.b.WriteByte('\n')
}

func (w *textWriter) sample(name, labels string, v uint64) {
	w.raw(name, labels, strconv.FormatUint(v, 10))
}

func (w *textWriter) raw(name, labels, value string) {
	w.b.WriteString(name)
	w.b.WriteString(labels)
	w.b.WriteByte(' ')
	w.b.WriteString(value)
	w.b.WriteByte('\n')
}

func (w *textWriter) counter(def internaldefs.Def, v uint64) {
	w.header(def, "counter")
	w.sample(def.Name, "", v)
}

func (w *textWriter) histogram(def internaldefs.Def, cumulative [8]uint64, sum time.Duration) {
	w.header(def, "histogram")
	for i, bucket := range internaldefs.Buckets {
		w.sample(def.Name+"_bucket", `{le="`+bucket.Le+`"}`, cumulative[i])
	}
	w.sample(def.Name+"_count", "", cumulative[len(cumulative)-1])
	w.raw(def.Name+"_sum", "", strconv.FormatFloat(sum.Seconds(), 'g', -1, 64))
}

func escapeHelp(help string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(help)
}
