// Package logger configures the structured logging used by the worker pool,
// the reduction engine, and the reducesum command.
package logger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Formatter formats log entries on a single line with a colored level.
type Formatter struct {
	TimestampFormat string
	DisableColors   bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelColor *color.Color
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
	case logrus.InfoLevel:
		levelColor = color.New(color.FgCyan)
	default:
		levelColor = color.New(color.FgWhite, color.Faint)
	}
	levelText := strings.ToUpper(entry.Level.String())
	if !f.DisableColors {
		levelText = levelColor.Sprint(levelText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", entry.Time.Format(f.TimestampFormat), levelText, entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for i, k := range keys {
			fields[i] = fmt.Sprintf("%s=%v", k, entry.Data[k])
		}
		s := " {" + strings.Join(fields, ", ") + "}"
		if !f.DisableColors {
			s = color.New(color.FgWhite, color.Faint).Sprint(s)
		}
		b.WriteString(s)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// New creates a logger that writes to out. Unknown levels fall back to info.
func New(level string, out io.Writer, colors bool) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&Formatter{
		TimestampFormat: "15:04:05.000",
		DisableColors:   !colors,
	})
	log.SetOutput(out)
	return log
}

// Discard returns a logger that drops all entries.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
