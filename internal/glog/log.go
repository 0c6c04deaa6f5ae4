// Package log implements a standard convention for structured logging used
// by cmd/graql: log entries are formatted as K=V pairs. By default output
// is written to stderr; this can be changed with SetOutput.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	errutil "github.com/vishalbelsare/graql/internal/errutil"
)

const rfc3339NanoFixed = "2006-01-02T15:04:05.000000000Z07:00"

type sessionIDKey struct{}

// WithSessionID returns a context carrying id, which Write records under
// KeySession. cmd/graql's repl subcommand sets this once per interactive
// session so log lines from one REPL run can be grepped together.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

func sessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

var (
	logWriterMu sync.Mutex // protects the following
	logWriter   io.Writer  = os.Stderr
	prefix      []byte

	// pairDelims contains a list of characters that may be used as
	// delimiters between key-value pairs in a log entry. Keys and values
	// are quoted or otherwise formatted so key-value extraction stays
	// unambiguous.
	pairDelims      = " ,;|&\t\n\r"
	illegalKeyChars = pairDelims + `="`
)

// Conventional key names for log entries.
const (
	KeyCaller  = "at"      // location of caller
	KeyTime    = "t"       // time of call
	KeySession = "session" // session ID from context, if any

	KeyMessage = "message" // produced by Messagef
	KeyError   = "error"   // produced by Error
	KeyStack   = "stack"   // used by Write to print stack on subsequent lines

	keyLogError = "log-error" // for errors produced by the log package itself
)

// SetOutput sets the log output to w. The default is stderr.
func SetOutput(w io.Writer) {
	logWriterMu.Lock()
	logWriter = w
	logWriterMu.Unlock()
}

// SetPrefix sets the output prefix.
func SetPrefix(keyval ...interface{}) {
	if len(keyval)%2 != 0 {
		panic(fmt.Sprintf("odd-length prefix args: %v", keyval))
	}
	var b []byte
	for i := 0; i < len(keyval); i += 2 {
		k := formatKey(keyval[i])
		v := formatValue(keyval[i+1])
		b = append(b, k...)
		b = append(b, '=')
		b = append(b, v...)
		b = append(b, ' ')
	}
	logWriterMu.Lock()
	prefix = b
	logWriterMu.Unlock()
}

// Write writes a structured log entry. Log fields are specified as a
// variadic sequence of alternating keys and values.
//
// Several fields are added automatically: a timestamp, the file and line
// of the caller, and the session ID carried in ctx, if any.
//
// Write also prints a stack trace, if any, on the lines following the
// entry. The stack is taken from, in order of preference:
//   - a KeyStack value of type []byte or []errutil.StackFrame
//   - a KeyError value of type error, via errutil.Stack
func Write(ctx context.Context, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "", keyLogError, "odd number of log params")
	}

	var vcaller string
	if len(keyvals) >= 2 && keyvals[0] == KeyCaller {
		vcaller = formatValue(keyvals[1])
		keyvals = keyvals[2:]
	} else {
		vcaller = caller(1)
	}

	t := time.Now().UTC()

	out := fmt.Sprintf(
		"%s=%s %s=%s",
		KeyCaller, vcaller,
		KeyTime, formatValue(t.Format(rfc3339NanoFixed)),
	)
	if sid := sessionIDFromContext(ctx); sid != "" {
		out += " " + KeySession + "=" + formatValue(sid)
	}

	var stack interface{}
	for i := 0; i < len(keyvals); i += 2 {
		k := keyvals[i]
		v := keyvals[i+1]
		if k == KeyStack && isStackVal(v) {
			stack = v
			continue
		}
		if k == KeyError {
			if e, ok := v.(error); ok && stack == nil {
				stack = errutil.Stack(errutil.Wrap(e))
			}
		}
		out += " " + formatKey(k) + "=" + formatValue(v)
	}

	logWriterMu.Lock()
	logWriter.Write(prefix)
	logWriter.Write([]byte(out)) // ignore errors
	logWriter.Write([]byte{'\n'})
	writeRawStack(logWriter, stack)
	logWriterMu.Unlock()
}

// Fatal is equivalent to Write() followed by os.Exit(1).
func Fatal(ctx context.Context, keyvals ...interface{}) {
	Write(ctx, keyvals...)
	os.Exit(1)
}

func writeRawStack(w io.Writer, v interface{}) {
	switch v := v.(type) {
	case []byte:
		if len(v) > 0 {
			w.Write(v)
			w.Write([]byte{'\n'})
		}
	case []errutil.StackFrame:
		for _, s := range v {
			io.WriteString(w, s.String())
			w.Write([]byte{'\n'})
		}
	}
}

func isStackVal(v interface{}) bool {
	switch v.(type) {
	case []byte:
		return true
	case []errutil.StackFrame:
		return true
	}
	return false
}

// Messagef writes a log entry with a message assigned to KeyMessage.
// Arguments are handled as in fmt.Printf.
func Messagef(ctx context.Context, format string, a ...interface{}) {
	Write(ctx, KeyCaller, caller(1), KeyMessage, fmt.Sprintf(format, a...))
}

// Error writes a log entry with an error assigned to KeyError. An
// optional prefix is handled as in fmt.Print.
func Error(ctx context.Context, err error, a ...interface{}) {
	if len(a) > 0 && len(errutil.Stack(err)) > 0 {
		err = errutil.Wrap(err, a...) // keep err's stack
	} else if len(a) > 0 {
		err = fmt.Errorf("%s: %s", fmt.Sprint(a...), err) // don't add a stack here
	}
	Write(ctx, KeyCaller, caller(1), KeyError, err)
}

func caller(skip int) string {
	_, file, nline, ok := runtime.Caller(skip + 1)

	var line string
	if ok {
		file = filepath.Base(file)
		line = strconv.Itoa(nline)
	} else {
		file = "?"
		line = "?"
	}

	return file + ":" + line
}

// formatKey ensures the stringified key is valid for a Splunk-style K=V
// entry by replacing delimiter and quote characters with hyphens.
func formatKey(k interface{}) string {
	s := fmt.Sprint(k)
	if s == "" {
		return "?"
	}

	for _, c := range illegalKeyChars {
		s = strings.Replace(s, string(c), "-", -1)
	}

	return s
}

// formatValue ensures the stringified value is valid for a Splunk-style
// K=V entry, quoting it if delimiter characters are present.
func formatValue(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, pairDelims) {
		return strconv.Quote(s)
	}
	return s
}

// RecoverAndLogError must be used inside a defer. It logs a recovered panic
// value together with the goroutine's stack.
func RecoverAndLogError(ctx context.Context) {
	if err := recover(); err != nil {
		const size = 64 << 10
		buf := make([]byte, size)
		buf = buf[:runtime.Stack(buf, false)]
		Write(ctx,
			KeyMessage, "panic",
			KeyError, err,
			KeyStack, buf,
		)
	}
}
