package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"pain/internal/ast"
	"pain/internal/parser"
	"pain/internal/sema"
	"pain/internal/stdlib"
)

func src(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// countingFrontEnd wraps the real front-end and counts parses.
type countingFrontEnd struct {
	FrontEnd
	parses atomic.Int32
}

func newCountingFrontEnd() *countingFrontEnd {
	return &countingFrontEnd{FrontEnd: DefaultFrontEnd()}
}

func (fe *countingFrontEnd) ParseWithRecovery(text string) (*ast.Program, []parser.Error, error) {
	fe.parses.Add(1)
	return fe.FrontEnd.ParseWithRecovery(text)
}

// panickingFrontEnd parses for real but faults in the chosen stages.
type panickingFrontEnd struct {
	FrontEnd
	parse, check, warnings, builtins bool
}

func (fe panickingFrontEnd) ParseWithRecovery(text string) (*ast.Program, []parser.Error, error) {
	if fe.parse {
		panic("parse fault")
	}
	return fe.FrontEnd.ParseWithRecovery(text)
}

func (fe panickingFrontEnd) TypeCheck(program *ast.Program, ctx *sema.Context) *sema.TypeError {
	if fe.check {
		panic("type check fault")
	}
	return fe.FrontEnd.TypeCheck(program, ctx)
}

func (fe panickingFrontEnd) CollectWarnings(program *ast.Program, ctx *sema.Context) []sema.Warning {
	if fe.warnings {
		panic("warnings fault")
	}
	return fe.FrontEnd.CollectWarnings(program, ctx)
}

func (fe panickingFrontEnd) Builtins() []stdlib.Function {
	if fe.builtins {
		panic("builtins fault")
	}
	return fe.FrontEnd.Builtins()
}

type published struct {
	uri   string
	diags []Diagnostic
}

type logged struct {
	kind MessageType
	msg  string
}

type recordingClient struct {
	mu        sync.Mutex
	published []published
	logs      []logged
}

func (c *recordingClient) PublishDiagnostics(uri string, diags []Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{uri: uri, diags: diags})
}

func (c *recordingClient) LogMessage(kind MessageType, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, logged{kind: kind, msg: msg})
}

func (c *recordingClient) last(t *testing.T) published {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.published) == 0 {
		t.Fatal("expected published diagnostics")
	}
	return c.published[len(c.published)-1]
}

func countSeverity(diags []Diagnostic, severity int) int {
	n := 0
	for _, d := range diags {
		if d.Severity == severity {
			n++
		}
	}
	return n
}

func countKind(items []CompletionItem, kind int) int {
	n := 0
	for _, it := range items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

func findItem(items []CompletionItem, label string) (CompletionItem, bool) {
	for _, it := range items {
		if it.Label == label {
			return it, true
		}
	}
	return CompletionItem{}, false
}

// frame encodes messages the way an editor sends them.
func frame(t *testing.T, msgs ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := writeMessage(&buf, payload); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return &buf
}

func readAllMessages(t *testing.T, data []byte) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(data))
	var out []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		out = append(out, msg)
	}
}

func request(id int, method string, params any) map[string]any {
	m := notification(method, params)
	m["id"] = id
	return m
}

func notification(method string, params any) map[string]any {
	m := map[string]any{"jsonrpc": "2.0", "method": method}
	if params != nil {
		m["params"] = params
	}
	return m
}
