package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// DefaultWorkers bounds concurrent analyses and requests.
const DefaultWorkers = 8

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Backend Options
	Workers int
	// Version is reported in serverInfo.
	Version string
}

// Server handles stdio JSON-RPC for the Pain language server.
//
// The read loop applies document updates in arrival order; diagnostics and
// requests then run on a bounded worker group. Without cancellation the last
// publish for a document wins.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex

	backend           *Backend
	workers           *errgroup.Group
	version           string
	shutdownRequested bool
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	s := &Server{
		in:      bufio.NewReader(in),
		out:     bufio.NewWriter(out),
		workers: new(errgroup.Group),
		version: opts.Version,
	}
	s.workers.SetLimit(workers)
	s.backend = NewBackend(s, opts.Backend)
	return s
}

// Run serves LSP requests until exit or end of input. Work in flight is
// drained before it returns.
func (s *Server) Run(ctx context.Context) error {
	defer s.wait()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, errMessageTooLarge) {
				log.Warningf("dropped message: %v", err)
				continue
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Warningf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized()
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	log.Infof("initialize: root=%q", params.RootURI)
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: 1,
			CompletionProvider: &completionOptions{
				ResolveProvider:   false,
				TriggerCharacters: []string{"."},
			},
			HoverProvider: true,
		},
		ServerInfo: &serverInfo{Name: "pain-lsp", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleInitialized() error {
	s.LogMessage(MessageInfo, "Pain LSP server initialized")
	return nil
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.wait()
	s.backend.Shutdown()
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	log.Notice("shutdown")
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Warningf("didOpen: invalid params: %v", err)
		return nil
	}
	uri, text := params.TextDocument.URI, params.TextDocument.Text
	if uri == "" {
		return nil
	}
	if s.backend.accept(uri, text, s.backend.docs.Open) {
		s.dispatch("didOpen", func() { s.backend.publish(uri, text) })
	}
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Warningf("didChange: invalid params: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	// полная синхронизация: берём первое изменение, остальные игнорируем
	text := ""
	if len(params.ContentChanges) > 0 {
		text = params.ContentChanges[0].Text
	}
	if s.backend.accept(uri, text, s.backend.docs.Change) {
		s.dispatch("didChange", func() { s.backend.publish(uri, text) })
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Warningf("didClose: invalid params: %v", err)
		return nil
	}
	if uri := params.TextDocument.URI; uri != "" {
		s.dispatch("didClose", func() { s.backend.Close(uri) })
	}
	return nil
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	id := msg.ID
	s.dispatch("completion", func() {
		items := s.backend.Completion(params.TextDocument.URI, params.Position)
		s.respond(id, items)
	})
	return nil
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	id := msg.ID
	s.dispatch("hover", func() {
		info := s.backend.Hover(params.TextDocument.URI, params.Position)
		if info == nil {
			s.respond(id, nil)
			return
		}
		s.respond(id, hover{Contents: info.contents()})
	})
	return nil
}

// dispatch runs fn on the worker group behind a fault boundary. It blocks
// while every worker is busy.
func (s *Server) dispatch(op string, fn func()) {
	s.workers.Go(func() error {
		isolateDo(op, fn)
		return nil
	})
}

func (s *Server) wait() {
	_ = s.workers.Wait()
}

// PublishDiagnostics implements Client.
func (s *Server) PublishDiagnostics(uri string, list []Diagnostic) {
	if list == nil {
		list = []Diagnostic{}
	}
	err := s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: list,
	})
	if err != nil {
		log.Errorf("publish diagnostics for %s: %v", uri, err)
	}
}

// LogMessage implements Client.
func (s *Server) LogMessage(kind MessageType, message string) {
	err := s.sendNotification("window/logMessage", logMessageParams{Type: kind, Message: message})
	if err != nil {
		log.Errorf("log message: %v", err)
	}
}

func (s *Server) respond(id json.RawMessage, result any) {
	if err := s.sendResponse(id, result); err != nil {
		log.Errorf("send response: %v", err)
	}
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
