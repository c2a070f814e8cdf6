package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxMessageSize leaves room for a maximal document plus JSON escaping.
var maxMessageSize = 8 * DefaultMaxDocumentSize

var (
	errMissingContentLength = errors.New("missing Content-Length header")
	errMessageTooLarge      = errors.New("message too large")
)

// readMessage reads one Content-Length framed payload. An oversized body is
// consumed and reported as errMessageTooLarge so the stream stays in sync.
func readMessage(r *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || length < 0 {
				return nil, fmt.Errorf("invalid Content-Length %q", value)
			}
			contentLength = length
		}
	}
	if contentLength < 0 {
		return nil, errMissingContentLength
	}
	if contentLength > maxMessageSize {
		if _, err := io.CopyN(io.Discard, r, int64(contentLength)); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%d bytes: %w", contentLength, errMessageTooLarge)
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func writeMessage(w io.Writer, payload []byte) error {
	header := "Content-Length: " + strconv.Itoa(len(payload)) + "\r\n\r\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
