package fuzztests

import (
	"context"
	"testing"
	"time"

	"pain/internal/parser"
	"pain/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Anything slower is treated as an infinite loop in error recovery.
const parseTimeout = 5 * time.Second

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// recovery edge cases
	f.Add([]byte("fn test():\nlet x = 1\n    let y = 2\n"))
	f.Add([]byte("fn f(((((\n"))
	f.Add([]byte("class:\n    fn:\n        fn:\n"))
	f.Add([]byte("fn f():\n    if:\n    else:\n    while:\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		src := clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			prog, errs, err := parser.ParseWithRecovery(src)
			if err == nil && prog == nil {
				t.Errorf("nil program without a fatal error")
				return
			}
			if err == nil && len(errs) == 0 {
				if err := testkit.CheckSpanInvariants(prog, src); err != nil {
					t.Errorf("span invariants: %v", err)
				}
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
