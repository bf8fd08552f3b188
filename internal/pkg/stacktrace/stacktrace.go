// Package stacktrace condenses panic stacks down to this repository's frames.
package stacktrace

import "strings"

// InternalPaths extracts the internal/... file:line locations from a raw
// stack trace, in call order. Frames from the runtime and dependencies are
// skipped so a recovered panic logs only the lines worth reading.
func InternalPaths(stack []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, ".go:")
		if idx < 0 || !strings.Contains(line, "/internal/") {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end < 0 {
			end = len(line)
		} else {
			end += idx
		}

		frame := line[:end]
		if internalIdx := strings.Index(frame, "/internal/"); internalIdx >= 0 {
			paths = append(paths, frame[internalIdx+1:])
		}
	}

	return paths
}
