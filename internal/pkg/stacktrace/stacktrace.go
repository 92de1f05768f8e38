// Package stacktrace trims goroutine stacks down to the frames that belong to
// this module, which keeps panic logs short enough to read.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const marker = "/internal/"

// InternalFrames returns "internal/<pkg>/<file>.go:<line>" entries for the
// caller's stack, skipping skip frames above InternalFrames itself.
func InternalFrames(skip int) []string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	out := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if idx := strings.Index(frame.File, marker); idx != -1 {
			out = append(out, frame.File[idx+1:]+":"+strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}

	return out
}

// InternalPaths extracts internal frames from a raw stack as produced by
// runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		start := strings.Index(line, marker)
		if idx == -1 || start == -1 || start > idx {
			continue
		}

		end := strings.IndexByte(line[idx:], ' ')
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}
		paths = append(paths, line[start+1:end])
	}

	return paths
}
