package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	t.Parallel()

	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/regmail/internal/pkg/router.recoverer.func1()
	/src/regmail/internal/pkg/router/middleware_recover.go:21 +0x6b
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/shandysiswandi/regmail/internal/registration/usecase.(*Usecase).deliver(...)
	/src/regmail/internal/registration/usecase/pipeline.go:40`)

	got := InternalPaths(stack)

	assert.Equal(t, []string{
		"internal/pkg/router/middleware_recover.go:21",
		"internal/registration/usecase/pipeline.go:40",
	}, got)
}

func TestInternalFrames(t *testing.T) {
	t.Parallel()

	frames := InternalFrames(0)

	if assert.NotEmpty(t, frames) {
		assert.True(t, strings.HasPrefix(frames[0], "internal/pkg/stacktrace/stacktrace_test.go:"), frames[0])
	}
}
