package inbound

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// secureFilename keeps the last path element of a client supplied name and
// reduces it to ASCII letters, digits, dot, dash and underscore. Spaces become
// underscores and leading dots are dropped. The result may be empty.
func secureFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	return strings.TrimLeft(b.String(), "._")
}
