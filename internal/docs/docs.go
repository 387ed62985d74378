// Package docs holds the built-in help articles shown by 'jbuild docs'.
package docs

import (
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/ux"
)

// Topic holds a single documentation article.
type Topic struct {
	Name    string // short slug used as CLI argument
	Title   string
	Summary string // one-line description for topic listing
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get looks up a topic by name.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, builderr.Config("docs", "unknown topic %q, run 'jbuild docs' to list available topics", name)
}

// List writes the topic index.
func List(w io.Writer) {
	width := 0
	for _, t := range topics {
		width = max(width, len(t.Name))
	}
	fmt.Fprintf(w, "%sAvailable topics:%s\n\n", ux.Bold, ux.Reset)
	for _, t := range topics {
		fmt.Fprintf(w, "  %s%-*s%s  %s\n", ux.Cyan, width, t.Name, ux.Reset, t.Summary)
	}
	fmt.Fprintf(w, "\nRun 'jbuild docs <topic>' to read one.\n")
}

// Render writes one article.
func Render(w io.Writer, t Topic) {
	fmt.Fprintln(w, strings.TrimRight(t.Content, "\n"))
}
