// Package urllist reads the newline-delimited list of image URLs a collage is
// built from.
package urllist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maxLineBytes bounds a single line; data: URLs and signed links can be long.
const maxLineBytes = 1 << 20

// Load reads the URL list at path. Order is preserved and every line is
// trimmed. Lines are not validated: blank or malformed entries are kept so
// they are reported when fetched.
func Load(path string) ([]string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer fp.Close()

	urls, err := Parse(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return urls, nil
}

// Parse reads a URL list from r, applying the same rules as Load.
func Parse(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	out := []string{}
	for sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
