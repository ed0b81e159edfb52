package ingest

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// Open returns a reader for a rooms/courses document given either a
// local path or an http(s) URL. Callers are responsible for closing the
// returned Closer.
func Open(location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http:") || strings.HasPrefix(location, "https:") {
		log.Printf("downloading input URL %s", location)
		res, err := http.Get(location)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", location, err)
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("fetching %s: status %s", location, res.Status)
		}
		return res.Body, nil
	}

	log.Printf("reading input file %s", location)
	fp, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	return fp, nil
}
