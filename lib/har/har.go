package har

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// the subset of the HAR 1.2 format needed to recover session
// artifacts from a captured browsing session.

type Cookie struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Domain  string `json:"domain"`
	Path    string `json:"path"`
	Expires string `json:"expires"`
}

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Request struct {
	Method  string   `json:"method"`
	Url     string   `json:"url"`
	Cookies []Cookie `json:"cookies"`
	Headers []Header `json:"headers"`
}

type Response struct {
	Status  int      `json:"status"`
	Cookies []Cookie `json:"cookies"`
	Headers []Header `json:"headers"`
}

type Entry struct {
	StartedDateTime string   `json:"startedDateTime"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
}

type Log struct {
	Entries []Entry `json:"entries"`
}

type Document struct {
	Log Log `json:"log"`
}

func Parse(r io.Reader) (Document, error) {
	var doc Document
	err := json.NewDecoder(r).Decode(&doc)
	return doc, err
}

// reads a HAR capture from disk, transparently handling .har.gz
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Document{}, err
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// all cookies seen in the capture, request and response side,
// in entry order.
func (d Document) Cookies() []Cookie {
	var out []Cookie
	for _, entry := range d.Log.Entries {
		out = append(out, entry.Request.Cookies...)
		out = append(out, entry.Response.Cookies...)
	}
	return out
}
