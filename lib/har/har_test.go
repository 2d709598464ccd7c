package har

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHar = `{
	"log": {
		"entries": [
			{
				"startedDateTime": "2025-06-17T15:00:00.000Z",
				"request": {
					"method": "GET",
					"url": "https://us-14496.app.gong.io/ajax/home/calls/my-calls",
					"cookies": [
						{"name": "g-session", "value": "abc123"}
					]
				},
				"response": {
					"status": 200,
					"cookies": [
						{"name": "AWSALB", "value": "lb-cookie"}
					]
				}
			}
		]
	}
}`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHar))
	require.NoError(t, err)
	require.Len(t, doc.Log.Entries, 1)

	entry := doc.Log.Entries[0]
	require.Equal(t, "GET", entry.Request.Method)
	require.Equal(t, 200, entry.Response.Status)

	cookies := doc.Cookies()
	require.Len(t, cookies, 2)
	require.Equal(t, "g-session", cookies[0].Name)
	require.Equal(t, "AWSALB", cookies[1].Name)
}

func TestLoadGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.har.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleHar))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Log.Entries, 1)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.har"))
	require.Error(t, err)
}
