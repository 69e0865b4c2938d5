// Package source loads the content resource once at startup, from a
// directory or from an HTTP endpoint.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/vitrine/internal/content"
)

// DefaultFile is the content resource's location under the content root.
const DefaultFile = "admin/content.json"

const maxBody = 16 << 20

var (
	// ErrUpstream means the content resource could not be fetched.
	ErrUpstream = errors.New("content resource unavailable")
	// ErrFormat means the resource extension has no decoder.
	ErrFormat = errors.New("unsupported content format")
)

// Location says where the content resource lives. URL wins over Root/File.
type Location struct {
	Root string
	File string
	URL  string
}

func (l Location) String() string {
	if l.URL != "" {
		return l.URL
	}
	return path.Join(l.Root, l.file())
}

func (l Location) file() string {
	if l.File == "" {
		return DefaultFile
	}
	return l.File
}

// Load fetches and decodes the resource at loc.
func Load(ctx context.Context, loc Location, client *http.Client) (content.Value, error) {
	if loc.URL != "" {
		return FromURL(ctx, client, loc.URL)
	}
	return FromFS(osfs.New(loc.Root), loc.file())
}

// FromFS reads name from fs and decodes it by extension.
func FromFS(fs billy.Filesystem, name string) (content.Value, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", name, ErrUpstream, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", name, ErrUpstream, err)
	}
	return Decode(name, data)
}

// FromURL fetches rawURL with a GET request. A non-2xx status is ErrUpstream.
// There is no retry.
func FromURL(ctx context.Context, client *http.Client, rawURL string) (content.Value, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %w", rawURL, ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: status %d", rawURL, ErrUpstream, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", rawURL, ErrUpstream, err)
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		name = "content.yaml"
	}
	return Decode(name, data)
}

// Decode picks a decoder from name's extension. Names without an extension
// are read as JSON.
func Decode(name string, data []byte) (content.Value, error) {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json", "":
		v, err := content.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return v, nil
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		v, err := content.From(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrFormat, ext)
	}
}
