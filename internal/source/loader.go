package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	"nordpick/internal/catalog"
	"nordpick/internal/model"
)

// apiServer mirrors one entry of the vendor server-list response. Only used
// while decoding.
type apiServer struct {
	Flag       string         `json:"flag"`
	Domain     string         `json:"domain"`
	Load       int            `json:"load"`
	Categories []apiCategory  `json:"categories"`
	Features   model.Features `json:"features"`
}

type apiCategory struct {
	Name string `json:"name"`
}

// FromAPI downloads the server list and builds a catalog from it.
func FromAPI(ctx context.Context, client *http.Client, url string) (*catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch server list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch server list: unexpected status %s", resp.Status)
	}

	return decode(resp.Body)
}

// FromFile builds a catalog from a fixture file holding the same JSON the
// API serves. Used for tests and offline runs.
func FromFile(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return decode(f)
}

// decode reads the API JSON into a catalog, preserving response order.
// Records violating the invariants (empty or duplicate domain, load outside
// 0-100) are skipped with a warning rather than failing the whole fetch.
func decode(r io.Reader) (*catalog.Catalog, error) {
	var raw []apiServer
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode server list: %w", err)
	}

	servers := make([]model.Server, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, api := range raw {
		if api.Domain == "" {
			slog.Warn("server_record_skipped", "reason", "empty domain")
			continue
		}
		if _, dup := seen[api.Domain]; dup {
			slog.Warn("server_record_skipped", "reason", "duplicate domain", "domain", api.Domain)
			continue
		}
		if api.Load < 0 || api.Load > 100 {
			slog.Warn("server_record_skipped", "reason", "load out of range", "domain", api.Domain, "load", api.Load)
			continue
		}
		seen[api.Domain] = struct{}{}

		categories := make([]model.Category, 0, len(api.Categories))
		for _, c := range api.Categories {
			categories = append(categories, model.CategoryFromAPI(c.Name))
		}

		servers = append(servers, model.Server{
			Flag:       strings.ToUpper(api.Flag),
			Domain:     api.Domain,
			Load:       api.Load,
			Categories: categories,
			Features:   api.Features,
		})
	}

	return catalog.New(servers), nil
}

var domainRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}$`)

// LoadDomainSet reads a line-oriented allow/deny list from a file path or an
// http(s) URL: one domain per non-empty line, '#' starts a comment, lines
// that are not domain-shaped are dropped.
func LoadDomainSet(ctx context.Context, client *http.Client, pathOrURL string) (map[string]struct{}, error) {
	var body io.ReadCloser
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build list request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch list %s: %w", pathOrURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch list %s: unexpected status %s", pathOrURL, resp.Status)
		}
		body = resp.Body
	} else {
		f, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("open list: %w", err)
		}
		body = f
	}
	defer body.Close()

	domains := make(map[string]struct{})
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !domainRe.MatchString(line) {
			slog.Debug("list_line_skipped", "line", line)
			continue
		}
		domains[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}
	return domains, nil
}
