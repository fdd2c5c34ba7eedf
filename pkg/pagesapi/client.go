package pagesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iver-wharf/wharf-core/v2/pkg/cacertutil"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
)

var log = logger.NewScoped("PAGES-API")

// Config holds settings for the pages hosting API client.
type Config struct {
	// URL is the base URL of the pages hosting API. Example value:
	// 	https://api.unexpected.app
	URL string

	// CertsFile is an optional path to a file of extra CA certificates to
	// trust when talking to the pages hosting API.
	CertsFile string

	// Timeout is the total timeout of each HTTP request. Zero means no
	// timeout.
	Timeout time.Duration
}

// Client is a HTTP client that talks to the pages hosting API.
type Client struct {
	// APIURL is the base API URL used.
	APIURL string
	// Token is sent as bearer token in the Authorization header.
	Token string
	// HTTP is the underlying HTTP client. Defaults to http.DefaultClient.
	HTTP *http.Client
}

// NewClient creates a new client from the given config and credential.
func NewClient(cfg Config, token string) (*Client, error) {
	httpClient := &http.Client{}
	if cfg.CertsFile != "" {
		var err error
		httpClient, err = cacertutil.NewHTTPClientWithCerts(cfg.CertsFile)
		if err != nil {
			return nil, fmt.Errorf("load CA certs: %w", err)
		}
	}
	httpClient.Timeout = cfg.Timeout
	return &Client{
		APIURL: cfg.URL,
		Token:  token,
		HTTP:   httpClient,
	}, nil
}

// ListProjects returns all projects visible to the credential, filtered by
// the given query.
func (c *Client) ListProjects(ctx context.Context, query url.Values) ([]ProjectListItem, error) {
	u, err := buildURL(c.APIURL, "pages")
	if err != nil {
		return nil, err
	}
	u.RawQuery = query.Encode()
	var list ProjectList
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// CreateProject creates a new project. Any status code other than
// 200 (OK) is treated as an error.
func (c *Client) CreateProject(ctx context.Context, body CreateProjectRequest) (CreateProjectResponse, error) {
	u, err := buildURL(c.APIURL, "pages")
	if err != nil {
		return CreateProjectResponse{}, err
	}
	var created CreateProjectResponse
	if err := c.doJSON(ctx, http.MethodPost, u, body, &created, http.StatusOK); err != nil {
		return CreateProjectResponse{}, err
	}
	return created, nil
}

// GetProject returns the full project record by its name.
func (c *Client) GetProject(ctx context.Context, projectName string) (Project, error) {
	u, err := buildURL(c.APIURL, "pages", "cf", "projects", projectName)
	if err != nil {
		return Project{}, err
	}
	var project Project
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// GetDeployment returns the latest deployment of a project by the project's
// name.
func (c *Client) GetDeployment(ctx context.Context, projectName string) (Deployment, error) {
	u, err := buildURL(c.APIURL, "pages", "cf", "deployments", projectName)
	if err != nil {
		return Deployment{}, err
	}
	var deployment Deployment
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &deployment); err != nil {
		return Deployment{}, err
	}
	return deployment, nil
}

// UploadDeployment uploads an archive file as a multipart form to the
// project's deployments endpoint. The file is streamed, not buffered.
//
// An empty or non-JSON response body results in an empty UploadResponse.
func (c *Client) UploadDeployment(ctx context.Context, projectID, archivePath string) (UploadResponse, error) {
	u, err := buildURL(c.APIURL, "pages", projectID, "deployments")
	if err != nil {
		return UploadResponse{}, err
	}
	file, err := os.Open(archivePath)
	if err != nil {
		return UploadResponse{}, err
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(archivePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	resp, err := c.do(ctx, http.MethodPost, u, pr, form.FormDataContentType())
	if err != nil {
		pr.Close()
		return UploadResponse{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("read upload response: %w", err)
	}
	var ack UploadResponse
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &ack); err != nil {
			log.Debug().WithError(err).Message("Upload response body is not JSON.")
			return UploadResponse{}, nil
		}
	}
	return ack, nil
}

func (c *Client) doJSON(ctx context.Context, method string, u *url.URL, body, result any, wantStatus ...int) error {
	var reader io.Reader
	var contentType string
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	resp, err := c.do(ctx, method, u, reader, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if len(wantStatus) > 0 && !containsInt(wantStatus, resp.StatusCode) {
		return newStatusError(resp)
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, u.Redacted(), err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body io.Reader, contentType string) (*http.Response, error) {
	urlStr := u.String()
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	log.Debug().
		WithString("method", method).
		WithString("url", urlStr).
		Message("")
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if err := parseErrorResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func parseErrorResponse(resp *http.Response) error {
	if problem.IsHTTPResponse(resp) {
		prob, err := problem.ParseHTTPResponse(resp)
		if err != nil {
			return err
		}
		statusErr := newStatusError(resp)
		statusErr.Problem = prob
		return statusErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}
	return nil
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func buildURL(base string, paths ...string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("URL is missing scheme: %q", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("URL is missing host: %q", base)
	}
	var pathBuilder strings.Builder
	var rawPathBuilder strings.Builder
	if u.Path != "" {
		pathBuilder.WriteString(strings.TrimSuffix(u.Path, "/"))
		rawPathBuilder.WriteString(strings.TrimSuffix(u.EscapedPath(), "/"))
	}
	for _, segment := range paths {
		pathBuilder.WriteByte('/')
		rawPathBuilder.WriteByte('/')
		pathBuilder.WriteString(segment)
		rawPathBuilder.WriteString(url.PathEscape(segment))
	}
	u.Path = pathBuilder.String()
	u.RawPath = rawPathBuilder.String()
	return u, nil
}
