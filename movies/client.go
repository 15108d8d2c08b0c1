package movies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mmdatafocus/storefront_backend/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// API is the remote movie catalogue the provider reads from.
type API interface {
	ListGenres(ctx context.Context) ([]Genre, error)
	ListMovies(ctx context.Context, genreId int) ([]Movie, error)
	GetGenre(ctx context.Context, id int) (Genre, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient reads MOVIES_API_BASE_URL and MOVIES_API_TIMEOUT_SECONDS.
func NewClient() *Client {
	baseURL := config.StringFromEnv("MOVIES_API_BASE_URL", "http://localhost:3333")
	timeout := time.Duration(config.IntFromEnv("MOVIES_API_TIMEOUT_SECONDS", 30)) * time.Second
	return NewClientWithBaseURL(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) ListGenres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := c.get(ctx, "/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) ListMovies(ctx context.Context, genreId int) ([]Movie, error) {
	params := url.Values{}
	params.Set("Genre_id", strconv.Itoa(genreId))
	var movies []Movie
	if err := c.get(ctx, "/movies", params, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) GetGenre(ctx context.Context, id int) (Genre, error) {
	var genre Genre
	if err := c.get(ctx, "/genres/"+strconv.Itoa(id), nil, &genre); err != nil {
		return Genre{}, err
	}
	return genre, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("movies api error %d on %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
