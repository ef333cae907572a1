// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"homework_status_bot/internal/domain/homework"
)

// Client fetches homework statuses from the review API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a client. A nil httpClient means http.DefaultClient, whose
// timeouts are left as they are.
func NewClient(httpClient *http.Client, endpoint, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
	}
}

// HomeworkStatuses issues a single GET with from_date and returns the decoded,
// not yet validated, body. Numbers are decoded as json.Number.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, homework.WrapError(homework.KindEndpointUnavailable, err,
			"Некорректный ENDPOINT (%s)", c.endpoint)
	}
	params := reqURL.Query()
	params.Set("from_date", strconv.FormatInt(fromDate, 10))
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, homework.WrapError(homework.KindEndpointUnavailable, err, "Ошибка при запросе к API")
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, homework.WrapError(homework.KindEndpointUnavailable, err, "Ошибка при запросе к API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, homework.NewError(homework.KindEndpointUnavailable,
			"Ошибка при запросе к API: %s. Проверьте корректность ENDPOINT (%s) и параметры запроса.",
			statusText(resp), c.endpoint)
	}

	var body any
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, homework.WrapError(homework.KindMalformedResponse, err, "Ответ API не является JSON")
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, homework.NewError(homework.KindMalformedResponse, "Ответ API содержит данные после JSON-документа")
	}
	return body, nil
}

// statusText renders "503 Service Unavailable" even for handcrafted responses.
func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
}
