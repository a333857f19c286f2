package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ClientConfig represents the configuration for the API client.
type ClientConfig struct {
	APIURL      string
	AccessToken string
	Timeout     time.Duration // Default: 30 seconds
	Logger      *slog.Logger
}

// Client is a client for the journal and ledger REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a new API client. When an access token is configured
// every request carries it as a bearer token.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{}
	if config.AccessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: config.AccessToken,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(config.APIURL, "/"),
		logger:     logger,
	}
}

// ListJournalTypes lists journal-type options.
func (c *Client) ListJournalTypes(ctx context.Context) ([]JournalType, error) {
	var types []JournalType
	if err := c.do(ctx, http.MethodGet, "/jurnal/name", nil, &types); err != nil {
		return nil, fmt.Errorf("failed to list journal types: %w", err)
	}
	return types, nil
}

// ListBranches lists branch/project options.
func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	if err := c.do(ctx, http.MethodGet, "/jurnal/Cabang", nil, &branches); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// ListChart lists the chart of accounts.
func (c *Client) ListChart(ctx context.Context) ([]ChartAccount, error) {
	var chart []ChartAccount
	if err := c.do(ctx, http.MethodGet, "/bank/chart", nil, &chart); err != nil {
		return nil, fmt.Errorf("failed to list chart of accounts: %w", err)
	}
	return chart, nil
}

// ReferenceData groups the option lists a journal form needs.
type ReferenceData struct {
	JournalTypes []JournalType
	Branches     []Branch
	Chart        []ChartAccount
}

// FetchReferenceData loads journal types, branches and the chart of accounts.
func (c *Client) FetchReferenceData(ctx context.Context) (*ReferenceData, error) {
	types, err := c.ListJournalTypes(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := c.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	chart, err := c.ListChart(ctx)
	if err != nil {
		return nil, err
	}

	return &ReferenceData{
		JournalTypes: types,
		Branches:     branches,
		Chart:        chart,
	}, nil
}

// GetJournalDetail fetches a journal by row id for editing.
func (c *Client) GetJournalDetail(ctx context.Context, id int64) (*JournalDetail, error) {
	var detail JournalDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/jurnal/detail/%d", id), nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get journal %d: %w", id, err)
	}
	return &detail, nil
}

// CreateTransaction persists a new journal.
func (c *Client) CreateTransaction(ctx context.Context, payload TransactionPayload) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodPost, "/jurnal/transaction", payload, &txn); err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}
	return &txn, nil
}

// UpdateTransaction replaces the journal with row id.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, payload TransactionPayload) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/jurnal/transaction/%d", id), payload, &txn); err != nil {
		return nil, fmt.Errorf("failed to update journal %d: %w", id, err)
	}
	return &txn, nil
}

// DeleteTransaction deletes a journal. Deletion is keyed by transaction
// number, not by the row id used for detail and update.
func (c *Client) DeleteTransaction(ctx context.Context, transNo int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/jurnal/transaction/%d", transNo), nil, nil); err != nil {
		return fmt.Errorf("failed to delete journal trans_no=%d: %w", transNo, err)
	}
	return nil
}

// ListJournals lists journal headers for the journal table.
func (c *Client) ListJournals(ctx context.Context) ([]JournalRow, error) {
	var rows []JournalRow
	if err := c.do(ctx, http.MethodGet, "/jurnal/Table", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return rows, nil
}

// FetchLedger fetches every account with its postings.
func (c *Client) FetchLedger(ctx context.Context) ([]LedgerAccount, error) {
	var accounts []LedgerAccount
	if err := c.do(ctx, http.MethodGet, "/bukubesar/all", nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to fetch general ledger: %w", err)
	}
	if accounts == nil {
		accounts = []LedgerAccount{}
	}
	return accounts, nil
}

// do performs a JSON request. out may be nil when the response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &APIError{Kind: ErrConnection, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.parseError(resp)
		c.logger.Debug("API error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"detail", apiErr.Detail,
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseError parses an error response from the API.
func (c *Client) parseError(resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       classify(resp.StatusCode, ""),
			Detail:     "failed to read error response",
		}
	}

	detail := strings.TrimSpace(string(body))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		detail = errResp.Error
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       classify(resp.StatusCode, detail),
		Detail:     detail,
	}
}
