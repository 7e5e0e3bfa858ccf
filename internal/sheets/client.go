package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/paothinnapat/sales-tracker/internal/config"
)

const (
	baseURL = "https://sheets.googleapis.com"
	scope   = "https://www.googleapis.com/auth/spreadsheets"
)

// ErrNoHeader is returned by HeaderRow when the worksheet has no header row.
// It is distinct from a failed read: transport and API errors come back as
// ordinary errors and must not be mistaken for an empty sheet.
var ErrNoHeader = errors.New("no header row present")

// Client talks to the Google Sheets values API for one spreadsheet document
type Client struct {
	baseURL       string
	spreadsheetID string
	sheetName     string // empty targets the first worksheet
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a Sheets client authenticated as the configured service
// account. A fresh token is fetched per session by the underlying transport.
func NewClient(cfg config.SheetsConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{scope},
		TokenURL:   google.JWTTokenURL,
	}
	httpClient := conf.Client(context.Background())
	httpClient.Timeout = 30 * time.Second

	return &Client{
		baseURL:       baseURL,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		httpClient:    httpClient,
		logger:        logger,
	}
}

// valueRange is the Sheets values API payload for reads, updates and appends
type valueRange struct {
	Range  string          `json:"range,omitempty"`
	Values [][]interface{} `json:"values,omitempty"`
}

type appendResponse struct {
	Updates struct {
		UpdatedRows int `json:"updatedRows"`
	} `json:"updates"`
}

// HeaderRow reads row 1 of the target worksheet. It returns ErrNoHeader when
// the row is empty and the raw error when the read itself fails.
func (c *Client) HeaderRow(ctx context.Context) ([]string, error) {
	var vr valueRange
	if err := c.call(ctx, http.MethodGet, c.valuesURL("1:1", nil), nil, &vr); err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(vr.Values[0]))
	for i, cell := range vr.Values[0] {
		header[i] = fmt.Sprint(cell)
	}
	return header, nil
}

// SetHeaderRow writes the header cells into row 1
func (c *Client) SetHeaderRow(ctx context.Context, header []string) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	body := valueRange{Values: [][]interface{}{row}}
	u := c.valuesURL("1:1", url.Values{"valueInputOption": {"RAW"}})
	return c.call(ctx, http.MethodPut, u, &body, nil)
}

// EnsureHeader initializes the header row if and only if the sheet has none.
// Existing headers are left as-is even when they differ from the expected
// set; a failed read is propagated so the caller does not reinitialize a
// sheet it could not see.
func (c *Client) EnsureHeader(ctx context.Context, header []string) error {
	_, err := c.HeaderRow(ctx)
	if errors.Is(err, ErrNoHeader) {
		c.logger.Info("Ledger sheet has no header row, initializing",
			zap.Strings("header", header))
		return c.SetHeaderRow(ctx, header)
	}
	return err
}

// AppendRows appends all rows below the existing data in one round trip and
// returns the number of rows the service reports as written.
func (c *Client) AppendRows(ctx context.Context, rows [][]interface{}) (int, error) {
	body := valueRange{Values: rows}
	u := c.valuesURL("A1:append", url.Values{
		"valueInputOption": {"USER_ENTERED"},
		"insertDataOption": {"INSERT_ROWS"},
	})
	var resp appendResponse
	if err := c.call(ctx, http.MethodPost, u, &body, &resp); err != nil {
		return 0, err
	}
	if resp.Updates.UpdatedRows == 0 {
		return len(rows), nil
	}
	return resp.Updates.UpdatedRows, nil
}

// Rows reads every data row below the header, as display strings
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	var vr valueRange
	if err := c.call(ctx, http.MethodGet, c.valuesURL("A1:ZZ", nil), nil, &vr); err != nil {
		return nil, err
	}
	if len(vr.Values) <= 1 {
		return nil, nil
	}
	rows := make([][]string, 0, len(vr.Values)-1)
	for _, raw := range vr.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// valuesURL builds a values API URL for a range reference within the target
// worksheet. ref may carry an :append suffix.
func (c *Client) valuesURL(ref string, query url.Values) string {
	if c.sheetName != "" {
		ref = c.sheetName + "!" + ref
	}
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s", c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(ref))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// call executes one values API request and decodes the response into out
func (c *Client) call(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(respBody))
		}
	}
	return nil
}
