package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BASE_URL未設定ならスキップ（起動済みのサーバーが必要）
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; e2e tests need a running server")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Address  *string `json:"address"`
	OrderIDs []int64 `json:"order_ids"`
}

type ProductDTO struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

type OrderDTO struct {
	ID        int64        `json:"id"`
	OrderDate string       `json:"order_date"`
	UserID    int64        `json:"user_id"`
	Status    string       `json:"status"`
	Products  []ProductDTO `json:"products"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeUser(t *testing.T, body []byte) UserDTO {
	t.Helper()
	var v UserDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(UserDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeProduct(t *testing.T, body []byte) ProductDTO {
	t.Helper()
	var v ProductDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ProductDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeOrder(t *testing.T, body []byte) OrderDTO {
	t.Helper()
	var v OrderDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(OrderDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

// email等の衝突を避けるための一意サフィックス
func uniqueSuffix() string {
	return time.Now().Format("20060102-150405.000000000")
}

// テストデータのユーザーを作って返す
func createTestUser(t *testing.T, c *TestClient, ctx context.Context) UserDTO {
	t.Helper()

	payload := []byte(`{"name":"E2E User","email":"e2e-` + uniqueSuffix() + `@example.com"}`)
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/users", payload)
	requireStatus(t, resp, http.StatusCreated, body)
	return mustDecodeUser(t, body)
}

// テストデータの商品を作って返す
func createTestProduct(t *testing.T, c *TestClient, ctx context.Context, name string, price float64) ProductDTO {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"product_name": name + "-" + uniqueSuffix(),
		"price":        price,
	})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", payload)
	requireStatus(t, resp, http.StatusCreated, body)
	return mustDecodeProduct(t, body)
}
