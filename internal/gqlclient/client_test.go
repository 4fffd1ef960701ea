package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmapos/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Load() (string, error) { return string(s), nil }

// stubBackend replays canned GraphQL responses keyed by a substring of
// the incoming query document.
type stubBackend struct {
	t         *testing.T
	responses map[string]string
	requests  int
	lastAuth  string
	lastQuery string
}

func (s *stubBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.requests++
		s.lastAuth = r.Header.Get("Authorization")

		var body struct {
			Query string `json:"query"`
		}
		require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))
		s.lastQuery = body.Query

		for needle, resp := range s.responses {
			if strings.Contains(body.Query, needle) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(resp))
				return
			}
		}
		s.t.Fatalf("unexpected query: %s", body.Query)
	}
}

func newTestClient(t *testing.T, stub *stubBackend, token string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)
	client := New(server.URL, staticTokens(token), time.Second,
		WithHTTPClient(server.Client()))
	return client, server
}

const productsResponse = `{"data":{"products":[
	{"id":"p1","name":"Paracetamol 500mg","code":"75001234","price":"10.00","quantity":50}
]}}`

func TestAuthorizationHeader(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{"products": productsResponse}}
	client, _ := newTestClient(t, stub, "tok-123")

	_, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "JWT tok-123", stub.lastAuth)
}

func TestNoHeaderWithoutToken(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{"products": productsResponse}}
	client, _ := newTestClient(t, stub, "")

	_, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stub.lastAuth)
}

func TestProductsServedFromCache(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{"products": productsResponse}}
	client, _ := newTestClient(t, stub, "tok")

	first, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "10.00", first[0].Price.StringFixed(2))

	second, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.requests)

	// Flush forces the next read back to the network.
	client.ClearCache()
	_, err = client.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stub.requests)
}

func TestCreateSaleInvalidatesProductCache(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"products":   productsResponse,
		"createSale": `{"data":{"createSale":{"sale":{"id":"s1","total":"25.00"},"success":true,"errors":[]}}}`,
	}}
	client, _ := newTestClient(t, stub, "tok")

	_, err := client.Products(context.Background())
	require.NoError(t, err)

	sale, err := client.CreateSale(context.Background(), CreateSaleInput{
		TypeReceipt: "B", TypePay: "E", Date: "2025-03-10T00:00:00Z",
		Details: []DetailSaleInput{{ProductID: "p1", Quantity: 2, Price: "10.00", Subtotal: "16.95", Total: "20.00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)

	// Stock changed server-side: the cached list must not be reused.
	_, err = client.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stub.requests)
}

func TestGraphQLErrorClassification(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"products": `{"errors":[{"message":"not authenticated"}]}`,
	}}
	client, _ := newTestClient(t, stub, "tok")

	_, err := client.Products(context.Background())
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindGraphQL, apiErr.Kind)

	// The backend answered: GraphQL errors never count against the
	// breaker.
	assert.Equal(t, BreakerClosed, client.BreakerState())
}

func TestTransportErrorClassification(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{}}
	client, server := newTestClient(t, stub, "tok")
	server.Close()

	_, err := client.Products(context.Background())
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindTransport, apiErr.Kind)
}

func TestBreakerOpensOnRepeatedTransportFailures(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{}}
	server := httptest.NewServer(stub.handler())
	client := New(server.URL, staticTokens("tok"), time.Second,
		WithHTTPClient(server.Client()),
		WithBreaker(BreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute}))
	server.Close()

	ctx := context.Background()
	_, err := client.Products(ctx)
	require.Error(t, err)
	_, err = client.Products(ctx)
	require.Error(t, err)
	assert.Equal(t, BreakerOpen, client.BreakerState())

	_, err = client.Products(ctx)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestLoginParsesEnvelope(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"loginUser": `{"data":{"loginUser":{
			"token":"tok-1","refreshToken":"ref-1",
			"user":{"id":"u1","username":"ana"},
			"success":true,"errors":[]}}}`,
	}}
	client, _ := newTestClient(t, stub, "")

	result, err := client.Login(context.Background(), "ana", "secret123")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "ref-1", result.RefreshToken)
	require.NotNil(t, result.User)
	assert.Equal(t, "ana", result.User.Username)
}

func TestLoginFailureEnvelope(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"loginUser": `{"data":{"loginUser":{
			"token":"","refreshToken":"","user":null,
			"success":false,
			"errors":[{"field":"password","message":"Credenciales inválidas"}]}}}`,
	}}
	client, _ := newTestClient(t, stub, "")

	result, err := client.Login(context.Background(), "ana", "wrong")
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Credenciales inválidas", result.Errors[0].Message)
}

func TestMutationBusinessError(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"createProduct": `{"data":{"createProduct":{
			"product":null,"success":false,
			"errors":[{"field":"code","message":"El código ya existe"}]}}}`,
	}}
	client, _ := newTestClient(t, stub, "tok")

	_, err := client.CreateProduct(context.Background(), ProductInput{Name: "x", Code: "123", Price: "1.00"})
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindBusiness, apiErr.Kind)
	assert.Equal(t, "El código ya existe", apiErr.Message())
}

func TestCashMutationFlattensMessages(t *testing.T) {
	stub := &stubBackend{t: t, responses: map[string]string{
		"openCash": `{"data":{"openCash":{
			"cash":null,"success":false,
			"errors":[{"messages":["Ya existe una caja abierta"]}]}}}`,
	}}
	client, _ := newTestClient(t, stub, "tok")

	_, err := client.OpenCash(context.Background(), OpenCashInput{SubsidiaryID: "sub1", InitialAmount: "50.00"})
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindBusiness, apiErr.Kind)
	assert.Equal(t, "Ya existe una caja abierta", apiErr.Message())
}
