package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"shopql/internal/graph"
	"shopql/internal/handler"
	"shopql/internal/middleware"
	"shopql/internal/repository"
	"shopql/internal/router"
	"shopql/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type productJSON struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type cartJSON struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Quantity  int          `json:"quantity"`
	Product   *productJSON `json:"product"`
}

const (
	productsQuery = `{ products { id name price image } }`
	cartQuery     = `{ cart { id productId quantity product { id name price image } } }`
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)

	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, 0, logger)

	schema, err := graph.NewSchema(
		graph.NewResolver(productService, cartService, logger),
		graph.SchemaConfig{MaxDepth: 10, MaxParallelism: 10},
		logger,
	)
	require.NoError(t, err)

	return router.New(handler.NewGraphQLHandler(schema, true, logger), router.Options{
		GraphQLPath: "/graphql",
		CORS: middleware.CORSOptions{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
	}, logger)
}

// execute posts a GraphQL request and decodes the response envelope.
func execute(t *testing.T, server http.Handler, query string, variables map[string]any) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp gqlResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// decodeField decodes data.<field> into out.
func decodeField(t *testing.T, resp gqlResponse, field string, out any) {
	t.Helper()

	require.Empty(t, resp.Errors)

	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NoError(t, json.Unmarshal(data[field], out))
}

func TestGraphQLAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("products returns storage order and is idempotent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool, "Mug", "Hat", "Pen")

		var first, second []productJSON
		decodeField(t, execute(t, server, productsQuery, nil), "products", &first)
		decodeField(t, execute(t, server, productsQuery, nil), "products", &second)

		require.Len(t, first, 3)
		for i, name := range []string{"Mug", "Hat", "Pen"} {
			assert.Equal(t, strconv.FormatInt(ids[i], 10), first[i].ID)
			assert.Equal(t, name, first[i].Name)
		}
		assert.Equal(t, first, second)
	})

	t.Run("empty store yields empty lists", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var products []productJSON
		decodeField(t, execute(t, server, productsQuery, nil), "products", &products)
		assert.NotNil(t, products)
		assert.Empty(t, products)

		var cart []cartJSON
		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)
		assert.NotNil(t, cart)
		assert.Empty(t, cart)
	})

	t.Run("mug scenario", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var created productJSON
		decodeField(t, execute(t, server,
			`mutation($name: String!, $price: Float!, $image: String!) {
				addProduct(name: $name, price: $price, image: $image) { id name price image }
			}`,
			map[string]any{"name": "Mug", "price": 12.5, "image": "mug.png"},
		), "addProduct", &created)
		assert.Equal(t, "1", created.ID)
		assert.Equal(t, productJSON{ID: "1", Name: "Mug", Price: 12.5, Image: "mug.png"}, created)

		var line cartJSON
		decodeField(t, execute(t, server,
			`mutation($productId: ID!, $quantity: Int!) {
				addToCart(productId: $productId, quantity: $quantity) { id productId quantity product { name } }
			}`,
			map[string]any{"productId": created.ID, "quantity": 2},
		), "addToCart", &line)
		assert.Equal(t, "1", line.ID)
		assert.Equal(t, created.ID, line.ProductID)
		assert.Equal(t, 2, line.Quantity)
		require.NotNil(t, line.Product)
		assert.Equal(t, "Mug", line.Product.Name)

		var cart []cartJSON
		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)
		require.Len(t, cart, 1)
		assert.Equal(t, created, *cart[0].Product)

		var removed cartJSON
		decodeField(t, execute(t, server,
			`mutation($cartId: ID!) { removeFromCart(cartId: $cartId) { id productId quantity } }`,
			map[string]any{"cartId": line.ID},
		), "removeFromCart", &removed)
		assert.Equal(t, cartJSON{ID: "1", ProductID: "1", Quantity: 2}, removed)

		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)
		assert.Empty(t, cart)
	})

	t.Run("removeFromCart on missing id fails without mutation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool, "Mug")
		_, err := testDB.Pool.Exec(t.Context(),
			"INSERT INTO cart_items (product_id, quantity) VALUES ($1, 1)", ids[0])
		require.NoError(t, err)

		resp := execute(t, server, `mutation { removeFromCart(cartId: "999") { id } }`, nil)

		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])

		var cart []cartJSON
		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)
		assert.Len(t, cart, 1)
	})

	t.Run("cart keeps dangling and duplicate lines in storage order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool, "Mug", "Hat")

		for _, line := range []struct {
			productID int64
			quantity  int
		}{
			{ids[1], 1},
			{ids[0], 3},
			{424242, 5},
			{ids[1], 2},
		} {
			resp := execute(t, server,
				`mutation($productId: ID!, $quantity: Int!) { addToCart(productId: $productId, quantity: $quantity) { id } }`,
				map[string]any{"productId": strconv.FormatInt(line.productID, 10), "quantity": line.quantity},
			)
			require.Empty(t, resp.Errors)
		}

		var cart []cartJSON
		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)

		require.Len(t, cart, 4)
		for i, line := range cart {
			assert.Equal(t, strconv.Itoa(i+1), line.ID)
		}
		assert.Equal(t, "Hat", cart[0].Product.Name)
		assert.Equal(t, "Mug", cart[1].Product.Name)
		assert.Equal(t, "424242", cart[2].ProductID)
		assert.Nil(t, cart[2].Product)
		assert.Equal(t, "Hat", cart[3].Product.Name)
	})

	t.Run("boundary validation rejects before any write", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		resp := execute(t, server, `mutation { addToCart(productId: "abc", quantity: 1) { id } }`, nil)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "INVALID_ID", resp.Errors[0].Extensions["code"])

		resp = execute(t, server, `mutation { addToCart(productId: "1", quantity: 0) { id } }`, nil)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "INVALID_QUANTITY", resp.Errors[0].Extensions["code"])

		var cart []cartJSON
		decodeField(t, execute(t, server, cartQuery, nil), "cart", &cart)
		assert.Empty(t, cart)
	})

	t.Run("GET query and health check", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool, "Mug")

		req := httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bproducts%7Bname%7D%7D", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"products":[{"name":"Mug"}]}}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
