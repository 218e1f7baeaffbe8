//go:build integration

package services_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/repo"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
	"github.com/light-bringer/dealmarket-service/internal/pkg/testutil"
	"github.com/light-bringer/dealmarket-service/internal/services"
	httpserver "github.com/light-bringer/dealmarket-service/internal/transport/http"
)

func setupServer(t *testing.T) (http.Handler, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)
	clk := clock.NewMockClock(time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC))

	h := services.NewMarketplaceHandler(services.Storage{
		Users:      repo.NewUserRepo(),
		Businesses: repo.NewBusinessRepo(),
		Products:   repo.NewProductRepo(),
		ReadModel:  repo.NewReadModel(client),
		Transactor: committer.NewCommitter(client),
	}, clk)

	e := httpserver.NewServer(h, httpserver.ServerOptions{
		Service:   "dealmarket-test",
		Logger:    zerolog.Nop(),
		Clock:     clk,
		RateLimit: rate.Inf,
		RateBurst: 1,
	})
	return e, cleanup
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, httpserver.APIPrefix+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMarketplaceLifecycle(t *testing.T) {
	h, cleanup := setupServer(t)
	defer cleanup()

	rec := send(t, h, http.MethodPost, "/users", `{"username":"alice","email":"a@x.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Contains(t, rec.Body.String(), `"join_date":"2024-05-20T10:00:00Z"`)

	var user struct{ ID int64 }
	require.NoError(t, jsonDecode(rec, &user))

	rec = send(t, h, http.MethodPost, "/businesses", fmt.Sprintf(`{"business_name":"Motors","owner_id":%d}`, user.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"city":"Unspecified"`)

	var business struct{ ID int64 }
	require.NoError(t, jsonDecode(rec, &business))

	rec = send(t, h, http.MethodPost, "/products", fmt.Sprintf(
		`{"name":"Tyres","category":"Spare parts and wheels","original_price":"400.00","new_price":"300.00","business_id":%d}`,
		business.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"main_category":"Cars and supplies"`)
	assert.Contains(t, rec.Body.String(), `"percentage_discount":25`)
	assert.Contains(t, rec.Body.String(), `"offer_expiration_date":"2024-05-20"`)

	var product struct{ ID int64 }
	require.NoError(t, jsonDecode(rec, &product))

	// Owned rows block deletion of their parents.
	rec = send(t, h, http.MethodDelete, fmt.Sprintf("/businesses/%d", business.ID), "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	rec = send(t, h, http.MethodDelete, fmt.Sprintf("/businesses/%d", business.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	rec = send(t, h, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

// Two registrations racing for one username: exactly one wins.
func TestConcurrentRegistration(t *testing.T) {
	h, cleanup := setupServer(t)
	defer cleanup()

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"username":"racer","email":"racer%d@x.com","password":"secret"}`, i)
			codes[i] = send(t, h, http.MethodPost, "/users", body).Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
