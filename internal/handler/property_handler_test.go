package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyanbhambhani/rltr/internal/handler"
	"github.com/gyanbhambhani/rltr/internal/model"
)

func TestPropertyEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	writeToken := ts.token(t, org.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)

	rec := ts.request(http.MethodPost, "/api/properties", writeToken,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704"}`)
	assertStatus(t, rec, http.StatusOK)

	var created model.Property
	decodeJSON(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, org.ID, created.OrgID)

	rec = ts.request(http.MethodGet, "/api/properties/"+created.ID, writeToken, "")
	assertStatus(t, rec, http.StatusOK)

	var fetched model.Property
	decodeJSON(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "1 Main St", fetched.Street)
	assert.Equal(t, "Berkeley", fetched.City)
	assert.Equal(t, "CA", fetched.State)
	assert.Equal(t, "94704", fetched.PostalCode)
}

func TestPropertyAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	// no Authorization header at all
	rec := ts.request(http.MethodGet, "/api/properties", "", "")
	assertStatus(t, rec, http.StatusUnauthorized)

	// garbage token
	rec = ts.request(http.MethodGet, "/api/properties", "not-a-token", "")
	assertStatus(t, rec, http.StatusUnauthorized)

	// valid token signed with a different key
	rec = requestWithHeader(ts, http.MethodGet, "/api/properties", map[string]string{
		"Authorization": "Basic abc",
	})
	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestPropertyScopeEnforcement(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")

	readToken := ts.token(t, org.ID, handler.ScopeReadProperty)

	// read-only token cannot create
	rec := ts.request(http.MethodPost, "/api/properties", readToken,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704"}`)
	assertStatus(t, rec, http.StatusForbidden)

	// write-only token cannot list
	writeOnly := ts.token(t, org.ID, handler.ScopeWriteProperty)
	rec = ts.request(http.MethodGet, "/api/properties", writeOnly, "")
	assertStatus(t, rec, http.StatusForbidden)
}

func TestPropertyCrossTenantIs404(t *testing.T) {
	ts := newTestServer(t)
	orgA := ts.seedOrg(t, "Org A")
	orgB := ts.seedOrg(t, "Org B")

	tokenA := ts.token(t, orgA.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)
	tokenB := ts.token(t, orgB.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)

	rec := ts.request(http.MethodPost, "/api/properties", tokenA,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704"}`)
	assertStatus(t, rec, http.StatusOK)
	var created model.Property
	decodeJSON(t, rec, &created)

	rec = ts.request(http.MethodGet, "/api/properties/"+created.ID, tokenB, "")
	assertStatus(t, rec, http.StatusNotFound)

	rec = ts.request(http.MethodPatch, "/api/properties/"+created.ID, tokenB, `{"price":1}`)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestPropertyCreateValidation(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	token := ts.token(t, org.ID, handler.ScopeWriteProperty)

	// missing required address fields
	rec := ts.request(http.MethodPost, "/api/properties", token, `{"city":"Berkeley"}`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	// negative price
	rec = ts.request(http.MethodPost, "/api/properties", token,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704","price":-5}`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	// malformed body
	rec = ts.request(http.MethodPost, "/api/properties", token, `{"street":`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestPropertyPatchWhitelist(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	token := ts.token(t, org.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)

	rec := ts.request(http.MethodPost, "/api/properties", token,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704","price":900000}`)
	assertStatus(t, rec, http.StatusOK)
	var created model.Property
	decodeJSON(t, rec, &created)

	// street rides along in the payload but must not change
	rec = ts.request(http.MethodPatch, "/api/properties/"+created.ID, token,
		`{"street":"666 Hacked Blvd","price":950000}`)
	assertStatus(t, rec, http.StatusOK)

	var updated model.Property
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "1 Main St", updated.Street)
	require.NotNil(t, updated.Price)
	assert.Equal(t, int64(950000), *updated.Price)
}

func TestPropertyPatchIdempotent(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	token := ts.token(t, org.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)

	rec := ts.request(http.MethodPost, "/api/properties", token,
		`{"street":"1 Main St","city":"Berkeley","state":"CA","postal_code":"94704"}`)
	assertStatus(t, rec, http.StatusOK)
	var created model.Property
	decodeJSON(t, rec, &created)

	rec = ts.request(http.MethodPatch, "/api/properties/"+created.ID, token, `{"status":"sold"}`)
	assertStatus(t, rec, http.StatusOK)
	var first model.Property
	decodeJSON(t, rec, &first)

	time.Sleep(10 * time.Millisecond)

	rec = ts.request(http.MethodPatch, "/api/properties/"+created.ID, token, `{"status":"sold"}`)
	assertStatus(t, rec, http.StatusOK)
	var second model.Property
	decodeJSON(t, rec, &second)

	require.NotNil(t, second.Status)
	assert.Equal(t, "sold", *second.Status)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt),
		"updated_at must strictly increase between identical patches")
}

func TestPropertyListFiltersAndPagination(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	token := ts.token(t, org.ID, handler.ScopeReadProperty, handler.ScopeWriteProperty)

	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(
			`{"street":"%d Main St","city":"Berkeley","state":"CA","postal_code":"94704","price":%d,"beds":3}`,
			i, 500000+i*100000)
		rec := ts.request(http.MethodPost, "/api/properties", token, body)
		assertStatus(t, rec, http.StatusOK)
	}
	rec := ts.request(http.MethodPost, "/api/properties", token,
		`{"street":"9 Elm St","city":"Portland","state":"OR","postal_code":"97201","price":400000}`)
	assertStatus(t, rec, http.StatusOK)

	// conjunction of city + price range
	rec = ts.request(http.MethodGet, "/api/properties?city=berkeley&min_price=600000&max_price=700000", token, "")
	assertStatus(t, rec, http.StatusOK)
	var results []model.Property
	decodeJSON(t, rec, &results)
	require.Len(t, results, 2)
	for _, p := range results {
		assert.Equal(t, "Berkeley", p.City)
		assert.GreaterOrEqual(t, *p.Price, int64(600000))
		assert.LessOrEqual(t, *p.Price, int64(700000))
	}

	// limit respected
	rec = ts.request(http.MethodGet, "/api/properties?limit=2", token, "")
	assertStatus(t, rec, http.StatusOK)
	decodeJSON(t, rec, &results)
	assert.Len(t, results, 2)

	// offset beyond the total yields an empty page
	rec = ts.request(http.MethodGet, "/api/properties?offset=100", token, "")
	assertStatus(t, rec, http.StatusOK)
	decodeJSON(t, rec, &results)
	assert.Empty(t, results)
}

func TestPropertyListValidation(t *testing.T) {
	ts := newTestServer(t)
	org := ts.seedOrg(t, "Acme Realty")
	token := ts.token(t, org.ID, handler.ScopeReadProperty)

	for _, query := range []string{
		"limit=101",
		"limit=abc",
		"offset=-1",
		"min_price=-5",
		"max_price=-1",
		"beds_min=abc",
	} {
		rec := ts.request(http.MethodGet, "/api/properties?"+query, token, "")
		assertStatus(t, rec, http.StatusUnprocessableEntity)
	}
}
