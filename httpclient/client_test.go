package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

const testToken = "test-access-token"

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(httpclient.RequestIDHeader)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(srv.URL, httpclient.StaticToken(testToken))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	require.Equal(t, "Bearer "+testToken, gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestTransportSkipsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(srv.URL, httpclient.StaticToken(""))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	require.Empty(t, gotAuth)
}

func TestPathsJoinUnderBasePath(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(srv.URL+"/api", nil)
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/fx-rate?base=USD&target=KES", nil))
	require.Equal(t, "/api/fx-rate", gotPath)
	require.Equal(t, "base=USD&target=KES", gotQuery)
}

func TestErrorBodyBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(srv.URL, nil)
	require.NoError(t, err)

	err = client.Post(context.Background(), "/auth/login", map[string]string{"email": "x"}, nil)
	require.Error(t, err)

	var apiErr *httpclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.True(t, apiErr.IsUnauthorized())
}

func TestErrorWithoutBodyKeepsStatusOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := httpclient.New(srv.URL, nil)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/wallet", nil)
	var apiErr *httpclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Empty(t, apiErr.Message)
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := httpclient.New("localhost:5000", nil)
	require.Error(t, err)
}
