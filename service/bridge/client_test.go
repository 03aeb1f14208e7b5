package bridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
)

// newBridgeServer fakes the bridge host. handler returns the result value and
// an optional error string per invocation.
func newBridgeServer(t *testing.T, handler func(route string, args []string) (interface{}, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/invoke", r.URL.Path)

		var body invokeBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		result, errMsg := handler(body.Route, body.Args)
		raw, err := json.Marshal(result)
		require.NoError(t, err)
		resp := invokeResult{Result: raw, Error: errMsg}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestClient(baseUrl string) Client {
	return NewClient(&ClientCfg{
		HttpClient: http.Client{},
		BaseUrl:    baseUrl,
		Timeout:    time.Second,
	})
}

func TestInvokeRoundTrip(t *testing.T) {
	srv := newBridgeServer(t, func(route string, args []string) (interface{}, string) {
		require.Equal(t, "erc20/totalSupply", route)
		require.Equal(t, []string{"1", `"0xabc"`}, args)
		return "42", ""
	})
	defer srv.Close()

	var out string
	err := newTestClient(srv.URL).Invoke(bCtx.Background(), "erc20/totalSupply", []string{"1", `"0xabc"`}, &out)
	require.NoError(t, err)
	require.Equal(t, "42", out)
}

func TestInvokeBridgeError(t *testing.T) {
	srv := newBridgeServer(t, func(string, []string) (interface{}, string) {
		return nil, "execution reverted"
	})
	defer srv.Close()

	var out string
	err := newTestClient(srv.URL).Invoke(bCtx.Background(), "erc20/name", nil, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "execution reverted")
}

func TestInvokeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out string
	err := newTestClient(srv.URL).Invoke(bCtx.Background(), "erc20/name", nil, &out)
	require.ErrorIs(t, err, ErrStatusCodeNotOk)
}
