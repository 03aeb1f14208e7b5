// Package bridge reaches token functionality through an out-of-process
// endpoint on runtime targets where direct RPC invocation is unavailable.
package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/log"
	"github.com/x-xyz/dropapi/base/metrics"
)

var ErrStatusCodeNotOk = xerrors.New("http.status != 200")

// Client invokes a named route with positional JSON-encoded arguments and
// decodes the JSON result.
type Client interface {
	Invoke(c bCtx.Ctx, route string, args []string, out interface{}) error
}

type ClientCfg struct {
	HttpClient http.Client
	BaseUrl    string
	Timeout    time.Duration
}

type invokeBody struct {
	Route string   `json:"route"`
	Args  []string `json:"args"`
}

type invokeResult struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type clientImpl struct {
	httpClient http.Client
	baseUrl    string
	met        *metrics.Service
}

func NewClient(cfg *ClientCfg) Client {
	client := cfg.HttpClient
	client.Timeout = cfg.Timeout
	return &clientImpl{
		httpClient: client,
		baseUrl:    cfg.BaseUrl,
		met:        metrics.New("bridge"),
	}
}

func (c *clientImpl) Invoke(ctx bCtx.Ctx, route string, args []string, out interface{}) error {
	defer c.met.BumpTime("invoke.time", "route", route).End()

	body, err := json.Marshal(invokeBody{Route: route, Args: args})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/invoke", c.baseUrl)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.met.BumpSum("invoke.err", 1, "route", route)
		ctx.WithFields(log.Fields{
			"route": route,
			"err":   err,
		}).Error("bridge invoke failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.met.BumpSum("invoke.err", 1, "route", route)
		ctx.WithFields(log.Fields{
			"route":  route,
			"status": resp.StatusCode,
		}).Error("bridge invoke bad status")
		return ErrStatusCodeNotOk
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var res invokeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return err
	}
	if res.Error != "" {
		return xerrors.Errorf("bridge %s: %s", route, res.Error)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(res.Result, out)
}

// jsonArgs encodes positional route arguments.
func jsonArgs(vals ...interface{}) ([]string, error) {
	args := make([]string, 0, len(vals))
	for _, v := range vals {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		args = append(args, string(b))
	}
	return args, nil
}
