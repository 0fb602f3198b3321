package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type NewClientOpts struct {
	// GatewayUrl is the URL where the gateway service is accessible at
	GatewayUrl string

	// Id will be included in the user-agent for identification
	Id string
}

func NewClient(opts NewClientOpts) (*Client, error) {
	client := &Client{
		HttpClient: &http.Client{},
		Id:         opts.Id,
	}

	gatewayUrl, err := url.Parse(opts.GatewayUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provided gatewayUrl[%s]: %s", opts.GatewayUrl, err)
	}
	if gatewayUrl.Scheme == "" {
		return nil, fmt.Errorf("failed to determine url scheme of gatewayUrl[%s]", opts.GatewayUrl)
	}
	client.GatewayUrl = gatewayUrl

	return client, nil
}

type Client struct {
	// GatewayUrl is the URL where the gateway service is accessible at
	GatewayUrl *url.URL

	// HttpClient is the HTTP client
	HttpClient *http.Client

	// Id will be included in the user-agent for identification
	Id string
}

type requestOpts struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// do executes a single request against the gateway and unmarshals the
// response body into output when output is non-nil. A non-2xx status is
// returned as an *ApiError carrying the server's detail message.
func (c *Client) do(ctx context.Context, opts requestOpts, output any) error {
	gatewayUrl := *c.GatewayUrl
	gatewayUrl.Path = opts.Path
	if opts.Query != nil {
		gatewayUrl.RawQuery = opts.Query.Encode()
	}
	var requestBody io.Reader
	if opts.Body != nil {
		requestBodyData, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %s", err)
		}
		requestBody = bytes.NewBuffer(requestBodyData)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, opts.Method, gatewayUrl.String(), requestBody)
	if err != nil {
		return fmt.Errorf("failed to create http request for %s %s: %s", opts.Method, opts.Path, err)
	}
	httpRequest.Header.Add("Content-Type", "application/json")
	httpRequest.Header.Add("User-Agent", fmt.Sprintf("watchtower/gateway-sdk/client-%s", c.Id))
	httpResponse, err := c.HttpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("failed to execute http request for %s %s: %s", opts.Method, opts.Path, err)
	}
	defer httpResponse.Body.Close()
	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %s", err)
	}
	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return &ApiError{
			StatusCode: httpResponse.StatusCode,
			Detail:     parseDetail(responseBody),
		}
	}
	if output == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, output); err != nil {
		return fmt.Errorf("failed to parse response from gateway service: %s", err)
	}
	return nil
}
