package http

import (
	"io"
	"io/ioutil"
	"log"
	net_http "net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/trellisml/trellis/pkg/version"
)

var client *retryablehttp.Client

func RetryableClient() *retryablehttp.Client {
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = log.New(ioutil.Discard, "", 0)
	}
	return client
}

func Get(url string, accept string) (*net_http.Response, error) {
	req, err := retryablehttp.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	return do(req, accept)
}

func Post(url string, contentType string, body io.Reader) (*net_http.Response, error) {
	req, err := retryablehttp.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return do(req, "")
}

func do(req *retryablehttp.Request, accept string) (*net_http.Response, error) {
	req.Header.Set("User-Agent", version.UserAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := RetryableClient().Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
