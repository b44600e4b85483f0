package github

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
)

type GitHubClient struct {
	Owner string
	Repo  string
	Token string
}

func NewGitHubClient(owner string, repo string, token string) *GitHubClient {
	if token == "" {
		token = GetGitHubTokenFromEnv()
	}

	return &GitHubClient{
		Owner: owner,
		Repo:  repo,
		Token: token,
	}
}

func GetGitHubTokenFromEnv() string {
	token := os.Getenv("TRELLIS_GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	return token
}

func (g *GitHubClient) Get(url string, payload []byte) ([]byte, error) {
	return g.call("GET", url, payload, "application/vnd.github.v3+json")
}

func (g *GitHubClient) call(method string, url string, payload []byte, accept string) ([]byte, error) {
	if payload == nil {
		payload = make([]byte, 0)
	}

	payloadReader := bytes.NewReader(payload)

	req, err := http.NewRequest(method, url, payloadReader)
	if err != nil {
		return nil, err
	}

	if g.Token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("token %s", g.Token))
	}

	if accept != "" {
		req.Header.Add("Accept", accept)
	}

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != 200 {
		return nil, NewGitHubCallError(fmt.Sprintf("Error calling GitHub: %s", string(body)), response.StatusCode)
	}

	return body, nil
}
