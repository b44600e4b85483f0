package github

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/trellisml/trellis/pkg/version"
	"golang.org/x/mod/semver"
)

type RepoRelease struct {
	URL         string `json:"url"`
	HTMLURL     string `json:"html_url"`
	ID          int64  `json:"id"`
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Draft       bool   `json:"draft"`
	Prerelease  bool   `json:"prerelease"`
	PublishedAt string `json:"published_at"`
}

type RepoReleases []RepoRelease

func (r RepoReleases) Len() int {
	return len(r)
}

func (r RepoReleases) Less(i, j int) bool {
	one := r[i]
	two := r[j]

	// Compare the releases via a semver comparison in descending order
	return semver.Compare(one.TagName, two.TagName) == 1
}

func (r RepoReleases) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func GetReleases(gh *GitHubClient) (RepoReleases, error) {
	releasesURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases", gh.Owner, gh.Repo)
	body, err := gh.Get(releasesURL, nil)
	if err != nil {
		return nil, err
	}

	var githubRepoReleases RepoReleases
	err = json.Unmarshal(body, &githubRepoReleases)
	if err != nil {
		return nil, err
	}

	return githubRepoReleases, nil
}

func GetLatestReleaseTagName(gh *GitHubClient) (string, error) {
	githubRepoReleases, err := GetReleases(gh)
	if err != nil {
		return "", err
	}

	if len(githubRepoReleases) == 0 {
		return "", fmt.Errorf("no releases")
	}

	for _, release := range githubRepoReleases {
		if !strings.Contains(release.TagName, "-rc") {
			return release.TagName, nil
		}
	}

	return "", fmt.Errorf("no releases")
}

const (
	trellisOwner = "trellisml"
	trellisRepo  = "trellis"
)

// CheckForLatestVersion prints an upgrade hint when a newer CLI release
// exists. Failures are silent; this must never block a command.
func CheckForLatestVersion() {
	if version.Version() == "edge" {
		return
	}

	gh := NewGitHubClient(trellisOwner, trellisRepo, "")
	latestTag, err := GetLatestReleaseTagName(gh)
	if err != nil {
		return
	}

	if semver.Compare(latestTag, version.Version()) == 1 {
		fmt.Println(aurora.Yellow(fmt.Sprintf("A new version of Trellis is available: %s", latestTag)))
	}
}
