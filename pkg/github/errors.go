package github

import "fmt"

// GitHubCallError carries the status code of a failed GitHub API call so the
// release check can stay silent on transient failures.
type GitHubCallError struct {
	StatusCode int
	Message    string
}

func (e *GitHubCallError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func NewGitHubCallError(message string, statusCode int) *GitHubCallError {
	return &GitHubCallError{
		Message:    message,
		StatusCode: statusCode,
	}
}
