// Package extract pulls the YAML body out of a free-text model response.
package extract

import "strings"

const (
	yamlFence = "```yaml"
	fence     = "```"
)

// YAML returns the content of the first fenced block in response.
// A block opened with ```yaml is preferred over a bare ``` block. A block
// missing its closing fence runs to the end of the response. Without any
// fence the whole response is returned. The result is always trimmed.
func YAML(response string) string {
	if start := strings.Index(response, yamlFence); start >= 0 {
		return between(response, start+len(yamlFence))
	}
	if start := strings.Index(response, fence); start >= 0 {
		return between(response, start+len(fence))
	}
	return strings.TrimSpace(response)
}

// between returns response from start up to the next fence, trimmed.
func between(response string, start int) string {
	body := response[start:]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
