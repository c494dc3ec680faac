package assets

import (
	"net"
	"regexp"
)

var projectPath = regexp.MustCompile(`^/([^/]+)/`)

// ResolveBasePath derives the asset base path from where the game is served.
// Local hosts use the working directory; a site hosted under a project path
// such as /wildsnap/ uses that path.
func ResolveBasePath(host, path string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "localhost" || host == "127.0.0.1" {
		return "."
	}
	if m := projectPath.FindStringSubmatch(path); m != nil {
		return "/" + m[1]
	}
	return "."
}
