// Package urlutil normalizes git remote URLs and injects basic-auth
// credentials into http(s) ones.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize trims whitespace, canonicalizes path separators, and collapses
// accidental ".git" duplication. For http(s) URLs the collapse happens on
// the parsed path; for everything else (ssh, filesystem paths) it happens
// on the raw string, since those aren't URLs in the net/url sense.
// github.com and gitlab.com URLs that still lack a ".git" suffix get one
// appended.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, `\`, "/")
	s = strings.TrimRight(s, "/")
	if s == "" {
		return s
	}

	if u, err := url.Parse(s); err == nil && isHTTPScheme(u.Scheme) && u.Host != "" {
		u.Path = collapseDotGit(u.Path)
		s = u.String()
		if needsDotGit(u.Host, u.Path) {
			s += ".git"
		}
		return s
	}

	s = collapseDotGit(s)
	if needsDotGit(hostOf(s), s) {
		s += ".git"
	}
	return s
}

func isHTTPScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

// collapseDotGit folds "/.git" into ".git", trims a trailing "/" after
// ".git", and repeatedly squashes ".git.git" runs into a single ".git".
func collapseDotGit(s string) string {
	s = strings.ReplaceAll(s, "/.git", ".git")
	if strings.HasSuffix(s, ".git/") {
		s = strings.TrimSuffix(s, "/")
	}
	for strings.Contains(s, ".git.git") {
		s = strings.ReplaceAll(s, ".git.git", ".git")
	}
	return s
}

func needsDotGit(host, s string) bool {
	if strings.HasSuffix(s, ".git") {
		return false
	}
	return host == "github.com" || host == "gitlab.com"
}

// hostOf extracts a bare host for the non-http (ssh/scp-like) forms this
// tool accepts, e.g. "git@github.com:org/repo" or "ssh://git@host/repo".
func hostOf(s string) string {
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		return u.Host
	}
	at := strings.IndexByte(s, '@')
	colon := strings.IndexByte(s, ':')
	if at >= 0 && colon > at {
		return s[at+1 : colon]
	}
	return ""
}

// WithAuth re-serializes url with user/password in the userinfo position.
// Given empty credentials, or a non-http(s) URL, the URL is returned
// unchanged: SSH URLs authenticate through the environment, never
// through this mechanism. Any parse failure is swallowed the same way.
func WithAuth(raw, user, password string) string {
	if user == "" && password == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || !isHTTPScheme(u.Scheme) {
		return raw
	}
	if password == "" {
		u.User = url.User(user)
	} else {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}
