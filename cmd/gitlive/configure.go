package main

import (
	"os"

	"github.com/gitlive/gitlive/internal/config"
	gitliveerrors "github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/selector"
	"github.com/gitlive/gitlive/internal/urlutil"
	"github.com/gitlive/gitlive/internal/z0"
)

// resolvedTarget is the configuration a sync or check run needs once
// the layered CLI/ENV/Z0 reader has been collapsed to concrete values.
type resolvedTarget struct {
	LiveURL string
	Rules   []selector.Rule
}

// loadConfigRoot reads path as a Z0 document. A missing file is treated
// as an empty document, not an error: gitlive.z0 is optional.
func loadConfigRoot(path string) (*z0.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return z0.Parse(string(data))
}

// resolve merges o's CLI flags with the environment and the Z0 file at
// o.ConfigPath into a usable LIVE URL (with auth applied) and compiled
// file-selection rules.
func resolve(o *Options) (resolvedTarget, error) {
	root, err := loadConfigRoot(o.ConfigPath)
	if err != nil {
		return resolvedTarget{}, gitliveerrors.NewConfigError(o.ConfigPath, err)
	}

	cli := map[string]string{}
	if o.URL != "" {
		cli["url"] = o.URL
	}
	if o.User != "" {
		cli["user"] = o.User
	}
	if o.Password != "" {
		cli["password"] = o.Password
	}

	reader := config.New(cli, os.Environ(), root)

	rawURL, ok := reader.URL()
	if !ok || rawURL == "" {
		return resolvedTarget{}, gitliveerrors.Wrap(gitliveerrors.ErrInvalidConfiguration,
			"no LIVE URL configured (--url, GITLIVE_URL, or \"url\"/\"public-url\" in "+o.ConfigPath+")")
	}

	user, _ := reader.User()
	password, _ := reader.Password()

	liveURL := urlutil.Normalize(rawURL)
	liveURL = urlutil.WithAuth(liveURL, user, password)

	rules, err := selector.CompileRules(reader.Files())
	if err != nil {
		return resolvedTarget{}, gitliveerrors.Wrap(err, "compiling file-selection rules")
	}

	return resolvedTarget{LiveURL: liveURL, Rules: rules}, nil
}
