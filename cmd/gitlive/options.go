package main

import "github.com/gitlive/gitlive/internal/publish"

// Options holds the parsed flag values shared by the root command and
// "check", including --config and --metrics-file.
type Options struct {
	URL      string
	User     string
	Password string

	DryRun      bool
	Incremental bool
	Repair      bool
	Nuke        bool
	Full        bool

	Verbose     bool
	VeryVerbose bool

	ConfigPath  string
	MetricsFile string
}

// Mode resolves the sync strategy using a fixed precedence:
// nuke > repair(==--full) > incremental, default incremental.
func (o *Options) Mode() publish.Mode {
	switch {
	case o.Nuke:
		return publish.Nuke
	case o.Repair || o.Full:
		return publish.Repair
	default:
		return publish.Incremental
	}
}

// VerboseEnabled reports whether either verbosity flag was set. Logger
// exposes a single verbosity tier, so -v and -vv both enable it; -vv's
// extra granularity has no console-level distinction to map onto.
func (o *Options) VerboseEnabled() bool {
	return o.Verbose || o.VeryVerbose
}
