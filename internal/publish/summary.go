package publish

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Summary renders result as a tree rooted at LIVE/main, one branch per
// published tag showing its remote name and short SHA, built directly
// from Result instead of a second shell-out to git log --graph.
func Summary(result *Result) string {
	root := treeprint.New()
	root.SetValue("LIVE/main")
	if len(result.TagsPublished) == 0 {
		root.AddNode("(no tags published)")
		return root.String()
	}
	for _, pt := range result.TagsPublished {
		remoteName := strings.TrimPrefix(pt.SourceTag, "live/")
		short := pt.LiveSHA
		if len(short) > 12 {
			short = short[:12]
		}
		root.AddNode(fmt.Sprintf("%s -> %s (%d commit(s))", remoteName, short, pt.CommitCount))
	}
	return root.String()
}
