package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRemotes(t *testing.T) {
	got := parseRemotes([]string{
		"origin\thttps://github.com/iver-wharf/wharf-pages.git (fetch)",
		"origin\tgit@github.com:iver-wharf/wharf-pages.git (push)",
		"upstream\thttps://example.com/a/b.git (fetch)",
		"garbage",
	})
	want := map[string]Remote{
		"origin": {
			FetchURL: "https://github.com/iver-wharf/wharf-pages.git",
			PushURL:  "git@github.com:iver-wharf/wharf-pages.git",
		},
		"upstream": {
			FetchURL: "https://example.com/a/b.git",
		},
	}
	assert.Equal(t, want, got)
}

func TestEstimateRepoOwnerAndName(t *testing.T) {
	testCases := []struct {
		name      string
		remote    Remote
		wantOwner string
		wantName  string
	}{
		{
			name:      "https",
			remote:    Remote{FetchURL: "https://github.com/iver-wharf/wharf-pages.git"},
			wantOwner: "iver-wharf",
			wantName:  "wharf-pages",
		},
		{
			name:      "ssh",
			remote:    Remote{FetchURL: "git@github.com:iver-wharf/wharf-pages.git"},
			wantOwner: "iver-wharf",
			wantName:  "wharf-pages",
		},
		{
			name:      "push url fallback",
			remote:    Remote{PushURL: "https://github.com/acme/site"},
			wantOwner: "acme",
			wantName:  "site",
		},
		{
			name:      "azure devops",
			remote:    Remote{FetchURL: "https://dev.azure.com/acme/web/_git/site"},
			wantOwner: "acme/web",
			wantName:  "site",
		},
		{
			name:   "empty",
			remote: Remote{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner, name := estimateRepoOwnerAndName(tc.remote)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantName, name)
		})
	}
}
