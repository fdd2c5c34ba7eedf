package pages

import (
	"testing"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEnvironment(t *testing.T) {
	project := pagesapi.Project{Name: "demo", ProductionBranch: "main"}
	testCases := []struct {
		name   string
		branch string
		want   Environment
	}{
		{name: "production", branch: "main", want: Environment{Production: true, Label: "demo (Production)"}},
		{name: "preview", branch: "feature/x", want: Environment{Production: false, Label: "demo (Preview)"}},
		{name: "no branch", branch: "", want: Environment{Production: false, Label: "demo (Preview)"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyEnvironment("demo", tc.branch, project))
		})
	}
}

func TestClassifyEnvironment_emptyProductionBranch(t *testing.T) {
	env := ClassifyEnvironment("demo", "", pagesapi.Project{})
	assert.False(t, env.Production)
}

func TestSelectAlias(t *testing.T) {
	testCases := []struct {
		name       string
		production bool
		deployment pagesapi.Deployment
		wantAlias  string
		wantOK     bool
	}{
		{
			name:       "preview with alias",
			deployment: pagesapi.Deployment{URL: "https://abc.demo.pages.dev", Aliases: []string{"https://a.example", "https://b.example"}},
			wantAlias:  "https://a.example",
			wantOK:     true,
		},
		{
			name:       "preview without aliases",
			deployment: pagesapi.Deployment{URL: "https://abc.demo.pages.dev", Aliases: []string{}},
			wantAlias:  "https://abc.demo.pages.dev",
			wantOK:     true,
		},
		{
			name:       "preview with nil aliases",
			deployment: pagesapi.Deployment{URL: "https://abc.demo.pages.dev"},
			wantAlias:  "https://abc.demo.pages.dev",
			wantOK:     true,
		},
		{
			name:       "production",
			production: true,
			deployment: pagesapi.Deployment{URL: "https://abc.demo.pages.dev", Aliases: []string{"https://a.example"}},
			wantAlias:  "",
			wantOK:     false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			alias, ok := SelectAlias(tc.production, tc.deployment)
			assert.Equal(t, tc.wantAlias, alias)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}
