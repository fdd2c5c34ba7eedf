// Package summary renders the Markdown job summary of a deployment run.
package summary

import (
	"fmt"
	"strings"
)

// DefaultTitle is used when a report has no title.
const DefaultTitle = "Deploying with Wharf Pages"

// ShortHashLength is the number of characters of the commit hash to show.
const ShortHashLength = 8

// Notification is shown last in every summary.
const Notification = "If this is your first deployment, the page will start working in 5-10 minutes.<br>There will be no such delays in the future."

// Report is the data shown in a job summary.
type Report struct {
	// Title is the heading of the summary.
	Title string
	// CommitHash is the full commit hash of the deployed commit. Optional.
	CommitHash string
	// Status is the coarse deployment status, such as "Deploy successful".
	Status string
	// StatusIcon is shown before the status. Optional.
	StatusIcon string
	// PreviewURL is the canonical deployment URL.
	PreviewURL string
	// AliasURL is the branch preview URL. Optional.
	AliasURL string
	// Domains are the custom domains of the project, without scheme.
	Domains []string
}

// ShortHash returns the first 8 characters of a commit hash.
func ShortHash(hash string) string {
	if len(hash) <= ShortHashLength {
		return hash
	}
	return hash[:ShortHashLength]
}

// Render renders the report as a Markdown document.
func Render(r Report) string {
	var sb strings.Builder
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Name | Result |\n")
	sb.WriteString("| ---- | ------ |\n")
	if r.CommitHash != "" {
		writeRow(&sb, "Last commit", fmt.Sprintf("`%s`", ShortHash(r.CommitHash)))
	}
	status := r.Status
	if r.StatusIcon != "" {
		status = r.StatusIcon + "  " + status
	}
	writeRow(&sb, "Status", status)
	writeRow(&sb, "Preview URL", r.PreviewURL)
	if r.AliasURL != "" {
		writeRow(&sb, "Branch Preview URL", r.AliasURL)
	}
	if len(r.Domains) > 0 {
		writeRow(&sb, "URL", domainURLs(r.Domains))
	}
	writeRow(&sb, "Notification", Notification)
	return sb.String()
}

func writeRow(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, "| **%s**: | %s |\n", name, value)
}

func domainURLs(domains []string) string {
	urls := make([]string, 0, len(domains))
	for _, d := range domains {
		if d == "" {
			continue
		}
		urls = append(urls, "https://"+d)
	}
	return strings.Join(urls, "<br>")
}
