package services

import (
	"fmt"
	"strings"
)

// BuildBlogPostURL returns the public page of a post, or "" without a base URL
func BuildBlogPostURL(baseURL, slug string) string {
	return buildSiteURL(baseURL, "blog", slug)
}

func BuildProjectURL(baseURL, slug string) string {
	return buildSiteURL(baseURL, "projects", slug)
}

func BuildServiceURL(baseURL, slug string) string {
	return buildSiteURL(baseURL, "services", slug)
}

func buildSiteURL(baseURL, section, slug string) string {
	if baseURL == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), section, slug)
}
