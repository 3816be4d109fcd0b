// Package slug validates and normalizes tenant slugs, the human-readable
// routing keys used for storefront subdomains, URL paths, and cache keys.
package slug
