// Utilities for parsing cURL commands.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	curlHeaderRe = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRe = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// The cookie comes from the -b flag when present, falling back to a
// Cookie header.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	result := &CurlHeaders{Headers: map[string]string{}}

	for _, match := range curlHeaderRe.FindAllStringSubmatch(cmd, -1) {
		key, value, ok := strings.Cut(quotedGroup(match), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if result.Cookie == "" {
				result.Cookie = value
			}
			continue
		}
		result.Headers[key] = value
	}

	if match := curlCookieRe.FindStringSubmatch(cmd); match != nil {
		result.Cookie = quotedGroup(match)
	}

	if len(result.Headers) == 0 && result.Cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return result, nil
}

// quotedGroup picks whichever quoting style the regex matched.
func quotedGroup(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}

// BearerToken extracts the bearer token from a parsed Authorization header.
//
// Returns an empty string when the command carried no bearer credential.
func (c *CurlHeaders) BearerToken() string {
	for key, value := range c.Headers {
		if !strings.EqualFold(key, "authorization") {
			continue
		}
		if rest, ok := strings.CutPrefix(value, "Bearer "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
