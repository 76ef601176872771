// Utilities for parsing cURL commands and producing cookie files.
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

// CookiePair is a single name/value cookie taken from a Cookie header.
type CookiePair struct {
	Name  string
	Value string
}

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string, as copied from browser devtools,
// and extracts its headers and cookie material.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	headerRegex := regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		var headerLine string
		if match[1] != "" {
			headerLine = match[1]
		} else {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if strings.ToLower(key) != "cookie" {
				headers[key] = value
			}
		}
	}

	cookieRegex := regexp.MustCompile(`(?:-b|--cookie)\s+'([^']+)'|(?:-b|--cookie)\s+"([^"]+)"`)
	cookieMatches := cookieRegex.FindStringSubmatch(curlCmd)
	if len(cookieMatches) > 1 {
		if cookieMatches[1] != "" {
			cookie = cookieMatches[1]
		} else {
			cookie = cookieMatches[2]
		}
	}

	if cookie == "" {
		for _, match := range matches {
			var headerLine string
			if match[1] != "" {
				headerLine = match[1]
			} else {
				headerLine = match[2]
			}

			if strings.HasPrefix(strings.ToLower(headerLine), "cookie:") {
				parts := strings.SplitN(headerLine, ":", 2)
				if len(parts) == 2 {
					cookie = strings.TrimSpace(parts[1])
				}
				break
			}
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &CurlHeaders{
		Headers: headers,
		Cookie:  cookie,
	}, nil
}

// CookiePairs splits the Cookie header into ordered name/value pairs.
// Malformed fragments without an "=" are skipped.
func (c *CurlHeaders) CookiePairs() []CookiePair {
	if c.Cookie == "" {
		return nil
	}

	var pairs []CookiePair
	for _, fragment := range strings.Split(c.Cookie, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		parts := strings.SplitN(fragment, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		pairs = append(pairs, CookiePair{Name: parts[0], Value: parts[1]})
	}

	return pairs
}

// netscapeHeader is the magic first line yt-dlp requires in a cookie file.
const netscapeHeader = "# Netscape HTTP Cookie File"

// WriteNetscapeCookies renders cookie pairs as a Netscape-format cookies.txt
// scoped to youtube.com and writes it to path with owner-only permissions.
//
// Expiry 0 marks the cookies as session cookies, which yt-dlp accepts.
func WriteNetscapeCookies(path string, pairs []CookiePair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("%w: no cookies to write", ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString(netscapeHeader + "\n")
	b.WriteString("# Generated by chanlist from a browser cURL command.\n\n")
	for _, pair := range pairs {
		fmt.Fprintf(&b, ".youtube.com\tTRUE\t/\tTRUE\t0\t%s\t%s\n", pair.Name, pair.Value)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}

	return nil
}
