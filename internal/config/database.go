package config

import (
	"net/url"
	"strings"
)

const defaultDBName = "israeli_football"

// PostgresURL is DB_URL with disable_prepared_binary_result=yes appended when
// DB_DISABLE_PREPARED_BINARY_RESULT is set and the URL does not already pick a
// value. Poolers in transaction mode need it.
func (c Config) PostgresURL() string {
	raw := strings.TrimSpace(c.DBURL)
	if !c.DBDisablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// PostgresDBName extracts the database name from DB_URL, accepting both the
// URL form and the key=value DSN form.
func (c Config) PostgresDBName() string {
	raw := strings.TrimSpace(c.DBURL)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
		return defaultDBName
	}

	for _, token := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return defaultDBName
}
