package app

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// withApplicationName labels sessions in pg_stat_activity with name unless
// the connection string already carries an application_name. Both URL and
// key/value forms are accepted.
func withApplicationName(dsn, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(dsn) == "" {
		return dsn
	}
	if dsnSettings(dsn)["application_name"] != "" {
		return dsn
	}

	if u, err := url.Parse(strings.TrimSpace(dsn)); err == nil && u.Scheme != "" {
		q := u.Query()
		q.Set("application_name", name)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return strings.TrimSpace(dsn) + " application_name=" + quoteDSNValue(name)
}

// databaseName reports the dbname setting, empty when none is given.
func databaseName(dsn string) string {
	return dsnSettings(dsn)["dbname"]
}

// dsnSettings flattens a connection string into libpq settings. URLs go
// through pq.ParseURL first so both forms share one parser.
func dsnSettings(dsn string) map[string]string {
	dsn = strings.TrimSpace(dsn)
	if strings.Contains(dsn, "://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return map[string]string{}
		}
		dsn = converted
	}
	return parseKeyValueDSN(dsn)
}

// parseKeyValueDSN reads "key=value" pairs separated by whitespace. Values
// may be single-quoted; a backslash escapes the next byte.
func parseKeyValueDSN(dsn string) map[string]string {
	settings := make(map[string]string)
	rest := strings.TrimSpace(dsn)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			break
		}
		key := strings.TrimSpace(rest[:eq])
		rest = strings.TrimLeft(rest[eq+1:], " \t\r\n")

		quoted := strings.HasPrefix(rest, "'")
		if quoted {
			rest = rest[1:]
		}
		var value strings.Builder
		i := 0
	scan:
		for ; i < len(rest); i++ {
			switch c := rest[i]; {
			case c == '\\' && i+1 < len(rest):
				i++
				value.WriteByte(rest[i])
			case quoted && c == '\'':
				i++
				break scan
			case !quoted && strings.IndexByte(" \t\r\n", c) >= 0:
				break scan
			default:
				value.WriteByte(c)
			}
		}
		settings[key] = value.String()
		rest = strings.TrimLeft(rest[i:], " \t\r\n")
	}
	return settings
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\r\n'\\") {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + escaped + "'"
}
