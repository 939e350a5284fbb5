package netops

import (
	"context"
	"strconv"
	"strings"

	"github.com/JustinLoye/network-agents/internal/types"
)

// whoisColumns is the column count of the bgp.tools verbose table.
const whoisColumns = 7

// Whois looks up resource (an ASN, IP address, or MAC address) against the
// bgp.tools whois service and returns the first result row as a key/value
// map. Bare ASN numbers are normalized to the AS-prefixed form.
func (t *Tools) Whois(ctx context.Context, resource string) (map[string]string, error) {
	if asn, err := strconv.Atoi(strings.TrimSpace(resource)); err == nil {
		resource = "AS" + strconv.Itoa(asn)
	}

	out, err := t.run(ctx, "whois", "-h", "bgp.tools", "-v", resource)
	if err != nil {
		return nil, err
	}

	result, err := parseWhoisTable(out)
	if err != nil {
		return nil, types.WrapError(types.AGENT_TOOL_FAILED, "whois lookup for "+resource, err)
	}
	return result, nil
}

// parseWhoisTable reads the pipe-delimited verbose output: a header line of
// column names followed by one row per result. Only the first row is kept.
func parseWhoisTable(out string) (map[string]string, error) {
	var keys, vals []string

	for _, line := range strings.Split(out, "\n") {
		cols := strings.Split(line, "|")
		if len(cols) != whoisColumns {
			continue
		}

		trimmed := make([]string, len(cols))
		for i, col := range cols {
			trimmed[i] = strings.TrimSpace(col)
		}

		if keys == nil {
			keys = trimmed
			continue
		}
		vals = trimmed
		break
	}

	if keys == nil || vals == nil {
		return nil, types.NewError(types.AGENT_TOOL_FAILED, "no table in whois output")
	}

	result := make(map[string]string, len(keys))
	for i, key := range keys {
		result[key] = vals[i]
	}
	return result, nil
}
