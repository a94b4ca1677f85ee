package dml

import (
	"strconv"
	"strings"
)

// MaxScriptIDLen is the platform ceiling for a fully-prefixed script
// ID, including the customrecord_/custrecord_/customlist_ prefix the
// platform adds to the visible identifier.
const MaxScriptIDLen = 40

const (
	recordIDPrefix = "customrecord_"
	fieldIDPrefix  = "custrecord_"
	listIDPrefix   = "customlist_"
)

// abbreviations maps common words to shortened forms used when a raw
// script ID would exceed MaxScriptIDLen. Kept as a data table so it
// can be extended without touching parsing code.
var abbreviations = map[string]string{
	"employee":    "emp",
	"department":  "dept",
	"customer":    "cust",
	"description": "desc",
	"number":      "num",
	"address":     "addr",
	"amount":      "amt",
	"account":     "acct",
	"reference":   "ref",
	"transaction": "txn",
	"location":    "loc",
	"category":    "cat",
	"quantity":    "qty",
	"manager":     "mgr",
	"management":  "mgmt",
	"information": "info",
	"document":    "doc",
	"message":     "msg",
	"percentage":  "pct",
	"balance":     "bal",
	"company":     "co",
	"inventory":   "inv",
	"purchase":    "purch",
	"received":    "rcvd",
	"scheduled":   "sched",
	"approval":    "appr",
	"assignment":  "assign",
	"available":   "avail",
}

// normalizePrefix lowercases a configured prefix and guarantees a
// trailing underscore separator for non-empty prefixes.
func normalizePrefix(prefix string) string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	prefix = strings.Trim(prefix, "_")
	if prefix == "" {
		return ""
	}
	return prefix + "_"
}

// abbreviate shortens each underscore-separated word through the
// abbreviation table.
func abbreviate(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if abbr, ok := abbreviations[w]; ok {
			words[i] = abbr
		}
	}
	return strings.Join(words, "_")
}

// RecordScriptID derives the full entity script ID:
// customrecord_{prefix}{entityId}, abbreviated and truncated to the
// platform ceiling.
func RecordScriptID(prefix, entityID string) string {
	return fitScriptID(recordIDPrefix, normalizePrefix(prefix), entityID, "")
}

// ListScriptID derives the full enumeration script ID:
// customlist_{prefix}{listId}.
func ListScriptID(prefix, listID string) string {
	return fitScriptID(listIDPrefix, normalizePrefix(prefix), listID, "")
}

// FieldScriptID derives a field script ID:
// custrecord_{prefix}{entityId}_{fieldName}.
func FieldScriptID(prefix, entityID, fieldName string) string {
	return fitScriptID(fieldIDPrefix, normalizePrefix(prefix), entityID, fieldName)
}

// fitScriptID builds platformPrefix + userPrefix + base [+ "_" + part]
// and shortens it to MaxScriptIDLen. The abbreviation pass shortens
// the trailing part first, then the base; truncation then trims the
// trailing part so the base/part boundary survives wherever possible.
func fitScriptID(platformPrefix, userPrefix, base, part string) string {
	build := func(b, p string) string {
		id := platformPrefix + userPrefix + b
		if p != "" {
			id += "_" + p
		}
		return id
	}

	id := build(base, part)
	if len(id) <= MaxScriptIDLen {
		return id
	}

	if part != "" {
		part = abbreviate(part)
		if id = build(base, part); len(id) <= MaxScriptIDLen {
			return id
		}
	}
	base = abbreviate(base)
	if id = build(base, part); len(id) <= MaxScriptIDLen {
		return id
	}

	// Still too long: truncate the trailing part, keeping at least one
	// character of it, then fall back to truncating the whole ID.
	if part != "" {
		fixed := len(platformPrefix) + len(userPrefix) + len(base) + 1
		if keep := MaxScriptIDLen - fixed; keep >= 1 {
			return build(base, part[:min(keep, len(part))])
		}
	}
	id = build(base, part)
	return id[:MaxScriptIDLen]
}

// deriveRecordScriptIDs stamps FullEntityID and every field ScriptID,
// suffixing duplicates so all IDs within one statement stay distinct.
func (p *Parser) deriveRecordScriptIDs(stmt *CreateRecord) {
	prefix := stmt.Prefix
	if prefix == "" {
		prefix = p.opts.ScriptIDPrefix
	}
	stmt.FullEntityID = RecordScriptID(prefix, stmt.EntityID)

	seen := map[string]struct{}{}
	for i := range stmt.Fields {
		id := FieldScriptID(prefix, stmt.EntityID, stmt.Fields[i].Name)
		id = dedupeScriptID(id, seen)
		seen[id] = struct{}{}
		stmt.Fields[i].ScriptID = id
	}
}

// dedupeScriptID appends a numeric suffix on collision, trimming the
// body so the result stays within MaxScriptIDLen.
func dedupeScriptID(id string, seen map[string]struct{}) string {
	if _, dup := seen[id]; !dup {
		return id
	}
	for n := 2; ; n++ {
		suffix := strconv.Itoa(n)
		candidate := id
		if len(candidate)+len(suffix) > MaxScriptIDLen {
			candidate = candidate[:MaxScriptIDLen-len(suffix)]
		}
		candidate += suffix
		if _, dup := seen[candidate]; !dup {
			return candidate
		}
	}
}

func (p *Parser) listScriptID(stmt *CreateList) string {
	return ListScriptID(p.opts.ScriptIDPrefix, stmt.ListID)
}
