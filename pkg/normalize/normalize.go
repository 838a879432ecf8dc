package normalize

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Rules names the fields the normalizer treats specially.
type Rules struct {
	IdentifierField string   // raw identifier key, e.g. "_id"
	IDField         string   // synthesized plain identifier key, e.g. "id"
	DateFields      []string // fields converted to time.Time
}

// DefaultRules matches the documents produced by the report generator.
func DefaultRules() Rules {
	return Rules{
		IdentifierField: "_id",
		IDField:         "id",
		DateFields: []string{
			"createdAt", "updatedAt", "lastGeneratedAt", "generatedAt",
			"created_at", "updated_at", "last_generated_at", "generated_at",
		},
	}
}

// Normalizer rewrites Mongo wrapper encodings ({"$oid"}, {"$date"}, bson primitives)
// into plain Go values anywhere in a document tree.
type Normalizer struct {
	logger     *zap.Logger
	rules      Rules
	dateFields map[string]struct{}
}

func NewNormalizer(logger *zap.Logger, rules Rules) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	dateFields := make(map[string]struct{}, len(rules.DateFields))
	for _, f := range rules.DateFields {
		dateFields[f] = struct{}{}
	}
	return &Normalizer{
		logger:     logger,
		rules:      rules,
		dateFields: dateFields,
	}
}

var defaultNormalizer = NewNormalizer(nil, DefaultRules())

// Normalize runs the default normalizer without logging.
func Normalize(value any) any {
	return defaultNormalizer.Normalize(value)
}

// Normalize returns a normalized copy of value. The input is never mutated and
// normalizing an already normalized value returns an equal value.
func (n *Normalizer) Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return n.normalizeSlice(v)
	case primitive.A:
		return n.normalizeSlice([]any(v))
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = n.normalizeObject(item)
		}
		return out
	case map[string]any:
		return n.normalizeObject(v)
	case primitive.M:
		return n.normalizeObject(map[string]any(v))
	case primitive.D:
		return n.normalizeObject(v.Map())
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	default:
		return value
	}
}

func (n *Normalizer) normalizeSlice(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = n.Normalize(item)
	}
	return out
}

func (n *Normalizer) normalizeObject(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}

	if raw, ok := doc[n.rules.IdentifierField]; ok && raw != nil {
		if id, ok := identifierString(raw); ok {
			out[n.rules.IdentifierField] = id
			out[n.rules.IDField] = id
		}
	}

	for k, v := range out {
		if k == n.rules.IdentifierField {
			if _, plain := v.(string); !plain {
				out[k] = n.Normalize(v)
			}
			continue
		}
		if _, isDate := n.dateFields[k]; isDate {
			out[k] = n.normalizeDate(k, v)
			continue
		}
		switch v.(type) {
		case map[string]any, primitive.M, primitive.D, []any, primitive.A, []map[string]any,
			primitive.ObjectID, primitive.DateTime:
			out[k] = n.Normalize(v)
		}
	}
	return out
}

// identifierString unwraps {"$oid": "..."} and ObjectID values, falling back to
// string coercion for anything else.
func identifierString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case primitive.ObjectID:
		return v.Hex(), true
	case map[string]any:
		return wrappedIdentifier(v)
	case primitive.M:
		return wrappedIdentifier(map[string]any(v))
	case primitive.D:
		return wrappedIdentifier(v.Map())
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func wrappedIdentifier(m map[string]any) (string, bool) {
	nested, ok := m["$oid"]
	if !ok || nested == nil {
		return "", false
	}
	return identifierString(nested)
}

func (n *Normalizer) normalizeDate(field string, raw any) any {
	switch v := raw.(type) {
	case nil, time.Time:
		return raw
	case primitive.DateTime:
		return v.Time().UTC()
	case string:
		if t, ok := ParseTime(v); ok {
			return t
		}
		n.logger.Warn("Unparseable date left as is", zap.String("field", field), zap.String("value", v))
		return raw
	case map[string]any:
		return n.unwrapDate(field, v, raw)
	case primitive.M:
		return n.unwrapDate(field, map[string]any(v), raw)
	case primitive.D:
		return n.unwrapDate(field, v.Map(), raw)
	default:
		return raw
	}
}

func (n *Normalizer) unwrapDate(field string, wrapper map[string]any, raw any) any {
	nested, ok := wrapper["$date"]
	if !ok {
		return n.Normalize(raw)
	}
	if t, ok := dateFromWrapped(nested); ok {
		return t
	}
	n.logger.Warn("Unparseable wrapped date left as is", zap.String("field", field), zap.Any("value", nested))
	return raw
}

// dateFromWrapped decodes the value held under "$date": an ISO string, epoch
// milliseconds, or a {"$numberLong": "..."} object.
func dateFromWrapped(nested any) (time.Time, bool) {
	switch v := nested.(type) {
	case string:
		return ParseTime(v)
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case int64:
		return time.UnixMilli(v).UTC(), true
	case int32:
		return time.UnixMilli(int64(v)).UTC(), true
	case int:
		return time.UnixMilli(int64(v)).UTC(), true
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time().UTC(), true
	case map[string]any:
		if s, ok := v["$numberLong"].(string); ok {
			ms, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return time.Time{}, false
			}
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the date layouts the report generator is known to emit.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
