package builder

import (
	"math"
	"strconv"
	"strings"
)

// AttrOrder is the attribute key holding an entity's sort position.
const AttrOrder = "order"

// Common field attribute keys used by the builder UI.
const (
	AttrLabel    = "label"
	AttrKey      = "key"
	AttrType     = "type"
	AttrRequired = "required"
	AttrValue    = "value"
)

// Entity is anything the change log can point at: a field or a list option.
type Entity interface {
	EntityID() string
	Attr(key string) (any, bool)
	SetAttr(key string, value any)
}

// Ordered entities expose their sort position.
type Ordered interface {
	Entity
	Order() int
	SetOrder(order int)
}

// attributes is the shared attribute bag behind Field and Option.
type attributes map[string]any

func (a attributes) get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

func (a attributes) clone() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func (a attributes) order() int {
	raw, ok := a.get(AttrOrder)
	if !ok {
		return 0
	}
	return toInt(raw)
}

func toInt(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(math.Round(float64(v)))
	case float64:
		return int(math.Round(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Label returns the entity's label attribute as a string, falling back to the
// entity ID when no label is set.
func Label(entity Entity) string {
	if entity == nil {
		return ""
	}
	if raw, ok := entity.Attr(AttrLabel); ok {
		if label, ok := raw.(string); ok && strings.TrimSpace(label) != "" {
			return label
		}
	}
	return entity.EntityID()
}
