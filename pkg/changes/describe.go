package changes

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// Describe returns a one-line summary of rec for the change-review drawer.
// Field labels may carry markup; it is stripped.
func Describe(rec *Record) string {
	if rec == nil {
		return ""
	}
	subject := subjectLabel(rec.Subject)
	switch rec.Kind {
	case KindChangeSetting:
		payload, _ := rec.Payload.(SettingPayload)
		return fmt.Sprintf("Changed %s of %q from %s to %s", payload.Attr, subject, describeValue(payload.Before), describeValue(payload.After))
	case KindSortFields:
		return fmt.Sprintf("Re-ordered fields (%d moved)", sortedCount(rec))
	case KindAddField:
		return fmt.Sprintf("Added field %q", subject)
	case KindRemoveField:
		return fmt.Sprintf("Removed field %q", subject)
	case KindDuplicateField:
		return fmt.Sprintf("Duplicated field %q", subject)
	case KindAddListOption:
		return fmt.Sprintf("Added option %q to %s", subject, scopeLabel(rec))
	case KindRemoveListOption:
		return fmt.Sprintf("Removed option %q from %s", subject, scopeLabel(rec))
	case KindSortListOptions:
		return fmt.Sprintf("Re-ordered options of %q (%d moved)", subject, sortedCount(rec))
	default:
		return fmt.Sprintf("Unknown change %q", string(rec.Kind))
	}
}

func subjectLabel(entity builder.Entity) string {
	if entity == nil {
		return ""
	}
	return sanitizeLabel(builder.Label(entity))
}

func scopeLabel(rec *Record) string {
	if payload, ok := rec.Payload.(OptionPayload); ok && !payload.Scope.IsFields() {
		return fmt.Sprintf("field %q", payload.Scope.FieldID)
	}
	return "field"
}

func sortedCount(rec *Record) int {
	payload, _ := rec.Payload.(SortPayload)
	return len(payload.Orders)
}

func describeValue(value any) string {
	if value == nil {
		return "(empty)"
	}
	if s, ok := value.(string); ok {
		clean := sanitizeLabel(s)
		if clean == "" {
			return "(empty)"
		}
		return fmt.Sprintf("%q", clean)
	}
	return fmt.Sprintf("%v", value)
}

func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := labelSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
