package domain

// Field enumerates the ticket columns known to the service.
type Field string

const (
	FieldCSP               Field = "CSP"
	FieldEnvironment       Field = "Environment"
	FieldNarrowEnvironment Field = "NarrowEnvironment"
	FieldAlertType         Field = "AlertType"
	FieldPriority          Field = "Priority"
	FieldKey               Field = "Key"
	FieldAppCode           Field = "AppCode"
	FieldConfigRule        Field = "ConfigRule"
	FieldSummary           Field = "Summary"
	FieldAccount           Field = "Account"
	FieldCreated           Field = "tCreated"
	FieldResolved          Field = "tResolved"
)

// AllFields is the canonical column order used for listings and exports.
var AllFields = []Field{
	FieldCSP,
	FieldEnvironment,
	FieldNarrowEnvironment,
	FieldAlertType,
	FieldPriority,
	FieldKey,
	FieldAppCode,
	FieldConfigRule,
	FieldSummary,
	FieldAccount,
	FieldCreated,
	FieldResolved,
}

// ParseField maps a column name onto a known Field.
func ParseField(name string) (Field, bool) {
	for _, f := range AllFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// IsTemporal reports whether the field holds a timestamp.
func (f Field) IsTemporal() bool {
	return f == FieldCreated || f == FieldResolved
}

// IsSearchable reports whether the field accepts substring filters.
func (f Field) IsSearchable() bool {
	_, ok := ParseField(string(f))
	return ok && !f.IsTemporal()
}
