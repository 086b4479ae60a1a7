package domain

import (
	"fmt"
	"strings"
	"time"
)

// CSP identifies a cloud service provider.
type CSP string

const (
	CSPAWS CSP = "AWS"
	CSPGCP CSP = "GCP"
)

// KnownCSPs lists providers in display order.
var KnownCSPs = []CSP{CSPAWS, CSPGCP}

// ParseCSP resolves a provider identifier case-insensitively.
func ParseCSP(raw string) (CSP, error) {
	for _, csp := range KnownCSPs {
		if strings.EqualFold(strings.TrimSpace(raw), string(csp)) {
			return csp, nil
		}
	}
	return "", fmt.Errorf("unknown csp %q", raw)
}

// Priority values observed in the main ticket dataset.
const (
	PriorityLow     = "Low"
	PriorityMedium  = "Medium"
	PriorityHigh    = "High"
	PriorityUnknown = "unknown"
)

// AlertTypeHeartbeat marks synthetic health-check tickets.
const AlertTypeHeartbeat = "Heartbeat"

// Ticket is one operational alert, incident or health-check record.
// Empty string fields denote a missing value.
type Ticket struct {
	CSP               string
	Environment       string
	NarrowEnvironment string
	AlertType         string
	Priority          string
	Key               string
	AppCode           string
	ConfigRule        string
	Summary           string
	Account           string
	Created           time.Time
	Resolved          *time.Time
}

// IsResolved reports whether the ticket carries a resolution timestamp.
func (t *Ticket) IsResolved() bool {
	return t.Resolved != nil
}

// Text returns the string value of a textual field. Timestamp fields return
// an empty string; use Time for those.
func (t *Ticket) Text(f Field) string {
	switch f {
	case FieldCSP:
		return t.CSP
	case FieldEnvironment:
		return t.Environment
	case FieldNarrowEnvironment:
		return t.NarrowEnvironment
	case FieldAlertType:
		return t.AlertType
	case FieldPriority:
		return t.Priority
	case FieldKey:
		return t.Key
	case FieldAppCode:
		return t.AppCode
	case FieldConfigRule:
		return t.ConfigRule
	case FieldSummary:
		return t.Summary
	case FieldAccount:
		return t.Account
	}
	return ""
}

// Time returns the timestamp value of a temporal field, or nil when absent.
func (t *Ticket) Time(f Field) *time.Time {
	switch f {
	case FieldCreated:
		created := t.Created
		return &created
	case FieldResolved:
		return t.Resolved
	}
	return nil
}
