package analytics

import (
	"time"

	"github.com/socops/ticket-analytics/internal/domain"
)

var baseTime = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

type ticketOpt func(*domain.Ticket)

func withCSP(csp string) ticketOpt { return func(t *domain.Ticket) { t.CSP = csp } }

func withPriority(p string) ticketOpt { return func(t *domain.Ticket) { t.Priority = p } }

func withAppCode(code string) ticketOpt { return func(t *domain.Ticket) { t.AppCode = code } }

func withConfigRule(rule string) ticketOpt { return func(t *domain.Ticket) { t.ConfigRule = rule } }

func withSummary(s string) ticketOpt { return func(t *domain.Ticket) { t.Summary = s } }

func withEnv(env, narrow string) ticketOpt {
	return func(t *domain.Ticket) {
		t.Environment = env
		t.NarrowEnvironment = narrow
	}
}

func withCreated(ts time.Time) ticketOpt { return func(t *domain.Ticket) { t.Created = ts } }

func withResolved(ts time.Time) ticketOpt { return func(t *domain.Ticket) { t.Resolved = &ts } }

func newTicket(key string, opts ...ticketOpt) domain.Ticket {
	t := domain.Ticket{
		CSP:               "AWS",
		Environment:       "PROD",
		NarrowEnvironment: "Prod",
		AlertType:         "Alert",
		Priority:          "High",
		Key:               key,
		AppCode:           "ABCD",
		ConfigRule:        "AWS-100",
		Summary:           "disk usage above threshold",
		Account:           "123456789012",
		Created:           baseTime,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func viewOf(tickets ...domain.Ticket) View {
	return All(domain.NewDataset(tickets))
}

func keysOf(v View) []string {
	out := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		out = append(out, v.At(i).Key)
	}
	return out
}
