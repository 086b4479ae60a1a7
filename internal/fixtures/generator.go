// Package fixtures synthesizes ticket and heartbeat datasets for local runs
// and demos.
package fixtures

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/dataset"
	"github.com/socops/ticket-analytics/internal/domain"
)

// KeyOffset is added to the record index to form ticket keys.
const KeyOffset = 10000

// HeartbeatFailureRate is the share of heartbeat checks reported as failed.
const HeartbeatFailureRate = 0.05

var (
	alertTypes    = []string{"Alert", "System", "GuardDuty"}
	priorities    = []string{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow, domain.PriorityUnknown}
	environments  = []string{"PROD", "Non Prod", "Uat", "Dev", "Unknown"}
	narrowNonProd = []string{"Uat", "Dev", "Unknown"}
	summaries     = []string{
		"S3 bucket allows public read access",
		"Security group permits unrestricted ingress",
		"IAM user has inline policy attached",
		"Root account used for console login",
		"Encryption disabled on storage volume",
		"Service account key older than ninety days",
		"Firewall rule exposes SSH to the internet",
		"Logging disabled for load balancer",
	}
)

// heartbeatProfile describes the checks emitted for one provider.
type heartbeatProfile struct {
	rules  []string
	prefix string
}

var heartbeatProfiles = map[domain.CSP]heartbeatProfile{
	domain.CSPAWS: {rules: []string{"AWS-999", "AWS-998"}, prefix: "HB-AWS"},
	domain.CSPGCP: {rules: []string{"GCP-111", "GCP-112"}, prefix: "HB-GCP"},
}

// Generator produces deterministic synthetic records for a seed.
type Generator struct {
	rng      *rand.Rand
	now      time.Time
	appCodes []string
	accounts []string
	rules    []string
}

// NewGenerator builds a generator whose output depends only on seed and now.
func NewGenerator(seed uint64, now time.Time) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now.UTC().Truncate(time.Second),
	}
	g.appCodes = g.unique(30, func() string { return g.letters(4) })
	g.accounts = g.unique(20, func() string { return g.digits(12) })
	g.rules = g.unique(30, func() string { return "AWS-" + g.digits(3) })
	return g
}

// Tickets generates n main tickets created during the year before now.
func (g *Generator) Tickets(n int) []domain.Ticket {
	out := make([]domain.Ticket, 0, n)
	for i := 0; i < n; i++ {
		csp := domain.CSPAWS
		if g.rng.IntN(2) == 1 {
			csp = domain.CSPGCP
		}
		env, narrow := g.environment()

		rule, account := "Unknown", "Unknown"
		if csp == domain.CSPAWS {
			rule = pick(g.rng, g.rules)
			account = pick(g.rng, g.accounts)
		}

		created := g.now.Add(-time.Duration(g.rng.Int64N(int64(365 * 24 * time.Hour)))).Truncate(time.Second)
		resolved := created.Add(time.Duration(1+g.rng.IntN(720)) * time.Hour)

		out = append(out, domain.Ticket{
			CSP:               string(csp),
			Environment:       env,
			NarrowEnvironment: narrow,
			AlertType:         pick(g.rng, alertTypes),
			Priority:          pick(g.rng, priorities),
			Key:               fmt.Sprintf("CSD-%d", i+KeyOffset),
			AppCode:           pick(g.rng, g.appCodes),
			ConfigRule:        rule,
			Summary:           pick(g.rng, summaries),
			Account:           account,
			Created:           created,
			Resolved:          &resolved,
		})
	}
	return out
}

// Heartbeats emits one health check for csp every two hours of r. Failed
// checks stay unresolved.
func (g *Generator) Heartbeats(csp domain.CSP, r analytics.Range) ([]domain.Ticket, error) {
	profile, ok := heartbeatProfiles[csp]
	if !ok {
		return nil, fmt.Errorf("no heartbeat profile for %q", csp)
	}
	starts := analytics.PeriodStarts(analytics.GranularityTwoHour, r)
	out := make([]domain.Ticket, 0, len(starts))
	for i, ts := range starts {
		t := domain.Ticket{
			CSP:               string(csp),
			Environment:       "PROD",
			NarrowEnvironment: "Prod",
			AlertType:         domain.AlertTypeHeartbeat,
			Priority:          "Critical",
			Key:               fmt.Sprintf("%s-%d", profile.prefix, i+1),
			AppCode:           "MONITOR",
			ConfigRule:        pick(g.rng, profile.rules),
			Account:           g.digits(12),
			Created:           ts,
		}
		if g.rng.Float64() < HeartbeatFailureRate {
			t.Summary = "Heartbeat Check - Failed"
		} else {
			t.Summary = "Heartbeat Check - " + analytics.SuccessMarker
			resolved := ts.Add(time.Duration(5+g.rng.IntN(25)) * time.Minute)
			t.Resolved = &resolved
		}
		out = append(out, t)
	}
	return out, nil
}

func (g *Generator) environment() (string, string) {
	switch env := pick(g.rng, environments); env {
	case "PROD":
		return env, "Prod"
	case "Non Prod":
		return env, pick(g.rng, narrowNonProd)
	default:
		return env, env
	}
}

func (g *Generator) unique(n int, next func() string) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		v := next()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (g *Generator) letters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + g.rng.IntN(26))
	}
	return string(b)
}

func (g *Generator) digits(n int) string {
	b := make([]byte, n)
	b[0] = byte('1' + g.rng.IntN(9))
	for i := 1; i < n; i++ {
		b[i] = byte('0' + g.rng.IntN(10))
	}
	return string(b)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// SplitByCSP partitions tickets per provider, keeping their order.
func SplitByCSP(tickets []domain.Ticket) map[domain.CSP][]domain.Ticket {
	out := make(map[domain.CSP][]domain.Ticket, len(domain.KnownCSPs))
	for _, t := range tickets {
		out[domain.CSP(t.CSP)] = append(out[domain.CSP(t.CSP)], t)
	}
	return out
}

// Write stores tickets as CSV at path, compressed when the suffix asks for it.
func Write(path string, tickets []domain.Ticket) (err error) {
	w, err := dataset.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return analytics.ExportCSV(w, analytics.All(domain.NewDataset(tickets)), domain.AllFields)
}
