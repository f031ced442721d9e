// Package assistant answers dashboard help questions from a fixed ordered rule table.
package assistant

import (
	"strings"
)

// DefaultReply is returned when no rule matches
const DefaultReply = "I can help with properties, tenants, maintenance, rent collection, leases, applications, reports and syncing. Try asking about one of those."

// Rule pairs trigger keywords with a canned response. A rule matches when the question contains any keyword.
type Rule struct {
	Topic    string
	Keywords []string
	Response string
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{
		Topic:    "greeting",
		Keywords: []string{"hello", "hi ", "hey"},
		Response: "Hello! Ask me about your properties, tenants, maintenance or finances.",
	},
	{
		Topic:    "overdue",
		Keywords: []string{"overdue", "late rent", "owe", "balance"},
		Response: "Tenants with a negative balance are overdue. The dashboard shows the outstanding balance and an alert when any tenant is overdue.",
	},
	{
		Topic:    "maintenance",
		Keywords: []string{"maintenance", "work order", "repair", "fix"},
		Response: "Create a work order from the maintenance page. High priority open orders raise an alert on the dashboard.",
	},
	{
		Topic:    "lease",
		Keywords: []string{"lease", "renew", "expir"},
		Response: "Leases ending within the next 30, 60 and 90 days are listed on the dashboard. Contact tenants early to renew.",
	},
	{
		Topic:    "application",
		Keywords: []string{"application", "applicant", "screening", "convert"},
		Response: "Applications move from submitted to screening, then approved or rejected. Approved or conditional applications can be converted into tenants.",
	},
	{
		Topic:    "occupancy",
		Keywords: []string{"occupancy", "vacan", "empty unit"},
		Response: "Occupancy is occupied units divided by total units. Vacant units are listed per property.",
	},
	{
		Topic:    "income",
		Keywords: []string{"income", "revenue", "expense", "profit", "collection"},
		Response: "Monthly income is the rent roll of current tenants. Net income subtracts completed expenses and the collection rate compares collected rent to expected charges.",
	},
	{
		Topic:    "export",
		Keywords: []string{"export", "csv", "download", "report"},
		Response: "Any collection can be exported as CSV or JSON from the export menu, and the dashboard report is available as CSV.",
	},
	{
		Topic:    "sync",
		Keywords: []string{"sync", "remote", "offline"},
		Response: "Refresh pulls analytics from the remote service. When it is unreachable the dashboard falls back to locally computed metrics.",
	},
	{
		Topic:    "thanks",
		Keywords: []string{"thank"},
		Response: "You're welcome!",
	},
}

// Answer is the assistant reply
type Answer struct {
	Topic    string `json:"topic,omitempty"`
	Response string `json:"response"`
	Matched  bool   `json:"matched"`
}

// Ask returns the response of the first rule whose keyword appears in the question
func Ask(question string) Answer {
	// Pad so word-boundary keywords like "hi " match at the end of the text
	q := strings.ToLower(strings.TrimSpace(question)) + " "
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				return Answer{Topic: rule.Topic, Response: rule.Response, Matched: true}
			}
		}
	}
	return Answer{Response: DefaultReply}
}
