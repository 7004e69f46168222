package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

var fixtureNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// richPage is a well-formed marketing page carrying every signal.
const richPage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Scheduler - appointment scheduling for clinics</title>
<meta name="description" content="Acme Scheduler books, reminds, and reschedules patients automatically.">
<link rel="canonical" href="https://acme.example/">
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[{"@type":"Organization","name":"Acme"},{"@type":"Product","name":"Acme Scheduler"}]}
</script>
</head>
<body>
<nav>
<a href="/pricing">Pricing</a>
<a href="/about">About</a>
<a href="/contact">Contact</a>
<a href="/faq">FAQ</a>
</nav>
<h1>Appointment scheduling that fills your calendar</h1>
<h2>How it works</h2>
<p>Connect your calendar and Acme Scheduler finds open slots, offers them to
patients over text message, and confirms bookings without any back and forth.
Every confirmed visit is written back to your practice management system so the
front desk always sees an up to date schedule, and reminders go out on the
cadence you choose so fewer patients forget their appointments.</p>
<h2>What does Acme Scheduler cost?</h2>
<p>Plans start at $49/mo for a single provider and scale with the number of
calendars you connect. Every plan includes unlimited reminders, two way
rescheduling, and reporting, so you never pay extra to reduce no-shows.</p>
<h2>Frequently Asked Questions</h2>
<h3>Does it work with my calendar?</h3>
<p>Acme Scheduler connects to Google Calendar, Outlook, and most practice
management systems through a two way sync that updates within a minute.</p>
<p>Independent practices across three hundred cities use Acme Scheduler every
day to keep their calendars full, and the team publishes uptime and support
response numbers every quarter because trust is earned with receipts not
promises. The product has been profitable since the second year and support
is answered by humans who have worked a front desk themselves.</p>
</body>
</html>`

const shellPage = `<!DOCTYPE html>
<html><head><title>App</title>
<script src="/static/runtime.js"></script>
<script src="/static/vendor.js"></script>
<script src="/static/main.js"></script>
</head><body><div id="root"></div></body></html>`

func TestExtractRichPage(t *testing.T) {
	s := Extract(richPage, "https://acme.example/", fixtureNow)

	if s.Title == "" || !strings.Contains(s.Title, "Acme Scheduler") {
		t.Errorf("Title = %q, want Acme Scheduler title", s.Title)
	}
	if s.MetaDescription == "" {
		t.Error("MetaDescription missing")
	}
	if s.CanonicalURL != "https://acme.example/" {
		t.Errorf("CanonicalURL = %q", s.CanonicalURL)
	}
	if len(s.H1) != 1 {
		t.Errorf("H1 count = %d, want 1", len(s.H1))
	}
	if len(s.H2) < 3 {
		t.Errorf("H2 count = %d, want >= 3", len(s.H2))
	}

	if !s.HasFAQ {
		t.Error("HasFAQ = false, want true (explicit FAQ heading)")
	}
	if !s.HasIndirectFAQ {
		t.Error("HasIndirectFAQ = false, want true (FAQ link)")
	}
	if !s.HasDirectAnswers {
		t.Error("HasDirectAnswers = false, want true (question heading with inline answer)")
	}

	if !s.HasSchema {
		t.Error("HasSchema = false, want true")
	}
	wantTypes := []string{"Organization", "Product"}
	for _, wt := range wantTypes {
		found := false
		for _, st := range s.SchemaTypes {
			if st == wt {
				found = true
			}
		}
		if !found {
			t.Errorf("SchemaTypes = %v, want to include %q", s.SchemaTypes, wt)
		}
	}

	if !s.HasPricing {
		t.Error("HasPricing = false, want true")
	}
	if !s.HasAbout {
		t.Error("HasAbout = false, want true")
	}
	if !s.HasContact {
		t.Error("HasContact = false, want true")
	}
	if !s.HasHowItWorks {
		t.Error("HasHowItWorks = false, want true")
	}

	if s.WordCount < 120 {
		t.Errorf("WordCount = %d, want >= 120", s.WordCount)
	}
	if s.SnapshotQuality != models.SnapshotOK {
		t.Errorf("SnapshotQuality = %q, want %q", s.SnapshotQuality, models.SnapshotOK)
	}
	if !s.FetchedAt.Equal(fixtureNow) {
		t.Errorf("FetchedAt = %v, want injected now", s.FetchedAt)
	}
}

func TestExtractSnapshotQuality(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "JS shell",
			html: shellPage,
			want: models.SnapshotShell,
		},
		{
			name: "thin body",
			html: `<html><body><h1>Soon</h1><p>Launching shortly.</p></body></html>`,
			want: models.SnapshotThin,
		},
		{
			name: "empty input",
			html: "",
			want: models.SnapshotThin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Extract(tt.html, "https://example.com/", fixtureNow)
			if s.SnapshotQuality != tt.want {
				t.Errorf("SnapshotQuality = %q, want %q", s.SnapshotQuality, tt.want)
			}
		})
	}
}

func TestExtractMalformedMarkup(t *testing.T) {
	// Unclosed tags and garbage must degrade to absent signals.
	s := Extract("<h1>Broken<div><<<>«</p><a href=", "https://example.com", fixtureNow)
	if s.HasFAQ || s.HasSchema || s.HasPricing {
		t.Error("malformed markup produced positive signals")
	}
}

func TestExtractHeadingOrder(t *testing.T) {
	html := `<html><body>
	<h2>First section</h2>
	<h2>Second section</h2>
	<h2>Third section</h2>
	</body></html>`
	s := Extract(html, "https://example.com", fixtureNow)
	want := []string{"First section", "Second section", "Third section"}
	if len(s.H2) != len(want) {
		t.Fatalf("H2 = %v, want %v", s.H2, want)
	}
	for i := range want {
		if s.H2[i] != want[i] {
			t.Errorf("H2[%d] = %q, want %q", i, s.H2[i], want[i])
		}
	}
}

func TestExtractInvalidJSONLD(t *testing.T) {
	html := `<html><body>
	<script type="application/ld+json">{not json at all</script>
	<p>hello</p>
	</body></html>`
	s := Extract(html, "https://example.com", fixtureNow)
	if s.HasSchema {
		t.Error("invalid JSON-LD counted as schema evidence")
	}
}
