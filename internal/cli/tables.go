package cli

import (
	"fmt"
	"strconv"
	"time"

	"dating-admin/pkg/adminclient"
	"dating-admin/pkg/models"
)

// table décrit comment charger et afficher une ressource de type T
type table[T any] struct {
	headers []string
	row     func(p *Printer, item T) []string
	id      func(item T) string
	fetch   func(c *adminclient.Client) adminclient.FetchFunc[T]
	// actions construit l'action groupée de la commande "a" de browse
	actions func(c *adminclient.Client, name, arg string) (adminclient.BulkAction[T], error)
}

func listFetch[T any](res adminclient.Resource) func(*adminclient.Client) adminclient.FetchFunc[T] {
	return func(c *adminclient.Client) adminclient.FetchFunc[T] {
		return adminclient.ListFunc[T](c, res)
	}
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var userTable = table[models.User]{
	headers: []string{"ID", "NAME", "EMAIL", "CITY", "VERIFIED", "BANNED", "PREMIUM", "CREATED"},
	row: func(p *Printer, u models.User) []string {
		banned := ""
		if u.IsBanned {
			banned = p.Badge("banned")
		}
		return []string{u.ID.String(), p.Bold(u.FullName), u.Email, u.City, yesNo(u.IsVerified), banned, yesNo(u.IsPremium), date(u.CreatedAt)}
	},
	id:      func(u models.User) string { return u.ID.String() },
	fetch:   listFetch[models.User](adminclient.Users),
	actions: userActions,
}

var blindateTable = table[models.Blindate]{
	headers: []string{"ID", "REQUESTER", "PARTNER", "VENUE", "CITY", "SCHEDULED", "STATUS"},
	row: func(p *Printer, b models.Blindate) []string {
		return []string{b.ID.String(), b.RequesterName, b.PartnerName, b.Venue, b.City, date(b.ScheduledAt), p.Badge(string(b.Status))}
	},
	id:      func(b models.Blindate) string { return b.ID.String() },
	fetch:   listFetch[models.Blindate](adminclient.Blindates),
	actions: blindateActions,
}

var matchTable = table[models.Match]{
	headers: []string{"ID", "MEMBER A", "MEMBER B", "SCORE", "STATUS", "MATCHED"},
	row: func(p *Printer, m models.Match) []string {
		return []string{m.ID.String(), m.UserAName, m.UserBName, strconv.Itoa(m.Score), p.Badge(string(m.Status)), date(m.MatchedAt)}
	},
	id:      func(m models.Match) string { return m.ID.String() },
	fetch:   listFetch[models.Match](adminclient.Matches),
	actions: matchActions,
}

var reportTable = table[models.Report]{
	headers: []string{"ID", "REPORTER", "REPORTED", "REASON", "STATUS", "CREATED"},
	row: func(p *Printer, r models.Report) []string {
		return []string{r.ID.String(), r.ReporterName, r.ReportedName, truncate(r.Reason, 40), p.Badge(string(r.Status)), date(r.CreatedAt)}
	},
	id:      func(r models.Report) string { return r.ID.String() },
	fetch:   listFetch[models.Report](adminclient.Reports),
	actions: reportActions[models.Report](adminclient.Reports),
}

var safetyTable = table[models.SafetyReport]{
	headers: []string{"ID", "REPORTER", "SEVERITY", "LOCATION", "STATUS", "CREATED"},
	row: func(p *Printer, r models.SafetyReport) []string {
		return []string{r.ID.String(), r.ReporterName, p.Badge(string(r.Severity)), truncate(r.Location, 40), p.Badge(string(r.Status)), date(r.CreatedAt)}
	},
	id:      func(r models.SafetyReport) string { return r.ID.String() },
	fetch:   listFetch[models.SafetyReport](adminclient.SafetyReports),
	actions: reportActions[models.SafetyReport](adminclient.SafetyReports),
}

var notificationTable = table[adminclient.Notification]{
	headers: []string{"ID", "TYPE", "TITLE", "FROM", "TEXT", "READ", "CREATED"},
	row: func(p *Printer, n adminclient.Notification) []string {
		read := p.Badge("unread")
		if n.Read {
			read = p.Badge("read")
		}
		return []string{n.ID, n.Type, p.Bold(n.Title), n.SenderName, truncate(n.Text, 50), read, date(n.CreatedAt)}
	},
	id: func(n adminclient.Notification) string { return n.ID },
	fetch: func(c *adminclient.Client) adminclient.FetchFunc[adminclient.Notification] {
		return adminclient.NotificationFetch(c, adminclient.NewNormalizer())
	},
	actions: notificationActions,
}

// renderPage affiche une page; les lignes sélectionnées sont marquées d'un *
func renderPage[T any](p *Printer, t table[T], page adminclient.PageResult[T], selection *adminclient.Selection) error {
	if len(page.Items) == 0 {
		p.Info("No results")
		return nil
	}

	headers := append([]string{"#"}, t.headers...)
	rows := make([][]string, 0, len(page.Items))
	for i, item := range page.Items {
		marker := strconv.Itoa(i + 1)
		if selection != nil && selection.Contains(t.id(item)) {
			marker += "*"
		}
		rows = append(rows, append([]string{marker}, t.row(p, item)...))
	}

	if err := renderTable(p.out, headers, rows); err != nil {
		return err
	}
	p.Print("%s", p.Dim(fmt.Sprintf("page %d/%d, %d total", page.Page, max(1, page.PageCount), page.Total)))
	return nil
}
