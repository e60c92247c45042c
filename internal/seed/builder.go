// Package seed construit un jeu de données fictif et déterministe pour
// peupler une base de développement
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	firstNames = []string{"Camille", "Léa", "Inès", "Jade", "Chloé", "Manon", "Zoé", "Lucas", "Hugo", "Louis", "Nathan", "Gabriel", "Arthur", "Jules", "Adam", "Sacha", "Emma", "Alice", "Lina", "Noah"}
	lastNames  = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel", "Garcia", "Fournier"}
	cities     = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nice", "Nantes", "Bordeaux", "Lille", "Rennes", "Strasbourg", "Montpellier", "Grenoble"}
	venues     = []string{"Café de Flore", "Le Petit Bistrot", "La Terrasse", "Bar à Vins Le Comptoir", "Jardin des Plantes", "Musée des Beaux-Arts", "Brasserie du Port", "Salon de Thé Rose"}
	bios       = []string{"Amateur de randonnée et de bons livres.", "Toujours partant pour un concert.", "Cuisinier du dimanche.", "Je cherche quelqu'un pour explorer la ville.", ""}
	genders    = []string{"female", "male", "non-binary"}

	reportReasons  = []string{"Harassment", "Fake profile", "Inappropriate photos", "Spam", "Offensive language", "Scam attempt", "Underage user"}
	reportDetails  = []string{"Sent repeated unwanted messages.", "Photos appear to be taken from a celebrity.", "Asked for money after two messages.", "Profile bio contains a link to an external site.", ""}
	safetyLocation = []string{"Near the metro exit", "Inside the venue", "Parking lot", "On the terrace", "Walking home"}
	safetyDetails  = []string{"Partner did not respect boundaries.", "Felt followed after the date.", "Partner arrived intoxicated.", "Partner was verbally aggressive.", "Partner insisted on changing venue."}
	banReasons     = []string{"Repeated harassment reports", "Confirmed fake profile", "Scam attempts"}

	messageSnippets = []string{"Salut, ça va ?", "On se voit samedi ?", "Merci pour la soirée !", "Tu connais ce resto ?", "Haha, trop drôle"}
)

// Options pilote la génération
type Options struct {
	Users int
	Seed  int64
	Now   time.Time
}

// Dataset regroupe les enregistrements générés
type Dataset struct {
	Users         []models.User
	Matches       []models.Match
	Blindates     []models.Blindate
	Reports       []models.Report
	SafetyReports []models.SafetyReport
	Notifications []models.Notification
}

type builder struct {
	rng *rand.Rand
	now time.Time
}

// Build génère un jeu de données; même Options, même résultat
func Build(opts Options) *Dataset {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	b := &builder{rng: rand.New(rand.NewSource(opts.Seed)), now: opts.Now.UTC().Truncate(time.Second)}

	ds := &Dataset{Users: b.users(max(0, opts.Users))}
	if len(ds.Users) < 2 {
		return ds
	}
	ds.Matches = b.matches(ds.Users)
	ds.Blindates = b.blindates(ds.Matches)
	ds.Reports = b.reports(ds.Users)
	ds.SafetyReports = b.safetyReports(ds.Blindates)
	ds.Notifications = b.notifications(ds.Users)
	return ds
}

func (b *builder) id() uuid.UUID {
	id, err := uuid.NewRandomFromReader(b.rng)
	if err != nil {
		panic(fmt.Sprintf("seed: uuid from rng: %v", err))
	}
	return id
}

func pick[T any](b *builder, items []T) T {
	return items[b.rng.Intn(len(items))]
}

func (b *builder) chance(p float64) bool {
	return b.rng.Float64() < p
}

func (b *builder) ago(maxDays int) time.Time {
	return b.now.Add(-time.Duration(b.rng.Intn(maxDays*24*60)) * time.Minute)
}

func (b *builder) users(n int) []models.User {
	out := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first, last := pick(b, firstNames), pick(b, lastNames)
		birth := b.now.AddDate(-(18 + b.rng.Intn(42)), -b.rng.Intn(12), -b.rng.Intn(28))
		created := b.ago(365)
		lastActive := created.Add(time.Duration(b.rng.Int63n(int64(b.now.Sub(created)) + 1)))

		u := models.User{
			ID:           b.id(),
			FullName:     first + " " + last,
			Email:        fmt.Sprintf("%s.%s%d@example.com", asciiLower(first), asciiLower(last), i+1),
			Gender:       pick(b, genders),
			BirthDate:    &birth,
			City:         pick(b, cities),
			Bio:          pick(b, bios),
			IsVerified:   b.chance(0.6),
			LastActiveAt: &lastActive,
			CreatedAt:    created,
			UpdatedAt:    lastActive,
		}
		if b.chance(0.05) {
			u.IsBanned = true
			u.BanReason = pick(b, banReasons)
		}
		if b.chance(0.2) {
			until := b.now.AddDate(0, 1+b.rng.Intn(11), 0)
			u.IsPremium = true
			u.PremiumUntil = &until
		}
		out = append(out, u)
	}
	return out
}

var asciiFold = strings.NewReplacer("é", "e", "è", "e", "ï", "i", "ô", "o", "ç", "c")

func asciiLower(s string) string {
	return strings.ToLower(asciiFold.Replace(s))
}

func (b *builder) pair(users []models.User) (models.User, models.User) {
	i := b.rng.Intn(len(users))
	j := b.rng.Intn(len(users) - 1)
	if j >= i {
		j++
	}
	return users[i], users[j]
}

func (b *builder) matches(users []models.User) []models.Match {
	n := len(users) * 3 / 2
	seen := make(map[[2]uuid.UUID]bool, n)
	out := make([]models.Match, 0, n)
	for i := 0; i < n*2 && len(out) < n; i++ {
		a, c := b.pair(users)
		key := [2]uuid.UUID{a.ID, c.ID}
		if a.ID.String() > c.ID.String() {
			key = [2]uuid.UUID{c.ID, a.ID}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		matched := b.ago(180)
		status := models.MatchActive
		if b.chance(0.15) {
			status = models.MatchUnmatched
		}
		out = append(out, models.Match{
			ID:        b.id(),
			UserAID:   a.ID,
			UserAName: a.FullName,
			UserBID:   c.ID,
			UserBName: c.FullName,
			Score:     40 + b.rng.Intn(61),
			Status:    status,
			MatchedAt: matched,
			CreatedAt: matched,
			UpdatedAt: matched,
		})
	}
	return out
}

func (b *builder) blindates(matches []models.Match) []models.Blindate {
	active := lo.Filter(matches, func(m models.Match, _ int) bool { return m.Status == models.MatchActive })
	out := make([]models.Blindate, 0, len(active)/2)
	for _, m := range active {
		if !b.chance(0.5) {
			continue
		}
		scheduled := b.now.Add(time.Duration(b.rng.Intn(60*24)-30*24) * time.Hour).Truncate(30 * time.Minute)

		var status models.BlindateStatus
		switch {
		case scheduled.After(b.now) && b.chance(0.6):
			status = models.BlindateConfirmed
		case scheduled.After(b.now):
			status = models.BlindatePending
		case b.chance(0.8):
			status = models.BlindateCompleted
		default:
			status = models.BlindateCancelled
		}

		created := m.MatchedAt.Add(time.Duration(b.rng.Intn(72)) * time.Hour)
		out = append(out, models.Blindate{
			ID:            b.id(),
			RequesterID:   m.UserAID,
			RequesterName: m.UserAName,
			PartnerID:     m.UserBID,
			PartnerName:   m.UserBName,
			Venue:         pick(b, venues),
			City:          pick(b, cities),
			ScheduledAt:   scheduled,
			Status:        status,
			CreatedAt:     created,
			UpdatedAt:     created,
		})
	}
	return out
}

var reportStatuses = []models.ReportStatus{
	models.ReportPending, models.ReportPending, models.ReportReviewing,
	models.ReportInvestigating, models.ReportResolved, models.ReportDismissed,
}

func (b *builder) closeReport(status models.ReportStatus, created time.Time) (*time.Time, string) {
	if !status.IsClosed() {
		return nil, ""
	}
	resolved := created.Add(time.Duration(1+b.rng.Intn(96)) * time.Hour)
	if status == models.ReportDismissed {
		return &resolved, "No violation found"
	}
	return &resolved, "Member warned"
}

func (b *builder) reports(users []models.User) []models.Report {
	n := max(1, len(users)/5)
	out := make([]models.Report, 0, n)
	for i := 0; i < n; i++ {
		reporter, reported := b.pair(users)
		status := pick(b, reportStatuses)
		created := b.ago(90)
		resolved, note := b.closeReport(status, created)
		out = append(out, models.Report{
			ID:             b.id(),
			ReporterID:     reporter.ID,
			ReporterName:   reporter.FullName,
			ReportedUserID: reported.ID,
			ReportedName:   reported.FullName,
			Reason:         pick(b, reportReasons),
			Description:    pick(b, reportDetails),
			Status:         status,
			AdminNote:      note,
			ResolvedAt:     resolved,
			CreatedAt:      created,
			UpdatedAt:      created,
		})
	}
	return out
}

var severities = []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical}

func (b *builder) safetyReports(blindates []models.Blindate) []models.SafetyReport {
	past := lo.Filter(blindates, func(d models.Blindate, _ int) bool { return d.ScheduledAt.Before(b.now) })
	out := make([]models.SafetyReport, 0)
	for _, d := range past {
		if !b.chance(0.2) {
			continue
		}
		blindateID := d.ID
		status := pick(b, reportStatuses)
		created := d.ScheduledAt.Add(time.Duration(1+b.rng.Intn(48)) * time.Hour)
		resolved, note := b.closeReport(status, created)
		out = append(out, models.SafetyReport{
			ID:           b.id(),
			ReporterID:   d.PartnerID,
			ReporterName: d.PartnerName,
			BlindateID:   &blindateID,
			Severity:     pick(b, severities),
			Location:     pick(b, safetyLocation),
			Description:  pick(b, safetyDetails),
			Status:       status,
			AdminNote:    note,
			ResolvedAt:   resolved,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	return out
}

var notificationTypes = []models.NotificationType{
	models.NotificationMessage, models.NotificationMessage, models.NotificationMatch,
	models.NotificationLike, models.NotificationBlindate, models.NotificationSystem,
}

// legacyData reproduit les différentes formes historiques du champ data
func (b *builder) legacyData(sender models.User, text string) models.JSON {
	switch b.rng.Intn(5) {
	case 0:
		return models.JSON{"sender": map[string]any{"fullName": sender.FullName, "id": sender.ID.String()}}
	case 1:
		return models.JSON{"from": sender.FullName, "text": text}
	case 2:
		return models.JSON{"user": map[string]any{"name": sender.FullName}, "message": text}
	case 3:
		return models.JSON{"sender": map[string]any{"full_name": sender.FullName}, "content": text}
	}
	return models.JSON{}
}

func (b *builder) notifications(users []models.User) []models.Notification {
	out := make([]models.Notification, 0, len(users)*2)
	for _, u := range users {
		for k := b.rng.Intn(5); k > 0; k-- {
			sender := users[b.rng.Intn(len(users))]
			kind := pick(b, notificationTypes)
			text := pick(b, messageSnippets)
			data := b.legacyData(sender, text)

			n := models.Notification{
				ID:        b.id(),
				UserID:    u.ID,
				Type:      kind,
				Data:      data,
				CreatedAt: b.ago(30),
			}
			// Les anciennes notifications n'avaient ni titre ni contenu en colonne
			if len(data) == 0 || b.chance(0.5) {
				n.Content = text
			}
			if kind == models.NotificationSystem {
				n.Title = "Mise à jour des conditions d'utilisation"
				n.Content = "Nos conditions d'utilisation évoluent."
			}
			if kind != models.NotificationSystem {
				senderID := sender.ID
				n.SenderID = &senderID
			}
			if b.chance(0.4) {
				readAt := n.CreatedAt.Add(time.Duration(1+b.rng.Intn(600)) * time.Minute)
				n.IsRead = true
				n.ReadAt = &readAt
			}
			n.UpdatedAt = n.CreatedAt
			out = append(out, n)
		}
	}
	return out
}
