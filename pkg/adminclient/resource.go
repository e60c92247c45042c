package adminclient

import (
	"fmt"
	"net/url"
	"sort"

	"dating-admin/pkg/models"
)

// Resource décrit une ressource listable de l'API
type Resource struct {
	Name  string
	Path  string
	Rules models.ListRules
}

func (r Resource) itemPath(id, action string) string {
	path := fmt.Sprintf("%s/%s", r.Path, url.PathEscape(id))
	if action != "" {
		path += "/" + action
	}
	return path
}

// SortFields retourne les champs de tri acceptés, triés
func (r Resource) SortFields() []string {
	fields := make([]string, 0, len(r.Rules.SortFields))
	for field := range r.Rules.SortFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

var (
	Users         = Resource{Name: "users", Path: "/api/v1/users", Rules: models.UserListRules}
	Blindates     = Resource{Name: "blindates", Path: "/api/v1/blindates", Rules: models.BlindateListRules}
	Matches       = Resource{Name: "matches", Path: "/api/v1/matches", Rules: models.MatchListRules}
	Reports       = Resource{Name: "reports", Path: "/api/v1/reports", Rules: models.ReportListRules}
	SafetyReports = Resource{Name: "safety-reports", Path: "/api/v1/safety-reports", Rules: models.SafetyReportListRules}
	Notifications = Resource{Name: "notifications", Path: "/api/v1/notifications", Rules: models.NotificationListRules}
)

// Resources indexe les ressources par nom
var Resources = map[string]Resource{
	Users.Name:         Users,
	Blindates.Name:     Blindates,
	Matches.Name:       Matches,
	Reports.Name:       Reports,
	SafetyReports.Name: SafetyReports,
	Notifications.Name: Notifications,
}

// LookupResource accepte aussi les alias courants ("safety")
func LookupResource(name string) (Resource, error) {
	if name == "safety" {
		name = SafetyReports.Name
	}
	res, ok := Resources[name]
	if !ok {
		return Resource{}, fmt.Errorf("unknown resource %q", name)
	}
	return res, nil
}
