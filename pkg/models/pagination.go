package models

// SortOrder est le sens de tri d'une liste
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle retourne l'ordre inverse
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Valid indique si l'ordre est reconnu
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// ListQuery représente les paramètres de liste communs à toutes les ressources
// @Description Paramètres de pagination, tri et filtrage
type ListQuery struct {
	Page   int       `form:"page" json:"page" example:"1"`
	Limit  int       `form:"limit" json:"limit" example:"10"`
	Sort   string    `form:"sort" json:"sort,omitempty" example:"createdAt"`
	Order  SortOrder `form:"order" json:"order,omitempty" example:"desc"`
	Search string    `form:"search" json:"search,omitempty"`
	Status string    `form:"status" json:"status,omitempty"`
} // @name ListQuery

// Offset retourne le décalage SQL correspondant à la page
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// ListRules décrit ce qu'une ressource accepte en tri et en filtre.
// SortFields associe le nom de champ exposé par l'API à la colonne SQL.
type ListRules struct {
	DefaultSort   string
	SortFields    map[string]string
	Statuses      []string
	SearchColumns []string
}

// AllowsSort indique si le champ de tri est autorisé
func (r ListRules) AllowsSort(field string) bool {
	_, ok := r.SortFields[field]
	return ok
}

// AllowsStatus indique si la valeur de statut est reconnue (vide = pas de filtre)
func (r ListRules) AllowsStatus(status string) bool {
	if status == "" {
		return true
	}
	for _, s := range r.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Pagination représente les informations de pagination
// @Description Informations de pagination pour les listes
type Pagination struct {
	Total int64 `json:"total" example:"95"`
	Page  int   `json:"page" example:"1"`
	Pages int   `json:"pages" example:"10"`
	Limit int   `json:"limit" example:"10"`
} // @name Pagination

// NewPagination calcule le nombre de pages (ceil(total/limit))
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}
}

// ListResponse est l'enveloppe de réponse de tous les endpoints de liste
type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// MessageResponse est la réponse des suppressions et actions sans contenu
type MessageResponse struct {
	Message string `json:"message" example:"user deleted"`
} // @name MessageResponse
