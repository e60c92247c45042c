package database

import (
	"context"
	"fmt"
	"strings"

	"dating-admin/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope est un filtre gorm réutilisable
type Scope = func(*gorm.DB) *gorm.DB

// Paginate applique LIMIT/OFFSET à partir de la requête de liste
func Paginate(query models.ListQuery) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(query.Offset()).Limit(query.Limit)
	}
}

// Search applique un ILIKE insensible à la casse, en OU sur les colonnes données.
// Les colonnes proviennent des ListRules, jamais de l'entrée utilisateur.
func Search(columns []string, text string) Scope {
	q := strings.TrimSpace(text)
	return func(db *gorm.DB) *gorm.DB {
		if q == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + escapeLike(q) + "%"
		parts := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			parts = append(parts, column+" ILIKE ?")
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// OrderBy trie sur une colonne de la liste blanche; un champ inconnu retombe sur le tri par défaut
func OrderBy(rules models.ListRules, sort string, order models.SortOrder) Scope {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := rules.SortFields[sort]
		if !ok {
			column, ok = rules.SortFields[rules.DefaultSort]
		}
		if !ok {
			return db
		}

		desc := order != models.SortAsc
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
}

// ListPage compte les enregistrements filtrés puis récupère la page demandée.
// Les scopes de filtre s'appliquent au comptage et à la page.
func ListPage[T any](ctx context.Context, db *gorm.DB, query models.ListQuery, rules models.ListRules, filters ...Scope) (*models.ListResponse[T], error) {
	var model T
	base := db.WithContext(ctx).Model(&model).
		Scopes(filters...).
		Scopes(Search(rules.SearchColumns, query.Search))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	items := make([]T, 0, query.Limit)
	if total > 0 && int64(query.Offset()) < total {
		err := base.Session(&gorm.Session{}).
			Scopes(OrderBy(rules, query.Sort, query.Order), Paginate(query)).
			Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list records: %w", err)
		}
	}

	return &models.ListResponse[T]{
		Items:      items,
		Pagination: models.NewPagination(total, query.Page, query.Limit),
	}, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
