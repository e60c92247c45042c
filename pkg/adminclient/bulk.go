package adminclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"
)

var ErrUnknownAction = errors.New("unknown bulk action")

// Action nomme une action groupée
type Action string

const (
	ActionVerify     Action = "verify"
	ActionBan        Action = "ban"
	ActionSetPremium Action = "setPremium"
	ActionDelete     Action = "delete"
	ActionSetStatus  Action = "setStatus"
	ActionMarkRead   Action = "markRead"
)

// BulkParams porte les paramètres de toutes les actions; chacune lit les siens
type BulkParams struct {
	Verified bool
	Banned   bool
	Reason   string
	Premium  bool
	Until    *time.Time
	Status   models.ReportStatus
	Note     string
}

// ItemOperation applique l'action à un enregistrement. Un enregistrement
// retourné remplace l'élément affiché.
type ItemOperation[T any] func(ctx context.Context, id string) (*T, error)

type BulkAction[T any] struct {
	Name Action
	Run  ItemOperation[T]
	// Removes retire de la liste les éléments traités avec succès
	Removes bool
	// Patch modifie l'élément affiché quand Run ne renvoie pas d'enregistrement
	Patch func(T) T
}

// ItemResult est le résultat d'un élément: OK avec l'éventuel enregistrement
// mis à jour, ou l'échec et sa raison
type ItemResult[T any] struct {
	ID     string
	OK     bool
	Reason string
	Record *T
}

type BulkReport[T any] struct {
	Action       Action
	SuccessCount int
	ErrorCount   int
	Results      []ItemResult[T]
}

// Succeeded retourne les résultats réussis indexés par identifiant
func (r BulkReport[T]) Succeeded() map[string]ItemResult[T] {
	ok := make(map[string]ItemResult[T], r.SuccessCount)
	for _, res := range r.Results {
		if res.OK {
			ok[res.ID] = res
		}
	}
	return ok
}

// Summary retourne le message de synthèse et true si tout a réussi
func (r BulkReport[T]) Summary() (string, bool) {
	if r.ErrorCount == 0 {
		return fmt.Sprintf("%s: all %d item(s) succeeded", r.Action, r.SuccessCount), true
	}
	return fmt.Sprintf("%s: partial failure, %d succeeded, %d failed", r.Action, r.SuccessCount, r.ErrorCount), false
}

// Apply exécute l'action sur chaque id, l'un après l'autre, sans s'arrêter
// aux échecs
func Apply[T any](ctx context.Context, action BulkAction[T], ids []string) BulkReport[T] {
	report := BulkReport[T]{
		Action:  action.Name,
		Results: make([]ItemResult[T], 0, len(ids)),
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, ItemResult[T]{ID: id, Reason: err.Error()})
			report.ErrorCount++
			continue
		}

		record, err := action.Run(ctx, id)
		if err != nil {
			logutils.Log.WithFields(logutils.Fields{
				"action": action.Name,
				"id":     id,
			}).Warnf("Bulk item failed: %v", err)
			report.Results = append(report.Results, ItemResult[T]{ID: id, Reason: ErrorMessage(err)})
			report.ErrorCount++
			continue
		}
		report.Results = append(report.Results, ItemResult[T]{ID: id, OK: true, Record: record})
		report.SuccessCount++
	}

	logutils.Log.Infof("Bulk %s: %d succeeded, %d failed", action.Name, report.SuccessCount, report.ErrorCount)
	return report
}

// UserAction construit une action groupée sur les membres
func UserAction(c *Client, action Action, p BulkParams) (BulkAction[models.User], error) {
	switch action {
	case ActionVerify:
		return BulkAction[models.User]{Name: action, Run: func(ctx context.Context, id string) (*models.User, error) {
			return c.VerifyUser(ctx, id, p.Verified)
		}}, nil
	case ActionBan:
		return BulkAction[models.User]{Name: action, Run: func(ctx context.Context, id string) (*models.User, error) {
			return c.BanUser(ctx, id, p.Banned, p.Reason)
		}}, nil
	case ActionSetPremium:
		return BulkAction[models.User]{Name: action, Run: func(ctx context.Context, id string) (*models.User, error) {
			return c.SetPremium(ctx, id, p.Premium, p.Until)
		}}, nil
	case ActionDelete:
		return DeleteAction[models.User](c, Users), nil
	}
	return BulkAction[models.User]{}, fmt.Errorf("%w %q for users", ErrUnknownAction, action)
}

// ReportAction construit une action groupée sur les signalements (T =
// models.Report ou models.SafetyReport selon res)
func ReportAction[T any](c *Client, res Resource, action Action, p BulkParams) (BulkAction[T], error) {
	switch action {
	case ActionSetStatus:
		if !res.Rules.AllowsStatus(string(p.Status)) || p.Status == "" {
			return BulkAction[T]{}, fmt.Errorf("unknown status %q: %w", p.Status, ErrInvalidFilter)
		}
		return BulkAction[T]{Name: action, Run: func(ctx context.Context, id string) (*T, error) {
			return UpdateReportStatus[T](ctx, c, res, id, p.Status, p.Note)
		}}, nil
	case ActionDelete:
		return DeleteAction[T](c, res), nil
	}
	return BulkAction[T]{}, fmt.Errorf("%w %q for %s", ErrUnknownAction, action, res.Name)
}

func DeleteAction[T any](c *Client, res Resource) BulkAction[T] {
	return BulkAction[T]{
		Name:    ActionDelete,
		Removes: true,
		Run: func(ctx context.Context, id string) (*T, error) {
			return nil, c.Delete(ctx, res, id)
		},
	}
}

// MarkReadAction marque des notifications comme lues
func MarkReadAction(c *Client) BulkAction[Notification] {
	return BulkAction[Notification]{
		Name: ActionMarkRead,
		Run: func(ctx context.Context, id string) (*Notification, error) {
			return nil, c.MarkNotificationRead(ctx, id)
		},
		Patch: func(n Notification) Notification {
			n.Read = true
			return n
		},
	}
}
