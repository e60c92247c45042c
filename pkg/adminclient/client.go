// Package adminclient implémente côté client le motif de liste paginée
// du tableau de bord: état des filtres, récupération "dernière requête gagnante",
// sélection, actions groupées et normalisation des notifications.
package adminclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dating-admin/pkg/models"

	"github.com/imroc/req/v3"
)

const defaultTimeout = 15 * time.Second

// Config est passée explicitement; le client ne lit aucun état global
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// APIError est une réponse non-2xx; Message est le texte serveur à afficher tel quel
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorResponse est le corps d'erreur renvoyé par l'API
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ErrorMessage retourne le texte à montrer à l'opérateur pour err
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

// IsStatus indique si err est une APIError portant ce code HTTP
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	http *req.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := req.C().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetUserAgent("adminctl")

	c := &Client{http: httpClient}
	c.SetToken(cfg.Token)
	return c
}

// SetToken remplace le jeton bearer des requêtes suivantes
func (c *Client) SetToken(token string) {
	if token == "" {
		c.http.Headers.Del("Authorization")
		return
	}
	c.http.SetCommonBearerAuthToken(token)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	var apiErr errorResponse
	r := c.http.R().SetContext(ctx).SetErrorResult(&apiErr)
	if query != nil {
		r.SetQueryParams(query)
	}
	if body != nil {
		r.SetBody(body)
	}
	if out != nil {
		r.SetSuccessResult(out)
	}

	resp, err := r.Send(method, path)
	if resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Error,
			Message:    apiErr.Message,
			RequestID:  apiErr.RequestID,
		}
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsSuccessState() {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Login authentifie l'opérateur et mémorise le jeton obtenu
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil,
		models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListPage récupère une page de la ressource pour l'état de filtre donné
func ListPage[T any](ctx context.Context, c *Client, res Resource, state FilterState) (PageResult[T], error) {
	var resp models.ListResponse[T]
	if err := c.do(ctx, http.MethodGet, res.Path, queryParams(state), nil, &resp); err != nil {
		return PageResult[T]{}, err
	}

	pageSize := resp.Pagination.Limit
	if pageSize <= 0 {
		pageSize = state.PageSize
	}
	page := resp.Pagination.Page
	if page <= 0 {
		page = state.Page
	}

	return PageResult[T]{
		Items:     resp.Items,
		Total:     resp.Pagination.Total,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount(resp.Pagination.Total, pageSize),
	}, nil
}

// ListFunc adapte ListPage en FetchFunc pour un Fetcher
func ListFunc[T any](c *Client, res Resource) FetchFunc[T] {
	return func(ctx context.Context, state FilterState) (PageResult[T], error) {
		return ListPage[T](ctx, c, res, state)
	}
}

func queryParams(state FilterState) map[string]string {
	params := map[string]string{
		"page":  strconv.Itoa(state.Page),
		"limit": strconv.Itoa(state.PageSize),
	}
	if state.SortField != "" {
		params["sort"] = state.SortField
	}
	if state.SortOrder != "" {
		params["order"] = string(state.SortOrder)
	}
	if state.SearchText != "" {
		params["search"] = state.SearchText
	}
	if state.StatusFilter != "" {
		params["status"] = state.StatusFilter
	}
	return params
}

func pageCount(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func (c *Client) VerifyUser(ctx context.Context, id string, verified bool) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, Users.itemPath(id, "verify"), nil, models.VerifyUserRequest{Verified: &verified}, &user)
	return &user, err
}

func (c *Client) BanUser(ctx context.Context, id string, banned bool, reason string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, Users.itemPath(id, "ban"), nil, models.BanUserRequest{Banned: &banned, Reason: reason}, &user)
	return &user, err
}

func (c *Client) SetPremium(ctx context.Context, id string, premium bool, until *time.Time) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, Users.itemPath(id, "premium"), nil, models.PremiumUserRequest{Premium: &premium, Until: until}, &user)
	return &user, err
}

// UpdateReportStatus sert aux signalements et aux signalements de sécurité
func UpdateReportStatus[T any](ctx context.Context, c *Client, res Resource, id string, status models.ReportStatus, note string) (*T, error) {
	var record T
	err := c.do(ctx, http.MethodPut, res.itemPath(id, "status"), nil,
		models.UpdateReportStatusRequest{Status: status, AdminNote: note}, &record)
	return &record, err
}

func (c *Client) UpdateBlindateStatus(ctx context.Context, id string, status models.BlindateStatus, notes string) (*models.Blindate, error) {
	var blindate models.Blindate
	err := c.do(ctx, http.MethodPut, Blindates.itemPath(id, "status"), nil,
		models.UpdateBlindateStatusRequest{Status: status, Notes: notes}, &blindate)
	return &blindate, err
}

func (c *Client) Unmatch(ctx context.Context, id string) (*models.Match, error) {
	var match models.Match
	err := c.do(ctx, http.MethodPut, Matches.itemPath(id, "unmatch"), nil, nil, &match)
	return &match, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, Notifications.itemPath(id, "read"), nil, nil, nil)
}

func (c *Client) SendNotification(ctx context.Context, req models.SendNotificationRequest) (int, error) {
	var resp models.SendNotificationResponse
	if err := c.do(ctx, http.MethodPost, Notifications.Path, nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.Sent, nil
}

// Delete supprime un enregistrement de n'importe quelle ressource
func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	return c.do(ctx, http.MethodDelete, res.itemPath(id, ""), nil, nil, nil)
}
