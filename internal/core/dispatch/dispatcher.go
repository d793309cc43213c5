// Package dispatch routes tagged requests to the store operations and wraps
// every outcome in the fixed status/message response envelope shared with
// client collaborators.
package dispatch

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

// Action names are part of the wire contract and must not change.
const (
	ActionLogin            = "CONNEXION"
	ActionCreateAccount    = "CREATION_COMPTE"
	ActionAddContact       = "AJOUT_CONTACT"
	ActionSearchContacts   = "RECHERCHE_CONTACT"
	ActionListContacts     = "LISTE_CONTACTS"
	ActionUpdateContact    = "MODIF_CONTACT"
	ActionDeleteContact    = "SUPPR_CONTACT"
	ActionManagePermission = "GERER_PERMISSION"
	ActionListGrantors     = "LISTE_PROPRIO"
	ActionListGrantees     = "LISTE_DROIT"
	ActionListAccounts     = "LISTE_COMPTES"
	ActionDeleteAccount    = "SUPPRESSION_COMPTE"
	ActionUpdateAccount    = "MODIF_COMPTE"
	ActionAdminStats       = "INFOS_ADMIN"
)

// Permission sub-actions carried in the GERER_PERMISSION payload.
const (
	PermissionGive     = "donner"
	PermissionWithdraw = "retirer"
)

// Request is the tagged PDU received from a transport collaborator. Payload
// keys follow the established wire vocabulary (nom, mot_de_passe, contact,
// proprietaire_cible, ...).
type Request struct {
	Action    string         `json:"action"`
	Requester string         `json:"requester"`
	Payload   map[string]any `json:"payload"`
}

// Response is the uniform envelope returned for every request.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Dispatcher binds action names to store operations. It holds no per-request
// state; the requester identity is whatever the transport asserts.
type Dispatcher struct {
	accounts    ports.AccountService
	directories ports.DirectoryService
	permissions ports.PermissionService
	logger      zerolog.Logger
}

func NewDispatcher(accounts ports.AccountService, directories ports.DirectoryService, permissions ports.PermissionService, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		accounts:    accounts,
		directories: directories,
		permissions: permissions,
		logger:      logger,
	}
}

// Handle dispatches a single request and always returns a well-formed
// response: unknown actions become 400, internal faults (including panics
// from corrupt persisted state) become 500.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (resp Response) {
	target := requestTarget(req)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Any("panic", r).Str("action", req.Action).Msg("request handler panicked")
			resp = Response{Status: http.StatusInternalServerError, Message: "internal error"}
		}
		d.logRequest(req, target, resp)
	}()

	if requiresRequester(req.Action) && req.Requester == "" {
		return Response{Status: http.StatusUnauthorized, Message: "not authenticated"}
	}

	switch req.Action {
	case ActionLogin:
		return d.login(ctx, req)
	case ActionCreateAccount:
		return d.createAccount(ctx, req)
	case ActionAddContact:
		return d.addContact(ctx, req)
	case ActionSearchContacts:
		return d.searchContacts(ctx, req)
	case ActionListContacts:
		return d.listContacts(ctx, req)
	case ActionUpdateContact:
		return d.updateContact(ctx, req)
	case ActionDeleteContact:
		return d.deleteContact(ctx, req)
	case ActionManagePermission:
		return d.managePermission(ctx, req)
	case ActionListGrantors:
		return d.listGrantors(ctx, req)
	case ActionListGrantees:
		return d.listGrantees(ctx, req)
	case ActionListAccounts:
		return d.listAccounts(ctx)
	case ActionDeleteAccount:
		return d.deleteAccount(ctx, req)
	case ActionUpdateAccount:
		return d.updateAccount(ctx, req)
	case ActionAdminStats:
		return d.adminStats(ctx)
	default:
		return Response{Status: http.StatusBadRequest, Message: "unknown action"}
	}
}

// requiresRequester reports whether an action operates on behalf of an
// asserted identity. Login, account creation, and the public account list do
// not.
func requiresRequester(action string) bool {
	switch action {
	case ActionLogin, ActionCreateAccount, ActionListAccounts:
		return false
	}
	return true
}

func requestTarget(req Request) string {
	for _, key := range []string{"proprietaire_cible", "utilisateur_cible", "nom_compte"} {
		if v := stringField(req.Payload, key); v != "" {
			return v
		}
	}
	return ""
}

func (d *Dispatcher) logRequest(req Request, target string, resp Response) {
	evt := d.logger.Info()
	if resp.Status >= http.StatusBadRequest {
		evt = d.logger.Warn()
	}
	evt = evt.Str("action", req.Action).Str("requester", req.Requester).Int("status", resp.Status).Str("message", resp.Message)
	if target != "" {
		evt = evt.Str("target", target)
	}
	evt.Msg("request handled")
}

func (d *Dispatcher) login(ctx context.Context, req Request) Response {
	name := stringField(req.Payload, "nom")
	digest := stringField(req.Payload, "mdp")
	role, err := d.accounts.Authenticate(ctx, name, digest)
	if err != nil {
		return errorResponse(err, "login failed")
	}
	return Response{Status: http.StatusOK, Message: "login successful", Role: role}
}

func (d *Dispatcher) createAccount(ctx context.Context, req Request) Response {
	name := stringField(req.Payload, "nom")
	digest := stringField(req.Payload, "mot_de_passe")
	role := stringField(req.Payload, "statut")
	if err := d.accounts.Create(ctx, name, digest, role); err != nil {
		return errorResponse(err, "account creation failed")
	}
	return Response{Status: http.StatusCreated, Message: "account created"}
}

func (d *Dispatcher) addContact(ctx context.Context, req Request) Response {
	contact, ok := contactField(req.Payload)
	if !ok {
		return Response{Status: http.StatusBadRequest, Message: "contact is required"}
	}
	if err := d.directories.Add(ctx, req.Requester, contact); err != nil {
		return errorResponse(err, "contact not added")
	}
	return Response{Status: http.StatusOK, Message: "contact added"}
}

func (d *Dispatcher) searchContacts(ctx context.Context, req Request) Response {
	owner := stringField(req.Payload, "proprietaire_cible")
	term := stringField(req.Payload, "recherche")
	results, err := d.directories.Search(ctx, owner, req.Requester, term)
	if err != nil {
		return errorResponse(err, "search failed")
	}
	return Response{Status: http.StatusOK, Message: "search complete", Data: results}
}

func (d *Dispatcher) listContacts(ctx context.Context, req Request) Response {
	owner := stringField(req.Payload, "proprietaire_cible")
	contacts, err := d.directories.List(ctx, owner, req.Requester)
	if err != nil {
		return errorResponse(err, "directory not listed")
	}
	return Response{Status: http.StatusOK, Message: "directory listed", Data: contacts}
}

func (d *Dispatcher) updateContact(ctx context.Context, req Request) Response {
	contact, ok := contactField(req.Payload)
	if !ok {
		return Response{Status: http.StatusBadRequest, Message: "contact is required"}
	}
	if err := d.directories.Update(ctx, req.Requester, contact); err != nil {
		return errorResponse(err, "contact not updated")
	}
	return Response{Status: http.StatusOK, Message: "contact updated"}
}

func (d *Dispatcher) deleteContact(ctx context.Context, req Request) Response {
	contact, ok := contactField(req.Payload)
	if !ok {
		return Response{Status: http.StatusBadRequest, Message: "contact is required"}
	}
	if err := d.directories.Remove(ctx, req.Requester, contact.Key()); err != nil {
		return errorResponse(err, "contact not deleted")
	}
	return Response{Status: http.StatusOK, Message: "contact deleted"}
}

func (d *Dispatcher) managePermission(ctx context.Context, req Request) Response {
	grantee := stringField(req.Payload, "utilisateur_cible")
	var err error
	switch stringField(req.Payload, "type") {
	case PermissionGive:
		err = d.permissions.Grant(ctx, req.Requester, grantee)
	case PermissionWithdraw:
		err = d.permissions.Revoke(ctx, req.Requester, grantee)
	default:
		return Response{Status: http.StatusBadRequest, Message: "unknown permission type"}
	}
	if err != nil {
		return errorResponse(err, "permission not updated")
	}
	return Response{Status: http.StatusOK, Message: "permission updated"}
}

func (d *Dispatcher) listGrantors(ctx context.Context, req Request) Response {
	owners, err := d.permissions.GrantorsFor(ctx, req.Requester)
	if err != nil {
		return errorResponse(err, "grantors not listed")
	}
	return Response{Status: http.StatusOK, Message: "grantors listed", Data: owners}
}

func (d *Dispatcher) listGrantees(ctx context.Context, req Request) Response {
	grantees, err := d.permissions.GranteesFor(ctx, req.Requester)
	if err != nil {
		return errorResponse(err, "grantees not listed")
	}
	return Response{Status: http.StatusOK, Message: "grantees listed", Data: grantees}
}

func (d *Dispatcher) listAccounts(ctx context.Context) Response {
	names, err := d.accounts.List(ctx)
	if err != nil {
		return errorResponse(err, "accounts not listed")
	}
	return Response{Status: http.StatusOK, Message: "accounts listed", Data: names}
}

func (d *Dispatcher) deleteAccount(ctx context.Context, req Request) Response {
	name := stringField(req.Payload, "nom_compte")
	if name == "" {
		return Response{Status: http.StatusBadRequest, Message: "nom_compte is required"}
	}
	if err := d.accounts.Delete(ctx, name); err != nil {
		return errorResponse(err, "account not deleted")
	}
	return Response{Status: http.StatusOK, Message: "account and associated data deleted"}
}

func (d *Dispatcher) updateAccount(ctx context.Context, req Request) Response {
	input := ports.UpdateAccountInput{
		Name:      stringField(req.Payload, "nom_compte"),
		NewDigest: stringField(req.Payload, "nouveau_mdp"),
		NewRole:   stringField(req.Payload, "nouveau_statut"),
	}
	if err := d.accounts.Update(ctx, input); err != nil {
		return errorResponse(err, "account not updated")
	}
	return Response{Status: http.StatusOK, Message: "account updated"}
}

func (d *Dispatcher) adminStats(ctx context.Context) Response {
	stats, err := d.accounts.Stats(ctx)
	if err != nil {
		return errorResponse(err, "stats unavailable")
	}
	return Response{Status: http.StatusOK, Message: "stats computed", Data: stats}
}

// errorResponse maps a domain error to its fixed wire status. The fallback
// message keeps storage faults from leaking internals to clients.
func errorResponse(err error, fallback string) Response {
	switch {
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidAccountName):
		return Response{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSelfTarget):
		return Response{Status: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return Response{Status: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrDirectoryNotFound),
		errors.Is(err, domain.ErrContactNotFound):
		return Response{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrAccountExists),
		errors.Is(err, domain.ErrContactExists):
		return Response{Status: http.StatusConflict, Message: err.Error()}
	default:
		return Response{Status: http.StatusInternalServerError, Message: fallback}
	}
}

func stringField(payload map[string]any, key string) string {
	v, _ := payload[key].(string)
	return v
}

// contactField decodes the "contact" payload entry using the established
// field vocabulary (Nom, Prenom, Telephone, Adresse, Email).
func contactField(payload map[string]any) (domain.Contact, bool) {
	raw, ok := payload["contact"].(map[string]any)
	if !ok {
		return domain.Contact{}, false
	}
	return domain.Contact{
		Surname:   stringField(raw, "Nom"),
		FirstName: stringField(raw, "Prenom"),
		Phone:     stringField(raw, "Telephone"),
		Address:   stringField(raw, "Adresse"),
		Email:     stringField(raw, "Email"),
	}, true
}
