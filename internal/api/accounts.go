package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pdusim/internal/auth"
	"github.com/nerrad567/pdusim/internal/resource"
)

const accountsURI = "/redfish/v1/AccountService/Accounts"

func accountResource(a *auth.Account) map[string]any {
	body := resource.New(
		fmt.Sprintf("%s/%s", accountsURI, a.Username),
		"#ManagerAccount.v1_9_0.ManagerAccount", a.Username,
		fmt.Sprintf("Account %s", a.Username))
	body["UserName"] = a.Username
	body["RoleId"] = string(a.Role)
	body["Enabled"] = a.Enabled
	return body
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.auth.ListAccounts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	members := make([]string, 0, len(accounts))
	for _, a := range accounts {
		members = append(members, fmt.Sprintf("%s/%s", accountsURI, a.Username))
	}
	writeJSON(w, http.StatusOK, resource.Collection(accountsURI,
		"#ManagerAccountCollection.ManagerAccountCollection", "Account Collection", members))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.auth.GetAccount(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResource(account))
}

// handleCreateAccount creates an account from either PascalCase or
// lowercase property names, as clients in the wild use both.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName    string `json:"UserName"`
		UserNameAlt string `json:"username"`
		Password    string `json:"Password"`
		PasswordAlt string `json:"password"`
		RoleID      string `json:"RoleId"`
		RoleAlt     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid JSON body")
		return
	}

	username := firstNonEmpty(body.UserName, body.UserNameAlt)
	password := firstNonEmpty(body.Password, body.PasswordAlt)
	role := firstNonEmpty(body.RoleID, body.RoleAlt)

	if username == "" || password == "" {
		writeRedfishError(w, http.StatusBadRequest, codePropertyMissing, "UserName/Password required")
		return
	}

	account, err := s.auth.CreateAccount(r.Context(), username, password, auth.Role(role))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", accountsURI, account.Username))
	writeJSON(w, http.StatusCreated, accountResource(account))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.DeleteAccount(r.Context(), chi.URLParam(r, "username")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	members := make([]string, 0, len(auth.ValidRoles))
	for _, role := range auth.ValidRoles {
		members = append(members, fmt.Sprintf("/redfish/v1/AccountService/Roles/%s", role))
	}
	writeJSON(w, http.StatusOK, resource.Collection("/redfish/v1/AccountService/Roles",
		"#RoleCollection.RoleCollection", "Role Collection", members))
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	rolename := chi.URLParam(r, "rolename")
	if !auth.IsValidRole(auth.Role(rolename)) {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Role not found")
		return
	}
	writeJSON(w, http.StatusOK, resource.New(
		fmt.Sprintf("/redfish/v1/AccountService/Roles/%s", rolename),
		"#Role.v1_3_0.Role", rolename, rolename))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
