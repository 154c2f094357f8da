package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallyup/tallyup/internal/models"
)

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

type createGroupRequest struct {
	Name      string   `json:"name"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.CreatedBy, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	member, ok := requireQuery(w, r, "member")
	if !ok {
		return
	}

	groups, err := s.groups.ListGroups(r.Context(), member)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	Member string `json:"member"`
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	groupID := chi.URLParam(r, "groupID")
	if err := s.groups.AddMember(r.Context(), groupID, req.Member); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	member := chi.URLParam(r, "member")
	if err := s.groups.RemoveMember(r.Context(), groupID, member); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type balancesResponse struct {
	Balances map[string]float64 `json:"balances"`
}

func (s *Server) getBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledgers.Balances(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{Balances: balances})
}

type settlementResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type settlementsResponse struct {
	Settlements []settlementResponse `json:"settlements"`
}

func (s *Server) getSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.ledgers.Settlements(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := settlementsResponse{Settlements: make([]settlementResponse, len(settlements))}
	for i, s := range settlements {
		resp.Settlements[i] = settlementResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}
