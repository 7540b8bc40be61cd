package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	main, err := mainCategoryLabels.parse(req.MainCategory)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	sub, err := subCategoryLabels.parse(req.SubCategory)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		Name:               req.Name,
		MainCategory:       main,
		SubCategory:        sub,
		PlayerIDs:          req.PlayerIDs,
		Tournament:         req.Tournament,
		TournamentPosition: req.TournamentPosition,
		CoachID:            req.CoachID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req updateTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.UpdateTeam(ctx, teamID, usecase.TeamUpdate{
		Name:               req.Name,
		Tournament:         req.Tournament,
		TournamentPosition: req.TournamentPosition,
		PlayerIDs:          req.PlayerIDs,
		CoachID:            req.CoachID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListTeamCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamCandidates")
	defer span.End()

	var main player.MainCategory
	if raw := strings.TrimSpace(r.URL.Query().Get("mainCategory")); raw != "" {
		parsed, err := mainCategoryLabels.parse(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		main = parsed
	}
	teamID := strings.TrimSpace(r.URL.Query().Get("teamId"))

	candidates, err := h.teamService.ListCandidates(ctx, main, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team candidates failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]candidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateDTO{
			Player:       playerToDTO(c.Player),
			PresentCount: c.PresentCount,
			TotalScore:   c.TotalScore,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	groups, err := h.teamService.ListTournaments(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(groups))
}
