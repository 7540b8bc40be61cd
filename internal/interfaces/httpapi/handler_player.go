package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	var filter player.Filter
	if raw := strings.TrimSpace(r.URL.Query().Get("mainCategory")); raw != "" {
		main, err := mainCategoryLabels.parse(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.MainCategory = main
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("subCategory")); raw != "" {
		sub, err := subCategoryLabels.parse(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.SubCategory = sub
	}

	players, err := h.playerService.ListPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) GetPlayerByDocument(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerByDocument")
	defer span.End()

	document := strings.TrimSpace(r.PathValue("document"))
	item, err := h.playerService.GetPlayerByDocument(ctx, document)
	if err != nil {
		h.logger.WarnContext(ctx, "get player by document failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.CreatePlayer(ctx, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdatePlayer(ctx, playerID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPayment")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.RecordPayment(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "record payment failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) AddStatsRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddStatsRecord")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req statsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.AddStatsRecord(ctx, playerID, req.toStats())
	if err != nil {
		h.logger.WarnContext(ctx, "add stats record failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) ListTeamsForPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsForPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	teams, err := h.teamService.ListTeamsForPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player teams failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) ListAttendancesForPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAttendancesForPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	records, err := h.attendanceService.ListForPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player attendances failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendancesToDTO(records))
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	rng := player.StatsRange(strings.TrimSpace(r.URL.Query().Get("range")))

	profile, err := h.playerService.GetProfile(ctx, playerID, rng)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) ListOverduePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverduePlayers")
	defer span.End()

	items, err := h.playerService.ListOverdue(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list overdue players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]overduePlayerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, overduePlayerDTO{
			Player:        playerToDTO(item.Player),
			OverdueMonths: item.OverdueMonths,
			CanExpel:      item.CanExpel,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ExpelPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExpelPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req expelPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.ExpelPlayer(ctx, playerID, req.Confirm); err != nil {
		h.logger.WarnContext(ctx, "expel player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if principal, ok := principalFromContext(ctx); ok {
		h.logger.InfoContext(ctx, "player expelled", "player_id", playerID, "by", principal.Subject, "role", principal.Role)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (r playerProfileRequest) parse() (mains []player.MainCategory, sub player.SubCategory, pos player.Position, birth time.Time, err error) {
	if mains, err = parseMainCategories("mainCategories", r.MainCategories); err != nil {
		return
	}
	if sub, err = subCategoryLabels.parse(r.SubCategory); err != nil {
		return
	}
	if pos, err = positionLabels.parse(r.Position); err != nil {
		return
	}
	birth, err = parseDate("birthDate", r.BirthDate)
	return
}

func (r createPlayerRequest) toInput() (usecase.CreatePlayerInput, error) {
	mains, sub, pos, birth, err := r.parse()
	if err != nil {
		return usecase.CreatePlayerInput{}, err
	}

	entries := make([]usecase.StatsEntry, 0, len(r.StatsHistory))
	for _, entry := range r.StatsHistory {
		var date time.Time
		if strings.TrimSpace(entry.Date) != "" {
			date, err = parseTimestamp("statsHistory.date", entry.Date)
			if err != nil {
				return usecase.CreatePlayerInput{}, err
			}
		}
		entries = append(entries, usecase.StatsEntry{Date: date, Stats: entry.Stats.toStats()})
	}

	return usecase.CreatePlayerInput{
		Name:           r.Name,
		Document:       r.Document,
		Address:        r.Address,
		Phone:          r.Phone,
		BirthDate:      birth,
		AvatarURL:      r.AvatarURL,
		MainCategories: mains,
		SubCategory:    sub,
		Position:       pos,
		StatsHistory:   entries,
	}, nil
}

func (r updatePlayerRequest) toInput() (usecase.UpdatePlayerInput, error) {
	mains, sub, pos, birth, err := r.parse()
	if err != nil {
		return usecase.UpdatePlayerInput{}, err
	}

	in := usecase.UpdatePlayerInput{
		Name:           r.Name,
		Document:       r.Document,
		Address:        r.Address,
		Phone:          r.Phone,
		BirthDate:      birth,
		AvatarURL:      r.AvatarURL,
		MainCategories: mains,
		SubCategory:    sub,
		Position:       pos,
	}
	if r.LastPaymentDate != nil && strings.TrimSpace(*r.LastPaymentDate) != "" {
		paid, err := parseTimestamp("lastPaymentDate", *r.LastPaymentDate)
		if err != nil {
			return usecase.UpdatePlayerInput{}, err
		}
		in.LastPaymentDate = &paid
	}
	if r.LatestStats != nil {
		stats := r.LatestStats.toStats()
		in.LatestStats = &stats
	}
	return in, nil
}
