package httpapi

import (
	"net/http"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

func (h *Handler) GetClubSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubSettings")
	defer span.End()

	settings, err := h.clubSettingsService.GetSettings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get club settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) UpdateClubSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClubSettings")
	defer span.End()

	var req updateClubSettingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.clubSettingsService.UpdateSettings(ctx, clubsettings.Settings{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Colors: clubsettings.Palette{
			Primary:       req.Colors.Primary,
			Secondary:     req.Colors.Secondary,
			Tertiary:      req.Colors.Tertiary,
			Background:    req.Colors.Background,
			Surface:       req.Colors.Surface,
			TextPrimary:   req.Colors.TextPrimary,
			TextSecondary: req.Colors.TextSecondary,
		},
		TeamCreationEnabled:   *req.TeamCreationEnabled,
		MonthlyPaymentEnabled: *req.MonthlyPaymentEnabled,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update club settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) ListCoaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCoaches")
	defer span.End()

	coaches, err := h.coachService.ListCoaches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list coaches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]coachDTO, 0, len(coaches))
	for _, c := range coaches {
		out = append(out, coachToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCoach")
	defer span.End()

	var req createCoachRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.coachService.CreateCoach(ctx, usecase.CreateCoachInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create coach failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, coachToDTO(item))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	d, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(d))
}
