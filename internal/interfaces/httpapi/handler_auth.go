package httpapi

import "net/http"

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "client_ip", resolveClientIP(r), "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := loginResponseDTO{
		Success: result.Success,
		Role:    string(result.Role),
	}
	if result.Session != nil {
		resp.Token = result.Session.Token
		resp.ExpiresAt = formatTimestamp(result.Session.ExpiresAt)
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}
