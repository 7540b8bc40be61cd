package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/voley-club/internal/platform/logging"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

type Handler struct {
	playerService       *usecase.PlayerService
	teamService         *usecase.TeamService
	attendanceService   *usecase.AttendanceService
	coachService        *usecase.CoachService
	clubSettingsService *usecase.ClubSettingsService
	dashboardService    *usecase.DashboardService
	authService         *usecase.AuthService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	attendanceService *usecase.AttendanceService,
	coachService *usecase.CoachService,
	clubSettingsService *usecase.ClubSettingsService,
	dashboardService *usecase.DashboardService,
	authService *usecase.AuthService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		playerService:       playerService,
		teamService:         teamService,
		attendanceService:   attendanceService,
		coachService:        coachService,
		clubSettingsService: clubSettingsService,
		dashboardService:    dashboardService,
		authService:         authService,
		logger:              logger.Named("httpapi"),
		validator:           v,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into payload, rejecting unknown fields, and
// runs the struct validation rules.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return usecase.ValidationError("body", fmt.Sprintf("invalid JSON payload: %v", err))
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return usecase.ValidationError(fieldPath(fe.Namespace()), validationReason(fe))
	}
	return usecase.ValidationError("body", err.Error())
}

// fieldPath drops request struct names, embedded ones included, from a
// validator namespace: "createPlayerRequest.playerProfileRequest.name"
// becomes "name".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	out := parts[:0]
	for _, part := range parts {
		if strings.HasSuffix(part, "Request") {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, ".")
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must match layout " + fe.Param()
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
