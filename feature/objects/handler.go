package objects

import (
	"errors"

	"opnsense-manager/core/history"
	"opnsense-manager/core/logger"
	"opnsense-manager/core/opnsense"
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for declared objects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the object and history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/", h.HandleListTypes)
	group.Get("/:type", h.HandleListObjects)
	group.Post("/:type/reconcile", h.HandleReconcile)

	app.Get("/history", h.HandleHistory)
}

// HandleListTypes returns the registered object types.
// @Summary List Object Types
// @Description Returns the names of every registered object type.
// @Tags objects
// @Produce json
// @Success 200 {array} string "Object types"
// @Router /objects [get]
func (h *Handler) HandleListTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}

// HandleListObjects returns the existing objects of a type.
// @Summary List Objects
// @Description Searches the appliance and returns every object of the type, normalized.
// @Tags objects
// @Produce json
// @Param type path string true "Object type (e.g. 'firewall_rule')"
// @Success 200 {array} map[string]interface{} "Normalized objects"
// @Failure 404 {object} map[string]string "Unknown object type"
// @Failure 502 {object} map[string]string "Appliance API failure"
// @Router /objects/{type} [get]
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context(), c.Params("type"))
	if err != nil {
		return h.fail(c, err)
	}
	if records == nil {
		records = []reconcile.Record{}
	}
	return c.JSON(records)
}

// HandleReconcile plans and applies one declaration.
// @Summary Reconcile Object
// @Description Matches the declaration against the existing objects and creates, updates or deletes one object. With check=true nothing is changed.
// @Tags objects
// @Accept json
// @Produce json
// @Param type path string true "Object type (e.g. 'vip')"
// @Param check query bool false "Plan only"
// @Param declaration body Declaration true "Declaration (type is taken from the path)"
// @Success 200 {object} reconcile.Result "Decision and diff"
// @Failure 404 {object} map[string]string "Unknown object type"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 502 {object} map[string]string "Appliance API failure"
// @Router /objects/{type}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	body["type"] = c.Params("type")

	decl, err := DecodeDeclaration(body)
	if err != nil {
		return h.fail(c, err)
	}

	check := c.QueryBool("check", false)
	res, err := h.service.Reconcile(c.Context(), decl, reconcile.Options{Check: check})
	if err != nil {
		return h.fail(c, err)
	}

	l.Info("Reconciled object",
		zap.String("type", decl.Type),
		zap.String("decision", string(res.Decision)),
		zap.Bool("check", check),
	)
	return c.JSON(res)
}

// HandleHistory returns recorded changes.
// @Summary Change History
// @Description Returns recorded reconciliations that changed something or failed, newest first.
// @Tags history
// @Produce json
// @Param type query string false "Restrict to one object type"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} history.Change "Recorded changes"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	changes, err := h.service.History(c.Context(), history.Query{
		ObjectType: c.Query("type"),
		Limit:      c.QueryInt("limit", history.DefaultLimit),
	})
	if err != nil {
		return h.fail(c, err)
	}
	if changes == nil {
		changes = []history.Change{}
	}
	return c.JSON(changes)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  validate.ErrValidationFailed.Error(),
			"errors": verr.Errors,
		})
	case errors.Is(err, reconcile.ErrUnknownObjectType):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrNotReconcilable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrHistoryDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, opnsense.ErrRequestFailed):
		logger.WithRayID(h.service.logger, c).Error("Appliance request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
