package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/api/metrics"
	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// FeedbackHandler serves the public feedback form. Neither route requires a
// session.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type submitFeedbackRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Message string `json:"message" validate:"required"`
	Rating  stint  `json:"rating"  validate:"required,min=1,max=5"`
}

// stint rejects non-integer JSON numbers on bind, so a rating of 4.5 fails
// with 400 instead of silently truncating. Its named error lets Submit keep
// the field-specific message for rating failures only.
type stint int

var errRatingNotInt = errors.New("rating must be an integer between 1 and 5")

func (s *stint) UnmarshalJSON(b []byte) error {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return errRatingNotInt
	}
	*s = stint(n)
	return nil
}

type feedbackEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Submit stores a new feedback entry. The response echoes the entry with
// the email stripped and a client-facing id.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Feedback entry"
// @Success      201   {object}  feedbackEnvelope
// @Failure      400   {object}  map[string]string
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		// Echo wraps bind failures with the cause as Internal, so the
		// rating-specific error is still reachable here.
		if errors.Is(err, errRatingNotInt) {
			return echo.NewHTTPError(http.StatusBadRequest, errRatingNotInt.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fb, err := h.service.Submit(c.Request().Context(), ports.SubmitFeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Rating:  int(req.Rating),
	})
	if err != nil {
		return err
	}
	metrics.FeedbackSubmittedTotal.WithLabelValues(strconv.Itoa(fb.Rating)).Inc()

	return c.JSON(http.StatusCreated, feedbackEnvelope{Success: true, Data: fb})
}

// List returns all feedback newest first, with email and store id excluded.
//
// @Summary      List feedback
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  feedbackEnvelope
// @Router       /api/feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	// The public listing never carries an id, so strip it here too.
	views := make([]domain.Feedback, len(entries))
	for i, e := range entries {
		e.ID = ""
		views[i] = e
	}
	return c.JSON(http.StatusOK, feedbackEnvelope{Success: true, Data: views})
}
