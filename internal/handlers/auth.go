package handlers

import (
	"errors"
	"net/http"
	"strings"

	"user_management/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Log in with email and password
// @Description  Checks credentials and returns the user id. No session or token is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]string  true  "email, password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var body map[string]any
	if ok := h.bindJSONOrBadRequest(c, &body); !ok {
		return
	}

	fields := map[string]string{}
	for _, k := range []string{"email", "password"} {
		if s, isStr := stringField(body, k); isStr {
			fields[k] = s
		}
	}
	if msg := requireFields(fields, "email", "password"); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	email := strings.TrimSpace(fields["email"])
	password := strings.TrimSpace(fields["password"])

	// Loose shape check only; the credential check itself decides validity.
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadEmail})
		return
	}

	id, err := h.services.Authorization.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			h.logAndJSONError(c, http.StatusUnauthorized, msgBadCredentials, "login_rejected", err)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, msgServerError, "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"user_id": id,
		"message": msgLoginOK,
	})
}
