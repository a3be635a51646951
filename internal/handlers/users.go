package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"user_management/internal/models"
	"user_management/internal/service"

	"github.com/gin-gonic/gin"
)

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNoInput})
		return false
	}
	return true
}

// Centralized error logging and response. Business outcomes (conflicts,
// not-found) log at info; only real storage faults log as errors.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"message": userMsg})
}

// userIDParam parses the :id path segment. A non-numeric id means the path
// never matched a user resource, so it reads as an unknown endpoint.
func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgInvalidEndpoint})
		return 0, false
	}
	return id, true
}

// stringField pulls a string value out of a loosely-typed JSON body.
func stringField(body map[string]any, key string) (string, bool) {
	v, ok := body[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  models.User
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, msgServerError, "list_users_failed", err)
		return
	}
	if users == nil {
		users = []models.User{} // empty table still renders as a JSON array
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	u, err := h.services.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, msgServerError, "get_user_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]string  true  "name, email, password"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var body map[string]any
	if ok := h.bindJSONOrBadRequest(c, &body); !ok {
		return
	}

	var missing []string
	for _, field := range []string{"name", "email", "password"} {
		if s, ok := stringField(body, field); !ok || s == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields(missing)})
		return
	}

	name, _ := stringField(body, "name")
	email, _ := stringField(body, "email")
	password, _ := stringField(body, "password")
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// Format rules are enforced here, once, before any hashing happens.
	if len(name) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNameTooShort})
		return
	}
	if !validEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadEmail})
		return
	}
	if msg := validatePassword(password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	id, err := h.services.Users.Register(c.Request.Context(), name, email, password)
	if err != nil {
		h.respondRegisterError(c, err, name)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msgUserCreated, "user_id": id})
}

func (h *Handler) respondRegisterError(c *gin.Context, err error, name string) {
	switch {
	case errors.Is(err, service.ErrEmailConflict):
		h.logAndJSONError(c, http.StatusConflict, msgEmailTaken, "register_email_conflict", err, "name", name)
	case errors.Is(err, service.ErrNameConflict):
		h.logAndJSONError(c, http.StatusConflict, msgNameTaken, "register_name_conflict", err, "name", name)
	case errors.Is(err, service.ErrStorageIntegrity):
		// Lost the check-then-insert race; still a conflict to the caller.
		h.logAndJSONError(c, http.StatusConflict, "Database integrity error during creation.", "register_integrity_conflict", err, "name", name)
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields (name, email, password) are required."})
	case errors.Is(err, service.ErrHashingFailure):
		h.logAndJSONError(c, http.StatusInternalServerError, msgHashingFailed, "register_hashing_failed", err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, msgCreateFailed, "register_failed", err, "name", name)
	}
}

// @Summary      Update user name and/or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "User ID"
// @Param        body  body  map[string]string  true  "name and/or email"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /user/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var body map[string]any
	if ok := h.bindJSONOrBadRequest(c, &body); !ok {
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNoInput})
		return
	}

	_, hasName := body["name"]
	_, hasEmail := body["email"]
	if !hasName && !hasEmail {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUpdateNoFields})
		return
	}

	var params service.UpdateParams
	if hasName {
		name, isStr := stringField(body, "name")
		name = strings.TrimSpace(name)
		if !isStr || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNameIfSet})
			return
		}
		params.Name = &name
	}
	if hasEmail {
		email, isStr := stringField(body, "email")
		email = strings.TrimSpace(email)
		if !isStr || email == "" || !strings.Contains(email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgBadEmailIfSet})
			return
		}
		params.Email = &email
	}

	if err := h.services.Users.Update(c.Request.Context(), id, params); err != nil {
		h.respondUpdateError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserUpdated})
}

func (h *Handler) respondUpdateError(c *gin.Context, err error, id int) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.logAndJSONError(c, http.StatusNotFound, msgUserNotFound, "update_user_not_found", err, "id", id)
	case errors.Is(err, service.ErrEmailConflict):
		h.logAndJSONError(c, http.StatusConflict, msgEmailInUse, "update_email_conflict", err, "id", id)
	case errors.Is(err, service.ErrNameConflict):
		h.logAndJSONError(c, http.StatusConflict, msgNameInUse, "update_name_conflict", err, "id", id)
	case errors.Is(err, service.ErrStorageIntegrity):
		h.logAndJSONError(c, http.StatusConflict, "Database integrity error during update.", "update_integrity_conflict", err, "id", id)
	case errors.Is(err, service.ErrNoFieldsProvided):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUpdateNoFields})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, msgUpdateFailed, "update_user_failed", err, "id", id)
	}
}

// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	deleted, err := h.services.Users.Delete(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, msgServerError, "delete_user_failed", err, "id", id)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserDeleted(id)})
}

// @Summary      Search users by name substring
// @Tags         users
// @Produce      json
// @Param        name  query  string  true  "Name substring"
// @Success      200  {array}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /search [get]
func (h *Handler) searchUsers(c *gin.Context) {
	nameQuery := strings.TrimSpace(c.Query("name"))
	if nameQuery == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgSearchQueryMiss})
		return
	}
	users, err := h.services.Users.Search(c.Request.Context(), nameQuery)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, msgServerError, "search_users_failed", err, "query", nameQuery)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": msgSearchNoResults})
		return
	}
	c.JSON(http.StatusOK, users)
}
