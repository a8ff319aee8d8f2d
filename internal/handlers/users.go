package handlers

import (
	"errors"
	"net/http"

	"usercrud/internal/models"
	"usercrud/internal/service"
	"usercrud/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"

	// userNotFoundBody is returned verbatim by the edit route for unknown ids.
	userNotFoundBody = "User not found"
	internalErrBody  = "internal server error"
)

// Centralized error logging and response.
func (h *Handler) logAndTextError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if err != nil {
		if h.log != nil {
			fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		_ = c.Error(err)
	}
	c.String(http.StatusInternalServerError, internalErrBody)
}

// renderHTML renders into memory first so a template fault never leaves a half-written 200.
func (h *Handler) renderHTML(c *gin.Context, name string, data gin.H) {
	html, err := views.Render(h.tmpl, name, data)
	if err != nil {
		h.logAndTextError(c, "render_failed", err, "template", name)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

// userInput reads name and email from the form body. Absent fields read as "".
func userInput(c *gin.Context) models.UserInput {
	return models.UserInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
	}
}

// @Summary      Users page
// @Description  Full page with the create form and the current user list
// @Tags         users
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      500  {string}  string
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.logAndTextError(c, "users_list_failed", err)
		return
	}
	h.renderHTML(c, views.IndexPage, gin.H{"users": users})
}

// @Summary      Create user
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name   formData  string  false  "Name"
// @Param        email  formData  string  false  "Email"
// @Success      200  {string}  string  "User list fragment"
// @Failure      500  {string}  string
// @Router       /users [post]
func (h *Handler) createUser(c *gin.Context) {
	in := userInput(c)
	users, err := h.services.Users.Create(c.Request.Context(), in)
	if err != nil {
		h.logAndTextError(c, "user_create_failed", err, "name", in.Name)
		return
	}
	h.renderHTML(c, views.UserList, gin.H{"users": users})
}

// @Summary      Update user
// @Description  Overwrites name and email; an unknown id is a no-op
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id     path      string  true   "User ID"
// @Param        name   formData  string  false  "Name"
// @Param        email  formData  string  false  "Email"
// @Success      200  {string}  string  "User list fragment"
// @Failure      500  {string}  string
// @Router       /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")
	users, err := h.services.Users.Update(c.Request.Context(), id, userInput(c))
	if err != nil {
		h.logAndTextError(c, "user_update_failed", err, "id", id)
		return
	}
	h.renderHTML(c, views.UserList, gin.H{"users": users})
}

// @Summary      Delete user
// @Description  An unknown id is a no-op
// @Tags         users
// @Produce      html
// @Param        id  path  string  true  "User ID"
// @Success      200  {string}  string  "User list fragment"
// @Failure      500  {string}  string
// @Router       /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")
	users, err := h.services.Users.Delete(c.Request.Context(), id)
	if err != nil {
		h.logAndTextError(c, "user_delete_failed", err, "id", id)
		return
	}
	h.renderHTML(c, views.UserList, gin.H{"users": users})
}

// @Summary      Edit form
// @Description  Form pre-filled with the user's values, or the text "User not found"
// @Tags         users
// @Produce      html
// @Param        id  path  string  true  "User ID"
// @Success      200  {string}  string  "Edit form fragment"
// @Failure      500  {string}  string
// @Router       /users/{id}/edit [get]
func (h *Handler) editForm(c *gin.Context) {
	id := c.Param("id")
	user, err := h.services.Users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Data(http.StatusOK, contentTypeHTML, []byte(userNotFoundBody))
			return
		}
		h.logAndTextError(c, "user_get_failed", err, "id", id)
		return
	}
	h.renderHTML(c, views.EditForm, gin.H{"user": user})
}
