package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/security"
)

// Index renders the public landing page with live counters.
func (h *Handlers) Index(c echo.Context) error {
	farmers, _ := h.DS.CountUsersByType(datastore.UserTypeFarmer)
	detections, _ := h.DS.CountDetections()

	return h.render(c, "index", map[string]any{
		"Title":      "Home",
		"Farmers":    farmers,
		"Detections": detections,
		"Accuracy":   97.7,
	})
}

// FAQ renders the support page.
func (h *Handlers) FAQ(c echo.Context) error {
	return h.render(c, "faq", map[string]any{"Title": "FAQ"})
}

// RegisterForm renders the sign-up page.
func (h *Handlers) RegisterForm(c echo.Context) error {
	return h.render(c, "register", map[string]any{"Title": "Register"})
}

// Register creates a new account from the sign-up form.
func (h *Handlers) Register(c echo.Context) error {
	form := &security.Registration{
		Phone:           c.FormValue("phone"),
		Email:           security.NormalizeEmail(c.FormValue("email")),
		Name:            c.FormValue("name"),
		Location:        c.FormValue("location"),
		FarmSize:        c.FormValue("farm_size"),
		UserType:        c.FormValue("user_type"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
	}

	if msg, ok := security.ValidateRegistration(form); !ok {
		return h.flashRedirect(c, msg, "danger", "/register")
	}

	if _, err := h.DS.GetUserByPhone(form.Phone); err == nil {
		return h.flashRedirect(c, "Phone number already registered.", "danger", "/register")
	}
	if form.Email != "" {
		if _, err := h.DS.GetUserByEmail(form.Email); err == nil {
			return h.flashRedirect(c, "Email already registered.", "danger", "/register")
		}
	}

	hash, err := security.HashPassword(form.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		return h.flashRedirect(c, "Registration failed. Please try again.", "danger", "/register")
	}

	user := &datastore.User{
		Phone:        form.Phone,
		Name:         form.Name,
		Location:     form.Location,
		FarmSize:     form.FarmSize,
		UserType:     form.UserType,
		PasswordHash: hash,
	}
	if form.Email != "" {
		user.Email = &form.Email
	}

	if err := h.DS.CreateUser(user); err != nil {
		h.logger.Error("user creation failed", "error", err, "phone", form.Phone)
		return h.flashRedirect(c, "Registration failed. Please try again.", "danger", "/register")
	}

	h.logger.Info("user registered", "user_id", user.ID, "user_type", user.UserType)
	return h.flashRedirect(c, "Registration successful! Please login.", "success", "/login")
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(c echo.Context) error {
	return h.render(c, "login", map[string]any{"Title": "Login"})
}

// Login authenticates a user by phone and password.
func (h *Handlers) Login(c echo.Context) error {
	phone := c.FormValue("phone")
	password := c.FormValue("password")

	user, err := h.DS.GetUserByPhone(phone)
	if err != nil || !security.CheckPassword(user.PasswordHash, password) {
		return h.flashRedirect(c, "Invalid phone number or password.", "danger", "/login")
	}

	if err := h.Sessions.Login(c, user.ID, user.Name, user.UserType); err != nil {
		h.logger.Error("session creation failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Login failed. Please try again.", "danger", "/login")
	}

	h.Sessions.AddFlash(c, fmt.Sprintf("Welcome back, %s!", user.Name), "success")
	if user.UserType == datastore.UserTypeDeveloper {
		return c.Redirect(http.StatusFound, "/admin")
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout ends the session.
func (h *Handlers) Logout(c echo.Context) error {
	_ = h.Sessions.Logout(c)
	return h.flashRedirect(c, "You have been logged out.", "info", "/")
}

// Profile renders the account page.
func (h *Handlers) Profile(c echo.Context) error {
	return h.render(c, "profile", map[string]any{"Title": "Profile"})
}

// UpdateProfile applies the profile or password form, selected by the
// action field.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	user := h.currentUser(c)

	switch c.FormValue("action") {
	case "update_profile":
		return h.updateProfileFields(c, user)
	case "change_password":
		return h.changePassword(c, user)
	default:
		return c.Redirect(http.StatusFound, "/profile")
	}
}

func (h *Handlers) updateProfileFields(c echo.Context, user datastore.User) error {
	if name := c.FormValue("name"); name != "" {
		user.Name = name
	}
	if email := security.NormalizeEmail(c.FormValue("email")); email != "" {
		if existing, err := h.DS.GetUserByEmail(email); err == nil && existing.ID != user.ID {
			return h.flashRedirect(c, "Email already in use by another account.", "danger", "/profile")
		}
		user.Email = &email
	}
	user.Location = c.FormValue("location")
	user.FarmSize = c.FormValue("farm_size")

	if err := h.DS.UpdateUser(&user); err != nil {
		h.logger.Error("profile update failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Profile update failed. Please try again.", "danger", "/profile")
	}
	return h.flashRedirect(c, "Profile updated successfully!", "success", "/profile")
}

func (h *Handlers) changePassword(c echo.Context, user datastore.User) error {
	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if !security.CheckPassword(user.PasswordHash, current) {
		return h.flashRedirect(c, "Current password is incorrect.", "danger", "/profile")
	}
	if newPassword != confirm {
		return h.flashRedirect(c, "New passwords do not match.", "danger", "/profile")
	}
	if len(newPassword) < 6 {
		return h.flashRedirect(c, "Password must be at least 6 characters.", "danger", "/profile")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return h.flashRedirect(c, "Password change failed. Please try again.", "danger", "/profile")
	}
	user.PasswordHash = hash
	if err := h.DS.UpdateUser(&user); err != nil {
		h.logger.Error("password change failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Password change failed. Please try again.", "danger", "/profile")
	}

	h.logger.Info("password changed", "user_id", user.ID)
	return h.flashRedirect(c, "Password changed successfully!", "success", "/profile")
}
