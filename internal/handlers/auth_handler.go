package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"blogapi/config"
	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type AuthHandler struct {
	Users    *repository.Users
	Cfg      config.Config
	Validate *validator.Validate
	Log      *logrus.Logger
}

type signupReq struct {
	FullName string `json:"fullName" validate:"required,min=2,max=36"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := checkStruct(h.Validate, body); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), h.Cfg.BcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           bson.NewObjectID(),
		FullName:     body.FullName,
		Email:        models.NormalizeEmail(body.Email),
		PasswordHash: string(hash),
		Photo:        models.DefaultUserPhoto,
		Role:         models.RoleUser,
		Followers:    []bson.ObjectID{},
		Following:    []bson.ObjectID{},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.Users.Insert(c.Context(), user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return apperr.Conflict("email already in use")
		}
		return err
	}

	h.Log.WithField("user_id", user.ID.Hex()).Info("user signed up")
	return h.sendToken(c, fiber.StatusCreated, user)
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if body.Email == "" || body.Password == "" {
		return apperr.BadRequest("please provide email and password")
	}

	user, err := h.Users.FindByEmail(c.Context(), models.NormalizeEmail(body.Email))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Unauthenticated("incorrect email or password")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return apperr.Unauthenticated("incorrect email or password")
	}

	return h.sendToken(c, fiber.StatusOK, user)
}

// GET /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "user logged out",
	})
}

// PATCH /users/me/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var body changePasswordReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := checkStruct(h.Validate, body); err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)) != nil {
		return apperr.Unauthenticated("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), h.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := h.Users.SetPassword(c.Context(), user.ID, string(hash)); err != nil {
		return err
	}

	return h.sendToken(c, fiber.StatusOK, user)
}

func (h *AuthHandler) sendToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := h.signToken(user.ID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(h.Cfg.JWTExpiresIn),
		HTTPOnly: true,
		Secure:   !h.Cfg.IsDevelopment(),
	})

	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"token":  token,
		"data":   fiber.Map{"data": user},
	})
}

func (h *AuthHandler) signToken(userID bson.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.Cfg.JWTExpiresIn)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(h.Cfg.JWTSecret))
}
